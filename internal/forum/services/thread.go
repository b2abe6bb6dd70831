package services

import (
	"encoding/json"

	"github.com/dmitrijs2005/forumdesign/internal/forum/models"
	"github.com/google/uuid"
)

// ThreadNode is a comment with its direct replies.
type ThreadNode struct {
	Comment *models.Comment
	Replies []*ThreadNode
}

func (n *ThreadNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		models.CommentView
		Replies []*ThreadNode `json:"replies"`
	}{n.Comment.View(), n.Replies})
}

// BuildThread arranges comments into reply trees, keeping the input order
// among siblings and roots. A comment is placed at the top level when it has
// no parent, when its parent is not among comments, or when following its
// parents leads back to it. Every comment appears exactly once.
func BuildThread(comments []*models.Comment) []*ThreadNode {
	byID := make(map[uuid.UUID]*ThreadNode, len(comments))
	order := make([]*ThreadNode, 0, len(comments))
	for _, c := range comments {
		if _, dup := byID[c.ID()]; dup {
			continue
		}
		n := &ThreadNode{Comment: c, Replies: []*ThreadNode{}}
		byID[c.ID()] = n
		order = append(order, n)
	}

	roots := make([]*ThreadNode, 0)
	for _, n := range order {
		if p := parentNode(n, byID); p != nil {
			p.Replies = append(p.Replies, n)
		} else {
			roots = append(roots, n)
		}
	}
	return roots
}

// parentNode returns the node n hangs under, or nil when n is a root.
func parentNode(n *ThreadNode, byID map[uuid.UUID]*ThreadNode) *ThreadNode {
	pid := n.Comment.ParentID()
	if !pid.Valid {
		return nil
	}
	p, ok := byID[pid.UUID]
	if !ok {
		return nil
	}

	// An ancestor chain longer than the node count loops without passing n;
	// the nodes on that loop become roots themselves, so p stays reachable.
	cur := p
	for steps := 0; steps <= len(byID); steps++ {
		if cur == n {
			return nil
		}
		next := cur.Comment.ParentID()
		if !next.Valid {
			return p
		}
		if cur, ok = byID[next.UUID]; !ok {
			return p
		}
	}
	return p
}
