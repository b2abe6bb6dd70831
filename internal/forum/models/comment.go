package models

import (
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/forumdesign/internal/common"
	"github.com/dmitrijs2005/forumdesign/internal/timex"
	"github.com/dmitrijs2005/forumdesign/internal/validate"
	"github.com/google/uuid"
)

// Comment is a reply to a Post, or to another Comment on the same post when
// ParentID is valid.
type Comment struct {
	id        uuid.UUID
	postID    uuid.UUID
	authorID  uuid.UUID
	parentID  uuid.NullUUID
	createdAt time.Time
	content   string
}

// NewComment validates every field and returns the comment. An invalid
// parentID makes a top-level comment; a zero createdAt means now.
func NewComment(id, postID, authorID uuid.UUID, parentID uuid.NullUUID, content string, createdAt time.Time) (*Comment, error) {
	if err := requireID("comment_id", id); err != nil {
		return nil, err
	}
	if err := requireID("post_id", postID); err != nil {
		return nil, err
	}
	if err := requireID("author_id", authorID); err != nil {
		return nil, err
	}
	if parentID.Valid {
		if err := requireID("parent_id", parentID.UUID); err != nil {
			return nil, err
		}
		if parentID.UUID == id {
			return nil, common.NewValidationError("parent_id", "comment cannot reply to itself")
		}
	}
	ts, err := creationTime("created_at", createdAt)
	if err != nil {
		return nil, err
	}
	c := &Comment{id: id, postID: postID, authorID: authorID, parentID: parentID, createdAt: ts}
	if err := c.SetContent(content); err != nil {
		return nil, err
	}
	return c, nil
}

// RestoreComment rebuilds a comment from a stored row without validation.
func RestoreComment(id, postID, authorID uuid.UUID, parentID uuid.NullUUID, createdAt time.Time, content string) *Comment {
	return &Comment{id: id, postID: postID, authorID: authorID, parentID: parentID, createdAt: createdAt, content: content}
}

func (c *Comment) ID() uuid.UUID           { return c.id }
func (c *Comment) PostID() uuid.UUID       { return c.postID }
func (c *Comment) AuthorID() uuid.UUID     { return c.authorID }
func (c *Comment) ParentID() uuid.NullUUID { return c.parentID }
func (c *Comment) CreatedAt() time.Time    { return c.createdAt }
func (c *Comment) Content() string         { return c.content }

// IsTopLevel reports whether the comment replies to the post directly.
func (c *Comment) IsTopLevel() bool { return !c.parentID.Valid }

func (c *Comment) SetContent(content string) error {
	v, err := validate.Text("content", content, 0)
	if err != nil {
		return err
	}
	c.content = v
	return nil
}

// CommentView is the externally visible form of a Comment. ParentCommentID
// is null for a top-level comment.
type CommentView struct {
	ID              string  `json:"id"`
	PostID          string  `json:"postId"`
	AuthorID        string  `json:"authorId"`
	ParentCommentID *string `json:"parentCommentId"`
	CreatedAt       int64   `json:"createdAt"`
	Content         string  `json:"content"`
}

func (c *Comment) View() CommentView {
	v := CommentView{
		ID:        c.id.String(),
		PostID:    c.postID.String(),
		AuthorID:  c.authorID.String(),
		CreatedAt: timex.UnixMillis(c.createdAt),
		Content:   c.content,
	}
	if c.parentID.Valid {
		s := c.parentID.UUID.String()
		v.ParentCommentID = &s
	}
	return v
}

func (c *Comment) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.View())
}
