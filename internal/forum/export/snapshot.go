// Package export serializes a forum snapshot to JSON and delivers it to a
// local file or an S3-compatible bucket.
package export

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/forumdesign/internal/forum/models"
	"github.com/dmitrijs2005/forumdesign/internal/timex"
)

// Snapshot is the serialized state of the forum at one moment.
type Snapshot struct {
	GeneratedAt int64                `json:"generatedAt"`
	Users       []models.UserView    `json:"users"`
	Posts       []models.PostView    `json:"posts"`
	Comments    []models.CommentView `json:"comments"`
}

func NewSnapshot(at time.Time, users []*models.User, posts []*models.Post, comments []*models.Comment) *Snapshot {
	s := &Snapshot{
		GeneratedAt: timex.UnixMillis(at),
		Users:       make([]models.UserView, 0, len(users)),
		Posts:       make([]models.PostView, 0, len(posts)),
		Comments:    make([]models.CommentView, 0, len(comments)),
	}
	for _, u := range users {
		s.Users = append(s.Users, u.View())
	}
	for _, p := range posts {
		s.Posts = append(s.Posts, p.View())
	}
	for _, c := range comments {
		s.Comments = append(s.Comments, c.View())
	}
	return s
}

func (s *Snapshot) Encode() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Writer delivers an encoded snapshot and returns where it was written.
type Writer interface {
	Write(ctx context.Context, s *Snapshot) (string, error)
}
