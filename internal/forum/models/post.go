package models

import (
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/forumdesign/internal/timex"
	"github.com/dmitrijs2005/forumdesign/internal/validate"
	"github.com/google/uuid"
)

const PostTitleMaxLen = 128

// Post is a piece of content authored by a User.
type Post struct {
	id        uuid.UUID
	authorID  uuid.UUID
	title     string
	content   string
	createdAt time.Time
}

// NewPost validates every field and returns the post. A zero createdAt
// means now.
func NewPost(id, authorID uuid.UUID, title, content string, createdAt time.Time) (*Post, error) {
	if err := requireID("post_id", id); err != nil {
		return nil, err
	}
	if err := requireID("author_id", authorID); err != nil {
		return nil, err
	}
	ts, err := creationTime("created_at", createdAt)
	if err != nil {
		return nil, err
	}
	p := &Post{id: id, authorID: authorID, createdAt: ts}
	if err := p.SetTitle(title); err != nil {
		return nil, err
	}
	if err := p.SetContent(content); err != nil {
		return nil, err
	}
	return p, nil
}

// RestorePost rebuilds a post from a stored row without validation.
func RestorePost(id, authorID uuid.UUID, title, content string, createdAt time.Time) *Post {
	return &Post{id: id, authorID: authorID, title: title, content: content, createdAt: createdAt}
}

func (p *Post) ID() uuid.UUID        { return p.id }
func (p *Post) AuthorID() uuid.UUID  { return p.authorID }
func (p *Post) Title() string        { return p.title }
func (p *Post) Content() string      { return p.content }
func (p *Post) CreatedAt() time.Time { return p.createdAt }

func (p *Post) SetTitle(title string) error {
	v, err := validate.Text("title", title, PostTitleMaxLen)
	if err != nil {
		return err
	}
	p.title = v
	return nil
}

func (p *Post) SetContent(content string) error {
	v, err := validate.Text("content", content, 0)
	if err != nil {
		return err
	}
	p.content = v
	return nil
}

// PostView is the externally visible form of a Post. CreatedAt is in
// milliseconds since the epoch.
type PostView struct {
	ID        string `json:"id"`
	AuthorID  string `json:"authorId"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"createdAt"`
}

func (p *Post) View() PostView {
	return PostView{
		ID:        p.id.String(),
		AuthorID:  p.authorID.String(),
		Title:     p.title,
		Content:   p.content,
		CreatedAt: timex.UnixMillis(p.createdAt),
	}
}

func (p *Post) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.View())
}
