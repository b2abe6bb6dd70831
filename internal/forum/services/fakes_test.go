package services

import (
	"context"
	"database/sql"
	"sort"

	"github.com/dmitrijs2005/forumdesign/internal/common"
	"github.com/dmitrijs2005/forumdesign/internal/dbx"
	"github.com/dmitrijs2005/forumdesign/internal/forum/models"
	"github.com/dmitrijs2005/forumdesign/internal/forum/repositories/comments"
	"github.com/dmitrijs2005/forumdesign/internal/forum/repositories/posts"
	"github.com/dmitrijs2005/forumdesign/internal/forum/repositories/users"
	"github.com/google/uuid"
)

// memStore backs the fake repositories. Errors set on it are returned by the
// next matching call.
type memStore struct {
	users    map[uuid.UUID]*models.User
	posts    map[uuid.UUID]*models.Post
	comments map[uuid.UUID]*models.Comment

	userInsertErr    error
	postInsertErr    error
	commentInsertErr error
	findAllErr       error
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[uuid.UUID]*models.User{},
		posts:    map[uuid.UUID]*models.Post{},
		comments: map[uuid.UUID]*models.Comment{},
	}
}

func (m *memStore) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memStore) Users(dbx.DBTX) users.Repository             { return &memUsers{m} }
func (m *memStore) Posts(dbx.DBTX) posts.Repository             { return &memPosts{m} }
func (m *memStore) Comments(dbx.DBTX) comments.Repository       { return &memComments{m} }

type memUsers struct{ s *memStore }

func (r *memUsers) Insert(_ context.Context, u *models.User) error {
	if r.s.userInsertErr != nil {
		return r.s.userInsertErr
	}
	r.s.users[u.ID()] = u
	return nil
}

func (r *memUsers) Update(_ context.Context, u *models.User) error {
	if _, ok := r.s.users[u.ID()]; !ok {
		return common.ErrorNotFound
	}
	r.s.users[u.ID()] = u
	return nil
}

func (r *memUsers) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.s.users[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.users, id)
	return nil
}

func (r *memUsers) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (r *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.s.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memUsers) FindAll(context.Context) ([]*models.User, error) {
	if r.s.findAllErr != nil {
		return nil, r.s.findAllErr
	}
	out := make([]*models.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

type memPosts struct{ s *memStore }

func (r *memPosts) Insert(_ context.Context, p *models.Post) error {
	if r.s.postInsertErr != nil {
		return r.s.postInsertErr
	}
	r.s.posts[p.ID()] = p
	return nil
}

func (r *memPosts) Update(_ context.Context, p *models.Post) error {
	if _, ok := r.s.posts[p.ID()]; !ok {
		return common.ErrorNotFound
	}
	r.s.posts[p.ID()] = p
	return nil
}

func (r *memPosts) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.s.posts[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.posts, id)
	for cid, c := range r.s.comments {
		if c.PostID() == id {
			delete(r.s.comments, cid)
		}
	}
	return nil
}

func (r *memPosts) FindByID(_ context.Context, id uuid.UUID) (*models.Post, error) {
	p, ok := r.s.posts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (r *memPosts) FindByAuthorID(_ context.Context, authorID uuid.UUID) ([]*models.Post, error) {
	return r.filter(func(p *models.Post) bool { return p.AuthorID() == authorID }), nil
}

func (r *memPosts) FindAll(context.Context) ([]*models.Post, error) {
	return r.filter(func(*models.Post) bool { return true }), nil
}

func (r *memPosts) filter(keep func(*models.Post) bool) []*models.Post {
	out := make([]*models.Post, 0)
	for _, p := range r.s.posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().Before(out[j].CreatedAt()) })
	return out
}

type memComments struct{ s *memStore }

func (r *memComments) Insert(_ context.Context, c *models.Comment) error {
	if r.s.commentInsertErr != nil {
		return r.s.commentInsertErr
	}
	r.s.comments[c.ID()] = c
	return nil
}

func (r *memComments) Update(_ context.Context, c *models.Comment) error {
	if _, ok := r.s.comments[c.ID()]; !ok {
		return common.ErrorNotFound
	}
	r.s.comments[c.ID()] = c
	return nil
}

func (r *memComments) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.s.comments[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.comments, id)
	return nil
}

func (r *memComments) FindByID(_ context.Context, id uuid.UUID) (*models.Comment, error) {
	c, ok := r.s.comments[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return c, nil
}

func (r *memComments) FindByPostID(_ context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	return r.filter(func(c *models.Comment) bool { return c.PostID() == postID }), nil
}

func (r *memComments) FindByAuthorID(_ context.Context, authorID uuid.UUID) ([]*models.Comment, error) {
	return r.filter(func(c *models.Comment) bool { return c.AuthorID() == authorID }), nil
}

func (r *memComments) FindByParentID(_ context.Context, parentID uuid.UUID) ([]*models.Comment, error) {
	return r.filter(func(c *models.Comment) bool {
		return c.ParentID().Valid && c.ParentID().UUID == parentID
	}), nil
}

func (r *memComments) FindAll(context.Context) ([]*models.Comment, error) {
	return r.filter(func(*models.Comment) bool { return true }), nil
}

func (r *memComments) filter(keep func(*models.Comment) bool) []*models.Comment {
	out := make([]*models.Comment, 0)
	for _, c := range r.s.comments {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt().Equal(out[j].CreatedAt()) {
			return out[i].CreatedAt().Before(out[j].CreatedAt())
		}
		return out[i].ID().String() < out[j].ID().String()
	})
	return out
}
