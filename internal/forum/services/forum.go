// Package services contains the forum use cases. ForumService composes the
// entity repositories, runs multi-step writes in one transaction and builds
// comment threads.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/forumdesign/internal/common"
	"github.com/dmitrijs2005/forumdesign/internal/cryptox"
	"github.com/dmitrijs2005/forumdesign/internal/dbx"
	"github.com/dmitrijs2005/forumdesign/internal/forum/models"
	"github.com/dmitrijs2005/forumdesign/internal/forum/repositories/repomanager"
	"github.com/dmitrijs2005/forumdesign/internal/logging"
	"github.com/google/uuid"
)

// ErrEmailTaken is matched when RegisterUser finds another account using the
// address. It arrives wrapped in a *common.ValidationError for field "email".
var ErrEmailTaken = errors.New("already registered")

// newID is a test seam for identifier generation.
var newID = uuid.New

type ForumService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	logger       logging.Logger
	queryTimeout time.Duration
}

// NewForumService builds the service. A positive queryTimeout bounds every
// use case; zero leaves the caller's context alone.
func NewForumService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger, queryTimeout time.Duration) *ForumService {
	return &ForumService{db: db, repomanager: m, logger: logger, queryTimeout: queryTimeout}
}

func (s *ForumService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}

// RegisterUser derives the password hash and salt, validates the account and
// stores it. The password buffer is wiped before returning.
func (s *ForumService) RegisterUser(ctx context.Context, email, name string, password []byte) (*models.User, error) {
	defer cryptox.WipeByteArray(password)

	hash, salt, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	u, err := models.NewUser(newID(), email, hash, salt, name)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.repomanager.Users(s.db).Insert(ctx, u); err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.WrapValidation("email", ErrEmailTaken)
		}
		s.logger.Error(ctx, "register user failed", "error", err)
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", u.ID())
	return u, nil
}

// Authenticate returns the user for email when password matches, or
// common.ErrorNotFound for an unknown address or a wrong password.
func (s *ForumService) Authenticate(ctx context.Context, email string, password []byte) (*models.User, error) {
	defer cryptox.WipeByteArray(password)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	u, err := s.repomanager.Users(s.db).FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !cryptox.CheckPassword(password, u.Hash(), u.Salt()) {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (s *ForumService) Users(ctx context.Context) ([]*models.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.repomanager.Users(s.db).FindAll(ctx)
}

// DeleteUser removes the account together with its posts and comments.
func (s *ForumService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.repomanager.Users(s.db).Delete(ctx, id); err != nil {
		return s.fail(ctx, "delete user", err)
	}
	s.logger.Info(ctx, "user deleted", "user_id", id)
	return nil
}

// CreatePost stores a new post by an existing author.
func (s *ForumService) CreatePost(ctx context.Context, authorID uuid.UUID, title, content string) (*models.Post, error) {
	p, err := models.NewPost(newID(), authorID, title, content, time.Time{})
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Users(tx).FindByID(ctx, authorID); err != nil {
			return fmt.Errorf("author %s: %w", authorID, err)
		}
		return s.repomanager.Posts(tx).Insert(ctx, p)
	})
	if err != nil {
		return nil, s.fail(ctx, "create post", err)
	}

	s.logger.Info(ctx, "post created", "post_id", p.ID(), "user_id", authorID)
	return p, nil
}

// EditPost replaces the title and content of a post.
func (s *ForumService) EditPost(ctx context.Context, id uuid.UUID, title, content string) (*models.Post, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	repo := s.repomanager.Posts(s.db)
	p, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.SetTitle(title); err != nil {
		return nil, err
	}
	if err := p.SetContent(content); err != nil {
		return nil, err
	}
	if err := repo.Update(ctx, p); err != nil {
		return nil, s.fail(ctx, "edit post", err)
	}

	s.logger.Info(ctx, "post edited", "post_id", id)
	return p, nil
}

// DeletePost removes the post and every comment on it.
func (s *ForumService) DeletePost(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.repomanager.Posts(s.db).Delete(ctx, id); err != nil {
		return s.fail(ctx, "delete post", err)
	}
	s.logger.Info(ctx, "post deleted", "post_id", id)
	return nil
}

// Posts lists every post, or only those by authorID when it is valid.
func (s *ForumService) Posts(ctx context.Context, authorID uuid.NullUUID) ([]*models.Post, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	repo := s.repomanager.Posts(s.db)
	if authorID.Valid {
		return repo.FindByAuthorID(ctx, authorID.UUID)
	}
	return repo.FindAll(ctx)
}

// AddComment stores a comment on postID. When parentID is set it must name
// an existing comment on the same post, otherwise common.ErrParentMismatch
// is returned. All checks and the insert share one transaction.
func (s *ForumService) AddComment(ctx context.Context, postID, authorID uuid.UUID, parentID *uuid.UUID, content string) (*models.Comment, error) {
	var parent uuid.NullUUID
	if parentID != nil {
		parent = uuid.NullUUID{UUID: *parentID, Valid: true}
	}

	c, err := models.NewComment(newID(), postID, authorID, parent, content, time.Time{})
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Posts(tx).FindByID(ctx, postID); err != nil {
			return fmt.Errorf("post %s: %w", postID, err)
		}
		if _, err := s.repomanager.Users(tx).FindByID(ctx, authorID); err != nil {
			return fmt.Errorf("author %s: %w", authorID, err)
		}

		if parent.Valid {
			p, err := s.repomanager.Comments(tx).FindByID(ctx, parent.UUID)
			if err != nil {
				return fmt.Errorf("parent comment %s: %w", parent.UUID, err)
			}
			if p.PostID() != postID {
				return common.WrapValidation("parent_id", common.ErrParentMismatch)
			}
		}

		return s.repomanager.Comments(tx).Insert(ctx, c)
	})
	if err != nil {
		return nil, s.fail(ctx, "add comment", err)
	}

	s.logger.Info(ctx, "comment added", "comment_id", c.ID(), "post_id", postID)
	return c, nil
}

func (s *ForumService) EditComment(ctx context.Context, id uuid.UUID, content string) (*models.Comment, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	repo := s.repomanager.Comments(s.db)
	c, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.SetContent(content); err != nil {
		return nil, err
	}
	if err := repo.Update(ctx, c); err != nil {
		return nil, s.fail(ctx, "edit comment", err)
	}

	s.logger.Info(ctx, "comment edited", "comment_id", id)
	return c, nil
}

// DeleteComment removes the comment and its replies.
func (s *ForumService) DeleteComment(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.repomanager.Comments(s.db).Delete(ctx, id); err != nil {
		return s.fail(ctx, "delete comment", err)
	}
	s.logger.Info(ctx, "comment deleted", "comment_id", id)
	return nil
}

// Comments lists the comments on a post in creation order.
func (s *ForumService) Comments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.repomanager.Comments(s.db).FindByPostID(ctx, postID)
}

// Thread returns the comments on an existing post arranged as reply trees.
func (s *ForumService) Thread(ctx context.Context, postID uuid.UUID) ([]*ThreadNode, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.repomanager.Posts(s.db).FindByID(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := s.repomanager.Comments(s.db).FindByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return BuildThread(comments), nil
}

// fail logs storage failures. Absence and validation errors are the
// caller's to report; a foreign key violation means a referenced row went
// away and is reported as absence.
func (s *ForumService) fail(ctx context.Context, op string, err error) error {
	if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrValidation) {
		return err
	}
	if dbx.IsForeignKeyViolation(err) {
		return fmt.Errorf("%s: %w", op, common.ErrorNotFound)
	}
	s.logger.Error(ctx, op+" failed", "error", err)
	return fmt.Errorf("error in %s: %w", op, err)
}
