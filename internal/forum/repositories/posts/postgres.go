// Package posts provides the PostgreSQL-backed post repository.
package posts

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/forumdesign/internal/common"
	"github.com/dmitrijs2005/forumdesign/internal/dbx"
	"github.com/dmitrijs2005/forumdesign/internal/forum/models"
	"github.com/google/uuid"
)

const (
	selectPost = `SELECT id, user_id, title, content, created_at FROM posts`
	orderPosts = ` ORDER BY created_at, id`
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, post *models.Post) error {
	query := `INSERT INTO posts (id, user_id, title, content, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		post.ID(), post.AuthorID(), post.Title(), post.Content(), post.CreatedAt())
	if err != nil {
		return common.NewStorageError("insert post", err)
	}
	return nil
}

// Update overwrites title and content of the row with the post's id. The
// author and creation time never change.
func (r *PostgresRepository) Update(ctx context.Context, post *models.Post) error {
	query := `UPDATE posts SET title = $2, content = $3 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, post.ID(), post.Title(), post.Content())
	if err != nil {
		return common.NewStorageError("update post", err)
	}
	return checkOneRow("update post", res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return common.NewStorageError("delete post", err)
	}
	return checkOneRow("delete post", res)
}

func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	post, err := scanPost(r.db.QueryRowContext(ctx, selectPost+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, common.NewStorageError("find post by id", err)
	}
	return post, nil
}

// FindByAuthorID returns all posts of one author, oldest first.
func (r *PostgresRepository) FindByAuthorID(ctx context.Context, authorID uuid.UUID) ([]*models.Post, error) {
	return r.findMany(ctx, "find posts by author", selectPost+` WHERE user_id = $1`+orderPosts, authorID)
}

// FindAll returns every post, oldest first.
func (r *PostgresRepository) FindAll(ctx context.Context) ([]*models.Post, error) {
	return r.findMany(ctx, "find posts", selectPost+orderPosts)
}

func (r *PostgresRepository) findMany(ctx context.Context, op, query string, args ...any) ([]*models.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewStorageError(op, err)
	}
	defer rows.Close()

	result := make([]*models.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, common.NewStorageError(op, err)
		}
		result = append(result, post)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewStorageError(op, err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(s scanner) (*models.Post, error) {
	var (
		id, authorID   uuid.UUID
		title, content string
		createdAt      time.Time
	)
	if err := s.Scan(&id, &authorID, &title, &content, &createdAt); err != nil {
		return nil, err
	}
	return models.RestorePost(id, authorID, title, content, createdAt.UTC()), nil
}

func checkOneRow(op string, res sql.Result) error {
	err := dbx.ExpectOneRow(res, common.ErrorNotFound)
	if err == nil || errors.Is(err, common.ErrorNotFound) {
		return err
	}
	return common.NewStorageError(op, err)
}
