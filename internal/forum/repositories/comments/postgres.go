// Package comments provides the PostgreSQL-backed comment repository.
package comments

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
	selectComment = `SELECT id, post_id, user_id, parent_id, created_at, content FROM comments`
	orderComments = ` ORDER BY created_at, id`
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, c *models.Comment) error {
	query := `INSERT INTO comments (id, post_id, user_id, parent_id, created_at, content)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		c.ID(), c.PostID(), c.AuthorID(), c.ParentID(), c.CreatedAt(), c.Content())
	if err != nil {
		return common.NewStorageError("insert comment", err)
	}
	return nil
}

// Update overwrites the content of the row with the comment's id. Placement
// in the thread (post, author, parent) is fixed at creation.
func (r *PostgresRepository) Update(ctx context.Context, c *models.Comment) error {
	res, err := r.db.ExecContext(ctx, `UPDATE comments SET content = $2 WHERE id = $1`, c.ID(), c.Content())
	if err != nil {
		return common.NewStorageError("update comment", err)
	}
	return checkOneRow("update comment", res)
}

// Delete removes the comment; replies to it go with it through the
// parent_id foreign key.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return common.NewStorageError("delete comment", err)
	}
	return checkOneRow("delete comment", res)
}

func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	c, err := scanComment(r.db.QueryRowContext(ctx, selectComment+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, common.NewStorageError("find comment by id", err)
	}
	return c, nil
}

func (r *PostgresRepository) FindByPostID(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	return r.findMany(ctx, "find comments by post", selectComment+` WHERE post_id = $1`+orderComments, postID)
}

func (r *PostgresRepository) FindByAuthorID(ctx context.Context, authorID uuid.UUID) ([]*models.Comment, error) {
	return r.findMany(ctx, "find comments by author", selectComment+` WHERE user_id = $1`+orderComments, authorID)
}

// FindByParentID returns the direct replies to one comment.
func (r *PostgresRepository) FindByParentID(ctx context.Context, parentID uuid.UUID) ([]*models.Comment, error) {
	return r.findMany(ctx, "find comments by parent", selectComment+` WHERE parent_id = $1`+orderComments, parentID)
}

func (r *PostgresRepository) FindAll(ctx context.Context) ([]*models.Comment, error) {
	return r.findMany(ctx, "find comments", selectComment+orderComments)
}

func (r *PostgresRepository) findMany(ctx context.Context, op, query string, args ...any) ([]*models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewStorageError(op, err)
	}
	defer rows.Close()

	result := make([]*models.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, common.NewStorageError(op, err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewStorageError(op, err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanComment(s scanner) (*models.Comment, error) {
	var (
		id, postID, authorID uuid.UUID
		parentID             uuid.NullUUID
		createdAt            time.Time
		content              string
	)
	if err := s.Scan(&id, &postID, &authorID, &parentID, &createdAt, &content); err != nil {
		return nil, err
	}
	return models.RestoreComment(id, postID, authorID, parentID, createdAt.UTC(), content), nil
}

func checkOneRow(op string, res sql.Result) error {
	err := dbx.ExpectOneRow(res, common.ErrorNotFound)
	if err == nil || errors.Is(err, common.ErrorNotFound) {
		return err
	}
	return common.NewStorageError(op, err)
}
