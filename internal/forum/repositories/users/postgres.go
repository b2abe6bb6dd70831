// Package users provides the PostgreSQL-backed user repository.
package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/forumdesign/internal/common"
	"github.com/dmitrijs2005/forumdesign/internal/dbx"
	"github.com/dmitrijs2005/forumdesign/internal/forum/models"
	"github.com/google/uuid"
)

const selectUser = `SELECT id, email, hash, salt, name FROM users`

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (id, email, hash, salt, name)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID(), user.Email(), user.Hash(), user.Salt(), user.Name())
	if err != nil {
		return common.NewStorageError("insert user", err)
	}
	return nil
}

// Update overwrites email, hash, salt and name of the row with the user's id.
func (r *PostgresRepository) Update(ctx context.Context, user *models.User) error {
	query := `UPDATE users SET email = $2, hash = $3, salt = $4, name = $5
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		user.ID(), user.Email(), user.Hash(), user.Salt(), user.Name())
	if err != nil {
		return common.NewStorageError("update user", err)
	}
	if err := dbx.ExpectOneRow(res, common.ErrorNotFound); err != nil {
		return wrapRowsErr("update user", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return common.NewStorageError("delete user", err)
	}
	if err := dbx.ExpectOneRow(res, common.ErrorNotFound); err != nil {
		return wrapRowsErr("delete user", err)
	}
	return nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.findOne(ctx, "find user by id", selectUser+` WHERE id = $1`, id)
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "find user by email", selectUser+` WHERE email = $1`, email)
}

// FindAll returns every user ordered by name, then id.
func (r *PostgresRepository) FindAll(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx, selectUser+` ORDER BY name, id`)
	if err != nil {
		return nil, common.NewStorageError("find users", err)
	}
	defer rows.Close()

	result := make([]*models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, common.NewStorageError("find users", err)
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewStorageError("find users", err)
	}
	return result, nil
}

func (r *PostgresRepository) findOne(ctx context.Context, op, query string, arg any) (*models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, common.NewStorageError(op, err)
	}
	return user, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*models.User, error) {
	var (
		id                      uuid.UUID
		email, hash, salt, name string
	)
	if err := s.Scan(&id, &email, &hash, &salt, &name); err != nil {
		return nil, err
	}
	return models.RestoreUser(id, email, hash, salt, name), nil
}

func wrapRowsErr(op string, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return err
	}
	return common.NewStorageError(op, err)
}
