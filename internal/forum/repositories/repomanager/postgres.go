// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and the forum schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/forumdesign/internal/dbx"
	"github.com/dmitrijs2005/forumdesign/internal/forum/migrations"
	"github.com/dmitrijs2005/forumdesign/internal/forum/repositories/comments"
	"github.com/dmitrijs2005/forumdesign/internal/forum/repositories/posts"
	"github.com/dmitrijs2005/forumdesign/internal/forum/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Posts(db dbx.DBTX) posts.Repository {
	return posts.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Comments(db dbx.DBTX) comments.Repository {
	return comments.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations that are not yet recorded
// in the goose version table.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
