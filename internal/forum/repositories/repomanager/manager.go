package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/forumdesign/internal/dbx"
	"github.com/dmitrijs2005/forumdesign/internal/forum/repositories/comments"
	"github.com/dmitrijs2005/forumdesign/internal/forum/repositories/posts"
	"github.com/dmitrijs2005/forumdesign/internal/forum/repositories/users"
)

// RepositoryManager vends repositories bound to a connection or transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Posts(db dbx.DBTX) posts.Repository
	Comments(db dbx.DBTX) comments.Repository
}
