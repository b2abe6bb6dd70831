// Package forum wires the forumctl application: configuration, logging, the
// PostgreSQL connection, repositories, the forum service and the CLI.
package forum

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/forumdesign/internal/flagx"
	"github.com/dmitrijs2005/forumdesign/internal/forum/cli"
	"github.com/dmitrijs2005/forumdesign/internal/forum/config"
	"github.com/dmitrijs2005/forumdesign/internal/forum/repositories/repomanager"
	"github.com/dmitrijs2005/forumdesign/internal/forum/services"
	"github.com/dmitrijs2005/forumdesign/internal/logging"
)

// openDB is a test seam for sql.Open.
var openDB = sql.Open

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cli         *cli.App
}

// NewApp opens the database handle and builds the service graph. The
// connection itself is established lazily by the first query.
func NewApp(c *config.Config, out, logOut io.Writer) (*App, error) {
	logger := logging.NewJSONLogger(logOut, c.LogLevel)

	db, err := openDB("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	svc := services.NewForumService(db, m, logger, c.QueryTimeout)

	app := &App{config: c, logger: logger, db: db, repomanager: m}
	app.cli = cli.NewApp(svc, app.migrate, c.S3(), out)
	return app, nil
}

func (app *App) migrate(ctx context.Context) error {
	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		app.logger.Error(ctx, "migrations failed", "error", err)
		return err
	}
	app.logger.Info(ctx, "migrations applied")
	return nil
}

// Run executes the command found in args (normally os.Args[1:]). SIGINT and
// SIGTERM cancel the running command.
func (app *App) Run(ctx context.Context, args []string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer app.db.Close()

	if app.config.MigrateOnStart {
		if err := app.migrate(ctx); err != nil {
			return err
		}
	}

	words := flagx.Positional(args, config.ValuedFlags)
	app.logger.Debug(ctx, "running command", "words", words)
	return app.cli.Run(ctx, words)
}
