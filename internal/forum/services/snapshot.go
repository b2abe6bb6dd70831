package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/forumdesign/internal/dbx"
	"github.com/dmitrijs2005/forumdesign/internal/forum/export"
	"github.com/dmitrijs2005/forumdesign/internal/forum/models"
)

// Snapshot reads all users, posts and comments in one read-only transaction.
func (s *ForumService) Snapshot(ctx context.Context) (*export.Snapshot, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		users    []*models.User
		posts    []*models.Post
		comments []*models.Comment
	)
	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	err := dbx.WithTx(ctx, s.db, opts, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		if users, err = s.repomanager.Users(tx).FindAll(ctx); err != nil {
			return err
		}
		if posts, err = s.repomanager.Posts(tx).FindAll(ctx); err != nil {
			return err
		}
		comments, err = s.repomanager.Comments(tx).FindAll(ctx)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "snapshot", err)
	}

	return export.NewSnapshot(time.Now(), users, posts, comments), nil
}

// Export takes a snapshot and hands it to w.
func (s *ForumService) Export(ctx context.Context, w export.Writer) (string, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return "", err
	}
	loc, err := w.Write(ctx, snap)
	if err != nil {
		s.logger.Error(ctx, "export failed", "error", err)
		return "", err
	}
	s.logger.Info(ctx, "snapshot exported", "location", loc,
		"users", len(snap.Users), "posts", len(snap.Posts), "comments", len(snap.Comments))
	return loc, nil
}
