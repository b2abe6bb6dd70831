package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/forumdesign/internal/forum/export"
	"github.com/dmitrijs2005/forumdesign/internal/forum/models"
	"github.com/dmitrijs2005/forumdesign/internal/forum/services"
	"github.com/google/uuid"
)

// ErrUsage is returned for an unknown command or wrong arguments.
var ErrUsage = errors.New("usage")

const usage = `Usage: forumctl [flags] <command> [args]

Commands:
  migrate                                         apply schema migrations
  user add <email> <name>                         register a user (prompts for password)
  user list                                       list users
  user delete <userID>                            delete a user with their posts and comments
  post add <authorID> <title> [content]           create a post (reads content when omitted)
  post list [authorID]                            list posts
  post edit <postID> <title> <content>            replace title and content
  post delete <postID>                            delete a post with its comments
  comment add <postID> <authorID> <content> [parentID]
  comment list <postID>                           list comments on a post
  comment edit <commentID> <content>              replace content
  comment delete <commentID>                      delete a comment with its replies
  thread <postID>                                 print the comment tree as JSON
  export [path]                                   write a JSON snapshot to path, or to S3`

// ForumService is the part of services.ForumService the commands use.
type ForumService interface {
	RegisterUser(ctx context.Context, email, name string, password []byte) (*models.User, error)
	Users(ctx context.Context) ([]*models.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	CreatePost(ctx context.Context, authorID uuid.UUID, title, content string) (*models.Post, error)
	EditPost(ctx context.Context, id uuid.UUID, title, content string) (*models.Post, error)
	DeletePost(ctx context.Context, id uuid.UUID) error
	Posts(ctx context.Context, authorID uuid.NullUUID) ([]*models.Post, error)
	AddComment(ctx context.Context, postID, authorID uuid.UUID, parentID *uuid.UUID, content string) (*models.Comment, error)
	EditComment(ctx context.Context, id uuid.UUID, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, id uuid.UUID) error
	Comments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error)
	Thread(ctx context.Context, postID uuid.UUID) ([]*services.ThreadNode, error)
	Export(ctx context.Context, w export.Writer) (string, error)
}

type App struct {
	service ForumService
	migrate func(ctx context.Context) error
	s3      export.S3Config
	out     io.Writer
	reader  *bufio.Reader
}

func NewApp(svc ForumService, migrate func(ctx context.Context) error, s3 export.S3Config, out io.Writer) *App {
	return &App{
		service: svc,
		migrate: migrate,
		s3:      s3,
		out:     out,
		reader:  bufio.NewReader(os.Stdin),
	}
}

// Run executes the command named by words.
func (a *App) Run(ctx context.Context, words []string) error {
	if len(words) == 0 {
		return a.usageError("")
	}

	cmd, args := words[0], words[1:]
	switch cmd {
	case "help":
		fmt.Fprintln(a.out, usage)
		return nil
	case "migrate":
		if err := a.migrate(ctx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		fmt.Fprintln(a.out, "Migrations applied")
		return nil
	case "user", "post", "comment":
		if len(args) == 0 {
			return a.usageError(cmd + " needs a subcommand")
		}
		return a.runEntity(ctx, cmd, args[0], args[1:])
	case "thread":
		return a.thread(ctx, args)
	case "export":
		return a.export(ctx, args)
	default:
		return a.usageError("unknown command: " + cmd)
	}
}

func (a *App) runEntity(ctx context.Context, entity, sub string, args []string) error {
	handlers := map[string]map[string]func(context.Context, []string) error{
		"user": {
			"add":    a.userAdd,
			"list":   a.userList,
			"delete": a.userDelete,
		},
		"post": {
			"add":    a.postAdd,
			"list":   a.postList,
			"edit":   a.postEdit,
			"delete": a.postDelete,
		},
		"comment": {
			"add":    a.commentAdd,
			"list":   a.commentList,
			"edit":   a.commentEdit,
			"delete": a.commentDelete,
		},
	}

	h, ok := handlers[entity][sub]
	if !ok {
		return a.usageError(fmt.Sprintf("unknown command: %s %s", entity, sub))
	}
	return h(ctx, args)
}

func (a *App) usageError(msg string) error {
	fmt.Fprintln(a.out, usage)
	if msg == "" {
		return ErrUsage
	}
	return fmt.Errorf("%w: %s", ErrUsage, msg)
}

// argCount checks that args holds between lo and hi words.
func (a *App) argCount(cmd string, args []string, lo, hi int) error {
	if len(args) < lo || len(args) > hi {
		return a.usageError(fmt.Sprintf("%s: wrong number of arguments", cmd))
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func shorten(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
