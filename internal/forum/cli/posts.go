package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/forumdesign/internal/forum/models"
	"github.com/dmitrijs2005/forumdesign/internal/validate"
)

func (a *App) postAdd(ctx context.Context, args []string) error {
	if err := a.argCount("post add", args, 2, 3); err != nil {
		return err
	}
	authorID, err := validate.ID("user_id", args[0])
	if err != nil {
		return err
	}

	var content string
	if len(args) == 3 {
		content = args[2]
	} else if content, err = GetMultiline(a.reader, "Enter post content", a.out); err != nil {
		return err
	}

	p, err := a.service.CreatePost(ctx, authorID, args[1], content)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Post %s created\n", p.ID())
	return nil
}

func (a *App) postList(ctx context.Context, args []string) error {
	if err := a.argCount("post list", args, 0, 1); err != nil {
		return err
	}

	var authorArg any
	if len(args) == 1 {
		authorArg = args[0]
	}
	author, err := validate.OptionalID("user_id", authorArg)
	if err != nil {
		return err
	}

	posts, err := a.service.Posts(ctx, author)
	if err != nil {
		return err
	}
	a.printPosts(posts)
	return nil
}

func (a *App) printPosts(posts []*models.Post) {
	rows := make([][]string, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, []string{
			p.ID().String(),
			p.AuthorID().String(),
			p.CreatedAt().Format("2006-01-02 15:04:05"),
			shorten(p.Title(), 40),
		})
	}
	renderTable(a.out, []string{"ID", "Author", "Created", "Title"}, rows)
}

func (a *App) postEdit(ctx context.Context, args []string) error {
	if err := a.argCount("post edit", args, 3, 3); err != nil {
		return err
	}
	id, err := validate.ID("post_id", args[0])
	if err != nil {
		return err
	}
	if _, err := a.service.EditPost(ctx, id, args[1], args[2]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Post %s updated\n", id)
	return nil
}

func (a *App) postDelete(ctx context.Context, args []string) error {
	if err := a.argCount("post delete", args, 1, 1); err != nil {
		return err
	}
	id, err := validate.ID("post_id", args[0])
	if err != nil {
		return err
	}
	if err := a.service.DeletePost(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Post %s deleted\n", id)
	return nil
}
