package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/forumdesign/internal/validate"
	"github.com/google/uuid"
)

func (a *App) commentAdd(ctx context.Context, args []string) error {
	if err := a.argCount("comment add", args, 3, 4); err != nil {
		return err
	}
	postID, err := validate.ID("post_id", args[0])
	if err != nil {
		return err
	}
	authorID, err := validate.ID("user_id", args[1])
	if err != nil {
		return err
	}

	var parentArg any
	if len(args) == 4 {
		parentArg = args[3]
	}
	parent, err := validate.OptionalID("parent_id", parentArg)
	if err != nil {
		return err
	}
	var parentID *uuid.UUID
	if parent.Valid {
		parentID = &parent.UUID
	}

	c, err := a.service.AddComment(ctx, postID, authorID, parentID, args[2])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Comment %s added\n", c.ID())
	return nil
}

func (a *App) commentList(ctx context.Context, args []string) error {
	if err := a.argCount("comment list", args, 1, 1); err != nil {
		return err
	}
	postID, err := validate.ID("post_id", args[0])
	if err != nil {
		return err
	}

	comments, err := a.service.Comments(ctx, postID)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(comments))
	for _, c := range comments {
		parent := "-"
		if c.ParentID().Valid {
			parent = c.ParentID().UUID.String()
		}
		rows = append(rows, []string{
			c.ID().String(),
			c.AuthorID().String(),
			parent,
			yesNo(c.IsTopLevel()),
			c.CreatedAt().Format("2006-01-02 15:04:05"),
			shorten(c.Content(), 40),
		})
	}
	renderTable(a.out, []string{"ID", "Author", "Parent", "Top", "Created", "Content"}, rows)
	return nil
}

func (a *App) commentEdit(ctx context.Context, args []string) error {
	if err := a.argCount("comment edit", args, 2, 2); err != nil {
		return err
	}
	id, err := validate.ID("comment_id", args[0])
	if err != nil {
		return err
	}
	if _, err := a.service.EditComment(ctx, id, args[1]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Comment %s updated\n", id)
	return nil
}

func (a *App) commentDelete(ctx context.Context, args []string) error {
	if err := a.argCount("comment delete", args, 1, 1); err != nil {
		return err
	}
	id, err := validate.ID("comment_id", args[0])
	if err != nil {
		return err
	}
	if err := a.service.DeleteComment(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Comment %s deleted\n", id)
	return nil
}
