package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/forumdesign/internal/validate"
)

func (a *App) userAdd(ctx context.Context, args []string) error {
	if err := a.argCount("user add", args, 2, 2); err != nil {
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	u, err := a.service.RegisterUser(ctx, args[0], args[1], password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "User %s registered\n", u.ID())
	return nil
}

func (a *App) userList(ctx context.Context, args []string) error {
	if err := a.argCount("user list", args, 0, 0); err != nil {
		return err
	}

	users, err := a.service.Users(ctx)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.ID().String(), u.Email(), u.Name()})
	}
	renderTable(a.out, []string{"ID", "Email", "Name"}, rows)
	return nil
}

func (a *App) userDelete(ctx context.Context, args []string) error {
	if err := a.argCount("user delete", args, 1, 1); err != nil {
		return err
	}
	id, err := validate.ID("user_id", args[0])
	if err != nil {
		return err
	}
	if err := a.service.DeleteUser(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "User %s deleted\n", id)
	return nil
}
