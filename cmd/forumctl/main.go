package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/forumdesign/internal/forum"
	"github.com/dmitrijs2005/forumdesign/internal/forum/cli"
	"github.com/dmitrijs2005/forumdesign/internal/forum/config"
)

func main() {

	cfg := config.LoadConfig()
	app, err := forum.NewApp(cfg, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := app.Run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if errors.Is(err, cli.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}

}
