package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/forumdesign/internal/forum/export"
	"github.com/dmitrijs2005/forumdesign/internal/validate"
)

func (a *App) thread(ctx context.Context, args []string) error {
	if err := a.argCount("thread", args, 1, 1); err != nil {
		return err
	}
	postID, err := validate.ID("post_id", args[0])
	if err != nil {
		return err
	}

	forest, err := a.service.Thread(ctx, postID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(forest)
}

// export writes to the given path, or uploads to the configured bucket when
// no path is given.
func (a *App) export(ctx context.Context, args []string) error {
	if err := a.argCount("export", args, 0, 1); err != nil {
		return err
	}

	var w export.Writer = export.NewS3Uploader(a.s3)
	if len(args) == 1 {
		w = export.NewFileWriter(args[0])
	}

	loc, err := a.service.Export(ctx, w)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Snapshot written to %s\n", loc)
	return nil
}
