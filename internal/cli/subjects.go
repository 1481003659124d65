package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/avahidi/studytrack/internal/store"
)

// RenameCmd renames a subject in the totals database.
type RenameCmd struct {
	Old string `arg:"" help:"Current subject name"`
	New string `arg:"" help:"New subject name"`
}

// Run executes the rename command
func (c *RenameCmd) Run(globals *Globals) error {
	db, err := openStore(globals)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Rename(context.Background(), c.Old, c.New); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return outputErrorCommon(globals, "NOT_FOUND", fmt.Sprintf("subject %q has no recorded time", c.Old))
		case errors.Is(err, store.ErrAlreadyExists):
			return outputErrorCommon(globals, "ALREADY_EXISTS", fmt.Sprintf("subject %q already exists", c.New))
		}
		return outputErrorCommon(globals, "STORE_ERROR", err.Error())
	}
	if !globals.Quiet && globals.Format != "ndjson" {
		fmt.Fprintf(globals.Stdout, "rename: %q is now %q\n", c.Old, c.New)
	}
	return nil
}

// DeleteCmd removes a subject from the totals database.
type DeleteCmd struct {
	Subject string `arg:"" help:"Subject to delete"`
}

// Run executes the delete command
func (c *DeleteCmd) Run(globals *Globals) error {
	db, err := openStore(globals)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Delete(context.Background(), c.Subject); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return outputErrorCommon(globals, "NOT_FOUND", fmt.Sprintf("subject %q has no recorded time", c.Subject))
		}
		return outputErrorCommon(globals, "STORE_ERROR", err.Error())
	}
	if !globals.Quiet && globals.Format != "ndjson" {
		fmt.Fprintf(globals.Stdout, "delete: removed %q\n", c.Subject)
	}
	return nil
}

// ClearCmd removes every subject from the totals database.
type ClearCmd struct {
	Force bool `help:"Required; clearing is irreversible"`
}

// Run executes the clear command
func (c *ClearCmd) Run(globals *Globals) error {
	if !c.Force {
		return outputErrorCommon(globals, "CONFIRM_REQUIRED", "clearing deletes every recorded total", "rerun with --force")
	}
	db, err := openStore(globals)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.DeleteAll(context.Background()); err != nil {
		return outputErrorCommon(globals, "STORE_ERROR", err.Error())
	}
	if !globals.Quiet && globals.Format != "ndjson" {
		fmt.Fprintln(globals.Stdout, "clear: removed all recorded totals")
	}
	return nil
}
