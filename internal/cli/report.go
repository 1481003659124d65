package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/avahidi/studytrack/internal/output"
	"github.com/avahidi/studytrack/internal/session"
	"github.com/avahidi/studytrack/internal/store"
)

// ReportCmd shows accumulated totals per subject.
type ReportCmd struct {
	Subject string `arg:"" optional:"" help:"Limit the report to one subject"`
}

// Run executes the report command
func (c *ReportCmd) Run(globals *Globals) error {
	db, err := openStore(globals)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	var records []store.Record
	if c.Subject != "" {
		rec, err := db.Get(ctx, c.Subject)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return outputErrorCommon(globals, "NOT_FOUND", fmt.Sprintf("subject %q has no recorded time", c.Subject))
			}
			return outputErrorCommon(globals, "STORE_ERROR", err.Error())
		}
		records = []store.Record{rec}
	} else {
		records, err = db.List(ctx)
		if err != nil {
			return outputErrorCommon(globals, "STORE_ERROR", err.Error())
		}
	}

	rows := lo.Map(records, func(rec store.Record, _ int) output.ReportRow {
		return output.ReportRow{
			Subject:      rec.Subject,
			TotalSeconds: rec.TotalSeconds,
			Total:        session.FormatDuration(rec.TotalSeconds),
		}
	})
	grandTotal := lo.SumBy(records, func(rec store.Record) float64 { return rec.TotalSeconds })

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteReport(rows, grandTotal)
	}

	if len(rows) == 0 {
		_, err := fmt.Fprintln(globals.Stdout, "No recorded sessions yet.")
		return err
	}

	table := tablewriter.NewWriter(globals.Stdout)
	table.Header("Subject", "Total")
	for _, row := range rows {
		if err := table.Append(row.Subject, row.Total); err != nil {
			return err
		}
	}
	if len(rows) > 1 {
		if err := table.Append("ALL", session.FormatDuration(grandTotal)); err != nil {
			return err
		}
	}
	return table.Render()
}

// openStore opens the totals database, creating the data directory on
// first use.
func openStore(globals *Globals) (*store.Store, error) {
	if err := os.MkdirAll(globals.Config.Defaults.DataDir, 0o755); err != nil {
		return nil, outputErrorCommon(globals, "STORE_ERROR", fmt.Sprintf("create data directory: %s", err))
	}
	db, err := store.Open(globals.Config.DBPath())
	if err != nil {
		return nil, outputErrorCommon(globals, "STORE_ERROR", err.Error())
	}
	return db, nil
}
