package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/avahidi/studytrack/internal/journal"
	"github.com/avahidi/studytrack/internal/output"
	"github.com/avahidi/studytrack/internal/session"
	"github.com/avahidi/studytrack/internal/store"
)

// StopCmd ends the active session and records it.
type StopCmd struct {
	NoSave bool `help:"Stop without recording; leaves the stopped session for 'reset'"`
}

// Run executes the stop command
func (c *StopCmd) Run(globals *Globals) error {
	tr, err := requireActiveTracker(globals)
	if err != nil {
		return err
	}
	if err := tr.Stop(); err != nil {
		return outputStateError(globals, err)
	}

	if c.NoSave {
		if err := saveState(globals.Config.StatePath(), tr.Snapshot()); err != nil {
			return outputErrorCommon(globals, "STATE_UNWRITABLE", fmt.Sprintf("cannot persist session state: %s", err))
		}
		return emitTransition(globals, "stop", tr)
	}

	rec, err := recordSession(globals, tr)
	if err != nil {
		// Keep the stopped session around so nothing is lost.
		_ = saveState(globals.Config.StatePath(), tr.Snapshot())
		return outputErrorCommon(globals, "RECORD_FAILED", fmt.Sprintf("cannot record session: %s", err),
			"the stopped session was kept in the state file; clear it with 'studytrack reset'")
	}
	if err := tr.Reset(); err != nil {
		return outputStateError(globals, err)
	}
	if err := removeState(globals.Config.StatePath()); err != nil {
		return outputErrorCommon(globals, "STATE_UNWRITABLE", fmt.Sprintf("cannot clear session state: %s", err))
	}

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteSessionRecord(rec)
	}
	if globals.Quiet {
		return nil
	}
	_, err = fmt.Fprintf(globals.Stdout, "stop: recorded %s active for %q (accumulated %s)\n",
		session.FormatDuration(rec.ActiveSeconds), rec.Subject, session.FormatDuration(rec.TotalSeconds))
	return err
}

// recordSession adds a stopped session's active time to the totals
// database and appends the CSV journal row. It does not reset the
// tracker; the caller decides what happens to the session afterwards.
func recordSession(globals *Globals, tr *session.Tracker) (*output.SessionRecord, error) {
	if tr.State() != session.StateStopped {
		return nil, fmt.Errorf("session must be stopped, is %s", tr.State())
	}
	active, err := tr.ActiveDuration()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(globals.Config.Defaults.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	db, err := store.Open(globals.Config.DBPath())
	if err != nil {
		return nil, err
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.RecordSession(ctx, tr.Subject(), active); err != nil {
		return nil, err
	}
	total, err := db.Get(ctx, tr.Subject())
	if err != nil {
		return nil, err
	}

	j := journal.New(globals.Config.Defaults.CSVDir)
	if err := j.Append(tr); err != nil {
		return nil, err
	}
	started, _ := tr.StartedAt()
	globals.Debug("recorded session subject=%s active=%.4fs total=%.4fs", tr.Subject(), active, total.TotalSeconds)

	return &output.SessionRecord{
		Subject:       tr.Subject(),
		ActiveSeconds: active,
		TotalSeconds:  total.TotalSeconds,
		JournalPath:   j.Path(started),
	}, nil
}
