package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avahidi/studytrack/internal/output"
	"github.com/avahidi/studytrack/internal/session"
)

// StartCmd begins a new study session.
type StartCmd struct {
	Subject  string `arg:"" optional:"" help:"Subject to track (falls back to defaults.subject)"`
	TimeZone string `help:"IANA timezone to stamp times in (overrides config)"`
}

// Run executes the start command
func (c *StartCmd) Run(globals *Globals) error {
	subject := strings.TrimSpace(c.Subject)
	if subject == "" {
		subject = strings.TrimSpace(globals.Config.Defaults.Subject)
	}
	if subject == "" {
		return outputErrorCommon(globals, "MISSING_SUBJECT", "no subject given",
			"pass a subject argument or set defaults.subject in the config")
	}

	existing, err := loadState(globals.Config.StatePath())
	if err != nil {
		return outputErrorCommon(globals, "STATE_UNREADABLE", fmt.Sprintf("cannot read session state: %s", err))
	}
	if existing != nil {
		hint := "stop or discard it first"
		if existing.Session.State == session.StateStopped {
			hint = "run 'studytrack reset' to clear it"
		}
		return outputErrorCommon(globals, "SESSION_EXISTS",
			fmt.Sprintf("a session for %q is already tracked (%s)", existing.Session.Subject, existing.Session.State), hint)
	}

	tzName := c.TimeZone
	if tzName == "" {
		tzName = globals.Config.Defaults.TimeZone
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return outputErrorCommon(globals, "BAD_TIMEZONE", fmt.Sprintf("unknown timezone %q", tzName))
	}

	tr := session.New(subject, loc)
	if err := tr.Start(); err != nil {
		return outputStateError(globals, err)
	}
	globals.Debug("started session subject=%s tz=%s", subject, tzName)

	if err := saveState(globals.Config.StatePath(), tr.Snapshot()); err != nil {
		return outputErrorCommon(globals, "STATE_UNWRITABLE", fmt.Sprintf("cannot persist session state: %s", err))
	}
	return emitTransition(globals, "start", tr)
}

// PauseCmd interrupts the running session.
type PauseCmd struct{}

// Run executes the pause command
func (c *PauseCmd) Run(globals *Globals) error {
	return runTransition(globals, "pause", (*session.Tracker).Pause)
}

// ResumeCmd continues a paused session.
type ResumeCmd struct{}

// Run executes the resume command
func (c *ResumeCmd) Run(globals *Globals) error {
	return runTransition(globals, "resume", (*session.Tracker).Resume)
}

// DiscardCmd abandons the active session without recording anything.
type DiscardCmd struct{}

// Run executes the discard command
func (c *DiscardCmd) Run(globals *Globals) error {
	tr, err := requireActiveTracker(globals)
	if err != nil {
		return err
	}
	if err := tr.Discard(); err != nil {
		return outputStateError(globals, err)
	}
	if err := removeState(globals.Config.StatePath()); err != nil {
		return outputErrorCommon(globals, "STATE_UNWRITABLE", fmt.Sprintf("cannot clear session state: %s", err))
	}
	return emitTransition(globals, "discard", tr)
}

// ResetCmd clears a stopped session that was kept with --no-save.
type ResetCmd struct{}

// Run executes the reset command
func (c *ResetCmd) Run(globals *Globals) error {
	tr, err := requireActiveTracker(globals)
	if err != nil {
		return err
	}
	if err := tr.Reset(); err != nil {
		return outputStateError(globals, err)
	}
	if err := removeState(globals.Config.StatePath()); err != nil {
		return outputErrorCommon(globals, "STATE_UNWRITABLE", fmt.Sprintf("cannot clear session state: %s", err))
	}
	return emitTransition(globals, "reset", tr)
}

// runTransition restores the active session, applies op and persists
// the result.
func runTransition(globals *Globals, op string, apply func(*session.Tracker) error) error {
	tr, err := requireActiveTracker(globals)
	if err != nil {
		return err
	}
	if err := apply(tr); err != nil {
		return outputStateError(globals, err)
	}
	globals.Debug("%s session subject=%s state=%s", op, tr.Subject(), tr.State())
	if err := saveState(globals.Config.StatePath(), tr.Snapshot()); err != nil {
		return outputErrorCommon(globals, "STATE_UNWRITABLE", fmt.Sprintf("cannot persist session state: %s", err))
	}
	return emitTransition(globals, op, tr)
}

// requireActiveTracker restores the persisted session or reports the
// absence of one.
func requireActiveTracker(globals *Globals) (*session.Tracker, error) {
	tr, err := loadActiveTracker(globals)
	if err != nil {
		return nil, outputErrorCommon(globals, "STATE_UNREADABLE", fmt.Sprintf("cannot restore session: %s", err))
	}
	if tr == nil {
		return nil, outputErrorCommon(globals, "NO_SESSION", "no active session", "run 'studytrack start' first")
	}
	return tr, nil
}

func outputStateError(globals *Globals, err error) error {
	var stateErr *session.StateError
	if errors.As(err, &stateErr) {
		return outputErrorCommon(globals, "INVALID_STATE", stateErr.Error())
	}
	return outputErrorCommon(globals, "SESSION_ERROR", err.Error())
}

func emitTransition(globals *Globals, op string, tr *session.Tracker) error {
	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteTransition(op, tr.Snapshot(), time.Now())
	}
	if globals.Quiet {
		return nil
	}
	_, err := fmt.Fprintf(globals.Stdout, "%s: %q is now %s\n", op, tr.Subject(), tr.State())
	return err
}
