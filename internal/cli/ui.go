package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avahidi/studytrack/internal/session"
	"github.com/avahidi/studytrack/internal/tui"
)

// UICmd runs an interactive live timer for the active session.
type UICmd struct {
	NoSave bool `help:"When stopped from the timer, keep the session for 'reset' instead of recording it"`
}

// Run executes the ui command
func (c *UICmd) Run(globals *Globals) error {
	if globals.Format == "ndjson" {
		return outputErrorCommon(globals, "INVALID_FLAGS", "the live timer has no ndjson mode", "drop --format ndjson")
	}

	tr, err := requireActiveTracker(globals)
	if err != nil {
		return err
	}

	model := tui.New(tr)
	p := tea.NewProgram(model)
	final, err := p.Run()
	if err != nil {
		return outputErrorCommon(globals, "UI_ERROR", fmt.Sprintf("timer failed: %s", err))
	}

	m, ok := final.(tui.Model)
	if !ok {
		return outputErrorCommon(globals, "UI_ERROR", "timer returned an unexpected model")
	}
	tr = m.Tracker()

	// Persist whatever the timer left behind.
	if tr.State() == session.StateStopped && !c.NoSave {
		rec, err := recordSession(globals, tr)
		if err != nil {
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
		if globals.Quiet {
			return nil
		}
		_, err = fmt.Fprintf(globals.Stdout, "stop: recorded %s active for %q (accumulated %s)\n",
			session.FormatDuration(rec.ActiveSeconds), rec.Subject, session.FormatDuration(rec.TotalSeconds))
		return err
	}

	if err := saveState(globals.Config.StatePath(), tr.Snapshot()); err != nil {
		return outputErrorCommon(globals, "STATE_UNWRITABLE", fmt.Sprintf("cannot persist session state: %s", err))
	}
	return emitTransition(globals, "ui", tr)
}
