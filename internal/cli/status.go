package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/avahidi/studytrack/internal/output"
	"github.com/avahidi/studytrack/internal/session"
)

// StatusCmd shows the active session and its derived durations.
type StatusCmd struct{}

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Width(10)
	stateColor = map[session.State]lipgloss.Style{
		session.StateRunning: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		session.StatePaused:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		session.StateStopped: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
)

// Run executes the status command
func (c *StatusCmd) Run(globals *Globals) error {
	tr, err := loadActiveTracker(globals)
	if err != nil {
		return outputErrorCommon(globals, "STATE_UNREADABLE", fmt.Sprintf("cannot restore session: %s", err))
	}

	if tr == nil {
		if globals.Format == "ndjson" {
			return output.NewNDJSONWriter(globals.Stdout).WriteStatus(&output.Status{
				State:    session.StateInactive,
				TimeZone: globals.Config.Defaults.TimeZone,
			})
		}
		_, err := fmt.Fprintln(globals.Stdout, "No active session.")
		return err
	}

	total, err := tr.TotalDuration()
	if err != nil {
		return outputStateError(globals, err)
	}
	paused, err := tr.CumulativePauseDuration()
	if err != nil {
		return outputStateError(globals, err)
	}
	active, err := tr.ActiveDuration()
	if err != nil {
		return outputStateError(globals, err)
	}

	snap := tr.Snapshot()
	if globals.Format == "ndjson" {
		st := &output.Status{
			Subject:       snap.Subject,
			State:         snap.State,
			TimeZone:      snap.TimeZone,
			Pauses:        len(snap.Pauses),
			TotalSeconds:  total,
			PausedSeconds: paused,
			ActiveSeconds: active,
		}
		if snap.StartedAt != nil {
			st.StartedAt = snap.StartedAt.Format(time.RFC3339)
		}
		if snap.StoppedAt != nil {
			st.StoppedAt = snap.StoppedAt.Format(time.RFC3339)
		}
		return output.NewNDJSONWriter(globals.Stdout).WriteStatus(st)
	}

	styled := stdoutIsTTY(globals)
	line := func(label, value string) {
		if styled {
			fmt.Fprintf(globals.Stdout, "%s %s\n", labelStyle.Render(label), value)
			return
		}
		fmt.Fprintf(globals.Stdout, "%-10s %s\n", label, value)
	}

	state := string(snap.State)
	if styled {
		if style, ok := stateColor[snap.State]; ok {
			state = style.Render(state)
		}
	}

	line("Subject", snap.Subject)
	line("State", state)
	line("Timezone", snap.TimeZone)
	if snap.StartedAt != nil {
		line("Started", snap.StartedAt.Format("2006-01-02 15:04:05 MST"))
	}
	if snap.StoppedAt != nil {
		line("Stopped", snap.StoppedAt.Format("2006-01-02 15:04:05 MST"))
	}
	line("Pauses", fmt.Sprintf("%d", len(snap.Pauses)))
	line("Total", session.FormatDuration(total))
	line("Paused", session.FormatDuration(paused))
	line("Active", session.FormatDuration(active))
	return nil
}

func stdoutIsTTY(globals *Globals) bool {
	f, ok := globals.Stdout.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
