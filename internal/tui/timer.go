// Package tui renders a live timer for the active study session.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avahidi/studytrack/internal/session"
)

const tickInterval = 100 * time.Millisecond

type keyMap struct {
	Pause  key.Binding
	Resume key.Binding
	Stop   key.Binding
	Quit   key.Binding
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Resume, k.Stop, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Pause:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Resume: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "resume")),
		Stop:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	labelStyle  = lipgloss.NewStyle().Faint(true).Width(8)
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	stateStyles = map[session.State]lipgloss.Style{
		session.StateRunning: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		session.StatePaused:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		session.StateStopped: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
)

type tickMsg time.Time

// Model drives the live timer view over one tracker.
type Model struct {
	tracker *session.Tracker
	keys    keyMap
	help    help.Model
}

// New creates a timer model for a started tracker.
func New(tr *session.Tracker) Model {
	return Model{
		tracker: tr,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
}

// Tracker exposes the (possibly transitioned) tracker after the
// program exits.
func (m Model) Tracker() *session.Tracker { return m.tracker }

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.tracker.State() == session.StateStopped {
			return m, nil
		}
		return m, tick()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Pause):
			// Ignored unless running; the view keeps showing the
			// actual state.
			_ = m.tracker.Pause()
		case key.Matches(msg, m.keys.Resume):
			_ = m.tracker.Resume()
		case key.Matches(msg, m.keys.Stop):
			if err := m.tracker.Stop(); err == nil {
				return m, tea.Quit
			}
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	state := m.tracker.State()
	stateText := string(state)
	if style, ok := stateStyles[state]; ok {
		stateText = style.Render(stateText)
	}

	total, err := m.tracker.TotalDuration()
	if err != nil {
		return "no session\n"
	}
	paused, _ := m.tracker.CumulativePauseDuration()
	active, _ := m.tracker.ActiveDuration()

	s := titleStyle.Render(fmt.Sprintf("studytrack — %s", m.tracker.Subject())) + "\n\n"
	s += fmt.Sprintf("%s %s\n", labelStyle.Render("state"), stateText)
	s += fmt.Sprintf("%s %s\n", labelStyle.Render("total"), session.FormatDuration(total))
	s += fmt.Sprintf("%s %s\n", labelStyle.Render("paused"), session.FormatDuration(paused))
	s += fmt.Sprintf("%s %s\n", labelStyle.Render("active"), activeStyle.Render(session.FormatDuration(active)))
	s += "\n" + m.help.View(m.keys) + "\n"
	return s
}
