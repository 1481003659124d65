// Package session implements the study session tracker: a small state
// machine over timezone-aware timestamps plus the duration arithmetic
// derived from them.
package session

import (
	"time"

	"github.com/benbjohnson/clock"
)

// State identifies the lifecycle phase of a Tracker. It is the single
// source of truth for which operations are legal.
type State string

const (
	StateInactive State = "INACTIVE"
	StateRunning  State = "RUNNING"
	StatePaused   State = "PAUSED"
	StateStopped  State = "STOPPED"
)

// PausePair records one interruption interval within a session. A zero
// ResumedAt marks a pause still in effect.
type PausePair struct {
	PausedAt  time.Time
	ResumedAt time.Time
}

// Resolved reports whether the pause has a recorded resume time.
func (p PausePair) Resolved() bool { return !p.ResumedAt.IsZero() }

// Tracker records start, pause, resume and stop events for one study
// session and answers duration queries over them.
//
// A Tracker is not safe for concurrent use. Callers sharing one across
// goroutines must serialize the whole transition-plus-query surface
// with their own mutex.
type Tracker struct {
	clk     clock.Clock
	subject string
	loc     *time.Location

	state   State
	startAt time.Time
	stopAt  time.Time
	pauses  []PausePair
}

// New creates an inactive tracker whose timestamps are taken in loc.
// A nil loc falls back to the system timezone.
func New(subject string, loc *time.Location) *Tracker {
	return NewWithClock(subject, loc, clock.New())
}

// NewWithClock is New with an injected time source.
func NewWithClock(subject string, loc *time.Location, clk clock.Clock) *Tracker {
	if loc == nil {
		loc = time.Local
	}
	return &Tracker{
		clk:     clk,
		subject: subject,
		loc:     loc,
		state:   StateInactive,
	}
}

func (t *Tracker) now() time.Time {
	return t.clk.Now().In(t.loc)
}

// Subject returns the tracked activity label.
func (t *Tracker) Subject() string { return t.subject }

// SetSubject renames the tracked activity. Legal in any state.
func (t *Tracker) SetSubject(subject string) { t.subject = subject }

// State returns the current lifecycle phase.
func (t *Tracker) State() State { return t.state }

// Location returns the timezone timestamps are taken in.
func (t *Tracker) Location() *time.Location { return t.loc }

// SetTimeZone changes the timezone used to stamp times. Only legal
// while the tracker is inactive.
func (t *Tracker) SetTimeZone(loc *time.Location) error {
	if t.state != StateInactive {
		return &StateError{Op: "set timezone", State: t.state}
	}
	if loc == nil {
		loc = time.Local
	}
	t.loc = loc
	return nil
}

// StartedAt returns the session start time, with ok false while the
// tracker is inactive.
func (t *Tracker) StartedAt() (started time.Time, ok bool) {
	return t.startAt, !t.startAt.IsZero()
}

// StoppedAt returns the session stop time, with ok false unless the
// tracker is stopped.
func (t *Tracker) StoppedAt() (stopped time.Time, ok bool) {
	return t.stopAt, !t.stopAt.IsZero()
}

// Pauses returns a copy of the recorded pause/resume pairs in append
// order.
func (t *Tracker) Pauses() []PausePair {
	out := make([]PausePair, len(t.pauses))
	copy(out, t.pauses)
	return out
}

// Start begins tracking. Legal only while inactive.
func (t *Tracker) Start() error {
	if t.state != StateInactive {
		return &StateError{Op: "start", State: t.state}
	}
	t.startAt = t.now()
	t.state = StateRunning
	return nil
}

// Pause interrupts a running session, opening a new pause pair.
func (t *Tracker) Pause() error {
	if t.state != StateRunning {
		return &StateError{Op: "pause", State: t.state}
	}
	t.pauses = append(t.pauses, PausePair{PausedAt: t.now()})
	t.state = StatePaused
	return nil
}

// Resume closes the open pause pair and continues the session.
func (t *Tracker) Resume() error {
	if t.state != StatePaused {
		return &StateError{Op: "resume", State: t.state}
	}
	t.pauses[len(t.pauses)-1].ResumedAt = t.now()
	t.state = StateRunning
	return nil
}

// Stop ends a running or paused session. Stopping while paused
// resolves the open pause at the stop instant, so a stopped tracker
// never carries an unresolved pause.
func (t *Tracker) Stop() error {
	if t.state != StateRunning && t.state != StatePaused {
		return &StateError{Op: "stop", State: t.state}
	}
	now := t.now()
	if t.state == StatePaused {
		t.pauses[len(t.pauses)-1].ResumedAt = now
	}
	t.stopAt = now
	t.state = StateStopped
	return nil
}

// Discard abandons a running or paused session without the stop
// bookkeeping, returning the tracker to its initial shape.
func (t *Tracker) Discard() error {
	if t.state != StateRunning && t.state != StatePaused {
		return &StateError{Op: "discard", State: t.state}
	}
	t.clear()
	return nil
}

// Reset returns a stopped tracker to its initial shape. It is the only
// transition out of the stopped state.
func (t *Tracker) Reset() error {
	if t.state != StateStopped {
		return &StateError{Op: "reset", State: t.state}
	}
	t.clear()
	return nil
}

func (t *Tracker) clear() {
	t.startAt = time.Time{}
	t.stopAt = time.Time{}
	t.pauses = nil
	t.state = StateInactive
}

// endOrNow returns end unless it is unset, in which case the current
// time bounds the interval.
func (t *Tracker) endOrNow(end time.Time) time.Time {
	if end.IsZero() {
		return t.now()
	}
	return end
}

// PauseDuration returns the length in seconds of the i-th recorded
// pause (0-based, append order). An unresolved pause is bounded by the
// current time.
func (t *Tracker) PauseDuration(i int) (float64, error) {
	if t.state == StateInactive {
		return 0, &StateError{Op: "pause duration", State: t.state}
	}
	if i < 0 || i >= len(t.pauses) {
		return 0, &PauseIndexError{Index: i, Count: len(t.pauses)}
	}
	p := t.pauses[i]
	return t.endOrNow(p.ResumedAt).Sub(p.PausedAt).Seconds(), nil
}

// CumulativePauseDuration returns the summed length in seconds of all
// recorded pauses, bounding an unresolved pause by the current time.
func (t *Tracker) CumulativePauseDuration() (float64, error) {
	if t.state == StateInactive {
		return 0, &StateError{Op: "cumulative pause duration", State: t.state}
	}
	var total float64
	for _, p := range t.pauses {
		total += t.endOrNow(p.ResumedAt).Sub(p.PausedAt).Seconds()
	}
	return total, nil
}

// TotalDuration returns wall-clock elapsed seconds since start,
// including pauses. A running or paused session is bounded by the
// current time.
func (t *Tracker) TotalDuration() (float64, error) {
	if t.state == StateInactive {
		return 0, &StateError{Op: "total duration", State: t.state}
	}
	return t.endOrNow(t.stopAt).Sub(t.startAt).Seconds(), nil
}

// ActiveDuration returns elapsed seconds excluding all recorded pause
// intervals.
func (t *Tracker) ActiveDuration() (float64, error) {
	total, err := t.TotalDuration()
	if err != nil {
		return 0, err
	}
	paused, err := t.CumulativePauseDuration()
	if err != nil {
		return 0, err
	}
	return total - paused, nil
}
