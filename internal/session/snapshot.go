package session

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
)

// Snapshot is a read-only copy of a tracker's full state. It is what
// consumers (state file, NDJSON output) see; mutating a snapshot never
// affects the tracker it came from.
type Snapshot struct {
	Subject   string          `json:"subject"`
	TimeZone  string          `json:"time_zone"`
	State     State           `json:"state"`
	StartedAt *time.Time      `json:"started_at,omitempty"`
	StoppedAt *time.Time      `json:"stopped_at,omitempty"`
	Pauses    []SnapshotPause `json:"pauses,omitempty"`
}

// SnapshotPause mirrors PausePair with an explicit null for an
// unresolved resume.
type SnapshotPause struct {
	PausedAt  time.Time  `json:"paused_at"`
	ResumedAt *time.Time `json:"resumed_at,omitempty"`
}

// Snapshot captures the tracker's current state.
func (t *Tracker) Snapshot() Snapshot {
	snap := Snapshot{
		Subject:  t.subject,
		TimeZone: t.loc.String(),
		State:    t.state,
	}
	if !t.startAt.IsZero() {
		started := t.startAt
		snap.StartedAt = &started
	}
	if !t.stopAt.IsZero() {
		stopped := t.stopAt
		snap.StoppedAt = &stopped
	}
	for _, p := range t.pauses {
		sp := SnapshotPause{PausedAt: p.PausedAt}
		if p.Resolved() {
			resumed := p.ResumedAt
			sp.ResumedAt = &resumed
		}
		snap.Pauses = append(snap.Pauses, sp)
	}
	return snap
}

// Restore rebuilds a tracker from a snapshot, validating the state
// machine invariants. Corrupt snapshots are rejected, never repaired.
func Restore(snap Snapshot, clk clock.Clock) (*Tracker, error) {
	loc, err := time.LoadLocation(snap.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("restore session: load timezone %q: %w", snap.TimeZone, err)
	}

	switch snap.State {
	case StateInactive, StateRunning, StatePaused, StateStopped:
	default:
		return nil, fmt.Errorf("restore session: unknown state %q", snap.State)
	}

	if started := snap.StartedAt != nil; started != (snap.State != StateInactive) {
		return nil, fmt.Errorf("restore session: start time presence does not match state %s", snap.State)
	}
	if stopped := snap.StoppedAt != nil; stopped != (snap.State == StateStopped) {
		return nil, fmt.Errorf("restore session: stop time presence does not match state %s", snap.State)
	}
	if snap.State == StateInactive && len(snap.Pauses) > 0 {
		return nil, fmt.Errorf("restore session: inactive session carries %d pause(s)", len(snap.Pauses))
	}

	t := NewWithClock(snap.Subject, loc, clk)
	t.state = snap.State
	if snap.StartedAt != nil {
		t.startAt = snap.StartedAt.In(loc)
	}
	if snap.StoppedAt != nil {
		t.stopAt = snap.StoppedAt.In(loc)
	}

	prevBound := t.startAt
	for i, sp := range snap.Pauses {
		if sp.PausedAt.Before(prevBound) {
			return nil, fmt.Errorf("restore session: pause %d is out of order", i)
		}
		p := PausePair{PausedAt: sp.PausedAt.In(loc)}
		if sp.ResumedAt == nil {
			// Only the trailing pause may be unresolved, and only
			// while the session is paused.
			if i != len(snap.Pauses)-1 || snap.State != StatePaused {
				return nil, fmt.Errorf("restore session: pause %d is unresolved in state %s", i, snap.State)
			}
		} else {
			if sp.ResumedAt.Before(sp.PausedAt) {
				return nil, fmt.Errorf("restore session: pause %d resumes before it pauses", i)
			}
			p.ResumedAt = sp.ResumedAt.In(loc)
			prevBound = p.ResumedAt
		}
		t.pauses = append(t.pauses, p)
	}
	if snap.State == StatePaused {
		if n := len(t.pauses); n == 0 || t.pauses[n-1].Resolved() {
			return nil, fmt.Errorf("restore session: paused session has no open pause")
		}
	}

	return t, nil
}
