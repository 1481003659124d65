package session

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	mock := clock.NewMock()
	tr := NewWithClock("Math", time.UTC, mock)
	require.NoError(t, tr.Start())
	mock.Add(30 * time.Second)
	require.NoError(t, tr.Pause())
	mock.Add(5 * time.Second)
	require.NoError(t, tr.Resume())
	mock.Add(10 * time.Second)
	require.NoError(t, tr.Pause())

	b, err := json.Marshal(tr.Snapshot())
	require.NoError(t, err)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(b, &snap))

	restored, err := Restore(snap, mock)
	require.NoError(t, err)

	assert.Equal(t, "Math", restored.Subject())
	assert.Equal(t, StatePaused, restored.State())
	assert.Equal(t, tr.Snapshot(), restored.Snapshot())

	// The restored tracker keeps answering queries against the same
	// clock.
	mock.Add(5 * time.Second)
	open, err := restored.PauseDuration(1)
	require.NoError(t, err)
	assert.InDelta(t, 5, open, 1e-9)

	require.NoError(t, restored.Resume())
	require.NoError(t, restored.Stop())
	total, err := restored.TotalDuration()
	require.NoError(t, err)
	assert.InDelta(t, 50, total, 1e-9)
}

func TestSnapshotIsDetachedFromTracker(t *testing.T) {
	mock := clock.NewMock()
	tr := NewWithClock("Math", time.UTC, mock)
	require.NoError(t, tr.Start())
	require.NoError(t, tr.Pause())

	snap := tr.Snapshot()
	snap.Pauses[0].ResumedAt = &snap.Pauses[0].PausedAt

	assert.False(t, tr.Pauses()[0].Resolved())
}

func TestRestoreRejectsCorruptSnapshots(t *testing.T) {
	mock := clock.NewMock()
	now := mock.Now().UTC()
	later := now.Add(time.Minute)
	earlier := now.Add(-time.Minute)

	cases := map[string]Snapshot{
		"unknown state": {
			TimeZone: "UTC", State: State("SLEEPING"),
		},
		"running without start time": {
			TimeZone: "UTC", State: StateRunning,
		},
		"inactive with start time": {
			TimeZone: "UTC", State: StateInactive, StartedAt: &now,
		},
		"running with stop time": {
			TimeZone: "UTC", State: StateRunning, StartedAt: &now, StoppedAt: &later,
		},
		"stopped without stop time": {
			TimeZone: "UTC", State: StateStopped, StartedAt: &now,
		},
		"inactive with pauses": {
			TimeZone: "UTC", State: StateInactive,
			Pauses: []SnapshotPause{{PausedAt: now, ResumedAt: &later}},
		},
		"unresolved pause while running": {
			TimeZone: "UTC", State: StateRunning, StartedAt: &now,
			Pauses: []SnapshotPause{{PausedAt: later}},
		},
		"unresolved pause not trailing": {
			TimeZone: "UTC", State: StatePaused, StartedAt: &now,
			Pauses: []SnapshotPause{{PausedAt: now}, {PausedAt: later}},
		},
		"paused without open pause": {
			TimeZone: "UTC", State: StatePaused, StartedAt: &now,
			Pauses: []SnapshotPause{{PausedAt: now, ResumedAt: &later}},
		},
		"pause before session start": {
			TimeZone: "UTC", State: StatePaused, StartedAt: &now,
			Pauses: []SnapshotPause{{PausedAt: earlier}},
		},
		"resume before pause": {
			TimeZone: "UTC", State: StateRunning, StartedAt: &earlier,
			Pauses: []SnapshotPause{{PausedAt: later, ResumedAt: &now}},
		},
		"bad timezone": {
			TimeZone: "Mars/Olympus", State: StateInactive,
		},
	}
	for name, snap := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Restore(snap, mock)
			require.Error(t, err)
		})
	}
}

func TestRestoreEmptySnapshot(t *testing.T) {
	mock := clock.NewMock()
	tr, err := Restore(Snapshot{TimeZone: "UTC", State: StateInactive}, mock)
	require.NoError(t, err)
	assert.Equal(t, StateInactive, tr.State())
	require.NoError(t, tr.Start())
}
