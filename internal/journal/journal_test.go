package journal

import (
	"encoding/csv"
	"os"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avahidi/studytrack/internal/session"
)

func stoppedTracker(t *testing.T, subject string) *session.Tracker {
	t.Helper()
	mock := clock.NewMock()
	mock.Set(time.Date(2026, 8, 23, 9, 0, 0, 0, time.UTC))
	tr := session.NewWithClock(subject, time.UTC, mock)
	require.NoError(t, tr.Start())
	mock.Add(30 * time.Second)
	require.NoError(t, tr.Pause())
	mock.Add(5 * time.Second)
	require.NoError(t, tr.Resume())
	mock.Add(65 * time.Second)
	require.NoError(t, tr.Stop())
	return tr
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestAppendWritesHeaderAndRow(t *testing.T) {
	dir := t.TempDir()
	j := New(dir)
	tr := stoppedTracker(t, "Math")

	require.NoError(t, j.Append(tr))

	started, _ := tr.StartedAt()
	rows := readRows(t, j.Path(started))
	require.Len(t, rows, 2)
	assert.Equal(t, header, rows[0])
	assert.Equal(t, "Math", rows[1][0])
	assert.Equal(t, "2026-08-23T09:00:00Z", rows[1][1])
	assert.Equal(t, "00:01:40.0000", rows[1][3]) // total
	assert.Equal(t, "00:00:05.0000", rows[1][4]) // paused
	assert.Equal(t, "00:01:35.0000", rows[1][5]) // active
}

func TestAppendReusesMonthFile(t *testing.T) {
	dir := t.TempDir()
	j := New(dir)

	tr := stoppedTracker(t, "Math")
	require.NoError(t, j.Append(tr))
	require.NoError(t, j.Append(stoppedTracker(t, "Physics")))

	started, _ := tr.StartedAt()
	rows := readRows(t, j.Path(started))
	require.Len(t, rows, 3)
	assert.Equal(t, "Math", rows[1][0])
	assert.Equal(t, "Physics", rows[2][0])
}

func TestAppendRequiresStoppedSession(t *testing.T) {
	j := New(t.TempDir())
	tr := session.NewWithClock("Math", time.UTC, clock.NewMock())
	require.NoError(t, tr.Start())

	assert.Error(t, j.Append(tr))
}

func TestPathUsesStartMonth(t *testing.T) {
	j := New("/data")
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "/data/2026-02.csv", j.Path(start))
}
