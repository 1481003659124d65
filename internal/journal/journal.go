// Package journal appends finished study sessions to monthly CSV
// files, one file per calendar month of the session start time.
package journal

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/avahidi/studytrack/internal/session"
)

var header = []string{
	"subject",
	"start time",
	"stop time",
	"duration",
	"pause duration",
	"active duration",
}

// Journal writes session rows into <dir>/<YYYY-MM>.csv.
type Journal struct {
	dir string
}

// New returns a journal rooted at dir. The directory is created on
// first append.
func New(dir string) Journal {
	return Journal{dir: dir}
}

// Path returns the month file a session starting at start lands in.
func (j Journal) Path(start time.Time) string {
	return filepath.Join(j.dir, start.Format("2006-01")+".csv")
}

// Append writes one row for a stopped session, creating the month file
// and its header when missing or empty.
func (j Journal) Append(tr *session.Tracker) error {
	if tr.State() != session.StateStopped {
		return fmt.Errorf("journal: session must be stopped to log, is %s", tr.State())
	}
	started, _ := tr.StartedAt()
	stopped, _ := tr.StoppedAt()
	total, err := tr.TotalDuration()
	if err != nil {
		return fmt.Errorf("journal: %w", err)
	}
	paused, err := tr.CumulativePauseDuration()
	if err != nil {
		return fmt.Errorf("journal: %w", err)
	}
	active, err := tr.ActiveDuration()
	if err != nil {
		return fmt.Errorf("journal: %w", err)
	}

	if err := os.MkdirAll(j.dir, 0o755); err != nil {
		return fmt.Errorf("journal: create directory: %w", err)
	}
	path := j.Path(started)

	writeHeader := false
	if info, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("journal: stat %s: %w", path, err)
		}
		writeHeader = true
	} else if info.Size() == 0 {
		writeHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("journal: open %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("journal: write header: %w", err)
		}
	}
	row := []string{
		tr.Subject(),
		started.Format(time.RFC3339),
		stopped.Format(time.RFC3339),
		session.FormatDuration(total),
		session.FormatDuration(paused),
		session.FormatDuration(active),
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("journal: write row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("journal: flush: %w", err)
	}
	return nil
}
