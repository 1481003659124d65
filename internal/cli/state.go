package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/avahidi/studytrack/internal/session"
)

// stateFile persists the active session between CLI invocations.
type stateFile struct {
	Type          string           `json:"type"` // "active_session"
	SchemaVersion int              `json:"schemaVersion"`
	Session       session.Snapshot `json:"session"`
	UpdatedAt     string           `json:"updated_at,omitempty"`
}

func loadState(path string) (*stateFile, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("state path is required")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var st stateFile
	if err := json.Unmarshal(b, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func saveState(path string, snap session.Snapshot) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("state path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	st := stateFile{
		Type:          "active_session",
		SchemaVersion: 1,
		Session:       snap,
		UpdatedAt:     time.Now().Format(time.RFC3339),
	}
	b, err := json.MarshalIndent(&st, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644)
}

func removeState(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// loadActiveTracker restores the persisted session, returning nil when
// no session is stored.
func loadActiveTracker(globals *Globals) (*session.Tracker, error) {
	st, err := loadState(globals.Config.StatePath())
	if err != nil || st == nil {
		return nil, err
	}
	return session.Restore(st.Session, clock.New())
}
