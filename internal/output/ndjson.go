// Package output renders machine-readable NDJSON events for CLI
// consumers.
package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/avahidi/studytrack/internal/session"
)

// SchemaVersion identifies the NDJSON event schema.
const SchemaVersion = 1

// NDJSONWriter writes one JSON event per line.
type NDJSONWriter struct {
	enc *json.Encoder
}

// NewNDJSONWriter creates a writer emitting to w.
func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	return &NDJSONWriter{enc: json.NewEncoder(w)}
}

// Transition is emitted after a successful state transition.
type Transition struct {
	Type          string        `json:"type"` // "transition"
	SchemaVersion int           `json:"schemaVersion"`
	Op            string        `json:"op"`
	Subject       string        `json:"subject"`
	State         session.State `json:"state"`
	Timestamp     string        `json:"timestamp"`
}

// WriteTransition emits a transition event.
func (w *NDJSONWriter) WriteTransition(op string, snap session.Snapshot, now time.Time) error {
	return w.enc.Encode(&Transition{
		Type:          "transition",
		SchemaVersion: SchemaVersion,
		Op:            op,
		Subject:       snap.Subject,
		State:         snap.State,
		Timestamp:     now.Format(time.RFC3339),
	})
}

// Status reports the active session and its derived durations.
type Status struct {
	Type          string        `json:"type"` // "status"
	SchemaVersion int           `json:"schemaVersion"`
	Subject       string        `json:"subject"`
	State         session.State `json:"state"`
	TimeZone      string        `json:"time_zone"`
	StartedAt     string        `json:"started_at,omitempty"`
	StoppedAt     string        `json:"stopped_at,omitempty"`
	Pauses        int           `json:"pauses"`
	TotalSeconds  float64       `json:"total_seconds"`
	PausedSeconds float64       `json:"paused_seconds"`
	ActiveSeconds float64       `json:"active_seconds"`
}

// WriteStatus emits a status event, stamping type and schema version.
func (w *NDJSONWriter) WriteStatus(st *Status) error {
	st.Type = "status"
	st.SchemaVersion = SchemaVersion
	return w.enc.Encode(st)
}

// SessionRecord is emitted when a stopped session is saved.
type SessionRecord struct {
	Type          string  `json:"type"` // "session_record"
	SchemaVersion int     `json:"schemaVersion"`
	Subject       string  `json:"subject"`
	ActiveSeconds float64 `json:"active_seconds"`
	TotalSeconds  float64 `json:"total_seconds"` // accumulated store total after saving
	JournalPath   string  `json:"journal_path,omitempty"`
}

// WriteSessionRecord emits a session_record event.
func (w *NDJSONWriter) WriteSessionRecord(rec *SessionRecord) error {
	rec.Type = "session_record"
	rec.SchemaVersion = SchemaVersion
	return w.enc.Encode(rec)
}

// ReportRow is one subject line in a totals report.
type ReportRow struct {
	Subject      string  `json:"subject"`
	TotalSeconds float64 `json:"total_seconds"`
	Total        string  `json:"total"` // HH:MM:SS.ffff rendering
}

// Report lists accumulated totals per subject.
type Report struct {
	Type          string      `json:"type"` // "report"
	SchemaVersion int         `json:"schemaVersion"`
	Subjects      []ReportRow `json:"subjects"`
	TotalSeconds  float64     `json:"total_seconds"`
}

// WriteReport emits a report event.
func (w *NDJSONWriter) WriteReport(rows []ReportRow, totalSeconds float64) error {
	if rows == nil {
		rows = []ReportRow{}
	}
	return w.enc.Encode(&Report{
		Type:          "report",
		SchemaVersion: SchemaVersion,
		Subjects:      rows,
		TotalSeconds:  totalSeconds,
	})
}

// Error is the machine-readable failure shape.
type Error struct {
	Type          string `json:"type"` // "error"
	SchemaVersion int    `json:"schemaVersion"`
	Code          string `json:"code"`
	Message       string `json:"message"`
	Hint          string `json:"hint,omitempty"`
}

// WriteError emits an error event with an optional hint.
func (w *NDJSONWriter) WriteError(code, message string, hint ...string) error {
	e := &Error{
		Type:          "error",
		SchemaVersion: SchemaVersion,
		Code:          code,
		Message:       message,
	}
	if len(hint) > 0 {
		e.Hint = hint[0]
	}
	return w.enc.Encode(e)
}
