// Package store persists accumulated active study time per subject in
// SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

var (
	// ErrNotFound is returned when no record exists for a subject.
	ErrNotFound = errors.New("subject not found")
	// ErrAlreadyExists is returned when a subject record already exists.
	ErrAlreadyExists = errors.New("subject already exists")
)

// Record is one subject's accumulated active time.
type Record struct {
	Subject      string
	TotalSeconds float64
}

// Store is a SQLite-backed totals database keyed by subject name.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS subjects (
	subject       TEXT PRIMARY KEY,
	total_seconds REAL NOT NULL DEFAULT 0
)`

// Open opens the totals database at path, creating the file and the
// subjects table when missing.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("store path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create subjects table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Add inserts a new subject record.
func (s *Store) Add(ctx context.Context, subject string, totalSeconds float64) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return fmt.Errorf("subject is required")
	}
	if totalSeconds < 0 {
		return fmt.Errorf("total seconds must not be negative")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO subjects (subject, total_seconds) VALUES (?, ?)`,
		subject, totalSeconds,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("add subject: %w", err)
	}
	return nil
}

// RecordSession adds a finished session's active seconds to the
// subject's total, creating the record when the subject is new.
func (s *Store) RecordSession(ctx context.Context, subject string, activeSeconds float64) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return fmt.Errorf("subject is required")
	}
	if activeSeconds < 0 {
		return fmt.Errorf("active seconds must not be negative")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO subjects (subject, total_seconds) VALUES (?, ?)
		 ON CONFLICT(subject) DO UPDATE SET
		   total_seconds = total_seconds + excluded.total_seconds`,
		subject, activeSeconds,
	)
	if err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	return nil
}

// SetTotal overwrites a subject's accumulated total.
func (s *Store) SetTotal(ctx context.Context, subject string, totalSeconds float64) error {
	if totalSeconds < 0 {
		return fmt.Errorf("total seconds must not be negative")
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE subjects SET total_seconds = ? WHERE subject = ?`,
		totalSeconds, subject,
	)
	if err != nil {
		return fmt.Errorf("set total: %w", err)
	}
	return requireRow(res)
}

// IncrementTotal adds delta seconds to a subject's accumulated total.
func (s *Store) IncrementTotal(ctx context.Context, subject string, delta float64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE subjects SET total_seconds = total_seconds + ? WHERE subject = ?`,
		delta, subject,
	)
	if err != nil {
		return fmt.Errorf("increment total: %w", err)
	}
	return requireRow(res)
}

// Rename changes a subject's name, keeping its accumulated total.
func (s *Store) Rename(ctx context.Context, oldSubject, newSubject string) error {
	newSubject = strings.TrimSpace(newSubject)
	if newSubject == "" {
		return fmt.Errorf("new subject is required")
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE subjects SET subject = ? WHERE subject = ?`,
		newSubject, oldSubject,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("rename subject: %w", err)
	}
	return requireRow(res)
}

// Get returns one subject's record.
func (s *Store) Get(ctx context.Context, subject string) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT subject, total_seconds FROM subjects WHERE subject = ?`,
		subject,
	)
	var rec Record
	if err := row.Scan(&rec.Subject, &rec.TotalSeconds); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("get subject: %w", err)
	}
	return rec, nil
}

// List returns every subject record ordered by name.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT subject, total_seconds FROM subjects ORDER BY subject ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Subject, &rec.TotalSeconds); err != nil {
			return nil, fmt.Errorf("list subjects: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return records, nil
}

// Delete removes one subject record.
func (s *Store) Delete(ctx context.Context, subject string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM subjects WHERE subject = ?`,
		subject,
	)
	if err != nil {
		return fmt.Errorf("delete subject: %w", err)
	}
	return requireRow(res)
}

// DeleteAll removes every subject record.
func (s *Store) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM subjects`); err != nil {
		return fmt.Errorf("delete all subjects: %w", err)
	}
	return nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
