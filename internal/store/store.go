// Package store persists lab events in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/abhisek/simz/internal/events"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite connection holding the append-only event log.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, applies recommended
// pragmas and creates the schema if missing.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the event log table. The AUTOINCREMENT primary key
// doubles as a global append order: sequence numbers are never reused,
// so replaying by sequence reproduces the session history.
func migrate(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS lab_events (
		sequence   INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp  TEXT NOT NULL,
		session_id TEXT NOT NULL,
		lab        TEXT NOT NULL,
		kind       TEXT NOT NULL,
		payload    TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("create lab_events: %w", err)
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_lab_events_session
		ON lab_events (session_id, sequence)`)
	if err != nil {
		return fmt.Errorf("index lab_events: %w", err)
	}
	return nil
}

// Append writes one event to the log.
func (s *Store) Append(ctx context.Context, sessionID, lab string, e events.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO lab_events (timestamp, session_id, lab, kind, payload) VALUES (?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339Nano), sessionID, lab, string(e.Kind()), string(payload),
	)
	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

// Sink adapts the store to the engine's fire-and-forget event channel.
// Write failures are dropped: a broken log must never interrupt a lab.
func (s *Store) Sink(sessionID, lab string) events.Sink {
	return events.SinkFunc(func(e events.Event) {
		_ = s.Append(context.Background(), sessionID, lab, e)
	})
}

// Row is one persisted event.
type Row struct {
	Sequence  int64
	Timestamp time.Time
	SessionID string
	Lab       string
	Kind      string
	Payload   string
}

// Recent returns the latest events, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Row, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT sequence, timestamp, session_id, lab, kind, payload
		 FROM lab_events ORDER BY sequence DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		var ts string
		if err := rows.Scan(&r.Sequence, &ts, &r.SessionID, &r.Lab, &r.Kind, &r.Payload); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		r.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		out = append(out, r)
	}
	return out, rows.Err()
}

// SessionEvents returns every event for one session in append order.
func (s *Store) SessionEvents(ctx context.Context, sessionID string) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sequence, timestamp, session_id, lab, kind, payload
		 FROM lab_events WHERE session_id = ? ORDER BY sequence ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		var ts string
		if err := rows.Scan(&r.Sequence, &ts, &r.SessionID, &r.Lab, &r.Kind, &r.Payload); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		r.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		out = append(out, r)
	}
	return out, rows.Err()
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. SIMZ_DB environment variable
// 2. $XDG_DATA_HOME/simz/simz.db
// 3. ~/.local/share/simz/simz.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("SIMZ_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "simz", "simz.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
