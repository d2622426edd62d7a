// internal/requestlog/sqlite.go
package requestlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteSink archives entries in a SQLite database.
type SQLiteSink struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the archive at path and ensures the schema.
func OpenSQLite(path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open request log db: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate request log db: %w", err)
	}
	return &SQLiteSink{db: db}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS mock_requests (
		id          TEXT PRIMARY KEY,
		method      TEXT NOT NULL,
		scenario    TEXT NOT NULL,
		params      TEXT,
		duration_ms INTEGER,
		status_code INTEGER,
		success     INTEGER NOT NULL DEFAULT 0,
		error       TEXT,
		created_at  TEXT NOT NULL
	)`)
	if err != nil {
		return err
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_mock_requests_created ON mock_requests(created_at)`)
	return err
}

// Log inserts e, replacing any entry with the same ID.
func (s *SQLiteSink) Log(ctx context.Context, e Entry) error {
	if s == nil || s.db == nil {
		return nil
	}
	var params string
	if len(e.Params) > 0 {
		b, err := json.Marshal(e.Params)
		if err != nil {
			return fmt.Errorf("marshal params: %w", err)
		}
		params = string(b)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO mock_requests
		(id, method, scenario, params, duration_ms, status_code, success, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Method, e.Scenario, params, e.DurationMs, e.StatusCode, e.Success, e.Error,
		e.Timestamp.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert request log entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. A non-positive limit
// means DefaultCapacity.
func (s *SQLiteSink) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultCapacity
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, method, scenario, params, duration_ms, status_code, success, error, created_at
		FROM mock_requests ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query request log: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var params, errText sql.NullString
		var created string
		if err := rows.Scan(&e.ID, &e.Method, &e.Scenario, &params, &e.DurationMs, &e.StatusCode, &e.Success, &errText, &created); err != nil {
			return nil, fmt.Errorf("scan request log row: %w", err)
		}
		if params.Valid && params.String != "" {
			if err := json.Unmarshal([]byte(params.String), &e.Params); err != nil {
				return nil, fmt.Errorf("decode params for %s: %w", e.ID, err)
			}
		}
		e.Error = errText.String
		if e.Timestamp, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("parse created_at for %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the database.
func (s *SQLiteSink) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
