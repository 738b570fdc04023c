// Package history keeps a SQLite ledger of probing runs.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Run statuses stored in the runs table.
const (
	StatusStarted   = "STARTED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
	StatusFailed    = "FAILED"
)

// DB wraps the SQL database connection and provides methods for interacting with run history.
type DB struct {
	db     *sql.DB
	logger zerolog.Logger
}

// RunEntry represents a record in the runs table.
type RunEntry struct {
	ID          int64
	SessionID   string
	TargetURL   string
	StartedAt   time.Time
	FinishedAt  sql.NullTime
	Status      string
	NumCodes    int
	Succeeded   int
	Failed      int
	Warnings    int
	SummaryPath sql.NullString
}

// RunCompletion carries the figures written when a run ends.
type RunCompletion struct {
	FinishedAt  time.Time
	Status      string
	Succeeded   int
	Failed      int
	Warnings    int
	SummaryPath string
}

// NewDB opens (creating if needed) the database at dataSourceName and ensures the schema is set up.
func NewDB(dataSourceName string, logger zerolog.Logger) (*DB, error) {
	logger = logger.With().Str("component", "RunHistory").Logger()
	logger.Debug().Str("db_path", dataSourceName).Msg("Initializing run history database connection")

	if dataSourceName != ":memory:" {
		dbDir := filepath.Dir(dataSourceName)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			logger.Error().Err(err).Str("directory", dbDir).Msg("Failed to create run history database directory")
			return nil, fmt.Errorf("failed to create run history database directory %s: %w", dbDir, err)
		}
	}

	dbInstance, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		logger.Error().Err(err).Str("db_path", dataSourceName).Msg("Failed to open run history database")
		return nil, fmt.Errorf("sql.Open failed for %s: %w", dataSourceName, err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	dbInstance.SetMaxOpenConns(1)

	db := &DB{
		db:     dbInstance,
		logger: logger,
	}

	if err := db.InitSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// InitSchema creates the runs table if it doesn't already exist.
func (d *DB) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT UNIQUE NOT NULL,
		target_url TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		finished_at DATETIME,
		status TEXT NOT NULL,
		num_codes INTEGER NOT NULL,
		succeeded INTEGER DEFAULT 0,
		failed INTEGER DEFAULT 0,
		warnings INTEGER DEFAULT 0,
		summary_path TEXT
	);
	`
	if _, err := d.db.Exec(query); err != nil {
		d.logger.Error().Err(err).Msg("Failed to initialize schema")
		return err
	}
	d.logger.Debug().Msg("Schema initialized (runs table ensured)")
	return nil
}

// RecordRunStart inserts a new record with status STARTED and returns its ID.
func (d *DB) RecordRunStart(sessionID, targetURL string, numCodes int, startTime time.Time) (int64, error) {
	query := `INSERT INTO runs (session_id, target_url, num_codes, started_at, status) VALUES (?, ?, ?, ?, ?)`
	result, err := d.db.Exec(query, sessionID, targetURL, numCodes, startTime, StatusStarted)
	if err != nil {
		d.logger.Error().Err(err).Str("session_id", sessionID).Msg("Failed to record run start")
		return 0, fmt.Errorf("failed to insert run start record: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	d.logger.Debug().Int64("db_id", id).Str("session_id", sessionID).Msg("Recorded run start")
	return id, nil
}

// UpdateRunCompletion fills in the completion details of a run.
func (d *DB) UpdateRunCompletion(id int64, c RunCompletion) error {
	query := `UPDATE runs SET finished_at = ?, status = ?, succeeded = ?, failed = ?, warnings = ?, summary_path = ? WHERE id = ?`
	result, err := d.db.Exec(query, c.FinishedAt, c.Status, c.Succeeded, c.Failed, c.Warnings,
		sql.NullString{String: c.SummaryPath, Valid: c.SummaryPath != ""}, id)
	if err != nil {
		d.logger.Error().Err(err).Int64("db_id", id).Msg("Failed to update run completion")
		return fmt.Errorf("failed to update run completion for ID %d: %w", id, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("no run with ID %d", id)
	}
	d.logger.Debug().Int64("db_id", id).Str("status", c.Status).Msg("Updated run completion")
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (d *DB) RecentRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `SELECT id, session_id, target_url, started_at, finished_at, status, num_codes, succeeded, failed, warnings, summary_path
		FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`
	rows, err := d.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		if err := rows.Scan(&e.ID, &e.SessionID, &e.TargetURL, &e.StartedAt, &e.FinishedAt, &e.Status,
			&e.NumCodes, &e.Succeeded, &e.Failed, &e.Warnings, &e.SummaryPath); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// LastRun returns the most recent run, or sql.ErrNoRows when the ledger is empty.
func (d *DB) LastRun() (*RunEntry, error) {
	entries, err := d.RecentRuns(1)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, sql.ErrNoRows
	}
	return &entries[0], nil
}

// IsNoRows reports whether err means the ledger had no matching run.
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
