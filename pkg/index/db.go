// Package index maintains the SQLite session index: every converted sensor
// session is upserted here so batch tooling can query runs without re-reading
// the output CSVs.
package index

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/shield-daq/shieldconv/pkg/session"
)

// DB wraps the SQL database connection
type DB struct {
	conn *sql.DB
	path string
}

// Open creates or opens the session index database
func Open(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{
		conn: conn,
		path: path,
	}

	if err := db.Migrate(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the database file path
func (db *DB) Path() string {
	return db.path
}

// Migrate creates or updates the database schema
func (db *DB) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		unit_id TEXT NOT NULL,
		sensor_name TEXT NOT NULL,
		file_name TEXT NOT NULL,
		file_format TEXT NOT NULL DEFAULT 'csv',
		start_time_utc DATETIME NOT NULL,
		duration_s REAL NOT NULL,
		sampling_rate_hz INTEGER NOT NULL,
		units TEXT,
		health_label TEXT NOT NULL DEFAULT 'unknown',
		indexed_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(session_id, unit_id, sensor_name)
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_unit ON sessions(unit_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_health ON sessions(health_label);
	`

	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Upsert inserts a session record, replacing any previous row for the same
// (session, unit, sensor) key.
func (db *DB) Upsert(rec session.SessionRecord) error {
	_, err := db.conn.Exec(
		`INSERT INTO sessions (session_id, unit_id, sensor_name, file_name, file_format,
		 start_time_utc, duration_s, sampling_rate_hz, units, health_label)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(session_id, unit_id, sensor_name) DO UPDATE SET
		 file_name = excluded.file_name,
		 file_format = excluded.file_format,
		 start_time_utc = excluded.start_time_utc,
		 duration_s = excluded.duration_s,
		 sampling_rate_hz = excluded.sampling_rate_hz,
		 units = excluded.units,
		 health_label = excluded.health_label,
		 indexed_at = CURRENT_TIMESTAMP`,
		rec.SessionID, rec.UnitID, rec.SensorName, rec.FileName, string(rec.FileFormat),
		rec.StartTimeUTC.UTC(), rec.DurationS, rec.SamplingRateHz, rec.Units, string(rec.HealthLabel),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert session: %w", err)
	}
	return nil
}

// UpsertAll upserts a batch of session records in one transaction.
func (db *DB) UpsertAll(records []session.SessionRecord) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO sessions (session_id, unit_id, sensor_name, file_name, file_format,
		 start_time_utc, duration_s, sampling_rate_hz, units, health_label)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(session_id, unit_id, sensor_name) DO UPDATE SET
		 file_name = excluded.file_name,
		 file_format = excluded.file_format,
		 start_time_utc = excluded.start_time_utc,
		 duration_s = excluded.duration_s,
		 sampling_rate_hz = excluded.sampling_rate_hz,
		 units = excluded.units,
		 health_label = excluded.health_label,
		 indexed_at = CURRENT_TIMESTAMP`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, rec := range records {
		if _, err := stmt.Exec(
			rec.SessionID, rec.UnitID, rec.SensorName, rec.FileName, string(rec.FileFormat),
			rec.StartTimeUTC.UTC(), rec.DurationS, rec.SamplingRateHz, rec.Units, string(rec.HealthLabel),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to upsert session %s/%s: %w", rec.SessionID, rec.SensorName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Filter narrows session queries
type Filter struct {
	UnitID    string
	SessionID string
	Sensor    string
	Health    string
	Limit     int
	Offset    int
}

// List returns indexed sessions matching the filter, newest first.
func (db *DB) List(filter Filter) ([]session.SessionRecord, error) {
	query := `SELECT session_id, unit_id, sensor_name, file_name, file_format,
	          start_time_utc, duration_s, sampling_rate_hz, units, health_label
	          FROM sessions WHERE 1=1`
	var args []interface{}

	if filter.UnitID != "" {
		query += " AND unit_id = ?"
		args = append(args, filter.UnitID)
	}
	if filter.SessionID != "" {
		query += " AND session_id = ?"
		args = append(args, filter.SessionID)
	}
	if filter.Sensor != "" {
		query += " AND sensor_name = ?"
		args = append(args, filter.Sensor)
	}
	if filter.Health != "" {
		query += " AND health_label = ?"
		args = append(args, filter.Health)
	}

	query += " ORDER BY start_time_utc DESC, session_id, sensor_name"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []session.SessionRecord
	for rows.Next() {
		var rec session.SessionRecord
		var format, health string
		var start time.Time
		if err := rows.Scan(&rec.SessionID, &rec.UnitID, &rec.SensorName, &rec.FileName, &format,
			&start, &rec.DurationS, &rec.SamplingRateHz, &rec.Units, &health); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		rec.FileFormat = session.FileFormat(format)
		rec.HealthLabel = session.HealthLabel(health)
		rec.StartTimeUTC = start.UTC()
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Has reports whether any sensor of the given run is already indexed.
func (db *DB) Has(sessionID, unitID string) (bool, error) {
	var n int
	err := db.conn.QueryRow(
		`SELECT COUNT(*) FROM sessions WHERE session_id = ? AND unit_id = ?`,
		sessionID, unitID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to query sessions: %w", err)
	}
	return n > 0, nil
}

// Count returns the number of indexed session rows.
func (db *DB) Count() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return n, nil
}
