package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens/creates a SQLite DB file and ensures tables exist.
func InitDB(path string) (*sql.DB, error) {
	conn, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// Conservative pool settings for SQLite
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	// Pragmas to improve reliability
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := ensureSchema(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return conn, nil
}

const sqliteDriverName = "sqlite"

const schemaShipmentState = `
CREATE TABLE IF NOT EXISTS shipment_state (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    temp_c REAL NOT NULL,
    humidity REAL NOT NULL,
    vibration REAL NOT NULL,
    distance_km REAL NOT NULL,
    sampled_at TIMESTAMP NOT NULL,
    product_type TEXT NOT NULL,
    cargo_value REAL NOT NULL,
    shelf_life_factor REAL NOT NULL,
    chaos BOOLEAN NOT NULL,
    destination TEXT NOT NULL,
    days_left REAL NOT NULL,
    status TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
`

const schemaShipmentEvents = `
CREATE TABLE IF NOT EXISTS shipment_events (
    id TEXT PRIMARY KEY,
    occurred_at TIMESTAMP NOT NULL,
    type TEXT NOT NULL,
    message TEXT NOT NULL,
    meta TEXT
);
`

const schemaTelemetryLog = `
CREATE TABLE IF NOT EXISTS telemetry_log (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    occurred_at TIMESTAMP NOT NULL,
    temp_c REAL NOT NULL,
    humidity REAL NOT NULL,
    vibration REAL NOT NULL,
    distance_km REAL NOT NULL,
    days_left REAL NOT NULL,
    status TEXT NOT NULL,
    chaos BOOLEAN NOT NULL,
    destination TEXT NOT NULL
);
`

func ensureSchema(conn *sql.DB) error {
	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		// In case of panic, rollback to avoid leaving an open transaction
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaShipmentState,
		schemaShipmentEvents,
		schemaTelemetryLog,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
