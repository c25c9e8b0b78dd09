package repository

import (
	"context"
	"database/sql"
	"time"

	"coldchain/internal/models"
)

type SnapshotSQLite struct {
	db *sql.DB
}

func NewSnapshotSQLite(db *sql.DB) *SnapshotSQLite { return &SnapshotSQLite{db: db} }

const (
	insertSnapshotSQL = `
		INSERT INTO telemetry_log (occurred_at, temp_c, humidity, vibration, distance_km,
			days_left, status, chaos, destination)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectSnapshotsSQL = `
		SELECT occurred_at, temp_c, humidity, vibration, distance_km,
			days_left, status, chaos, destination
		FROM telemetry_log ORDER BY seq ASC
	`
)

// Append inserts a snapshot row. A zero OccurredAt is stamped with now.
func (r *SnapshotSQLite) Append(ctx context.Context, rec models.SnapshotRecord) error {
	ts := rec.OccurredAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertSnapshotSQL,
		ts,
		rec.Temperature,
		rec.Humidity,
		rec.Vibration,
		rec.Distance,
		rec.DaysLeft,
		rec.Status,
		rec.ChaosMode,
		rec.Destination,
	)
	return err
}

// List returns the full history in insertion order.
func (r *SnapshotSQLite) List(ctx context.Context) ([]models.SnapshotRecord, error) {
	rows, err := r.db.QueryContext(ctx, selectSnapshotsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.SnapshotRecord, 0, 128)
	for rows.Next() {
		var rec models.SnapshotRecord
		if err := rows.Scan(
			&rec.OccurredAt,
			&rec.Temperature,
			&rec.Humidity,
			&rec.Vibration,
			&rec.Distance,
			&rec.DaysLeft,
			&rec.Status,
			&rec.ChaosMode,
			&rec.Destination,
		); err != nil {
			return nil, err
		}
		rec.OccurredAt = rec.OccurredAt.UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
