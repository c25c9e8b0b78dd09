package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"coldchain/internal/models"
)

type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

const (
	shipmentStateRowID = 1

	insertOrUpdateStateSQL = `
		INSERT INTO shipment_state (id, temp_c, humidity, vibration, distance_km, sampled_at,
			product_type, cargo_value, shelf_life_factor, chaos, destination, days_left, status, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			temp_c=excluded.temp_c,
			humidity=excluded.humidity,
			vibration=excluded.vibration,
			distance_km=excluded.distance_km,
			sampled_at=excluded.sampled_at,
			product_type=excluded.product_type,
			cargo_value=excluded.cargo_value,
			shelf_life_factor=excluded.shelf_life_factor,
			chaos=excluded.chaos,
			destination=excluded.destination,
			days_left=excluded.days_left,
			status=excluded.status,
			updated_at=excluded.updated_at
	`

	selectStateSQL = `
		SELECT id, temp_c, humidity, vibration, distance_km, sampled_at,
			product_type, cargo_value, shelf_life_factor, chaos, destination, days_left, status, updated_at
		FROM shipment_state WHERE id=?
	`
)

// Save updates or inserts the shipment_state row (id always 1).
func (r *StateSQLite) Save(ctx context.Context, state models.ShipmentState) error {
	// ensure UpdatedAt is always persisted as UTC; set if zero
	tsUTC := state.UpdatedAt
	if tsUTC.IsZero() {
		tsUTC = time.Now().UTC()
	} else {
		tsUTC = tsUTC.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertOrUpdateStateSQL,
		shipmentStateRowID,
		state.Telemetry.Temperature,
		state.Telemetry.Humidity,
		state.Telemetry.Vibration,
		state.Telemetry.Distance,
		state.Telemetry.Timestamp.UTC(),
		state.Product.ProductType,
		state.Product.CargoValue,
		state.Product.ShelfLifeFactor,
		state.ChaosMode,
		state.Destination,
		state.DaysLeft,
		state.Status,
		tsUTC,
	)
	return err
}

// Load fetches the single shipment_state row (id=1).
func (r *StateSQLite) Load(ctx context.Context) (models.ShipmentState, error) {
	row := r.db.QueryRowContext(ctx, selectStateSQL, shipmentStateRowID)

	var s models.ShipmentState
	if err := row.Scan(
		&s.ID,
		&s.Telemetry.Temperature,
		&s.Telemetry.Humidity,
		&s.Telemetry.Vibration,
		&s.Telemetry.Distance,
		&s.Telemetry.Timestamp,
		&s.Product.ProductType,
		&s.Product.CargoValue,
		&s.Product.ShelfLifeFactor,
		&s.ChaosMode,
		&s.Destination,
		&s.DaysLeft,
		&s.Status,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ShipmentState{}, nil // no state yet
		}
		return models.ShipmentState{}, err
	}

	s.Telemetry.Timestamp = s.Telemetry.Timestamp.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, nil
}
