package repository

import (
	"context"
	"database/sql"
	"time"

	"coldchain/internal/models"
	"coldchain/internal/repository/db"
)

// InitDB opens the backing SQLite file and bootstraps the schema.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}

type StateRepo interface {
	Save(ctx context.Context, s models.ShipmentState) error
	Load(ctx context.Context) (models.ShipmentState, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.ShipmentEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.ShipmentEvent, error)
}

// SnapshotRepo is the append-only telemetry history backing the export
// endpoints.
type SnapshotRepo interface {
	Append(ctx context.Context, rec models.SnapshotRecord) error
	List(ctx context.Context) ([]models.SnapshotRecord, error)
}

type Repository struct {
	StateRepo    StateRepo
	EventRepo    EventRepo
	SnapshotRepo SnapshotRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		StateRepo:    NewStateSQLite(db),
		EventRepo:    NewEventSQLite(db),
		SnapshotRepo: NewSnapshotSQLite(db),
	}
}
