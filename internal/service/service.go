package service

import (
	"context"
	"time"

	"coldchain/internal/catalog"
	"coldchain/internal/models"
	"coldchain/internal/repository"
)

// Shipment is the decision orchestrator: it owns the single live session
// state and serializes every mutation.
type Shipment interface {
	SetTelemetry(ctx context.Context, reading models.TelemetryReading) (models.ShipmentState, error)
	ToggleChaos(ctx context.Context) (ChaosResult, error)
	RequestReroute(ctx context.Context, p RerouteParams) (models.RerouteResult, error)
	SetProduct(ctx context.Context, profile models.ProductProfile) (models.ShipmentState, error)
}

// Monitoring exposes read-only session state and derived values.
type Monitoring interface {
	GetState(ctx context.Context) (models.ShipmentState, error)
	GetPrediction(ctx context.Context) (models.PredictionResult, error)
	RescuePoints(ctx context.Context) ([]models.RescuePoint, error)
}

// EventLog exposes the append-only journal with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.ShipmentEvent, error)
}

// Export renders the accumulated telemetry history and the full report.
type Export interface {
	Telemetry(ctx context.Context, format string) ([]byte, error)
	Report(ctx context.Context, format string) ([]byte, error)
}

// Simulator runs the background loop that drifts telemetry between ticks.
// Stop via context cancellation in main() for graceful shutdown.
type Simulator interface {
	Run(ctx context.Context, tick time.Duration)
}

// RerouteParams mirrors the external reroute request: one road condition for
// the whole request, capacities for the alternate centers, travel time per
// leg in hours. The original destination is assumed to have capacity.
type RerouteParams struct {
	RoadCondition      string
	CapPctCenterA      float64
	CapPctCenterB      float64
	TravelTimeOriginal float64
	TravelTimeCenterA  float64
	TravelTimeCenterB  float64
}

// ChaosResult is the consolidated outcome of a chaos toggle, including the
// emergency triage payload when the crisis path engaged.
type ChaosResult struct {
	ChaosMode       bool                          `json:"chaos_mode"`
	Telemetry       models.TelemetryReading       `json:"telemetry"`
	DaysLeft        float64                       `json:"days_left"`
	Status          string                        `json:"status"`
	EmergencyRescue *models.EmergencyRescueResult `json:"emergency_rescue,omitempty"`
}

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", or one of the journal event types
}

// Service aggregates all sub-services.
type Service struct {
	Shipment
	Monitoring
	EventLog
	Export
	Simulator
	Stream *Hub
}

// NewService wires the repository layer and product catalog into concrete
// services sharing one broadcast hub.
func NewService(repos *repository.Repository, cat *catalog.Catalog) *Service {
	hub := NewHub()
	shipment := NewShipmentService(repos.StateRepo, repos.EventRepo, repos.SnapshotRepo, cat, hub)
	return &Service{
		Shipment:   shipment,
		Monitoring: shipment,
		EventLog:   NewEventLogService(repos.EventRepo),
		Export:     NewExportService(repos.SnapshotRepo, shipment, cat),
		Simulator:  NewSimulatorService(shipment, cat),
		Stream:     hub,
	}
}
