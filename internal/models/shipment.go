package models

import "time"

// ShipmentState is the current snapshot of the monitored shipment session.
type ShipmentState struct {
	ID          int              `json:"id"`
	Telemetry   TelemetryReading `json:"telemetry"`
	Product     ProductProfile   `json:"product"`
	ChaosMode   bool             `json:"chaos_mode"`
	Destination string           `json:"destination"`
	DaysLeft    float64          `json:"days_left"`
	Status      string           `json:"status"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ShipmentEvent is a single journal entry.
type ShipmentEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // TELEMETRY | CHAOS_ON | CHAOS_OFF | REROUTE | RESCUE | PRODUCT_CHANGE
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}

// Journal event types.
const (
	EventTelemetry     = "TELEMETRY"
	EventChaosOn       = "CHAOS_ON"
	EventChaosOff      = "CHAOS_OFF"
	EventReroute       = "REROUTE"
	EventRescue        = "RESCUE"
	EventProductChange = "PRODUCT_CHANGE"
)

// SnapshotRecord is one row of the append-only telemetry history backing
// the export endpoints.
type SnapshotRecord struct {
	OccurredAt  time.Time `json:"occurred_at"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	Vibration   float64   `json:"vibration"`
	Distance    float64   `json:"distance"`
	DaysLeft    float64   `json:"days_left"`
	Status      string    `json:"status"`
	ChaosMode   bool      `json:"chaos_mode"`
	Destination string    `json:"destination"`
}
