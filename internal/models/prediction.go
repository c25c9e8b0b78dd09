package models

// Shelf-life status tiers.
const (
	StatusNormal   = "NORMAL"
	StatusWarning  = "WARNING"
	StatusCritical = "CRITICAL"
)

// PredictionResult is the remaining-shelf-life estimate derived from the
// current telemetry and product profile. It is a pure projection and is
// never stored independently of its inputs.
type PredictionResult struct {
	DaysLeft float64 `json:"days_left"`
	Status   string  `json:"status"` // NORMAL | WARNING | CRITICAL
}
