package models

// Road conditions applied to a reroute request.
const (
	RoadSmooth  = "Smooth"
	RoadTraffic = "Traffic"
	RoadBlocked = "Blocked"
)

// Candidate leg names as they appear in survival margin maps.
const (
	LegOriginal = "Original"
	LegCenterA  = "Center A"
	LegCenterB  = "Center B"
)

// CandidateRoute is one destination considered by the route evaluator.
// Road condition is request-level and applies to all candidates of one call.
type CandidateRoute struct {
	Name            string  `json:"name"`
	TravelTimeHours float64 `json:"travel_time"`  // hours, >= 0
	CapacityPct     float64 `json:"capacity_pct"` // 0..100
}

// RerouteResult is the outcome of evaluating all candidates against the
// current prediction. SurvivalMargins is keyed by leg name, in days; a
// negative margin means the cargo spoils before arrival.
type RerouteResult struct {
	BestCenter      string                 `json:"best_center"`
	Recommendation  string                 `json:"recommendation"`
	Status          string                 `json:"status"`
	DaysLeft        float64                `json:"days_left"`
	SurvivalMargins map[string]float64     `json:"survival_margins"`
	EmergencyRescue *EmergencyRescueResult `json:"emergency_rescue,omitempty"`
}
