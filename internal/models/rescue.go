package models

// RescuePoint is a configured fallback destination that can recover part of
// the cargo value when no distribution center is reachable in time.
type RescuePoint struct {
	Name            string  `json:"name" mapstructure:"name"`
	RescueType      string  `json:"rescue_type" mapstructure:"rescue_type"` // e.g. Processing, Wholesale Market, Cold Storage
	DistanceKm      float64 `json:"distance" mapstructure:"distance"`
	TravelTimeHours float64 `json:"travel_time" mapstructure:"travel_time"`           // hours
	RescueValuePct  float64 `json:"rescue_value_pct" mapstructure:"rescue_value_pct"` // 0..100
}

// EmergencyRescueResult is the triage outcome when no candidate route is
// feasible. Viable=false is the distinct total-loss condition: no rescue
// point was reachable before spoilage and all monetary fields are zero.
type EmergencyRescueResult struct {
	OriginalDestination string        `json:"original_destination"`
	RescuePoint         string        `json:"rescue_point"`
	RescueType          string        `json:"rescue_type"`
	DistanceKm          float64       `json:"distance"`
	TravelTimeHours     float64       `json:"travel_time"`
	RescueValuePct      float64       `json:"rescue_value_pct"`
	RescueValue         float64       `json:"rescue_value"`   // cargo_value * pct / 100
	LossPrevented       float64       `json:"loss_prevented"` // baseline is 0% recovery
	Viable              bool          `json:"viable"`
	AllRescueOptions    []RescuePoint `json:"all_rescue_options"` // pct desc, chosen first
}
