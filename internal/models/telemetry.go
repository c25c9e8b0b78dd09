package models

import "time"

// TelemetryReading is one timestamped sensor sample for the shipment.
type TelemetryReading struct {
	Temperature float64   `json:"temperature"` // °C
	Humidity    float64   `json:"humidity"`    // % relative, 0..100
	Vibration   float64   `json:"vibration"`   // G
	Distance    float64   `json:"distance"`    // km to destination
	Timestamp   time.Time `json:"timestamp"`
}
