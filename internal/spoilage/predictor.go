// Package spoilage implements the shelf-life degradation model for perishable
// cargo. It is deliberately free of service dependencies so that degraded-mode
// consumers can re-derive predictions with the exact same formula.
package spoilage

import (
	"errors"
	"math"

	"coldchain/internal/models"
)

// Model constants.
const (
	IdealTempC        = 4.0 // refrigerated transport target
	BaseShelfLifeDays = 7.0

	// Vibration above this threshold applies a step penalty; impact-free
	// shipping is rewarded with no penalty at all.
	VibrationThresholdG = 0.5
	vibrationPenalty    = 1.5

	// Status thresholds on days left (closed-open intervals: 2.0 is WARNING,
	// 5.0 is NORMAL).
	CriticalBelowDays = 2.0
	NormalFromDays    = 5.0

	// Humidity enters the model linearly; the factor is floored to keep the
	// quotient defined should an out-of-domain reading slip through.
	minHumidityFactor = 0.01
)

// Validation errors for malformed readings.
var (
	ErrNonFinite         = errors.New("telemetry values must be finite")
	ErrHumidityRange     = errors.New("humidity must be within [0, 100]")
	ErrNegativeVibration = errors.New("vibration must be >= 0")
	ErrNegativeDistance  = errors.New("distance must be >= 0")
)

// ValidateReading checks a reading against the sensor domain. It is the
// single validation authority used by both the orchestrator and the HTTP
// layer.
func ValidateReading(r models.TelemetryReading) error {
	for _, v := range []float64{r.Temperature, r.Humidity, r.Vibration, r.Distance} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNonFinite
		}
	}
	if r.Humidity < 0 || r.Humidity > 100 {
		return ErrHumidityRange
	}
	if r.Vibration < 0 {
		return ErrNegativeVibration
	}
	if r.Distance < 0 {
		return ErrNegativeDistance
	}
	return nil
}

// TemperatureFactor halves the shelf life per 10 °C above the ideal and
// doubles it per 10 °C below (Arrhenius-like approximation).
func TemperatureFactor(tempC float64) float64 {
	if tempC > IdealTempC {
		return math.Pow(2, (tempC-IdealTempC)/10)
	}
	return 1.0 / math.Pow(2, (IdealTempC-tempC)/10)
}

// HumidityFactor is linear around the 60% pivot: drier air extends shelf
// life, moister air shortens it.
func HumidityFactor(humidityPct float64) float64 {
	f := 1 + (humidityPct-60)/100
	if f < minHumidityFactor {
		f = minHumidityFactor
	}
	return f
}

// VibrationFactor applies the step penalty for rough handling.
func VibrationFactor(vibrationG float64) float64 {
	if vibrationG > VibrationThresholdG {
		return vibrationPenalty
	}
	return 1.0
}

// Classify maps remaining days to a status tier.
func Classify(daysLeft float64) string {
	switch {
	case daysLeft < CriticalBelowDays:
		return models.StatusCritical
	case daysLeft < NormalFromDays:
		return models.StatusWarning
	default:
		return models.StatusNormal
	}
}

// Predict estimates remaining shelf life for a reading and product. It is
// pure and total for readings that pass ValidateReading. A zero
// ShelfLifeFactor is treated as unscaled.
func Predict(r models.TelemetryReading, p models.ProductProfile) models.PredictionResult {
	base := BaseShelfLifeDays
	if p.ShelfLifeFactor > 0 {
		base *= p.ShelfLifeFactor
	}

	days := base / (TemperatureFactor(r.Temperature) * VibrationFactor(r.Vibration) * HumidityFactor(r.Humidity))
	if days < 0 {
		days = 0
	}

	return models.PredictionResult{
		DaysLeft: days,
		Status:   Classify(days),
	}
}
