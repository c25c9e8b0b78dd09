package service

import (
	"context"
	"math/rand"
	"time"

	"coldchain/internal/catalog"
	"coldchain/internal/models"
)

// ----------- Simulation constants -----------
const (
	// Per-tick drift toward the target profile; the remainder of the gap is
	// carried to the next tick so transitions look gradual.
	driftRate = 0.15

	// Sensor jitter amplitudes (uniform, centered).
	tempJitterC      = 0.3
	humidityJitter   = 1.0
	vibrationJitter  = 0.05
	truckSpeedKmH    = 40.0
	minSimVibrationG = 0.0
)

// SimulatorService drifts the shipment telemetry over time: toward the
// nominal cold-chain profile in normal operation, toward the configured
// degraded profile under chaos mode. Every tick goes through the
// orchestrator so journaling, history and streaming stay uniform.
type SimulatorService struct {
	shipment   Shipment
	monitoring Monitoring
	catalog    *catalog.Catalog
	rng        *rand.Rand
}

// NewSimulatorService returns a simulator with defaults.
func NewSimulatorService(shipment interface {
	Shipment
	Monitoring
}, cat *catalog.Catalog) *SimulatorService {
	return &SimulatorService{
		shipment:   shipment,
		monitoring: shipment,
		catalog:    cat,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run ticks at the given interval until ctx is canceled.
func (s *SimulatorService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			st, err := s.monitoring.GetState(ctx)
			if err != nil {
				continue
			}
			next := s.step(st, now.UTC(), tick)
			// Best-effort: a failed tick is dropped, the next one resamples.
			_, _ = s.shipment.SetTelemetry(ctx, next)
		}
	}
}

// step produces the next reading from the current one.
func (s *SimulatorService) step(st models.ShipmentState, now time.Time, tick time.Duration) models.TelemetryReading {
	target := models.TelemetryReading{
		Temperature: baselineTempC,
		Humidity:    baselineHumidity,
		Vibration:   baselineVibration,
	}
	if st.ChaosMode {
		target = models.TelemetryReading{
			Temperature: s.catalog.Chaos.Temperature,
			Humidity:    s.catalog.Chaos.Humidity,
			Vibration:   s.catalog.Chaos.Vibration,
		}
	}

	cur := st.Telemetry
	next := models.TelemetryReading{
		Temperature: drift(cur.Temperature, target.Temperature) + s.jitter(tempJitterC),
		Humidity:    clamp(drift(cur.Humidity, target.Humidity)+s.jitter(humidityJitter), 0, 100),
		Vibration:   drift(cur.Vibration, target.Vibration) + s.jitter(vibrationJitter),
		Distance:    cur.Distance - truckSpeedKmH*tick.Hours(),
		Timestamp:   now,
	}
	if next.Vibration < minSimVibrationG {
		next.Vibration = minSimVibrationG
	}
	if next.Distance < 0 {
		next.Distance = 0
	}
	return next
}

func (s *SimulatorService) jitter(amplitude float64) float64 {
	return (s.rng.Float64()*2 - 1) * amplitude
}

func drift(cur, target float64) float64 {
	return cur + (target-cur)*driftRate
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
