package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"coldchain/internal/catalog"
	"coldchain/internal/models"
	"coldchain/internal/repository"
	"coldchain/internal/spoilage"
)

// Baseline cold-chain telemetry restored when chaos mode disengages.
const (
	baselineTempC      = 4.0
	baselineHumidity   = 60.0
	baselineVibration  = 0.2
	baselineDistanceKm = 200.0

	defaultCargoValue = 1_000_000
)

var (
	errUnknownProduct    = errors.New("unknown product type")
	errInvalidCargoValue = errors.New("cargo value must be > 0")
	errInvalidRoad       = errors.New("road condition must be Smooth, Traffic, or Blocked")
	errNegativeTravel    = errors.New("travel times must be >= 0")
)

// ShipmentService owns the live session state. A single mutex serializes all
// mutating operations so telemetry, product and prediction can never be read
// in an inconsistent combination.
type ShipmentService struct {
	mu sync.Mutex

	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	snapRepo  repository.SnapshotRepo
	catalog   *catalog.Catalog
	hub       *Hub

	// lastRescue caches the most recent triage outcome; it is invalidated
	// by product changes and by leaving chaos mode.
	lastRescue *models.EmergencyRescueResult
}

func NewShipmentService(stateRepo repository.StateRepo, eventRepo repository.EventRepo, snapRepo repository.SnapshotRepo, cat *catalog.Catalog, hub *Hub) *ShipmentService {
	return &ShipmentService{
		stateRepo: stateRepo,
		eventRepo: eventRepo,
		snapRepo:  snapRepo,
		catalog:   cat,
		hub:       hub,
	}
}

// baselineState seeds a session that has no persisted row yet.
func (s *ShipmentService) baselineState(now time.Time) models.ShipmentState {
	product := s.catalog.DefaultProduct
	return models.ShipmentState{
		ID: 1,
		Telemetry: models.TelemetryReading{
			Temperature: baselineTempC,
			Humidity:    baselineHumidity,
			Vibration:   baselineVibration,
			Distance:    baselineDistanceKm,
			Timestamp:   now,
		},
		Product: models.ProductProfile{
			ProductType:     product,
			CargoValue:      defaultCargoValue,
			ShelfLifeFactor: s.catalog.ShelfLifeFactorFor(product),
		},
		Destination: s.catalog.Destination,
		UpdatedAt:   now,
	}
}

// loadOrInit returns the current state, seeding the baseline on first use.
func (s *ShipmentService) loadOrInit(ctx context.Context, now time.Time) (models.ShipmentState, error) {
	st, err := s.stateRepo.Load(ctx)
	if err != nil {
		return models.ShipmentState{}, err
	}
	if st.ID == 0 {
		st = s.baselineState(now)
		pred := spoilage.Predict(st.Telemetry, st.Product)
		st.DaysLeft = pred.DaysLeft
		st.Status = pred.Status
	}
	return st, nil
}

// commit persists the state, journals the event, appends the export snapshot
// and publishes the stream update. State save failures abort; journal and
// snapshot writes are best-effort observability.
func (s *ShipmentService) commit(ctx context.Context, st models.ShipmentState, ev models.ShipmentEvent) (models.ShipmentState, error) {
	if err := s.stateRepo.Save(ctx, st); err != nil {
		return models.ShipmentState{}, err
	}
	if err := s.eventRepo.Append(ctx, ev); err != nil {
		return models.ShipmentState{}, err
	}
	_ = s.snapRepo.Append(ctx, models.SnapshotRecord{
		OccurredAt:  st.UpdatedAt,
		Temperature: st.Telemetry.Temperature,
		Humidity:    st.Telemetry.Humidity,
		Vibration:   st.Telemetry.Vibration,
		Distance:    st.Telemetry.Distance,
		DaysLeft:    st.DaysLeft,
		Status:      st.Status,
		ChaosMode:   st.ChaosMode,
		Destination: st.Destination,
	})
	s.hub.Publish(StreamUpdate{
		Telemetry:   st.Telemetry,
		DaysLeft:    st.DaysLeft,
		ChaosMode:   st.ChaosMode,
		Destination: st.Destination,
	})
	return st, nil
}

// SetTelemetry validates and stores a full sensor reading, recomputes the
// prediction and republishes the snapshot. On validation failure the prior
// state is left untouched.
func (s *ShipmentService) SetTelemetry(ctx context.Context, reading models.TelemetryReading) (models.ShipmentState, error) {
	if err := spoilage.ValidateReading(reading); err != nil {
		return models.ShipmentState{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if reading.Timestamp.IsZero() {
		reading.Timestamp = now
	} else {
		reading.Timestamp = reading.Timestamp.UTC()
	}

	st, err := s.loadOrInit(ctx, now)
	if err != nil {
		return models.ShipmentState{}, err
	}

	st.Telemetry = reading
	pred := spoilage.Predict(st.Telemetry, st.Product)
	st.DaysLeft = pred.DaysLeft
	st.Status = pred.Status
	st.UpdatedAt = now

	return s.commit(ctx, st, models.ShipmentEvent{
		OccurredAt:  now,
		Type:        models.EventTelemetry,
		Description: "Telemetry updated",
		Metadata: map[string]any{
			"temperature": reading.Temperature,
			"humidity":    reading.Humidity,
			"vibration":   reading.Vibration,
			"distance":    reading.Distance,
			"days_left":   st.DaysLeft,
			"status":      st.Status,
		},
	})
}

// ToggleChaos flips the simulated cooling-failure mode. Entering chaos
// applies the configured degraded telemetry; if the resulting prediction is
// critical and none of the configured default candidates is reachable, the
// rescue selector runs automatically and its result is embedded in the
// response. Leaving chaos restores the baseline reading and clears any
// cached rescue outcome.
func (s *ShipmentService) ToggleChaos(ctx context.Context) (ChaosResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	st, err := s.loadOrInit(ctx, now)
	if err != nil {
		return ChaosResult{}, err
	}

	st.ChaosMode = !st.ChaosMode

	var rescue *models.EmergencyRescueResult
	eventType := models.EventChaosOff
	description := "Cooling restored; telemetry back to baseline"

	if st.ChaosMode {
		eventType = models.EventChaosOn
		description = "Cooling failure simulated; sensors degraded"
		st.Telemetry = models.TelemetryReading{
			Temperature: s.catalog.Chaos.Temperature,
			Humidity:    s.catalog.Chaos.Humidity,
			Vibration:   s.catalog.Chaos.Vibration,
			Distance:    st.Telemetry.Distance,
			Timestamp:   now,
		}
	} else {
		st.Telemetry = models.TelemetryReading{
			Temperature: baselineTempC,
			Humidity:    baselineHumidity,
			Vibration:   baselineVibration,
			Distance:    st.Telemetry.Distance,
			Timestamp:   now,
		}
		st.Destination = s.catalog.Destination
		s.lastRescue = nil
	}

	pred := spoilage.Predict(st.Telemetry, st.Product)
	st.DaysLeft = pred.DaysLeft
	st.Status = pred.Status
	st.UpdatedAt = now

	if st.ChaosMode && pred.Status == models.StatusCritical {
		// Auto-triage: check the configured default candidates; when none
		// is reachable, fall back to the rescue selector.
		eval := EvaluateRoutes(pred, s.catalog.CandidateRoutes(), models.RoadSmooth)
		if eval.BestCenter == "" {
			r := SelectRescue(pred, st.Product, s.catalog.Destination, s.catalog.RescuePointsFor(st.Product.ProductType))
			rescue = &r
			s.lastRescue = &r
			if r.Viable {
				st.Destination = r.RescuePoint
			}
			_ = s.eventRepo.Append(ctx, models.ShipmentEvent{
				OccurredAt:  now,
				Type:        models.EventRescue,
				Description: rescueDescription(r),
				Metadata: map[string]any{
					"rescue_point":     r.RescuePoint,
					"rescue_value_pct": r.RescueValuePct,
					"loss_prevented":   r.LossPrevented,
					"viable":           r.Viable,
				},
			})
		}
	}

	st, err = s.commit(ctx, st, models.ShipmentEvent{
		OccurredAt:  now,
		Type:        eventType,
		Description: description,
		Metadata: map[string]any{
			"days_left": st.DaysLeft,
			"status":    st.Status,
		},
	})
	if err != nil {
		return ChaosResult{}, err
	}

	return ChaosResult{
		ChaosMode:       st.ChaosMode,
		Telemetry:       st.Telemetry,
		DaysLeft:        st.DaysLeft,
		Status:          st.Status,
		EmergencyRescue: rescue,
	}, nil
}

// RequestReroute evaluates the supplied candidates against the current
// prediction without mutating telemetry. The session destination follows
// the winning center (or the rescue point under triage). Identical requests
// against unchanged state yield identical results.
func (s *ShipmentService) RequestReroute(ctx context.Context, p RerouteParams) (models.RerouteResult, error) {
	if err := validateRerouteParams(p); err != nil {
		return models.RerouteResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	st, err := s.loadOrInit(ctx, now)
	if err != nil {
		return models.RerouteResult{}, err
	}

	pred := models.PredictionResult{DaysLeft: st.DaysLeft, Status: st.Status}
	result := EvaluateRoutes(pred, candidatesFromParams(p), p.RoadCondition)

	if result.BestCenter == "" {
		r := SelectRescue(pred, st.Product, s.catalog.Destination, s.catalog.RescuePointsFor(st.Product.ProductType))
		result.EmergencyRescue = &r
		s.lastRescue = &r
		if r.Viable {
			st.Destination = r.RescuePoint
		}
		_ = s.eventRepo.Append(ctx, models.ShipmentEvent{
			OccurredAt:  now,
			Type:        models.EventRescue,
			Description: rescueDescription(r),
			Metadata: map[string]any{
				"rescue_point":     r.RescuePoint,
				"rescue_value_pct": r.RescueValuePct,
				"loss_prevented":   r.LossPrevented,
				"viable":           r.Viable,
			},
		})
	} else if result.BestCenter == models.LegOriginal {
		st.Destination = s.catalog.Destination
	} else {
		st.Destination = result.BestCenter
	}
	st.UpdatedAt = now

	if _, err := s.commit(ctx, st, models.ShipmentEvent{
		OccurredAt:  now,
		Type:        models.EventReroute,
		Description: result.Recommendation,
		Metadata: map[string]any{
			"best_center":      result.BestCenter,
			"road_condition":   p.RoadCondition,
			"survival_margins": result.SurvivalMargins,
		},
	}); err != nil {
		return models.RerouteResult{}, err
	}

	return result, nil
}

// SetProduct updates the active product profile, recomputes the prediction
// with the product's sensitivity factor, and invalidates any previously
// computed rescue result.
func (s *ShipmentService) SetProduct(ctx context.Context, profile models.ProductProfile) (models.ShipmentState, error) {
	if !models.KnownProduct(profile.ProductType) {
		return models.ShipmentState{}, fmt.Errorf("%w: %q", errUnknownProduct, profile.ProductType)
	}
	if profile.CargoValue <= 0 {
		return models.ShipmentState{}, errInvalidCargoValue
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	st, err := s.loadOrInit(ctx, now)
	if err != nil {
		return models.ShipmentState{}, err
	}

	profile.ShelfLifeFactor = s.catalog.ShelfLifeFactorFor(profile.ProductType)
	st.Product = profile
	s.lastRescue = nil

	pred := spoilage.Predict(st.Telemetry, st.Product)
	st.DaysLeft = pred.DaysLeft
	st.Status = pred.Status
	st.UpdatedAt = now

	return s.commit(ctx, st, models.ShipmentEvent{
		OccurredAt:  now,
		Type:        models.EventProductChange,
		Description: "Product changed to " + profile.ProductType,
		Metadata: map[string]any{
			"product_type": profile.ProductType,
			"cargo_value":  profile.CargoValue,
			"days_left":    st.DaysLeft,
		},
	})
}

// GetState returns the latest session snapshot, seeding the baseline for an
// uninitialized session.
func (s *ShipmentService) GetState(ctx context.Context) (models.ShipmentState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadOrInit(ctx, time.Now().UTC())
}

// GetPrediction recomputes the prediction from the current telemetry and
// product; it is a pure projection and never stored independently.
func (s *ShipmentService) GetPrediction(ctx context.Context) (models.PredictionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.loadOrInit(ctx, time.Now().UTC())
	if err != nil {
		return models.PredictionResult{}, err
	}
	return spoilage.Predict(st.Telemetry, st.Product), nil
}

// RescuePoints lists the salvage profile configured for the active product.
func (s *ShipmentService) RescuePoints(ctx context.Context) ([]models.RescuePoint, error) {
	st, err := s.GetState(ctx)
	if err != nil {
		return nil, err
	}
	return s.catalog.RescuePointsFor(st.Product.ProductType), nil
}

func validateRerouteParams(p RerouteParams) error {
	switch p.RoadCondition {
	case models.RoadSmooth, models.RoadTraffic, models.RoadBlocked:
	default:
		return errInvalidRoad
	}
	if p.TravelTimeOriginal < 0 || p.TravelTimeCenterA < 0 || p.TravelTimeCenterB < 0 {
		return errNegativeTravel
	}
	return nil
}

func rescueDescription(r models.EmergencyRescueResult) string {
	if !r.Viable {
		return "No viable rescue point: total loss"
	}
	return fmt.Sprintf("Emergency triage: divert to %s (%.0f%% value recovered)", r.RescuePoint, r.RescueValuePct)
}
