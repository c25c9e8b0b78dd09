package service

import (
	"fmt"

	"coldchain/internal/models"
)

// Road-condition travel-time multipliers. A Blocked road makes every
// candidate of the request infeasible regardless of margin; its reported
// margins use the nominal multiplier so the payload stays representable.
const (
	roadMultiplierSmooth  = 1.0
	roadMultiplierTraffic = 1.3

	hoursPerDay = 24.0
)

// Recommendation texts surfaced to operators.
const (
	recommendMaintain   = "Maintain current route"
	recommendReroutePfx = "Reroute to "
)

func roadMultiplier(roadCondition string) float64 {
	if roadCondition == models.RoadTraffic {
		return roadMultiplierTraffic
	}
	return roadMultiplierSmooth
}

// survivalMargin is the predicted remaining shelf life minus the adjusted
// travel time, in days. Negative means the cargo spoils before arrival.
func survivalMargin(daysLeft, travelTimeHours, multiplier float64) float64 {
	return daysLeft - travelTimeHours*multiplier/hoursPerDay
}

// EvaluateRoutes scores every candidate and selects the best feasible one.
// Feasibility requires free capacity, a non-negative margin under the
// request's road condition, and an unblocked road. Ties go to the lower
// travel time, then to declaration order. When nothing is feasible the
// result is CRITICAL with no best center; margins are still reported for
// observability and the caller is expected to run emergency triage.
func EvaluateRoutes(pred models.PredictionResult, candidates []models.CandidateRoute, roadCondition string) models.RerouteResult {
	blocked := roadCondition == models.RoadBlocked
	mult := roadMultiplier(roadCondition)

	margins := make(map[string]float64, len(candidates))
	bestIdx := -1
	for i, c := range candidates {
		m := survivalMargin(pred.DaysLeft, c.TravelTimeHours, mult)
		margins[c.Name] = m

		feasible := !blocked && c.CapacityPct > 0 && m >= 0
		if !feasible {
			continue
		}
		if bestIdx < 0 {
			bestIdx = i
			continue
		}
		best := candidates[bestIdx]
		switch {
		case m > margins[best.Name]:
			bestIdx = i
		case m == margins[best.Name] && c.TravelTimeHours < best.TravelTimeHours:
			bestIdx = i
		}
	}

	if bestIdx < 0 {
		return models.RerouteResult{
			Recommendation:  "No feasible route: emergency triage required",
			Status:          models.StatusCritical,
			DaysLeft:        pred.DaysLeft,
			SurvivalMargins: margins,
		}
	}

	best := candidates[bestIdx]
	recommendation := recommendMaintain
	if bestIdx != 0 {
		recommendation = fmt.Sprintf("%s%s", recommendReroutePfx, best.Name)
	}
	return models.RerouteResult{
		BestCenter:      best.Name,
		Recommendation:  recommendation,
		Status:          pred.Status,
		DaysLeft:        pred.DaysLeft,
		SurvivalMargins: margins,
	}
}

// candidatesFromParams expands the wire-level reroute request into the three
// fixed legs. The original destination is assumed to have receiving
// capacity; the request only carries capacity for the alternate centers.
func candidatesFromParams(p RerouteParams) []models.CandidateRoute {
	return []models.CandidateRoute{
		{Name: models.LegOriginal, TravelTimeHours: p.TravelTimeOriginal, CapacityPct: 100},
		{Name: models.LegCenterA, TravelTimeHours: p.TravelTimeCenterA, CapacityPct: p.CapPctCenterA},
		{Name: models.LegCenterB, TravelTimeHours: p.TravelTimeCenterB, CapacityPct: p.CapPctCenterB},
	}
}
