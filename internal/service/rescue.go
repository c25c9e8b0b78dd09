package service

import (
	"sort"

	"coldchain/internal/models"
)

// SelectRescue chooses the salvage destination that maximizes recoverable
// cargo value among the points still reachable before total spoilage. It is
// invoked only after route evaluation found no feasible candidate. A point
// is reachable iff its travel time (in days) does not exceed the remaining
// shelf life. Ties on recovery percentage go to the shorter travel time.
//
// When nothing is reachable the result is the distinct total-loss outcome:
// Viable=false with zero recovery, never a best-of-nothing pick.
func SelectRescue(pred models.PredictionResult, product models.ProductProfile, originalDestination string, points []models.RescuePoint) models.EmergencyRescueResult {
	feasible := make([]models.RescuePoint, 0, len(points))
	for _, pt := range points {
		if pt.TravelTimeHours/hoursPerDay <= pred.DaysLeft {
			feasible = append(feasible, pt)
		}
	}

	if len(feasible) == 0 {
		return models.EmergencyRescueResult{
			OriginalDestination: originalDestination,
			Viable:              false,
			AllRescueOptions:    []models.RescuePoint{},
		}
	}

	// Descending recovery percentage, ties by lower travel time. The stable
	// sort keeps configuration order for exact duplicates, and the chosen
	// point ends up first.
	sort.SliceStable(feasible, func(i, j int) bool {
		if feasible[i].RescueValuePct != feasible[j].RescueValuePct {
			return feasible[i].RescueValuePct > feasible[j].RescueValuePct
		}
		return feasible[i].TravelTimeHours < feasible[j].TravelTimeHours
	})

	chosen := feasible[0]
	rescueValue := product.CargoValue * chosen.RescueValuePct / 100

	return models.EmergencyRescueResult{
		OriginalDestination: originalDestination,
		RescuePoint:         chosen.Name,
		RescueType:          chosen.RescueType,
		DistanceKm:          chosen.DistanceKm,
		TravelTimeHours:     chosen.TravelTimeHours,
		RescueValuePct:      chosen.RescueValuePct,
		RescueValue:         rescueValue,
		// Baseline is total loss (0% recovery), so everything recovered is
		// loss prevented.
		LossPrevented:    rescueValue,
		Viable:           true,
		AllRescueOptions: feasible,
	}
}
