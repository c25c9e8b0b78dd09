package service

import (
	"testing"

	"coldchain/internal/models"
)

func tomatoPoints() []models.RescuePoint {
	return []models.RescuePoint{
		{Name: "Nashik Processing Unit", RescueType: "Processing", DistanceKm: 80, TravelTimeHours: 2, RescueValuePct: 40},
		{Name: "Local Mandi Pune", RescueType: "Wholesale Market", DistanceKm: 45, TravelTimeHours: 1.5, RescueValuePct: 35},
		{Name: "Panvel Cold Storage", RescueType: "Cold Storage", DistanceKm: 60, TravelTimeHours: 2, RescueValuePct: 30},
	}
}

func TestSelectRescue_MonetaryAccounting(t *testing.T) {
	product := models.ProductProfile{ProductType: models.ProductTomato, CargoValue: 1_000_000}

	got := SelectRescue(pred(0.5, models.StatusCritical), product, "Mumbai Premium Supermarket", tomatoPoints())

	if !got.Viable {
		t.Fatalf("expected a viable rescue")
	}
	if got.RescuePoint != "Nashik Processing Unit" || got.RescueValuePct != 40 {
		t.Fatalf("expected the 40%% point, got %s (%v%%)", got.RescuePoint, got.RescueValuePct)
	}
	if got.RescueValue != 400_000 {
		t.Fatalf("expected rescue value 400000, got %v", got.RescueValue)
	}
	if got.LossPrevented != 400_000 {
		t.Fatalf("expected loss prevented 400000, got %v", got.LossPrevented)
	}
	if got.OriginalDestination != "Mumbai Premium Supermarket" {
		t.Fatalf("unexpected original destination: %s", got.OriginalDestination)
	}
}

func TestSelectRescue_OptionsSortedChosenFirst(t *testing.T) {
	product := models.ProductProfile{ProductType: models.ProductTomato, CargoValue: 500_000}

	got := SelectRescue(pred(0.5, models.StatusCritical), product, "Mumbai", tomatoPoints())

	if len(got.AllRescueOptions) != 3 {
		t.Fatalf("expected all 3 feasible options, got %d", len(got.AllRescueOptions))
	}
	if got.AllRescueOptions[0].Name != got.RescuePoint {
		t.Fatalf("chosen point must be first, got %s", got.AllRescueOptions[0].Name)
	}
	for i := 1; i < len(got.AllRescueOptions); i++ {
		if got.AllRescueOptions[i].RescueValuePct > got.AllRescueOptions[i-1].RescueValuePct {
			t.Fatalf("options not sorted by descending pct: %+v", got.AllRescueOptions)
		}
	}
}

func TestSelectRescue_FiltersUnreachablePoints(t *testing.T) {
	product := models.ProductProfile{ProductType: models.ProductTomato, CargoValue: 1_000_000}

	// 0.07 days ≈ 1.68h: only the 1.5h point remains reachable.
	got := SelectRescue(pred(0.07, models.StatusCritical), product, "Mumbai", tomatoPoints())

	if !got.Viable {
		t.Fatalf("expected a viable rescue")
	}
	if got.RescuePoint != "Local Mandi Pune" {
		t.Fatalf("expected the only reachable point, got %s", got.RescuePoint)
	}
	if len(got.AllRescueOptions) != 1 {
		t.Fatalf("expected 1 option, got %d", len(got.AllRescueOptions))
	}
}

func TestSelectRescue_TieBreakByTravelTime(t *testing.T) {
	product := models.ProductProfile{ProductType: models.ProductApple, CargoValue: 100_000}
	points := []models.RescuePoint{
		{Name: "Far Plant", RescueType: "Processing", TravelTimeHours: 4, RescueValuePct: 50},
		{Name: "Near Plant", RescueType: "Processing", TravelTimeHours: 2, RescueValuePct: 50},
	}

	got := SelectRescue(pred(1, models.StatusCritical), product, "Mumbai", points)
	if got.RescuePoint != "Near Plant" {
		t.Fatalf("expected travel-time tie-break, got %s", got.RescuePoint)
	}
}

func TestSelectRescue_NoViableRescueIsDistinct(t *testing.T) {
	product := models.ProductProfile{ProductType: models.ProductTomato, CargoValue: 1_000_000}

	// Nothing reachable within 0.01 days (~14 minutes).
	got := SelectRescue(pred(0.01, models.StatusCritical), product, "Mumbai", tomatoPoints())

	if got.Viable {
		t.Fatalf("expected no viable rescue")
	}
	if got.RescueValuePct != 0 || got.RescueValue != 0 || got.LossPrevented != 0 {
		t.Fatalf("total loss must report zeros, got %+v", got)
	}
	if got.RescuePoint != "" {
		t.Fatalf("total loss must not name a rescue point, got %s", got.RescuePoint)
	}
	if len(got.AllRescueOptions) != 0 {
		t.Fatalf("expected no options, got %d", len(got.AllRescueOptions))
	}

	// A genuine 0%-value rescue stays distinguishable via Viable.
	zeroValue := SelectRescue(pred(1, models.StatusCritical), product, "Mumbai",
		[]models.RescuePoint{{Name: "Compost Yard", RescueType: "Disposal", TravelTimeHours: 1, RescueValuePct: 0}})
	if !zeroValue.Viable {
		t.Fatalf("0%%-value rescue is still viable")
	}
}
