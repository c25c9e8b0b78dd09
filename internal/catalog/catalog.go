// Package catalog holds the externalized configuration of the decision core:
// per-product shelf-life sensitivity and salvage profiles, the degraded
// telemetry applied in chaos mode, and the default candidate routes used for
// automatic triage. Values come from config.yml via viper, with built-in
// defaults so the service runs without a products section.
package catalog

import (
	"fmt"

	"github.com/spf13/viper"

	"coldchain/internal/models"
)

// Product is one catalog entry.
type Product struct {
	Name            string               `mapstructure:"name"`
	ShelfLifeFactor float64              `mapstructure:"shelf_life_factor"`
	RescuePoints    []models.RescuePoint `mapstructure:"rescue_points"`
}

// ChaosProfile is the synthetic telemetry applied when chaos mode engages,
// simulating a cooling-system failure.
type ChaosProfile struct {
	Temperature float64 `mapstructure:"temperature"`
	Humidity    float64 `mapstructure:"humidity"`
	Vibration   float64 `mapstructure:"vibration"`
}

// DefaultRoute is one candidate used for auto-triage when chaos mode turns
// the prediction critical without an operator-supplied reroute request.
type DefaultRoute struct {
	Name            string  `mapstructure:"name"`
	TravelTimeHours float64 `mapstructure:"travel_time_hours"`
	CapacityPct     float64 `mapstructure:"capacity_pct"`
}

// Catalog is the full externalized configuration.
type Catalog struct {
	Products       []Product      `mapstructure:"products"`
	Chaos          ChaosProfile   `mapstructure:"chaos"`
	DefaultRoutes  []DefaultRoute `mapstructure:"default_routes"`
	Destination    string         `mapstructure:"destination"`
	DefaultProduct string         `mapstructure:"default_product"`
}

// Load reads the catalog from the already-initialized viper config, falling
// back to built-in defaults for any missing section.
func Load() (*Catalog, error) {
	c := defaultCatalog()
	if viper.IsSet("catalog") {
		if err := viper.UnmarshalKey("catalog", c); err != nil {
			return nil, fmt.Errorf("parse catalog config: %w", err)
		}
	}
	for _, p := range c.Products {
		if !models.KnownProduct(p.Name) {
			return nil, fmt.Errorf("unknown product %q in catalog config", p.Name)
		}
	}
	if _, ok := c.Lookup(c.DefaultProduct); !ok {
		return nil, fmt.Errorf("default product %q has no catalog entry", c.DefaultProduct)
	}
	return c, nil
}

// Lookup returns the catalog entry for a product type.
func (c *Catalog) Lookup(productType string) (Product, bool) {
	for _, p := range c.Products {
		if p.Name == productType {
			return p, true
		}
	}
	return Product{}, false
}

// RescuePointsFor returns the salvage profile configured for a product, or
// nil when none is configured.
func (c *Catalog) RescuePointsFor(productType string) []models.RescuePoint {
	p, ok := c.Lookup(productType)
	if !ok {
		return nil
	}
	return p.RescuePoints
}

// ShelfLifeFactorFor returns the sensitivity factor for a product,
// defaulting to 1.0 for unknown products.
func (c *Catalog) ShelfLifeFactorFor(productType string) float64 {
	p, ok := c.Lookup(productType)
	if !ok || p.ShelfLifeFactor <= 0 {
		return 1.0
	}
	return p.ShelfLifeFactor
}

// CandidateRoutes converts the configured default routes for the evaluator.
func (c *Catalog) CandidateRoutes() []models.CandidateRoute {
	out := make([]models.CandidateRoute, 0, len(c.DefaultRoutes))
	for _, r := range c.DefaultRoutes {
		out = append(out, models.CandidateRoute{
			Name:            r.Name,
			TravelTimeHours: r.TravelTimeHours,
			CapacityPct:     r.CapacityPct,
		})
	}
	return out
}

func defaultCatalog() *Catalog {
	return &Catalog{
		Destination:    "Mumbai Premium Supermarket",
		DefaultProduct: models.ProductTomato,
		Chaos: ChaosProfile{
			Temperature: 42,
			Humidity:    90,
			Vibration:   1.8,
		},
		// Long-haul defaults: under a cooling failure none of these is
		// reachable before spoilage, so chaos reliably exercises triage.
		DefaultRoutes: []DefaultRoute{
			{Name: "Mumbai Premium Supermarket", TravelTimeHours: 12, CapacityPct: 100},
			{Name: "Center A", TravelTimeHours: 8, CapacityPct: 70},
			{Name: "Center B", TravelTimeHours: 10, CapacityPct: 65},
		},
		Products: []Product{
			{
				Name:            models.ProductTomato,
				ShelfLifeFactor: 1.0,
				RescuePoints: []models.RescuePoint{
					{Name: "Nashik Processing Unit", RescueType: "Processing", DistanceKm: 80, TravelTimeHours: 2, RescueValuePct: 40},
					{Name: "Local Mandi Pune", RescueType: "Wholesale Market", DistanceKm: 45, TravelTimeHours: 1.5, RescueValuePct: 35},
					{Name: "Panvel Cold Storage", RescueType: "Cold Storage", DistanceKm: 60, TravelTimeHours: 2, RescueValuePct: 30},
				},
			},
			{
				Name:            models.ProductPotato,
				ShelfLifeFactor: 2.5,
				RescuePoints: []models.RescuePoint{
					{Name: "Agra Chip Factory", RescueType: "Processing", DistanceKm: 110, TravelTimeHours: 3, RescueValuePct: 55},
					{Name: "Local Mandi Pune", RescueType: "Wholesale Market", DistanceKm: 45, TravelTimeHours: 1.5, RescueValuePct: 40},
				},
			},
			{
				Name:            models.ProductWheat,
				ShelfLifeFactor: 4.0,
				RescuePoints: []models.RescuePoint{
					{Name: "FCI Godown Khopoli", RescueType: "Dry Storage", DistanceKm: 70, TravelTimeHours: 2.5, RescueValuePct: 70},
					{Name: "Flour Mill Satara", RescueType: "Processing", DistanceKm: 130, TravelTimeHours: 4, RescueValuePct: 60},
				},
			},
			{
				Name:            models.ProductApple,
				ShelfLifeFactor: 1.8,
				RescuePoints: []models.RescuePoint{
					{Name: "Juice Plant Nashik", RescueType: "Processing", DistanceKm: 90, TravelTimeHours: 2.5, RescueValuePct: 45},
					{Name: "Panvel Cold Storage", RescueType: "Cold Storage", DistanceKm: 60, TravelTimeHours: 2, RescueValuePct: 50},
				},
			},
			{
				Name:            models.ProductBanana,
				ShelfLifeFactor: 0.8,
				RescuePoints: []models.RescuePoint{
					{Name: "Ripening Chamber Vashi", RescueType: "Ripening", DistanceKm: 35, TravelTimeHours: 1, RescueValuePct: 45},
					{Name: "Local Mandi Pune", RescueType: "Wholesale Market", DistanceKm: 45, TravelTimeHours: 1.5, RescueValuePct: 30},
				},
			},
		},
	}
}
