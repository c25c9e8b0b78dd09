package models

// Supported product types.
const (
	ProductTomato = "Tomato"
	ProductPotato = "Potato"
	ProductWheat  = "Wheat"
	ProductApple  = "Apple"
	ProductBanana = "Banana"
)

// ProductProfile identifies the cargo being shipped and its monetary value.
type ProductProfile struct {
	ProductType string  `json:"product_type"` // Tomato | Potato | Wheat | Apple | Banana
	CargoValue  float64 `json:"cargo_value"`  // monetary, > 0

	// ShelfLifeFactor scales the base shelf life for the product
	// (configuration data, 0 means unscaled).
	ShelfLifeFactor float64 `json:"shelf_life_factor,omitempty"`
}

// KnownProduct reports whether name is one of the supported product types.
func KnownProduct(name string) bool {
	switch name {
	case ProductTomato, ProductPotato, ProductWheat, ProductApple, ProductBanana:
		return true
	}
	return false
}
