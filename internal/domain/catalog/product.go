package catalog

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/tazamart/backend/internal/domain/shared"
)

// Category classifies a product in the storefront.
// The same enumeration is consumed by the catalog views and the admin
// form; it is declared once here and nowhere else.
type Category string

const (
	CategoryVegetables Category = "Vegetables"
	CategoryFruits     Category = "Fruits"
	CategoryBundles    Category = "Bundles"
	CategorySeasonal   Category = "Seasonal Deals"
)

// Categories lists all valid product categories
func Categories() []Category {
	return []Category{CategoryVegetables, CategoryFruits, CategoryBundles, CategorySeasonal}
}

// IsValid returns true if the category is one of the known values
func (c Category) IsValid() bool {
	switch c {
	case CategoryVegetables, CategoryFruits, CategoryBundles, CategorySeasonal:
		return true
	}
	return false
}

// Unit is the sales unit of a product. Quantities for kg-unit products
// are fractional in 0.25 steps, all other units are whole numbers.
type Unit string

const (
	UnitKg     Unit = "kg"
	UnitPiece  Unit = "piece"
	UnitBundle Unit = "bundle"
)

// Units lists all valid sales units
func Units() []Unit {
	return []Unit{UnitKg, UnitPiece, UnitBundle}
}

// IsValid returns true if the unit is one of the known values
func (u Unit) IsValid() bool {
	switch u {
	case UnitKg, UnitPiece, UnitBundle:
		return true
	}
	return false
}

// QuantityStep returns the increment the storefront offers for this unit
func (u Unit) QuantityStep() float64 {
	if u == UnitKg {
		return 0.25
	}
	return 1
}

// Product represents a single catalog entry. Identity is the numeric ID;
// the remote source may deliver ids as numeric-looking strings, which are
// normalized before a Product is constructed.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    Category        `json:"category"`
	Unit        Unit            `json:"unit"`
	Description string          `json:"description,omitempty"`
}

// NewProduct creates a validated product
func NewProduct(id int64, name string, price decimal.Decimal, image string, category Category, unit Unit, description string) (*Product, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown product category")
	}
	if !unit.IsValid() {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unknown sales unit")
	}

	return &Product{
		ID:          id,
		Name:        name,
		Price:       price,
		Image:       image,
		Category:    category,
		Unit:        unit,
		Description: description,
	}, nil
}

// CartItem is a product plus the quantity placed in the cart. Cart items
// live only in session state and inside order snapshots; they are never
// pushed to the remote source on their own.
type CartItem struct {
	Product
	Quantity float64 `json:"quantity"`
}

// Subtotal returns price multiplied by quantity
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromFloat(i.Quantity))
}

// RoundQuantity rounds a cart quantity to 2 decimal places. Every additive
// cart mutation goes through this so repeated fractional kg additions do
// not accumulate floating-point drift.
func RoundQuantity(q float64) float64 {
	return math.Round(q*100) / 100
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
