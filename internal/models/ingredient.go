package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ingredient is a purchasable supply (beans, milk, cups...). Cost is tracked
// per base unit and derived from the pack the supplier sells it in.
type Ingredient struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Name            string          `gorm:"not null;index" json:"name"`
	Category        string          `gorm:"not null" json:"category"`  // see IngredientCategories
	BaseUnit        string          `gorm:"not null" json:"base_unit"` // see BaseUnits
	PackSize        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"pack_size"`
	PackPrice       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"pack_price"`
	CostPerBaseUnit decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"cost_per_base_unit"`
	Notes           string          `gorm:"size:500" json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// IngredientCategories is the closed set of supply categories.
var IngredientCategories = []string{"beans", "milk", "syrup", "packaging", "sauce", "powder", "topping"}

// BaseUnits is the closed set of units an ingredient's cost can be tracked in.
var BaseUnits = []string{"g", "ml", "pc", "kg", "l"}

var unitDisplayNames = map[string]string{
	"g":  "grams",
	"ml": "milliliters",
	"pc": "pieces",
	"kg": "kilograms",
	"l":  "liters",
}

// CalculateCostPerBaseUnit derives the per-unit cost from the pack data.
// An ingredient without a usable pack size prices at zero rather than failing:
// it simply cannot be costed yet.
func (i *Ingredient) CalculateCostPerBaseUnit() {
	if i.PackSize.IsPositive() {
		i.CostPerBaseUnit = i.PackPrice.DivRound(i.PackSize, 4)
		return
	}
	i.CostPerBaseUnit = decimal.Zero
}

// BeforeSave keeps the derived cost in sync on every create/update.
func (i *Ingredient) BeforeSave(_ *gorm.DB) error {
	i.CalculateCostPerBaseUnit()
	return nil
}

// CostForQuantity returns the cost of the given quantity in base units,
// rounded to centavos. Non-positive quantities cost nothing.
func (i *Ingredient) CostForQuantity(quantity decimal.Decimal) decimal.Decimal {
	if !quantity.IsPositive() {
		return decimal.Zero
	}
	return i.CostPerBaseUnit.Mul(quantity).Round(2)
}

// UnitDisplayName expands the base unit symbol for display.
func (i *Ingredient) UnitDisplayName() string {
	if name, ok := unitDisplayNames[strings.ToLower(i.BaseUnit)]; ok {
		return name
	}
	return "units"
}

// HasValidCategory reports whether the category belongs to the closed set.
func (i *Ingredient) HasValidCategory() bool {
	return ValidIngredientCategory(i.Category)
}

// ValidIngredientCategory reports membership in IngredientCategories,
// case-insensitively.
func ValidIngredientCategory(category string) bool {
	c := strings.ToLower(category)
	for _, known := range IngredientCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ValidBaseUnit reports membership in BaseUnits, case-insensitively.
func ValidBaseUnit(unit string) bool {
	u := strings.ToLower(unit)
	for _, known := range BaseUnits {
		if u == known {
			return true
		}
	}
	return false
}
