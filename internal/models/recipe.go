package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Recipe is a priced drink. It owns its ingredient lines: adding or removing
// a line always re-runs the full cost and margin chain, so the derived fields
// below are never stale relative to the lines.
type Recipe struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	DrinkName   string             `gorm:"not null;index" json:"drink_name"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients"`

	TotalCost             decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"total_cost"`
	TargetMarginPercent   decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"target_margin_percent"`
	SuggestedSellingPrice decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"suggested_selling_price"`
	GrossProfit           decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"gross_profit"`
	ActualMarginPercent   decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"actual_margin_percent"`

	// Overhead allocation outputs; updated only by an explicit allocation run.
	AllocatedExpensePerItem decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"allocated_expense_per_item"`
	NetProfit               decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"net_profit"`
	NetMarginPercent        decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"net_margin_percent"`
	FinalSellingPrice       decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"final_selling_price"`

	Notes     string    `gorm:"size:1000" json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecipeIngredient is one line of a recipe: a quantity of an ingredient in
// that ingredient's base unit. Lines have no lifecycle of their own; the
// owning recipe creates and deletes them.
type RecipeIngredient struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	RecipeID     uint            `gorm:"not null;index" json:"recipe_id"`
	IngredientID uint            `gorm:"not null" json:"ingredient_id"`
	Ingredient   Ingredient      `gorm:"foreignKey:IngredientID" json:"ingredient"`
	Quantity     decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity"`
	LineCost     decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"line_cost"`
}

var oneHundred = decimal.NewFromInt(100)

// CalculateLineCost derives the line's cost contribution. A line whose
// ingredient is not loaded or whose quantity is not positive costs zero.
func (ri *RecipeIngredient) CalculateLineCost() {
	if ri.Ingredient.ID == 0 || !ri.Quantity.IsPositive() {
		ri.LineCost = decimal.Zero
		return
	}
	ri.LineCost = ri.Ingredient.CostPerBaseUnit.Mul(ri.Quantity).Round(2)
}

// FormattedQuantity renders the quantity with its unit symbol.
func (ri *RecipeIngredient) FormattedQuantity() string {
	if ri.Ingredient.ID != 0 {
		return ri.Quantity.String() + " " + ri.Ingredient.BaseUnit
	}
	return ri.Quantity.String()
}

// CalculateCosts recomputes every line cost, the total, and the margin-derived
// pricing fields. The total is always rebuilt from scratch; incremental
// patching would drift after line mutations.
func (r *Recipe) CalculateCosts() {
	total := decimal.Zero
	for i := range r.Ingredients {
		line := &r.Ingredients[i]
		line.CalculateLineCost()
		total = total.Add(line.LineCost)
	}
	r.TotalCost = total
	r.CalculateSuggestedSellingPrice()
}

// CalculateSuggestedSellingPrice derives the price that achieves the target
// margin: price = cost / (1 - margin/100). A margin at or above 100% has no
// feasible price, so the drink is priced at cost with zero profit.
func (r *Recipe) CalculateSuggestedSellingPrice() {
	if !r.TotalCost.IsPositive() || !r.TargetMarginPercent.IsPositive() {
		return
	}
	marginFraction := r.TargetMarginPercent.DivRound(oneHundred, 4)
	divisor := decimal.NewFromInt(1).Sub(marginFraction)
	if divisor.IsPositive() {
		r.SuggestedSellingPrice = r.TotalCost.DivRound(divisor, 2)
		r.GrossProfit = r.SuggestedSellingPrice.Sub(r.TotalCost).Round(2)
		if r.SuggestedSellingPrice.IsPositive() {
			r.ActualMarginPercent = r.GrossProfit.DivRound(r.SuggestedSellingPrice, 4).Mul(oneHundred).Round(2)
		}
		return
	}
	r.SuggestedSellingPrice = r.TotalCost
	r.GrossProfit = decimal.Zero
	r.ActualMarginPercent = decimal.Zero
}

// ApplyExpenseAllocation folds a per-item overhead share into the recipe:
// net profit, net margin, and a final price that covers ingredients plus
// overhead at the target margin.
func (r *Recipe) ApplyExpenseAllocation(expensePerItem decimal.Decimal) {
	r.AllocatedExpensePerItem = expensePerItem
	r.NetProfit = r.GrossProfit.Sub(expensePerItem).Round(2)

	if r.SuggestedSellingPrice.IsPositive() {
		r.NetMarginPercent = r.NetProfit.DivRound(r.SuggestedSellingPrice, 4).Mul(oneHundred).Round(2)
	} else {
		r.NetMarginPercent = decimal.Zero
	}

	costWithOverhead := r.TotalCost.Add(expensePerItem)
	if r.TargetMarginPercent.IsPositive() {
		marginFraction := r.TargetMarginPercent.DivRound(oneHundred, 4)
		divisor := decimal.NewFromInt(1).Sub(marginFraction)
		if divisor.IsPositive() {
			r.FinalSellingPrice = costWithOverhead.DivRound(divisor, 2)
		} else {
			r.FinalSellingPrice = costWithOverhead
		}
		return
	}
	r.FinalSellingPrice = r.SuggestedSellingPrice
}

// IsComplete reports whether the recipe has the minimum data to be priced.
func (r *Recipe) IsComplete() bool {
	hasName := strings.TrimSpace(r.DrinkName) != ""
	hasIngredients := len(r.Ingredients) > 0
	hasMargin := r.TargetMarginPercent.IsPositive()
	return hasName && hasIngredients && hasMargin
}

// IngredientCountByCategory counts lines whose ingredient belongs to the
// given category (case-insensitive).
func (r *Recipe) IngredientCountByCategory(category string) int {
	count := 0
	for i := range r.Ingredients {
		ing := &r.Ingredients[i].Ingredient
		if ing.ID != 0 && strings.EqualFold(ing.Category, category) {
			count++
		}
	}
	return count
}
