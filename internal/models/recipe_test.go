package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func beansIngredient(t *testing.T) Ingredient {
	t.Helper()
	ing := Ingredient{ID: 1, Name: "Arabica Beans", Category: "beans", BaseUnit: "g", PackSize: dec(t, "1000"), PackPrice: dec(t, "800")}
	ing.CalculateCostPerBaseUnit()
	return ing
}

func TestCalculateLineCost(t *testing.T) {
	ing := beansIngredient(t)
	line := RecipeIngredient{Ingredient: ing, IngredientID: ing.ID, Quantity: dec(t, "18")}
	line.CalculateLineCost()
	if !line.LineCost.Equal(dec(t, "14.4")) {
		t.Fatalf("expected 14.40 got %s", line.LineCost)
	}

	// Missing ingredient reference costs zero.
	orphan := RecipeIngredient{Quantity: dec(t, "18")}
	orphan.CalculateLineCost()
	if !orphan.LineCost.IsZero() {
		t.Fatalf("expected zero for orphan line got %s", orphan.LineCost)
	}

	// Non-positive quantity costs zero.
	line.Quantity = decimal.Zero
	line.CalculateLineCost()
	if !line.LineCost.IsZero() {
		t.Fatalf("expected zero for zero quantity got %s", line.LineCost)
	}
}

func TestCalculateCostsFullChain(t *testing.T) {
	ing := beansIngredient(t)
	r := Recipe{
		DrinkName:           "Americano",
		TargetMarginPercent: dec(t, "30"),
		Ingredients: []RecipeIngredient{
			{Ingredient: ing, IngredientID: ing.ID, Quantity: dec(t, "30.5")},
		},
	}
	r.CalculateCosts()

	// 30.5 g at 0.8000/g = 24.40; price = 24.40 / 0.70 = 34.86.
	if !r.TotalCost.Equal(dec(t, "24.4")) {
		t.Fatalf("total: expected 24.40 got %s", r.TotalCost)
	}
	if !r.SuggestedSellingPrice.Equal(dec(t, "34.86")) {
		t.Fatalf("price: expected 34.86 got %s", r.SuggestedSellingPrice)
	}
	if !r.GrossProfit.Equal(dec(t, "10.46")) {
		t.Fatalf("gross profit: expected 10.46 got %s", r.GrossProfit)
	}
	// 10.46 / 34.86 = 0.3001 at four places, so 30.01%.
	if !r.ActualMarginPercent.Equal(dec(t, "30.01")) {
		t.Fatalf("actual margin: expected 30.01 got %s", r.ActualMarginPercent)
	}
}

func TestCalculateCostsRebuildsTotalFromScratch(t *testing.T) {
	ing := beansIngredient(t)
	r := Recipe{
		TargetMarginPercent: dec(t, "50"),
		TotalCost:           dec(t, "999"), // stale value must not survive
		Ingredients: []RecipeIngredient{
			{Ingredient: ing, IngredientID: ing.ID, Quantity: dec(t, "10")},
			{Ingredient: ing, IngredientID: ing.ID, Quantity: dec(t, "10")},
		},
	}
	r.CalculateCosts()
	if !r.TotalCost.Equal(dec(t, "16")) {
		t.Fatalf("expected 16.00 got %s", r.TotalCost)
	}
	if !r.SuggestedSellingPrice.Equal(dec(t, "32")) {
		t.Fatalf("expected 32.00 got %s", r.SuggestedSellingPrice)
	}
}

func TestSuggestedPriceInfeasibleMargin(t *testing.T) {
	// A margin at or above 100% cannot be reached; price collapses to cost.
	for _, margin := range []string{"100", "150"} {
		r := Recipe{TotalCost: dec(t, "24.4"), TargetMarginPercent: dec(t, margin)}
		r.CalculateSuggestedSellingPrice()
		if !r.SuggestedSellingPrice.Equal(dec(t, "24.4")) {
			t.Errorf("margin %s: expected price at cost got %s", margin, r.SuggestedSellingPrice)
		}
		if !r.GrossProfit.IsZero() || !r.ActualMarginPercent.IsZero() {
			t.Errorf("margin %s: expected zero profit got gp=%s margin=%s", margin, r.GrossProfit, r.ActualMarginPercent)
		}
	}
}

func TestSuggestedPriceGuards(t *testing.T) {
	// Zero cost or zero margin leaves the pricing fields untouched.
	r := Recipe{TotalCost: decimal.Zero, TargetMarginPercent: dec(t, "30")}
	r.CalculateSuggestedSellingPrice()
	if !r.SuggestedSellingPrice.IsZero() {
		t.Fatalf("expected untouched zero price got %s", r.SuggestedSellingPrice)
	}
	r = Recipe{TotalCost: dec(t, "24.4"), TargetMarginPercent: decimal.Zero}
	r.CalculateSuggestedSellingPrice()
	if !r.SuggestedSellingPrice.IsZero() {
		t.Fatalf("expected untouched zero price got %s", r.SuggestedSellingPrice)
	}
}

func TestApplyExpenseAllocation(t *testing.T) {
	r := Recipe{
		TotalCost:             dec(t, "24.4"),
		TargetMarginPercent:   dec(t, "30"),
		SuggestedSellingPrice: dec(t, "34.86"),
		GrossProfit:           dec(t, "10.46"),
	}
	r.ApplyExpenseAllocation(dec(t, "5"))

	if !r.NetProfit.Equal(dec(t, "5.46")) {
		t.Fatalf("net profit: expected 5.46 got %s", r.NetProfit)
	}
	// 5.46 / 34.86 = 0.1566 at four places, so 15.66%.
	if !r.NetMarginPercent.Equal(dec(t, "15.66")) {
		t.Fatalf("net margin: expected 15.66 got %s", r.NetMarginPercent)
	}
	// (24.40 + 5.00) / 0.70 = 42.00.
	if !r.FinalSellingPrice.Equal(dec(t, "42")) {
		t.Fatalf("final price: expected 42.00 got %s", r.FinalSellingPrice)
	}
}

func TestApplyExpenseAllocationOverheadExceedsProfit(t *testing.T) {
	r := Recipe{
		TotalCost:             dec(t, "24.4"),
		TargetMarginPercent:   dec(t, "30"),
		SuggestedSellingPrice: dec(t, "34.86"),
		GrossProfit:           dec(t, "10.46"),
	}
	r.ApplyExpenseAllocation(dec(t, "25"))

	if !r.NetProfit.Equal(dec(t, "-14.54")) {
		t.Fatalf("net profit: expected -14.54 got %s", r.NetProfit)
	}
	if !r.NetMarginPercent.Equal(dec(t, "-41.71")) {
		t.Fatalf("net margin: expected -41.71 got %s", r.NetMarginPercent)
	}
	// (24.40 + 25.00) / 0.70 = 70.57.
	if !r.FinalSellingPrice.Equal(dec(t, "70.57")) {
		t.Fatalf("final price: expected 70.57 got %s", r.FinalSellingPrice)
	}
}

func TestApplyExpenseAllocationWithoutMargin(t *testing.T) {
	// No target margin means no final price to derive; fall back to the
	// suggested price.
	r := Recipe{TotalCost: dec(t, "24.4"), SuggestedSellingPrice: dec(t, "30")}
	r.ApplyExpenseAllocation(dec(t, "5"))
	if !r.FinalSellingPrice.Equal(dec(t, "30")) {
		t.Fatalf("expected fallback to suggested price got %s", r.FinalSellingPrice)
	}
}

func TestIsComplete(t *testing.T) {
	ing := beansIngredient(t)
	r := Recipe{
		DrinkName:           "Latte",
		TargetMarginPercent: dec(t, "30"),
		Ingredients:         []RecipeIngredient{{Ingredient: ing, IngredientID: ing.ID, Quantity: dec(t, "18")}},
	}
	if !r.IsComplete() {
		t.Fatal("expected complete recipe")
	}
	r.DrinkName = "  "
	if r.IsComplete() {
		t.Fatal("blank name should be incomplete")
	}
	r.DrinkName = "Latte"
	r.Ingredients = nil
	if r.IsComplete() {
		t.Fatal("no ingredients should be incomplete")
	}
}

func TestIngredientCountByCategory(t *testing.T) {
	beans := beansIngredient(t)
	milk := Ingredient{ID: 2, Name: "Fresh Milk", Category: "milk", BaseUnit: "ml"}
	r := Recipe{Ingredients: []RecipeIngredient{
		{Ingredient: beans, IngredientID: beans.ID, Quantity: dec(t, "18")},
		{Ingredient: milk, IngredientID: milk.ID, Quantity: dec(t, "150")},
		{Ingredient: milk, IngredientID: milk.ID, Quantity: dec(t, "30")},
	}}
	if got := r.IngredientCountByCategory("MILK"); got != 2 {
		t.Fatalf("expected 2 milk lines got %d", got)
	}
	if got := r.IngredientCountByCategory("syrup"); got != 0 {
		t.Fatalf("expected 0 syrup lines got %d", got)
	}
}
