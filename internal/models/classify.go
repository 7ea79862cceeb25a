package models

import "github.com/shopspring/decimal"

// Classification bands. Each band's bound is an exclusive upper limit; the
// first band whose bound exceeds the value wins, anything past the last band
// takes the terminal label. Keeping these as ordered tables (rather than
// branching) keeps the sets closed and trivially testable.

var complexityBands = []struct {
	maxLines int // inclusive
	label    string
}{
	{2, "Simple"},
	{5, "Moderate"},
	{8, "Complex"},
}

const veryComplex = "Very Complex"

var pricingBands = []struct {
	below decimal.Decimal // exclusive
	label string
}{
	{decimal.NewFromInt(100), "Budget"},
	{decimal.NewFromInt(150), "Standard"},
	{decimal.NewFromInt(200), "Premium"},
}

const luxury = "Luxury"

var profitabilityBands = []struct {
	below decimal.Decimal // exclusive
	label string
}{
	{decimal.NewFromInt(10), "Low Profit"},
	{decimal.NewFromInt(20), "Moderate Profit"},
	{decimal.NewFromInt(30), "Good Profit"},
}

const excellentProfit = "Excellent Profit"

// ComplexityLevel buckets the recipe by how many ingredient lines it has.
func (r *Recipe) ComplexityLevel() string {
	return ComplexityLevelForCount(len(r.Ingredients))
}

// ComplexityLevelForCount is the table lookup behind ComplexityLevel.
func ComplexityLevelForCount(lines int) string {
	for _, band := range complexityBands {
		if lines <= band.maxLines {
			return band.label
		}
	}
	return veryComplex
}

// PricingCategory buckets the recipe by suggested selling price.
// An unpriced recipe (zero price) falls in the lowest band, matching how a
// zero-initialized price has always classified.
func (r *Recipe) PricingCategory() string {
	for _, band := range pricingBands {
		if r.SuggestedSellingPrice.LessThan(band.below) {
			return band.label
		}
	}
	return luxury
}

// ProfitabilityStatus buckets the recipe by net margin percent.
func (r *Recipe) ProfitabilityStatus() string {
	if !r.NetMarginPercent.IsPositive() {
		return "Unprofitable"
	}
	for _, band := range profitabilityBands {
		if r.NetMarginPercent.LessThan(band.below) {
			return band.label
		}
	}
	return excellentProfit
}
