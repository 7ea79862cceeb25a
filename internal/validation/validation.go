package validation

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveDecimal(field string, val decimal.Decimal, v Violations) {
	if !val.IsPositive() {
		v[field] = "must_be_positive"
	}
}

func PositiveInt(field string, val int, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func NonNegativeDecimal(field string, val decimal.Decimal, v Violations) {
	if val.IsNegative() {
		v[field] = "must_not_be_negative"
	}
}

// OpenRangeDecimal checks minVal < val < maxVal (both bounds exclusive).
func OpenRangeDecimal(field string, val, minVal, maxVal decimal.Decimal, v Violations) {
	if val.Cmp(minVal) <= 0 || val.Cmp(maxVal) >= 0 {
		v[field] = "out_of_range"
	}
}

// OneOf checks case-insensitive membership in a closed set.
func OneOf(field, value string, allowed []string, v Violations) {
	val := strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if val == a {
			return
		}
	}
	v[field] = "invalid_value"
}
