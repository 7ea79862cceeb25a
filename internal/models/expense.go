package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OperatingExpense is a recurring monthly business cost (rent, power, wages).
// The sum over all rows feeds BusinessSettings.TotalMonthlyExpenses.
type OperatingExpense struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"not null" json:"name"`
	Category      string          `gorm:"not null" json:"category"` // see ExpenseCategories
	MonthlyAmount decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"monthly_amount"`
	IsFixed       bool            `gorm:"not null;default:true" json:"is_fixed"`
	Notes         string          `gorm:"size:500" json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ExpenseCategories is the closed set of expense categories.
var ExpenseCategories = []string{"rent", "utilities", "labor", "marketing", "equipment", "supplies", "insurance", "taxes", "others"}

var expenseCategoryDisplayNames = map[string]string{
	"rent":      "Rent / Lease",
	"utilities": "Utilities (Electric, Water, Gas)",
	"labor":     "Labor / Salaries",
	"marketing": "Marketing / Advertising",
	"equipment": "Equipment / Maintenance",
	"supplies":  "General Supplies",
	"insurance": "Insurance",
	"taxes":     "Taxes / Permits",
	"others":    "Other Expenses",
}

// CategoryDisplayName expands the category key for display.
func (e *OperatingExpense) CategoryDisplayName() string {
	if name, ok := expenseCategoryDisplayNames[strings.ToLower(e.Category)]; ok {
		return name
	}
	return "Miscellaneous"
}

// HasValidCategory reports whether the category belongs to the closed set.
func (e *OperatingExpense) HasValidCategory() bool {
	return ValidExpenseCategory(e.Category)
}

// ValidExpenseCategory reports membership in ExpenseCategories,
// case-insensitively.
func ValidExpenseCategory(category string) bool {
	c := strings.ToLower(category)
	for _, known := range ExpenseCategories {
		if c == known {
			return true
		}
	}
	return false
}

// DailyAmount spreads the monthly amount over a 30-day month.
func (e *OperatingExpense) DailyAmount() decimal.Decimal {
	return e.MonthlyAmount.DivRound(decimal.NewFromInt(30), 2)
}

// ExpenseType labels the fixed/variable flag for display.
func (e *OperatingExpense) ExpenseType() string {
	if e.IsFixed {
		return "Fixed Expense"
	}
	return "Variable Expense"
}
