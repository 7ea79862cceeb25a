package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BusinessSettings drives overhead allocation. The app treats the most
// recently created row as authoritative; older rows are kept as history.
type BusinessSettings struct {
	ID                   uint            `gorm:"primaryKey" json:"id"`
	ExpectedMonthlySales int             `gorm:"not null" json:"expected_monthly_sales"`
	WorkingDaysPerMonth  int             `gorm:"not null;default:26" json:"working_days_per_month"`
	TotalMonthlyExpenses decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"total_monthly_expenses"`
	ExpensePerItem       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"expense_per_item"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// CalculateExpensePerItem derives the overhead share of one sold drink.
// Without a positive sales expectation there is nothing to spread the
// expenses over, so the share degrades to zero.
func (s *BusinessSettings) CalculateExpensePerItem() {
	if s.ExpectedMonthlySales > 0 {
		s.ExpensePerItem = s.TotalMonthlyExpenses.DivRound(decimal.NewFromInt(int64(s.ExpectedMonthlySales)), 4)
		return
	}
	s.ExpensePerItem = decimal.Zero
}

// BeforeSave keeps the derived share in sync on every create/update.
func (s *BusinessSettings) BeforeSave(_ *gorm.DB) error {
	s.CalculateExpensePerItem()
	return nil
}

// DailyExpense spreads the monthly expenses over the working days.
func (s *BusinessSettings) DailyExpense() decimal.Decimal {
	if s.WorkingDaysPerMonth > 0 {
		return s.TotalMonthlyExpenses.DivRound(decimal.NewFromInt(int64(s.WorkingDaysPerMonth)), 2)
	}
	return decimal.Zero
}

// ExpectedDailySales is the sales target per working day (integer floor).
func (s *BusinessSettings) ExpectedDailySales() int {
	if s.WorkingDaysPerMonth > 0 {
		return s.ExpectedMonthlySales / s.WorkingDaysPerMonth
	}
	return 0
}

// BreakEvenUnits is how many drinks must sell to cover the month's expenses
// at the given average net profit per drink, rounded up. Zero when the
// average profit is not positive (break-even is unreachable).
func (s *BusinessSettings) BreakEvenUnits(averageNetProfitPerItem decimal.Decimal) int {
	if !averageNetProfitPerItem.IsPositive() {
		return 0
	}
	return int(s.TotalMonthlyExpenses.Div(averageNetProfitPerItem).Ceil().IntPart())
}
