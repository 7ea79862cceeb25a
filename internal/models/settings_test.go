package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCalculateExpensePerItem(t *testing.T) {
	s := BusinessSettings{ExpectedMonthlySales: 2000, TotalMonthlyExpenses: dec(t, "50000")}
	s.CalculateExpensePerItem()
	if !s.ExpensePerItem.Equal(dec(t, "25")) {
		t.Fatalf("expected 25.0000 got %s", s.ExpensePerItem)
	}

	// Four decimal places, half up.
	s = BusinessSettings{ExpectedMonthlySales: 3000, TotalMonthlyExpenses: dec(t, "50000")}
	s.CalculateExpensePerItem()
	if !s.ExpensePerItem.Equal(dec(t, "16.6667")) {
		t.Fatalf("expected 16.6667 got %s", s.ExpensePerItem)
	}

	// No sales expectation means nothing to spread over.
	s = BusinessSettings{ExpectedMonthlySales: 0, TotalMonthlyExpenses: dec(t, "50000")}
	s.CalculateExpensePerItem()
	if !s.ExpensePerItem.IsZero() {
		t.Fatalf("expected zero got %s", s.ExpensePerItem)
	}
}

func TestDailyExpense(t *testing.T) {
	s := BusinessSettings{WorkingDaysPerMonth: 26, TotalMonthlyExpenses: dec(t, "50000")}
	if got := s.DailyExpense(); !got.Equal(dec(t, "1923.08")) {
		t.Fatalf("expected 1923.08 got %s", got)
	}
	s.WorkingDaysPerMonth = 0
	if got := s.DailyExpense(); !got.IsZero() {
		t.Fatalf("expected zero for zero working days got %s", got)
	}
}

func TestExpectedDailySales(t *testing.T) {
	s := BusinessSettings{ExpectedMonthlySales: 2000, WorkingDaysPerMonth: 26}
	if got := s.ExpectedDailySales(); got != 76 {
		t.Fatalf("expected 76 got %d", got)
	}
	s.WorkingDaysPerMonth = 0
	if got := s.ExpectedDailySales(); got != 0 {
		t.Fatalf("expected 0 got %d", got)
	}
}

func TestBreakEvenUnits(t *testing.T) {
	s := BusinessSettings{TotalMonthlyExpenses: dec(t, "50000")}
	// 50000 / 12.34 = 4051.86..., rounded up.
	if got := s.BreakEvenUnits(dec(t, "12.34")); got != 4052 {
		t.Fatalf("expected 4052 got %d", got)
	}
	if got := s.BreakEvenUnits(dec(t, "25")); got != 2000 {
		t.Fatalf("expected 2000 got %d", got)
	}
	if got := s.BreakEvenUnits(decimal.Zero); got != 0 {
		t.Fatalf("expected 0 for zero profit got %d", got)
	}
	if got := s.BreakEvenUnits(dec(t, "-3")); got != 0 {
		t.Fatalf("expected 0 for negative profit got %d", got)
	}
}
