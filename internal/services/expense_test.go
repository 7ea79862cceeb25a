package services

import (
	"errors"
	"testing"
)

func seedExpense(t *testing.T, svc *ExpenseService, name, category, amount string, fixed bool) {
	t.Helper()
	if _, err := svc.Create(ExpenseInput{Name: name, Category: category, MonthlyAmount: mustDec(t, amount), IsFixed: fixed}); err != nil {
		t.Fatalf("seed expense %s: %v", name, err)
	}
}

func TestExpenseTotal(t *testing.T) {
	db := setupTestDB(t)
	svc := NewExpenseService(db)

	// Empty table totals zero, not an error.
	total, err := svc.Total()
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if !total.IsZero() {
		t.Fatalf("expected zero got %s", total)
	}

	seedExpense(t, svc, "Shop Rent", "rent", "30000", true)
	seedExpense(t, svc, "Electricity", "utilities", "15000", false)
	seedExpense(t, svc, "Barista Wages", "labor", "5000", true)

	total, err = svc.Total()
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if !total.Equal(mustDec(t, "50000")) {
		t.Fatalf("expected 50000 got %s", total)
	}
}

func TestExpenseFilters(t *testing.T) {
	db := setupTestDB(t)
	svc := NewExpenseService(db)
	seedExpense(t, svc, "Shop Rent", "rent", "30000", true)
	seedExpense(t, svc, "Electricity", "utilities", "15000", false)

	fixed, err := svc.ByFixed(true)
	if err != nil {
		t.Fatalf("by fixed: %v", err)
	}
	if len(fixed) != 1 || fixed[0].Name != "Shop Rent" {
		t.Fatalf("expected Shop Rent got %+v", fixed)
	}

	utilities, err := svc.ByCategory("Utilities")
	if err != nil {
		t.Fatalf("by category: %v", err)
	}
	if len(utilities) != 1 || utilities[0].Name != "Electricity" {
		t.Fatalf("expected Electricity got %+v", utilities)
	}
}

func TestExpenseUpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewExpenseService(db)
	created, err := svc.Create(ExpenseInput{Name: "Shop Rent", Category: "rent", MonthlyAmount: mustDec(t, "30000"), IsFixed: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(created.ID, ExpenseInput{Name: "Shop Rent", Category: "rent", MonthlyAmount: mustDec(t, "32000"), IsFixed: true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.MonthlyAmount.Equal(mustDec(t, "32000")) {
		t.Fatalf("expected 32000 got %s", updated.MonthlyAmount)
	}

	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound got %v", err)
	}
	if _, err := svc.Get(created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound got %v", err)
	}
}
