package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/beanpeso/costing-app/internal/models"
	"github.com/beanpeso/costing-app/internal/services"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupE2EDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbi, err := gorm.Open(sqlite.Open("file:e2e_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := dbi.AutoMigrate(&models.Ingredient{}, &models.Recipe{}, &models.RecipeIngredient{}, &models.OperatingExpense{}, &models.BusinessSettings{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return dbi
}

func postJSON(t *testing.T, app http.Handler, path, body string, wantStatus int) []byte {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	if w.Code != wantStatus {
		t.Fatalf("POST %s: expected %d got %d: %s", path, wantStatus, w.Code, w.Body.String())
	}
	return w.Body.Bytes()
}

func getJSON(t *testing.T, app http.Handler, path string, wantStatus int) []byte {
	t.Helper()
	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	if w.Code != wantStatus {
		t.Fatalf("GET %s: expected %d got %d: %s", path, wantStatus, w.Code, w.Body.String())
	}
	return w.Body.Bytes()
}

func TestCostingFlowE2E(t *testing.T) {
	app := NewApp(setupE2EDB(t))

	getJSON(t, app, "/health", http.StatusOK)

	// Stock the pantry.
	var beans models.Ingredient
	raw := postJSON(t, app, "/api/ingredients",
		`{"name":"Arabica Beans","category":"beans","base_unit":"g","pack_size":"1000","pack_price":"800"}`,
		http.StatusCreated)
	if err := json.Unmarshal(raw, &beans); err != nil {
		t.Fatalf("decode ingredient: %v", err)
	}

	// Price a drink against the target margin.
	var espresso services.RecipeView
	raw = postJSON(t, app, "/api/recipes",
		fmt.Sprintf(`{"drink_name":"Espresso","target_margin_percent":"30","ingredients":[{"ingredient_id":%d,"quantity":"30.5"}]}`, beans.ID),
		http.StatusCreated)
	if err := json.Unmarshal(raw, &espresso); err != nil {
		t.Fatalf("decode recipe: %v", err)
	}
	if espresso.SuggestedSellingPrice.String() != "34.86" {
		t.Fatalf("expected 34.86 got %s", espresso.SuggestedSellingPrice)
	}

	// Explore a different margin without touching the stored recipe.
	var scenario services.RecipeView
	raw = getJSON(t, app, fmt.Sprintf("/api/recipes/what-if?id=%d&margin=50", espresso.ID), http.StatusOK)
	if err := json.Unmarshal(raw, &scenario); err != nil {
		t.Fatalf("decode scenario: %v", err)
	}
	if scenario.SuggestedSellingPrice.String() != "48.8" {
		t.Fatalf("scenario: expected 48.8 got %s", scenario.SuggestedSellingPrice)
	}
	var stored services.RecipeView
	raw = getJSON(t, app, fmt.Sprintf("/api/recipes/get?id=%d", espresso.ID), http.StatusOK)
	if err := json.Unmarshal(raw, &stored); err != nil {
		t.Fatalf("decode stored: %v", err)
	}
	if stored.SuggestedSellingPrice.String() != "34.86" {
		t.Fatalf("what-if must not persist, got %s", stored.SuggestedSellingPrice)
	}

	// Record overhead and spread it across the menu.
	postJSON(t, app, "/api/expenses",
		`{"name":"Shop Rent","category":"rent","monthly_amount":"1000","is_fixed":true}`,
		http.StatusCreated)
	postJSON(t, app, "/api/settings", `{"expected_monthly_sales":100}`, http.StatusCreated)

	var allocation services.AllocationResult
	raw = postJSON(t, app, "/api/settings/allocate", "", http.StatusOK)
	if err := json.Unmarshal(raw, &allocation); err != nil {
		t.Fatalf("decode allocation: %v", err)
	}
	if allocation.RecipesAffected != 1 {
		t.Fatalf("expected 1 recipe affected got %d", allocation.RecipesAffected)
	}

	// Net figures now reflect the 10.0000 per-item overhead share.
	raw = getJSON(t, app, fmt.Sprintf("/api/recipes/get?id=%d", espresso.ID), http.StatusOK)
	if err := json.Unmarshal(raw, &stored); err != nil {
		t.Fatalf("decode allocated: %v", err)
	}
	if stored.NetProfit.String() != "0.46" {
		t.Fatalf("net profit: expected 0.46 got %s", stored.NetProfit)
	}
	if stored.ProfitabilityStatus != "Low Profit" {
		t.Fatalf("expected Low Profit got %q", stored.ProfitabilityStatus)
	}

	// The menu statistics count the single simple recipe.
	var stats services.RecipeStatistics
	raw = getJSON(t, app, "/api/recipes/statistics", http.StatusOK)
	if err := json.Unmarshal(raw, &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.TotalRecipes != 1 || stats.SimpleRecipes != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	// Settings summary folds the allocated profit into the break-even target.
	var summary services.SettingsSummary
	raw = getJSON(t, app, "/api/settings", http.StatusOK)
	if err := json.Unmarshal(raw, &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.BreakEvenUnits != 2174 {
		t.Fatalf("break-even: expected 2174 got %d", summary.BreakEvenUnits)
	}
}
