package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/beanpeso/costing-app/internal/httpx"
	"github.com/beanpeso/costing-app/internal/services"
	"github.com/beanpeso/costing-app/internal/validation"

	"github.com/shopspring/decimal"
)

type RecipeHandler struct {
	Svc *services.RecipeService
}

func NewRecipeHandler(svc *services.RecipeService) *RecipeHandler {
	return &RecipeHandler{Svc: svc}
}

// List: GET /api/recipes – optional ?q= narrows by drink name.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	var (
		recipes []services.RecipeView
		err     error
	)
	if q != "" {
		recipes, err = h.Svc.Search(q)
	} else {
		recipes, err = h.Svc.List()
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_recipes", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": recipes, "total": len(recipes)})
}

func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	recipe, err := h.Svc.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, recipe)
}

// Create: POST /api/recipes
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.RecipeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := validateRecipeInput(input); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	recipe, err := h.Svc.Create(input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, recipe)
}

// Update: POST/PUT /api/recipes/update?id=...
func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var input services.RecipeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := validateRecipeInput(input); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	recipe, err := h.Svc.Update(id, input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, recipe)
}

// Delete: POST/DELETE /api/recipes/delete?id=...
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Svc.Delete(id); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}

// PriceRange: GET /api/recipes/price-range?min=...&max=...
func (h *RecipeHandler) PriceRange(w http.ResponseWriter, r *http.Request) {
	minPrice, errMin := decimal.NewFromString(r.URL.Query().Get("min"))
	maxPrice, errMax := decimal.NewFromString(r.URL.Query().Get("max"))
	if errMin != nil || errMax != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_price_bounds", nil)
		return
	}
	recipes, err := h.Svc.PriceRange(minPrice, maxPrice)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": recipes, "total": len(recipes)})
}

// MinimumMargin: GET /api/recipes/by-margin?min=...
func (h *RecipeHandler) MinimumMargin(w http.ResponseWriter, r *http.Request) {
	minMargin, err := decimal.NewFromString(r.URL.Query().Get("min"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_margin", nil)
		return
	}
	recipes, svcErr := h.Svc.MinimumMargin(minMargin)
	if svcErr != nil {
		writeServiceError(w, svcErr)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": recipes, "total": len(recipes)})
}

// WhatIf: GET /api/recipes/what-if?id=...&margin=...
// Returns a transient repricing; nothing is persisted.
func (h *RecipeHandler) WhatIf(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	margin, err := decimal.NewFromString(r.URL.Query().Get("margin"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_margin", nil)
		return
	}
	scenario, svcErr := h.Svc.WhatIf(id, margin)
	if svcErr != nil {
		writeServiceError(w, svcErr)
		return
	}
	httpx.JSON(w, http.StatusOK, scenario)
}

// Statistics: GET /api/recipes/statistics
func (h *RecipeHandler) Statistics(w http.ResponseWriter, _ *http.Request) {
	stats, err := h.Svc.Statistics()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_compute_statistics", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}

func validateRecipeInput(in services.RecipeInput) validation.Violations {
	v := validation.Violations{}
	validation.Required("drink_name", in.DrinkName, v)
	validation.OpenRangeDecimal("target_margin_percent", in.TargetMarginPercent, decimal.Zero, decimal.NewFromInt(100), v)
	for _, line := range in.Ingredients {
		if line.IngredientID == 0 {
			v["ingredients"] = "invalid_ingredient_id"
			break
		}
		if !line.Quantity.IsPositive() {
			v["ingredients"] = "quantity_must_be_positive"
			break
		}
	}
	return v
}
