package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/beanpeso/costing-app/internal/httpx"
	"github.com/beanpeso/costing-app/internal/models"
	"github.com/beanpeso/costing-app/internal/services"
	"github.com/beanpeso/costing-app/internal/validation"
)

type IngredientHandler struct {
	Svc *services.IngredientService
}

func NewIngredientHandler(svc *services.IngredientService) *IngredientHandler {
	return &IngredientHandler{Svc: svc}
}

// List: GET /api/ingredients – optional ?q= narrows by name.
func (h *IngredientHandler) List(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	var (
		ingredients []models.Ingredient
		err         error
	)
	if q != "" {
		ingredients, err = h.Svc.Search(q)
	} else {
		ingredients, err = h.Svc.List()
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_ingredients", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": ingredients, "total": len(ingredients)})
}

func (h *IngredientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	ing, err := h.Svc.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ing)
}

// Create: POST /api/ingredients
func (h *IngredientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.IngredientInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := validateIngredientInput(input); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	ing, err := h.Svc.Create(input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, ing)
}

// Update: POST/PUT /api/ingredients/update?id=...
func (h *IngredientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var input services.IngredientInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := validateIngredientInput(input); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	ing, err := h.Svc.Update(id, input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ing)
}

// Delete: POST/DELETE /api/ingredients/delete?id=...
func (h *IngredientHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// ByCategory: GET /api/ingredients/by-category?category=...
func (h *IngredientHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_category", nil)
		return
	}
	ingredients, err := h.Svc.ByCategory(category)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_ingredients", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": ingredients, "total": len(ingredients)})
}

// Categories: GET /api/ingredients/categories
func (h *IngredientHandler) Categories(w http.ResponseWriter, _ *http.Request) {
	categories, err := h.Svc.Categories()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_categories", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": categories})
}

func validateIngredientInput(in services.IngredientInput) validation.Violations {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.Required("category", in.Category, v)
	validation.Required("base_unit", in.BaseUnit, v)
	if _, ok := v["category"]; !ok {
		validation.OneOf("category", in.Category, models.IngredientCategories, v)
	}
	if _, ok := v["base_unit"]; !ok {
		validation.OneOf("base_unit", in.BaseUnit, models.BaseUnits, v)
	}
	validation.PositiveDecimal("pack_size", in.PackSize, v)
	validation.PositiveDecimal("pack_price", in.PackPrice, v)
	return v
}
