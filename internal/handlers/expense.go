package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/beanpeso/costing-app/internal/httpx"
	"github.com/beanpeso/costing-app/internal/models"
	"github.com/beanpeso/costing-app/internal/services"
	"github.com/beanpeso/costing-app/internal/validation"
)

type ExpenseHandler struct {
	Svc *services.ExpenseService
}

func NewExpenseHandler(svc *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{Svc: svc}
}

// List: GET /api/expenses – optional ?category= and ?fixed= filters.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		expenses []models.OperatingExpense
		err      error
	)
	switch {
	case r.URL.Query().Get("category") != "":
		expenses, err = h.Svc.ByCategory(r.URL.Query().Get("category"))
	case r.URL.Query().Get("fixed") != "":
		expenses, err = h.Svc.ByFixed(r.URL.Query().Get("fixed") == "true" || r.URL.Query().Get("fixed") == "1")
	default:
		expenses, err = h.Svc.List()
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_expenses", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": expenses, "total": len(expenses)})
}

func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	expense, err := h.Svc.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, expense)
}

// Create: POST /api/expenses
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.ExpenseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := validateExpenseInput(input); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	expense, err := h.Svc.Create(input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, expense)
}

// Update: POST/PUT /api/expenses/update?id=...
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var input services.ExpenseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := validateExpenseInput(input); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	expense, err := h.Svc.Update(id, input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, expense)
}

// Delete: POST/DELETE /api/expenses/delete?id=...
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// Total: GET /api/expenses/total
func (h *ExpenseHandler) Total(w http.ResponseWriter, _ *http.Request) {
	total, err := h.Svc.Total()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_sum_expenses", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"total_monthly_expenses": total})
}

// Categories: GET /api/expenses/categories
func (h *ExpenseHandler) Categories(w http.ResponseWriter, _ *http.Request) {
	categories, err := h.Svc.Categories()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_categories", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": categories})
}

func validateExpenseInput(in services.ExpenseInput) validation.Violations {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.Required("category", in.Category, v)
	if _, ok := v["category"]; !ok {
		validation.OneOf("category", in.Category, models.ExpenseCategories, v)
	}
	validation.PositiveDecimal("monthly_amount", in.MonthlyAmount, v)
	return v
}
