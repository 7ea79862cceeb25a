package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/beanpeso/costing-app/internal/httpx"
	"github.com/beanpeso/costing-app/internal/services"
	"github.com/beanpeso/costing-app/internal/validation"
)

type SettingsHandler struct {
	Svc *services.SettingsService
}

func NewSettingsHandler(svc *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{Svc: svc}
}

// Get: GET /api/settings – latest record plus derived summary numbers.
func (h *SettingsHandler) Get(w http.ResponseWriter, _ *http.Request) {
	summary, err := h.Svc.Summary()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

// Save: POST /api/settings – creates a new latest record; the expense total
// and per-item share refresh as part of the save.
func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var input services.SettingsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.PositiveInt("expected_monthly_sales", input.ExpectedMonthlySales, v)
	if input.WorkingDaysPerMonth < 0 {
		v["working_days_per_month"] = "must_be_positive"
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	settings, err := h.Svc.Save(input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, settings)
}

// Allocate: POST /api/settings/allocate – explicit overhead allocation run
// across all recipes. Never triggered implicitly by recipe saves.
func (h *SettingsHandler) Allocate(w http.ResponseWriter, _ *http.Request) {
	result, err := h.Svc.Allocate()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}
