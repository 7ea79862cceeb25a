package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beanpeso/costing-app/internal/httpx"
	"github.com/beanpeso/costing-app/internal/services"
)

// writeServiceError maps the services error taxonomy onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	case errors.Is(err, services.ErrConflict):
		httpx.JSONError(w, http.StatusConflict, "name_already_exists", nil)
	case errors.Is(err, services.ErrInvalidRange):
		httpx.JSONError(w, http.StatusBadRequest, "invalid_range", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}

// idParam reads the numeric id from the query string; 0 means missing/invalid.
func idParam(r *http.Request) uint {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil || id <= 0 {
		return 0
	}
	return uint(id)
}
