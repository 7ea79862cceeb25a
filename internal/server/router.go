package server

import (
	"log"
	"net/http"
	"time"

	"github.com/beanpeso/costing-app/internal/handlers"
	"github.com/beanpeso/costing-app/internal/httpx"
	"github.com/beanpeso/costing-app/internal/services"

	"gorm.io/gorm"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		// Perform a lightweight DB check (SELECT 1) – ignore detailed errors in body
		if err := db.Exec("SELECT 1").Error; err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			if _, werr := w.Write([]byte(`{"status":"degraded"}`)); werr != nil {
				_ = werr
			}
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Ingredient endpoints. List/Create via /api/ingredients; the rest via
	// /api/ingredients/<action>?id=... for ServeMux simplicity.
	ih := handlers.NewIngredientHandler(services.NewIngredientService(db))
	mux.HandleFunc("/api/ingredients", listCreate(ih.List, ih.Create))
	mux.HandleFunc("/api/ingredients/get", ih.Get)
	mux.HandleFunc("/api/ingredients/update", ih.Update)
	mux.HandleFunc("/api/ingredients/delete", ih.Delete)
	mux.HandleFunc("/api/ingredients/search", ih.List)
	mux.HandleFunc("/api/ingredients/by-category", ih.ByCategory)
	mux.HandleFunc("/api/ingredients/categories", ih.Categories)

	// Recipe endpoints
	rh := handlers.NewRecipeHandler(services.NewRecipeService(db))
	mux.HandleFunc("/api/recipes", listCreate(rh.List, rh.Create))
	mux.HandleFunc("/api/recipes/get", rh.Get)
	mux.HandleFunc("/api/recipes/update", rh.Update)
	mux.HandleFunc("/api/recipes/delete", rh.Delete)
	mux.HandleFunc("/api/recipes/search", rh.List)
	mux.HandleFunc("/api/recipes/price-range", rh.PriceRange)
	mux.HandleFunc("/api/recipes/by-margin", rh.MinimumMargin)
	mux.HandleFunc("/api/recipes/what-if", rh.WhatIf)
	mux.HandleFunc("/api/recipes/statistics", rh.Statistics)

	// Operating expense endpoints
	eh := handlers.NewExpenseHandler(services.NewExpenseService(db))
	mux.HandleFunc("/api/expenses", listCreate(eh.List, eh.Create))
	mux.HandleFunc("/api/expenses/get", eh.Get)
	mux.HandleFunc("/api/expenses/update", eh.Update)
	mux.HandleFunc("/api/expenses/delete", eh.Delete)
	mux.HandleFunc("/api/expenses/total", eh.Total)
	mux.HandleFunc("/api/expenses/categories", eh.Categories)

	// Business settings + overhead allocation
	sh := handlers.NewSettingsHandler(services.NewSettingsService(db))
	mux.HandleFunc("/api/settings", listCreate(sh.Get, sh.Save))
	mux.HandleFunc("/api/settings/allocate", sh.Allocate)

	// Root placeholder
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, werr := w.Write([]byte("Drink Costing API")); werr != nil {
			_ = werr
		}
	})
	//revive:enable:unused-parameter

	return withRecover(withLogging(mux))
}

// listCreate dispatches GET to the list handler and POST to the create
// handler on a collection route.
func listCreate(list, create http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			list(w, r)
		case http.MethodPost:
			create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	}
}

// Simple middleware logging & recovery kept private to this package.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
