package main

import (
	"net/http"

	"github.com/beanpeso/costing-app/internal/server"

	"gorm.io/gorm"
)

// NewApp bundles the full route tree so end-to-end tests can drive the same
// handler main serves.
func NewApp(dbConn *gorm.DB) http.Handler {
	return server.New(dbConn)
}
