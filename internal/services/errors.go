package services

import "errors"

// Sentinel errors shared by all services. Handlers translate these to HTTP
// statuses; everything else surfaces as an internal error.
var (
	ErrNotFound     = errors.New("not_found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidRange = errors.New("invalid_range")
)
