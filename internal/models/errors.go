package models

import "errors"

// Error classes shared across packages. Handlers map them to HTTP status codes.
var (
	ErrValidation    = errors.New("validation failed")
	ErrNotConfigured = errors.New("not configured")
	ErrUpstream      = errors.New("upstream error")
	ErrParse         = errors.New("parse error")
)
