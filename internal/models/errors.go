package models

import "errors"

// Domain error taxonomy. Handlers map these to HTTP statuses; everything
// else collapses to an internal error with the cause logged server-side.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
)
