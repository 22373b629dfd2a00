package tracker

import "errors"

var (
	// ErrValidation is returned for input rejected before any storage call.
	ErrValidation = errors.New("validation error")
	// ErrNotFound is returned when an address does not resolve to a task or job.
	ErrNotFound = errors.New("not found")
)
