package domain

import "errors"

// Sentinel errors shared by the routing core and its adapters.
// Callers match them with errors.Is; producers wrap them with context.
var (
	ErrDuplicateLocation = errors.New("duplicate location")
	ErrNegativeDistance  = errors.New("negative distance")
	ErrNotFound          = errors.New("not found")
	ErrCapacityExceeded  = errors.New("capacity exceeded")
	ErrInvalidLoadState  = errors.New("invalid load state")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidTimeInput  = errors.New("invalid time input")
)
