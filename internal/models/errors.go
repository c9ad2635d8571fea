package models

import "errors"

var (
	// ErrSchemaMismatch indicates an expected column is missing from the input CSV
	ErrSchemaMismatch = errors.New("input schema mismatch")

	// ErrMissingSurface indicates a match row without an assignable surface
	ErrMissingSurface = errors.New("match row has no surface")

	// ErrUnknownPlayer indicates the requested player has no snapshot
	ErrUnknownPlayer = errors.New("unknown player")

	// ErrUnknownSurface indicates an unrecognized surface name in a request
	ErrUnknownSurface = errors.New("unknown surface")

	// ErrUnknownLevel indicates an unrecognized tourney level in a request
	ErrUnknownLevel = errors.New("unknown tourney level")

	// ErrUnknownEntry indicates an unrecognized entry code in a request
	ErrUnknownEntry = errors.New("unknown entry code")

	// ErrModelFailure indicates the classifier failed to produce a prediction
	ErrModelFailure = errors.New("model failure")

	// ErrNotFound indicates the requested archive record does not exist
	ErrNotFound = errors.New("not found")
)
