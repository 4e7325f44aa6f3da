package store

import "errors"

var (
	// ErrNotFound signals an update against an id no stored row has.
	ErrNotFound = errors.New("report not found")

	// ErrStorageUnavailable wraps driver-level failures so the request layer
	// can tell "your input is wrong" apart from "try again later". It never
	// wraps a validation error.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
