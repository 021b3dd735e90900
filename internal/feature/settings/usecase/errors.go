package usecase

import "errors"

var (
	// ErrUnknownTab is returned for a tab key outside the catalog.
	ErrUnknownTab = errors.New("unknown settings tab")
	// ErrUnknownToggle is returned for a toggle key outside the catalog.
	ErrUnknownToggle = errors.New("unknown setting")
)
