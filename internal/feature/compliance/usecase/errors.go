package usecase

import "errors"

var (
	// ErrInvalidStatus is returned for an unknown check status filter.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrScanNotFound is returned when a scan does not exist or has been evicted.
	ErrScanNotFound = errors.New("scan not found")
)
