// Package adapters provides storage for compliance scans.
package adapters

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"leadswift_backend/internal/feature/compliance/domain/entity"
	"leadswift_backend/internal/feature/compliance/usecase"
)

const (
	// DefaultScanCapacity bounds the number of scans kept in memory.
	DefaultScanCapacity = 1024
	// DefaultScanRetention is how long a scan stays readable after it starts.
	DefaultScanRetention = time.Hour
)

// scanLRU keeps scans in a bounded, expiring LRU.
type scanLRU struct {
	cache *lru.LRU[string, entity.Scan]
}

var _ usecase.ScanStore = (*scanLRU)(nil)

// NewScanLRU creates an in-memory scan store. Non-positive arguments use the defaults.
func NewScanLRU(capacity int, retention time.Duration) *scanLRU {
	if capacity <= 0 {
		capacity = DefaultScanCapacity
	}
	if retention <= 0 {
		retention = DefaultScanRetention
	}
	return &scanLRU{cache: lru.NewLRU[string, entity.Scan](capacity, nil, retention)}
}

func (s *scanLRU) Save(ctx context.Context, scan entity.Scan) error {
	s.cache.Add(scan.ID, scan)
	return nil
}

func (s *scanLRU) Find(ctx context.Context, id string) (entity.Scan, bool, error) {
	scan, ok := s.cache.Get(id)
	return scan, ok, nil
}

// Len returns the number of scans currently held.
func (s *scanLRU) Len() int {
	return s.cache.Len()
}
