// Package usecase implements the compliance screen.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"leadswift_backend/internal/feature/compliance/domain/entity"
)

// DefaultScanDuration is how long a simulated scan takes to reach 100%.
const DefaultScanDuration = 10 * time.Second

// ScanStore keeps started scans.
type ScanStore interface {
	Save(ctx context.Context, scan entity.Scan) error
	Find(ctx context.Context, id string) (entity.Scan, bool, error)
}

type complianceUsecase struct {
	checks   []entity.Check
	scans    ScanStore
	duration time.Duration
	now      func() time.Time
	newID    func() string
}

// NewComplianceUsecase creates the compliance usecase over the default catalog.
// A non-positive duration falls back to DefaultScanDuration.
func NewComplianceUsecase(scans ScanStore, duration time.Duration) *complianceUsecase {
	if duration <= 0 {
		duration = DefaultScanDuration
	}
	return &complianceUsecase{
		checks:   entity.DefaultChecks(),
		scans:    scans,
		duration: duration,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Report returns the checklist filtered by status.
func (u *complianceUsecase) Report(ctx context.Context, status string) (entity.Report, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != "" && !entity.ValidStatus(status) {
		return entity.Report{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return entity.NewReport(u.checks, status), nil
}

// StartScan records a new scan for userID starting now.
func (u *complianceUsecase) StartScan(ctx context.Context, userID string) (*entity.ScanStatus, error) {
	scan := entity.Scan{
		ID:        u.newID(),
		UserID:    userID,
		StartedAt: u.now().UTC(),
		Duration:  u.duration,
	}
	if err := u.scans.Save(ctx, scan); err != nil {
		return nil, fmt.Errorf("failed to save scan: %w", err)
	}
	slog.Info("compliance scan started", "scan_id", scan.ID, "user_id", userID)
	return u.observe(scan), nil
}

// GetScan returns the scan's progress as of now.
func (u *complianceUsecase) GetScan(ctx context.Context, id string) (*entity.ScanStatus, error) {
	scan, ok, err := u.scans.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find scan: %w", err)
	}
	if !ok {
		return nil, ErrScanNotFound
	}
	return u.observe(scan), nil
}

func (u *complianceUsecase) observe(scan entity.Scan) *entity.ScanStatus {
	now := u.now()
	return &entity.ScanStatus{Scan: scan, Progress: scan.Progress(now), State: scan.State(now)}
}
