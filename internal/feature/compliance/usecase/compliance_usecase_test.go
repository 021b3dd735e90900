package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadswift_backend/internal/feature/compliance/domain/entity"
)

type mockScanStore struct {
	scans    map[string]entity.Scan
	SaveFunc func(ctx context.Context, scan entity.Scan) error
	FindFunc func(ctx context.Context, id string) (entity.Scan, bool, error)
}

func newMockScanStore() *mockScanStore {
	return &mockScanStore{scans: map[string]entity.Scan{}}
}

func (m *mockScanStore) Save(ctx context.Context, scan entity.Scan) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, scan)
	}
	m.scans[scan.ID] = scan
	return nil
}

func (m *mockScanStore) Find(ctx context.Context, id string) (entity.Scan, bool, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, id)
	}
	s, ok := m.scans[id]
	return s, ok, nil
}

func TestComplianceUsecase_Report(t *testing.T) {
	uc := NewComplianceUsecase(newMockScanStore(), 0)

	tests := []struct {
		name          string
		status        string
		expectedRows  int
		expectedError error
	}{
		{name: "all", expectedRows: 8},
		{name: "passed", status: "passed", expectedRows: 4},
		{name: "case and space insensitive", status: "  WARNING ", expectedRows: 2},
		{name: "failed", status: "failed", expectedRows: 2},
		{name: "unknown status", status: "pending", expectedError: ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := uc.Report(context.Background(), tt.status)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Len(t, r.Checks, tt.expectedRows)
			assert.Equal(t, 8, r.Total)
			assert.Equal(t, 50, r.Score)
		})
	}
}

func TestComplianceUsecase_ScanLifecycle(t *testing.T) {
	store := newMockScanStore()
	uc := NewComplianceUsecase(store, 10*time.Second)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }
	uc.newID = func() string { return "scan-1" }

	started, err := uc.StartScan(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "scan-1", started.Scan.ID)
	assert.Equal(t, "42", started.Scan.UserID)
	assert.Equal(t, 0, started.Progress)
	assert.Equal(t, entity.ScanRunning, started.State)

	now = now.Add(3 * time.Second)
	got, err := uc.GetScan(context.Background(), "scan-1")
	require.NoError(t, err)
	assert.Equal(t, 30, got.Progress)
	assert.Equal(t, entity.ScanRunning, got.State)

	now = now.Add(time.Minute)
	got, err = uc.GetScan(context.Background(), "scan-1")
	require.NoError(t, err)
	assert.Equal(t, 100, got.Progress)
	assert.Equal(t, entity.ScanCompleted, got.State)
}

func TestComplianceUsecase_GetScan_NotFound(t *testing.T) {
	uc := NewComplianceUsecase(newMockScanStore(), 0)

	_, err := uc.GetScan(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrScanNotFound)
}

func TestComplianceUsecase_StoreErrors(t *testing.T) {
	storeErr := errors.New("store down")
	store := &mockScanStore{
		SaveFunc: func(ctx context.Context, scan entity.Scan) error { return storeErr },
		FindFunc: func(ctx context.Context, id string) (entity.Scan, bool, error) { return entity.Scan{}, false, storeErr },
	}
	uc := NewComplianceUsecase(store, 0)

	_, err := uc.StartScan(context.Background(), "1")
	assert.ErrorIs(t, err, storeErr)

	_, err = uc.GetScan(context.Background(), "x")
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, ErrScanNotFound)
}
