package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadswift_backend/internal/feature/analytics/domain/entity"
)

type mockMetricRepository struct {
	ListActiveFunc func(ctx context.Context) ([]entity.Metric, error)
	upserted       [][]entity.Metric
	upsertErr      error
}

func (m *mockMetricRepository) ListActive(ctx context.Context) ([]entity.Metric, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

func (m *mockMetricRepository) UpsertAll(ctx context.Context, metrics []entity.Metric) error {
	m.upserted = append(m.upserted, metrics)
	return m.upsertErr
}

func fixedMetrics() []entity.Metric {
	return []entity.Metric{
		{Key: "b", Category: "revenue", Unit: entity.UnitUSD, Value: 200, Previous: 100, SortKey: 20, IsActive: true},
		{Key: "a", Category: "outreach", Unit: entity.UnitCount, Value: 50, Previous: 100, SortKey: 10, IsActive: true},
		{Key: "c", Category: "outreach", Unit: entity.UnitCount, Value: 30, Previous: 20, SortKey: 30, IsActive: true},
	}
}

func TestAnalyticsUsecase_Overview(t *testing.T) {
	repo := &mockMetricRepository{ListActiveFunc: func(ctx context.Context) ([]entity.Metric, error) { return fixedMetrics(), nil }}
	uc := NewAnalyticsUsecase(repo)

	t.Run("all categories ordered by sort key", func(t *testing.T) {
		ov, err := uc.Overview(context.Background(), "")

		require.NoError(t, err)
		require.Len(t, ov.Metrics, 3)
		assert.Equal(t, []string{"a", "b", "c"}, []string{ov.Metrics[0].Key, ov.Metrics[1].Key, ov.Metrics[2].Key})
		assert.Equal(t, entity.Summary{TotalCount: 80, TotalUSD: 200, Improving: 2, Declining: 1}, ov.Summary)
	})

	t.Run("filtered by category", func(t *testing.T) {
		ov, err := uc.Overview(context.Background(), " Outreach ")

		require.NoError(t, err)
		require.Len(t, ov.Metrics, 2)
		assert.Equal(t, float64(80), ov.Summary.TotalCount)
		assert.Zero(t, ov.Summary.TotalUSD)
	})

	t.Run("unknown category is empty, not an error", func(t *testing.T) {
		ov, err := uc.Overview(context.Background(), "nope")

		require.NoError(t, err)
		assert.Empty(t, ov.Metrics)
		assert.Equal(t, entity.Summary{}, ov.Summary)
	})

	t.Run("repository failure", func(t *testing.T) {
		failing := NewAnalyticsUsecase(&mockMetricRepository{ListActiveFunc: func(ctx context.Context) ([]entity.Metric, error) {
			return nil, errors.New("db down")
		}})

		_, err := failing.Overview(context.Background(), "")
		assert.ErrorContains(t, err, "db down")
	})
}

func TestAnalyticsUsecase_SeedIfEmpty(t *testing.T) {
	t.Run("seeds an empty catalog", func(t *testing.T) {
		repo := &mockMetricRepository{}
		require.NoError(t, NewAnalyticsUsecase(repo).SeedIfEmpty(context.Background()))

		require.Len(t, repo.upserted, 1)
		assert.Len(t, repo.upserted[0], len(entity.DefaultMetrics()))
	})

	t.Run("leaves existing data alone", func(t *testing.T) {
		repo := &mockMetricRepository{ListActiveFunc: func(ctx context.Context) ([]entity.Metric, error) { return fixedMetrics(), nil }}
		require.NoError(t, NewAnalyticsUsecase(repo).SeedIfEmpty(context.Background()))

		assert.Empty(t, repo.upserted)
	})

	t.Run("upsert failure", func(t *testing.T) {
		repo := &mockMetricRepository{upsertErr: errors.New("read-only")}
		_, err := NewAnalyticsUsecase(repo).Seed(context.Background())

		assert.ErrorContains(t, err, "read-only")
	})
}
