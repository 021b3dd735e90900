// Package usecase implements the analytics screen.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"leadswift_backend/internal/feature/analytics/domain/entity"
)

// MetricRepository reads and writes the metric catalog.
type MetricRepository interface {
	// ListActive returns active metrics ordered by sort key.
	ListActive(ctx context.Context) ([]entity.Metric, error)
	// UpsertAll inserts or updates metrics by key.
	UpsertAll(ctx context.Context, metrics []entity.Metric) error
}

type analyticsUsecase struct {
	repo MetricRepository
}

// NewAnalyticsUsecase creates the analytics usecase.
func NewAnalyticsUsecase(repo MetricRepository) *analyticsUsecase {
	return &analyticsUsecase{repo: repo}
}

// Overview returns the active metrics, optionally limited to one category,
// with their summary. An unknown category yields an empty overview.
func (u *analyticsUsecase) Overview(ctx context.Context, category string) (*entity.Overview, error) {
	metrics, err := u.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list metrics: %w", err)
	}

	category = strings.ToLower(strings.TrimSpace(category))
	visible := make([]entity.Metric, 0, len(metrics))
	for _, m := range metrics {
		if category == "" || m.Category == category {
			visible = append(visible, m)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool { return visible[i].SortKey < visible[j].SortKey })

	return &entity.Overview{Metrics: visible, Summary: entity.Summarize(visible)}, nil
}

// Seed writes the default catalog.
func (u *analyticsUsecase) Seed(ctx context.Context) (int, error) {
	metrics := entity.DefaultMetrics()
	if err := u.repo.UpsertAll(ctx, metrics); err != nil {
		return 0, fmt.Errorf("failed to seed metrics: %w", err)
	}
	slog.Info("analytics metrics seeded", "count", len(metrics))
	return len(metrics), nil
}

// SeedIfEmpty seeds the catalog when no active metric exists yet.
func (u *analyticsUsecase) SeedIfEmpty(ctx context.Context) error {
	existing, err := u.repo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list metrics: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	_, err = u.Seed(ctx)
	return err
}
