// Package adapters provides the storage implementation for the analytics feature.
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"leadswift_backend/internal/feature/analytics/domain/entity"
	"leadswift_backend/internal/feature/analytics/usecase"
)

// MetricModel is the GORM row of the metrics table.
type MetricModel struct {
	ID        uint    `gorm:"primaryKey"`
	Key       string  `gorm:"column:metric_key;size:64;uniqueIndex;not null"`
	Label     string  `gorm:"size:128;not null"`
	Category  string  `gorm:"size:32;index;not null"`
	Unit      string  `gorm:"size:16;not null"`
	Value     float64 `gorm:"not null"`
	Previous  float64 `gorm:"not null"`
	IsActive  bool    `gorm:"not null"`
	SortKey   int     `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName returns the table name for GORM.
func (MetricModel) TableName() string { return "metrics" }

// Models returns the tables owned by the analytics feature, for migration.
func Models() []any {
	return []any{&MetricModel{}}
}

type metricSQL struct {
	db *gorm.DB
}

var _ usecase.MetricRepository = (*metricSQL)(nil)

// NewMetricSQL creates a MetricRepository on db.
func NewMetricSQL(db *gorm.DB) *metricSQL {
	return &metricSQL{db: db}
}

func (r *metricSQL) ListActive(ctx context.Context) ([]entity.Metric, error) {
	var models []MetricModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]entity.Metric, 0, len(models))
	for _, m := range models {
		out = append(out, entity.Metric{
			Key:      m.Key,
			Label:    m.Label,
			Category: m.Category,
			Unit:     m.Unit,
			Value:    m.Value,
			Previous: m.Previous,
			IsActive: m.IsActive,
			SortKey:  m.SortKey,
		})
	}
	return out, nil
}

// UpsertAll inserts the metrics, updating existing rows by key.
func (r *metricSQL) UpsertAll(ctx context.Context, metrics []entity.Metric) error {
	if len(metrics) == 0 {
		return nil
	}
	models := make([]MetricModel, 0, len(metrics))
	for _, m := range metrics {
		models = append(models, MetricModel{
			Key:      m.Key,
			Label:    m.Label,
			Category: m.Category,
			Unit:     m.Unit,
			Value:    m.Value,
			Previous: m.Previous,
			IsActive: m.IsActive,
			SortKey:  m.SortKey,
		})
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "metric_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"label", "category", "unit", "value", "previous", "is_active", "sort_key", "updated_at"}),
	}).Create(&models).Error
}
