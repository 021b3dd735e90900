// Package adapters provides the storage implementation for the pitch feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"leadswift_backend/internal/feature/pitch/domain/entity"
	"leadswift_backend/internal/feature/pitch/usecase"
)

// PitchModel is the GORM row of the pitches table.
type PitchModel struct {
	ID        string    `gorm:"primaryKey;size:36"`
	LeadID    string    `gorm:"size:128;not null;index"`
	UserID    string    `gorm:"size:128;not null;index:idx_pitches_user_created,priority:1"`
	Prompt    string    `gorm:"type:text"`
	Text      string    `gorm:"type:text;not null"`
	Provider  string    `gorm:"size:32;not null"`
	CreatedAt time.Time `gorm:"not null;index:idx_pitches_user_created,priority:2,sort:desc"`
}

// TableName returns the table name for GORM.
func (PitchModel) TableName() string { return "pitches" }

func (m *PitchModel) toEntity() entity.Pitch {
	return entity.Pitch{
		ID:        m.ID,
		LeadID:    m.LeadID,
		UserID:    m.UserID,
		Prompt:    m.Prompt,
		Text:      m.Text,
		Provider:  m.Provider,
		CreatedAt: m.CreatedAt,
	}
}

// Models returns the tables owned by the pitch feature, for migration.
func Models() []any {
	return []any{&PitchModel{}}
}

type pitchSQL struct {
	db *gorm.DB
}

var _ usecase.PitchRepository = (*pitchSQL)(nil)

// NewPitchSQL creates a PitchRepository on db.
func NewPitchSQL(db *gorm.DB) *pitchSQL {
	return &pitchSQL{db: db}
}

func (r *pitchSQL) Create(ctx context.Context, p *entity.Pitch) error {
	return r.db.WithContext(ctx).Create(&PitchModel{
		ID:        p.ID,
		LeadID:    p.LeadID,
		UserID:    p.UserID,
		Prompt:    p.Prompt,
		Text:      p.Text,
		Provider:  p.Provider,
		CreatedAt: p.CreatedAt,
	}).Error
}

func (r *pitchSQL) FindByID(ctx context.Context, id string) (*entity.Pitch, error) {
	var m PitchModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPitchNotFound
		}
		return nil, err
	}
	p := m.toEntity()
	return &p, nil
}

func (r *pitchSQL) List(ctx context.Context, userID, leadID string, limit int) ([]entity.Pitch, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if leadID != "" {
		q = q.Where("lead_id = ?", leadID)
	}
	var models []PitchModel
	if err := q.Order("created_at DESC").Limit(limit).Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]entity.Pitch, 0, len(models))
	for i := range models {
		out = append(out, models[i].toEntity())
	}
	return out, nil
}
