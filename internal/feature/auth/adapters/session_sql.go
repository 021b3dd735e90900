// Package adapters provides the storage implementations for the auth feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"leadswift_backend/internal/feature/auth/domain/entity"
	"leadswift_backend/internal/feature/auth/usecase"

	"gorm.io/gorm"
)

const activeSessionCond = "user_id = ? AND revoked_at IS NULL AND expires_at > ?"

// sessionSQL stores sessions in the relational database.
type sessionSQL struct {
	db  *gorm.DB
	now func() time.Time
}

var _ usecase.SessionRepository = (*sessionSQL)(nil)

// NewSessionSQL creates a SessionRepository on db.
func NewSessionSQL(db *gorm.DB) *sessionSQL {
	return &sessionSQL{db: db, now: time.Now}
}

func (r *sessionSQL) Create(ctx context.Context, session *entity.Session) error {
	return r.db.WithContext(ctx).Create(sessionModelFrom(session)).Error
}

func (r *sessionSQL) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	var model SessionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}
	return model.toEntity(), nil
}

// FindByUserID returns the user's active sessions, oldest first.
func (r *sessionSQL) FindByUserID(ctx context.Context, userID uint) ([]*entity.Session, error) {
	var models []SessionModel
	if err := r.db.WithContext(ctx).
		Where(activeSessionCond, userID, r.now()).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	sessions := make([]*entity.Session, 0, len(models))
	for i := range models {
		sessions = append(sessions, models[i].toEntity())
	}
	return sessions, nil
}

func (r *sessionSQL) Revoke(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Model(&SessionModel{}).
		Where("id = ?", id).
		Update("revoked_at", r.now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrSessionNotFound
	}
	return nil
}

func (r *sessionSQL) RevokeAllByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&SessionModel{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", r.now()).Error
}

// DeleteExpired removes expired sessions and revoked ones past their expiry alike.
func (r *sessionSQL) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", r.now()).
		Delete(&SessionModel{})
	return result.RowsAffected, result.Error
}

func (r *sessionSQL) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&SessionModel{}).
		Where(activeSessionCond, userID, r.now()).
		Count(&count).Error
	return count, err
}

// DeleteOldestByUserID deletes the user's oldest active session; none is not an error.
func (r *sessionSQL) DeleteOldestByUserID(ctx context.Context, userID uint) error {
	var oldest SessionModel
	err := r.db.WithContext(ctx).
		Where(activeSessionCond, userID, r.now()).
		Order("created_at ASC").
		First(&oldest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&SessionModel{}, "id = ?", oldest.ID).Error
}
