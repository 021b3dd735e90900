// Package adapters provides the storage implementation for the settings feature.
package adapters

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"leadswift_backend/internal/feature/settings/usecase"
)

// UserSettingModel is one overridden toggle of one user.
type UserSettingModel struct {
	UserID    uint   `gorm:"primaryKey;autoIncrement:false"`
	Key       string `gorm:"column:setting_key;primaryKey;size:64"`
	Enabled   bool   `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName returns the table name for GORM.
func (UserSettingModel) TableName() string { return "user_settings" }

// Models returns the tables owned by the settings feature, for migration.
func Models() []any {
	return []any{&UserSettingModel{}}
}

type settingsSQL struct {
	db *gorm.DB
}

var _ usecase.SettingsRepository = (*settingsSQL)(nil)

// NewSettingsSQL creates a SettingsRepository on db.
func NewSettingsSQL(db *gorm.DB) *settingsSQL {
	return &settingsSQL{db: db}
}

func (r *settingsSQL) Overrides(ctx context.Context, userID uint) (map[string]bool, error) {
	var rows []UserSettingModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Enabled
	}
	return out, nil
}

func (r *settingsSQL) SaveAll(ctx context.Context, userID uint, values map[string]bool) error {
	if len(values) == 0 {
		return nil
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	// 書き込み順を固定してロック順序を安定させる
	sort.Strings(keys)

	rows := make([]UserSettingModel, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, UserSettingModel{UserID: userID, Key: k, Enabled: values[k]})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "setting_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"enabled", "updated_at"}),
		}).Create(&rows).Error
	})
}
