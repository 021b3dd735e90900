// Package usecase implements the settings screen.
package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"leadswift_backend/internal/feature/settings/domain/entity"
)

// SettingsRepository stores per-user toggle overrides.
type SettingsRepository interface {
	// Overrides returns the values the user has changed, keyed by toggle key.
	Overrides(ctx context.Context, userID uint) (map[string]bool, error)
	// SaveAll upserts values in one transaction.
	SaveAll(ctx context.Context, userID uint, values map[string]bool) error
}

type settingsUsecase struct {
	repo SettingsRepository
	tabs []entity.Tab
}

// NewSettingsUsecase creates the settings usecase over the default catalog.
func NewSettingsUsecase(repo SettingsRepository) *settingsUsecase {
	return &settingsUsecase{repo: repo, tabs: entity.DefaultTabs()}
}

// Tab renders one tab for userID.
func (u *settingsUsecase) Tab(ctx context.Context, userID uint, key string) (*entity.Tab, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, t := range u.tabs {
		if t.Key != key {
			continue
		}
		overrides, err := u.repo.Overrides(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load settings: %w", err)
		}
		tab := t.Apply(overrides)
		return &tab, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTab, key)
}

// All renders every tab for userID in display order.
func (u *settingsUsecase) All(ctx context.Context, userID uint) ([]entity.Tab, error) {
	overrides, err := u.repo.Overrides(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	out := make([]entity.Tab, 0, len(u.tabs))
	for _, t := range u.tabs {
		out = append(out, t.Apply(overrides))
	}
	return out, nil
}

// Toggle flips one switch and returns its new state.
func (u *settingsUsecase) Toggle(ctx context.Context, userID uint, key string) (*entity.Toggle, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	tg, ok := entity.FindToggle(u.tabs, key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownToggle, key)
	}
	overrides, err := u.repo.Overrides(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if v, ok := overrides[key]; ok {
		tg.Enabled = v
	}
	tg.Enabled = !tg.Enabled

	if err := u.repo.SaveAll(ctx, userID, map[string]bool{key: tg.Enabled}); err != nil {
		return nil, fmt.Errorf("failed to save setting: %w", err)
	}
	return &tg, nil
}

// Save stores values all at once. Nothing is written if any key is unknown.
func (u *settingsUsecase) Save(ctx context.Context, userID uint, values map[string]bool) ([]entity.Tab, error) {
	var unknown []string
	for k := range values {
		if _, ok := entity.FindToggle(u.tabs, k); !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("%w: %s", ErrUnknownToggle, strings.Join(unknown, ", "))
	}

	if len(values) > 0 {
		if err := u.repo.SaveAll(ctx, userID, values); err != nil {
			return nil, fmt.Errorf("failed to save settings: %w", err)
		}
	}
	return u.All(ctx, userID)
}
