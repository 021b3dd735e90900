package di

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authadapters "leadswift_backend/internal/feature/auth/adapters"
	"leadswift_backend/internal/feature/pitch/adapters/openai"
	"leadswift_backend/internal/feature/pitch/adapters/placeholder"
	"leadswift_backend/internal/platform/session"
)

func TestNewPitchGenerator(t *testing.T) {
	ctx := context.Background()

	g, err := NewPitchGenerator(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, placeholder.Name, g.Name())

	g, err = NewPitchGenerator(ctx, placeholder.Name)
	require.NoError(t, err)
	assert.Equal(t, placeholder.Name, g.Name())

	t.Setenv("OPENAI_API_KEY", "test-key")
	g, err = NewPitchGenerator(ctx, openai.Name)
	require.NoError(t, err)
	assert.Equal(t, openai.Name, g.Name())

	_, err = NewPitchGenerator(ctx, "claude-3")
	assert.ErrorContains(t, err, "unknown PITCH_PROVIDER")
}

func TestNewSessionRepository(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	assert.IsType(t, authadapters.NewSessionSQL(db), NewSessionRepository(nil, db))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	assert.IsType(t, &session.SessionRedis{}, NewSessionRepository(rdb, db))
}

func TestModels(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(Models()...))

	for _, table := range []string{"users", "sessions", "pitches", "metrics", "user_settings"} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
}
