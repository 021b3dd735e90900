package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "leadswift_backend/internal/feature/auth/adapters"
	"leadswift_backend/internal/feature/auth/usecase"
	"leadswift_backend/internal/platform/session"
)

// NewSessionRepository creates a SessionRepository implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the SQL database.
func NewSessionRepository(rdb *redis.Client, db *gorm.DB) usecase.SessionRepository {
	if rdb != nil {
		return session.NewSessionRedis(rdb, session.DefaultPrefix)
	}
	return authadapters.NewSessionSQL(db)
}
