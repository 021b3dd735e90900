// Package session stores refresh-token sessions in Redis.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"leadswift_backend/internal/feature/auth/domain/entity"
	"leadswift_backend/internal/feature/auth/usecase"

	"github.com/redis/go-redis/v9"
)

// DefaultPrefix is the key namespace used by the server.
const DefaultPrefix = "leadswift:session"

// SessionRedis implements usecase.SessionRepository on Redis.
//
// Each session is a JSON string expiring with the session itself. A per-user
// sorted set scored by creation time indexes the user's session IDs, so the
// oldest one is always at rank 0.
type SessionRedis struct {
	client redis.Cmdable
	prefix string
	now    func() time.Time
}

var _ usecase.SessionRepository = (*SessionRedis)(nil)

// NewSessionRedis creates a SessionRedis under prefix.
func NewSessionRedis(client redis.Cmdable, prefix string) *SessionRedis {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &SessionRedis{client: client, prefix: prefix, now: time.Now}
}

func (r *SessionRedis) sessionKey(id string) string {
	return r.prefix + ":" + id
}

func (r *SessionRedis) userKey(userID uint) string {
	return r.prefix + ":user:" + strconv.FormatUint(uint64(userID), 10)
}

func (r *SessionRedis) usersKey() string {
	return r.prefix + ":users"
}

// Create stores the session with a TTL matching its expiry.
func (r *SessionRedis) Create(ctx context.Context, s *entity.Session) error {
	ttl := s.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return errors.New("session already expired")
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.sessionKey(s.ID), data, ttl)
		pipe.ZAdd(ctx, r.userKey(s.UserID), redis.Z{Score: float64(s.CreatedAt.UnixNano()), Member: s.ID})
		pipe.SAdd(ctx, r.usersKey(), strconv.FormatUint(uint64(s.UserID), 10))
		return nil
	})
	return err
}

func (r *SessionRedis) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	data, err := r.client.Get(ctx, r.sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, usecase.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var s entity.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &s, nil
}

// FindByUserID returns the user's active sessions, oldest first.
// Index entries whose session key has expired are pruned on the way.
func (r *SessionRedis) FindByUserID(ctx context.Context, userID uint) ([]*entity.Session, error) {
	ids, err := r.client.ZRange(ctx, r.userKey(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	sessions := make([]*entity.Session, 0, len(ids))
	var stale []any
	for _, id := range ids {
		s, err := r.FindByID(ctx, id)
		if errors.Is(err, usecase.ErrSessionNotFound) {
			stale = append(stale, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		if s.IsValid() {
			sessions = append(sessions, s)
		}
	}
	if len(stale) > 0 {
		if err := r.client.ZRem(ctx, r.userKey(userID), stale...).Err(); err != nil {
			return nil, err
		}
	}
	return sessions, nil
}

// Revoke marks the session revoked, keeping its remaining TTL, and drops it
// from the user's index. The key stays readable so a reused token is detected.
func (r *SessionRedis) Revoke(ctx context.Context, id string) error {
	s, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	now := r.now()
	s.RevokedAt = &now

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetArgs(ctx, r.sessionKey(id), data, redis.SetArgs{KeepTTL: true, Mode: "XX"})
		pipe.ZRem(ctx, r.userKey(s.UserID), id)
		return nil
	})
	return err
}

func (r *SessionRedis) RevokeAllByUserID(ctx context.Context, userID uint) error {
	sessions, err := r.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	for _, s := range sessions {
		if err := r.Revoke(ctx, s.ID); err != nil && !errors.Is(err, usecase.ErrSessionNotFound) {
			return err
		}
	}
	return nil
}

// DeleteExpired prunes index entries left behind by keys Redis already expired.
// The count is the number of pruned entries.
func (r *SessionRedis) DeleteExpired(ctx context.Context) (int64, error) {
	users, err := r.client.SMembers(ctx, r.usersKey()).Result()
	if err != nil {
		return 0, err
	}

	var pruned int64
	for _, u := range users {
		key := r.prefix + ":user:" + u
		ids, err := r.client.ZRange(ctx, key, 0, -1).Result()
		if err != nil {
			return pruned, err
		}
		for _, id := range ids {
			n, err := r.client.Exists(ctx, r.sessionKey(id)).Result()
			if err != nil {
				return pruned, err
			}
			if n == 0 {
				if err := r.client.ZRem(ctx, key, id).Err(); err != nil {
					return pruned, err
				}
				pruned++
			}
		}
		card, err := r.client.ZCard(ctx, key).Result()
		if err != nil {
			return pruned, err
		}
		if card == 0 {
			if err := r.client.SRem(ctx, r.usersKey(), u).Err(); err != nil {
				return pruned, err
			}
		}
	}
	return pruned, nil
}

func (r *SessionRedis) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	sessions, err := r.FindByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return int64(len(sessions)), nil
}

func (r *SessionRedis) DeleteOldestByUserID(ctx context.Context, userID uint) error {
	sessions, err := r.FindByUserID(ctx, userID)
	if err != nil || len(sessions) == 0 {
		return err
	}
	oldest := sessions[0]

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.sessionKey(oldest.ID))
		pipe.ZRem(ctx, r.userKey(userID), oldest.ID)
		return nil
	})
	return err
}
