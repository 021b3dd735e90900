package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"leadswift_backend/internal/feature/auth/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	// refreshTokenBytes はリフレッシュトークンの乱数バイト数です（hexで64文字）。
	refreshTokenBytes = 32

	// dummyHash はユーザーが存在しない場合のタイミング攻撃緩和用ハッシュです。
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// Config はセッション発行に関する設定です。
type Config struct {
	AccessTTL   time.Duration
	RefreshTTL  time.Duration
	MaxSessions int
}

// DefaultConfig returns the lifetimes used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		AccessTTL:   time.Hour,
		RefreshTTL:  7 * 24 * time.Hour,
		MaxSessions: 5,
	}
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users        UserRepository
	sessions     SessionRepository
	jwtGenerator JWTGenerator
	cfg          Config
	now          func() time.Time
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, sessions SessionRepository, jwtGenerator JWTGenerator, cfg Config) *authUsecase {
	def := DefaultConfig()
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = def.AccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = def.RefreshTTL
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = def.MaxSessions
	}
	return &authUsecase{
		users:        users,
		sessions:     sessions,
		jwtGenerator: jwtGenerator,
		cfg:          cfg,
		now:          time.Now,
	}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters long", ErrWeakPassword, minPasswordLength)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup はハッシュ化されたパスワードで新規ユーザーを登録します。
func (u *authUsecase) Signup(ctx context.Context, email, password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{Email: normalizeEmail(email), Password: string(hashed)}
	return u.users.Create(ctx, user)
}

// Login はユーザーを認証し、成功時にアクセストークンとリフレッシュトークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string, meta entity.ClientMeta) (*entity.TokenPair, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))

	passwordHash := dummyHash
	if err == nil && user.Password != "" {
		passwordHash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出、パスワード未設定（IdP専用アカウント）、不一致はすべて同じエラー
	if err != nil || user.Password == "" || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issue(ctx, user, meta)
}

// LoginWithIdentity signs in a user asserted by the identity provider,
// creating the account on first sight.
func (u *authUsecase) LoginWithIdentity(ctx context.Context, id entity.Identity, meta entity.ClientMeta) (*entity.TokenPair, error) {
	email := normalizeEmail(id.Email)
	if email == "" {
		return nil, ErrInvalidIdentity
	}

	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		user = &entity.User{Email: email, ExternalID: id.Subject}
		err = u.users.Create(ctx, user)
		if errors.Is(err, ErrEmailAlreadyExists) {
			// 同時サインインで先に作成された
			user, err = u.users.FindByEmail(ctx, email)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve identity user: %w", err)
	}

	return u.issue(ctx, user, meta)
}

// Refresh rotates a refresh token: the presented session is revoked and a new pair is issued.
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string, meta entity.ClientMeta) (*entity.TokenPair, error) {
	session, err := u.sessions.FindByID(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if session.IsRevoked() {
		return nil, ErrSessionRevoked
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}

	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}
	if err := u.sessions.Revoke(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("failed to revoke session: %w", err)
	}

	return u.issue(ctx, user, meta)
}

// Logout revokes the session; an unknown token is not an error.
func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	if err := u.sessions.Revoke(ctx, refreshToken); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return err
	}
	return nil
}

// CurrentUser returns the account behind an access token.
func (u *authUsecase) CurrentUser(ctx context.Context, id uint) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}

// CleanupExpiredSessions deletes sessions past their expiry.
func (u *authUsecase) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	n, err := u.sessions.DeleteExpired(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		slog.Info("expired sessions deleted", "count", n)
	}
	return n, nil
}

// issue creates a new session for user, evicting the oldest ones over the limit.
func (u *authUsecase) issue(ctx context.Context, user *entity.User, meta entity.ClientMeta) (*entity.TokenPair, error) {
	count, err := u.sessions.CountByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}
	for ; count >= int64(u.cfg.MaxSessions); count-- {
		if err := u.sessions.DeleteOldestByUserID(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("failed to evict session: %w", err)
		}
	}

	access, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	refresh, err := randomToken(refreshTokenBytes)
	if err != nil {
		return nil, err
	}
	now := u.now()
	session := &entity.Session{
		ID:        refresh,
		UserID:    user.ID,
		UserAgent: meta.UserAgent,
		IPAddress: meta.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.cfg.RefreshTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &entity.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(u.cfg.AccessTTL / time.Second),
	}, nil
}

// randomToken は n バイトの乱数をhex文字列で返します。
func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
