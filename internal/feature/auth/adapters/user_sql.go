package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"leadswift_backend/internal/feature/auth/domain/entity"
	"leadswift_backend/internal/feature/auth/usecase"
	"leadswift_backend/internal/platform/db"
)

// userSQL はUserRepositoryのGORM実装です（Postgres / SQLite共通）。
type userSQL struct {
	db *gorm.DB
}

// userSQLがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userSQL)(nil)

// NewUserSQL は指定されたgorm.DB接続でuserSQLを生成します。
func NewUserSQL(db *gorm.DB) *userSQL {
	return &userSQL{db: db}
}

// Create はユーザーを追加します。
// メールアドレスが重複する場合はusecase.ErrEmailAlreadyExistsを返します。
func (r *userSQL) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail はメールアドレスでユーザーを取得します。
func (r *userSQL) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.first(ctx, "email = ?", email)
}

// FindByID はIDでユーザーを取得します。
func (r *userSQL) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userSQL) first(ctx context.Context, query string, arg any) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
