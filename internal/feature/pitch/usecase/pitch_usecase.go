// Package usecase はpitchフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"leadswift_backend/internal/feature/pitch/domain/entity"
)

const (
	// MaxPromptLength はプロンプトの最大文字数（rune数）です。
	MaxPromptLength = 4000
	// MaxLeadIDLength / MaxUserIDLength はIDの最大文字数です（pitchesテーブルの列幅）。
	MaxLeadIDLength = 128
	MaxUserIDLength = 128
	// DefaultListLimit / MaxListLimit は一覧取得の件数です。
	DefaultListLimit = 20
	MaxListLimit     = 100

	// ModelPromptTemplate は言語モデルに渡す指示文のテンプレートです。
	ModelPromptTemplate = "Write a short, friendly sales outreach pitch for the lead %q. " +
		"Keep it under 150 words and end with a clear call to action.%s"
)

// PitchRepository はピッチの永続化を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type PitchRepository interface {
	Create(ctx context.Context, p *entity.Pitch) error
	FindByID(ctx context.Context, id string) (*entity.Pitch, error)
	// List returns the user's pitches newest first, optionally for one lead.
	List(ctx context.Context, userID, leadID string, limit int) ([]entity.Pitch, error)
}

// PitchGenerator はピッチ本文を生成する外部プロバイダーです。
type PitchGenerator interface {
	Name() string
	Generate(ctx context.Context, req entity.GenerationRequest) (string, error)
}

// RateLimiter は生成器呼び出しの頻度を制限します。
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// GenerationObserver は生成結果を計測します。
type GenerationObserver interface {
	ObserveGeneration(provider string, err error)
}

type noopObserver struct{}

func (noopObserver) ObserveGeneration(string, error) {}

// pitchUsecase はピッチ生成のビジネスロジックを提供します。
type pitchUsecase struct {
	repo      PitchRepository
	generator PitchGenerator
	limiter   RateLimiter
	observer  GenerationObserver
	now       func() time.Time
	newID     func() string
}

// NewPitchUsecase はpitchUsecaseを生成します。observerはnilでも構いません。
func NewPitchUsecase(repo PitchRepository, generator PitchGenerator, limiter RateLimiter, observer GenerationObserver) *pitchUsecase {
	if observer == nil {
		observer = noopObserver{}
	}
	return &pitchUsecase{
		repo:      repo,
		generator: generator,
		limiter:   limiter,
		observer:  observer,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

func validate(in entity.GenerateInput) (entity.GenerateInput, error) {
	in.LeadID = strings.TrimSpace(in.LeadID)
	in.UserID = strings.TrimSpace(in.UserID)
	switch {
	case in.LeadID == "":
		return in, fmt.Errorf("%w: leadId is required", ErrInvalidInput)
	case in.UserID == "":
		return in, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	case utf8.RuneCountInString(in.LeadID) > MaxLeadIDLength:
		return in, fmt.Errorf("%w: leadId exceeds %d characters", ErrInvalidInput, MaxLeadIDLength)
	case utf8.RuneCountInString(in.UserID) > MaxUserIDLength:
		return in, fmt.Errorf("%w: userId exceeds %d characters", ErrInvalidInput, MaxUserIDLength)
	case utf8.RuneCountInString(in.Prompt) > MaxPromptLength:
		return in, fmt.Errorf("%w: prompt exceeds %d characters", ErrInvalidInput, MaxPromptLength)
	}
	return in, nil
}

// BuildModelPrompt はリードIDとユーザー指示から言語モデル向けの指示文を組み立てます。
func BuildModelPrompt(leadID, prompt string) string {
	extra := ""
	if p := strings.TrimSpace(prompt); p != "" {
		extra = "\n\nAdditional guidance from the sender:\n" + p
	}
	return fmt.Sprintf(ModelPromptTemplate, leadID, extra)
}

// Generate はピッチを生成して保存し、保存したレコードを返します。
func (u *pitchUsecase) Generate(ctx context.Context, in entity.GenerateInput) (*entity.Pitch, error) {
	in, err := validate(in)
	if err != nil {
		return nil, err
	}

	if err := u.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit wait: %v", ErrGenerationFailed, err)
	}
	text, err := u.generator.Generate(ctx, entity.GenerationRequest{
		LeadID:      in.LeadID,
		Prompt:      in.Prompt,
		ModelPrompt: BuildModelPrompt(in.LeadID, in.Prompt),
	})
	u.observer.ObserveGeneration(u.generator.Name(), err)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrGenerationFailed, u.generator.Name(), err)
	}

	p := &entity.Pitch{
		ID:        u.newID(),
		LeadID:    in.LeadID,
		UserID:    in.UserID,
		Prompt:    in.Prompt,
		Text:      text,
		Provider:  u.generator.Name(),
		CreatedAt: u.now().UTC(),
	}
	if err := u.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to store pitch: %w", err)
	}
	return p, nil
}

// List はユーザーのピッチを新しい順に返します。limitは1..MaxListLimitに丸めます。
func (u *pitchUsecase) List(ctx context.Context, userID, leadID string, limit int) ([]entity.Pitch, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	return u.repo.List(ctx, userID, strings.TrimSpace(leadID), limit)
}

// Get はIDでピッチを取得します。
func (u *pitchUsecase) Get(ctx context.Context, id string) (*entity.Pitch, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrPitchNotFound
	}
	return u.repo.FindByID(ctx, id)
}
