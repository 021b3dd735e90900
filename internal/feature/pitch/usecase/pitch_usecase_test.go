package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadswift_backend/internal/feature/pitch/domain/entity"
)

type mockPitchRepository struct {
	CreateFunc   func(ctx context.Context, p *entity.Pitch) error
	FindByIDFunc func(ctx context.Context, id string) (*entity.Pitch, error)
	ListFunc     func(ctx context.Context, userID, leadID string, limit int) ([]entity.Pitch, error)
	created      []*entity.Pitch
}

func (m *mockPitchRepository) Create(ctx context.Context, p *entity.Pitch) error {
	m.created = append(m.created, p)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *mockPitchRepository) FindByID(ctx context.Context, id string) (*entity.Pitch, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrPitchNotFound
}

func (m *mockPitchRepository) List(ctx context.Context, userID, leadID string, limit int) ([]entity.Pitch, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, leadID, limit)
	}
	return nil, nil
}

type mockGenerator struct {
	GenerateFunc func(ctx context.Context, req entity.GenerationRequest) (string, error)
	calls        int
	lastReq      entity.GenerationRequest
}

func (m *mockGenerator) Name() string { return "mock" }

func (m *mockGenerator) Generate(ctx context.Context, req entity.GenerationRequest) (string, error) {
	m.calls++
	m.lastReq = req
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return "Generated pitch for lead " + req.LeadID, nil
}

type mockLimiter struct{ err error }

func (m mockLimiter) Wait(context.Context) error { return m.err }

type recordingObserver struct {
	providers []string
	errs      []error
}

func (r *recordingObserver) ObserveGeneration(provider string, err error) {
	r.providers = append(r.providers, provider)
	r.errs = append(r.errs, err)
}

func newTestUsecase(repo *mockPitchRepository, gen *mockGenerator, limiter RateLimiter, obs GenerationObserver) *pitchUsecase {
	uc := NewPitchUsecase(repo, gen, limiter, obs)
	uc.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	uc.newID = func() string { return "f47ac10b-58cc-4372-a567-0e02b2c3d479" }
	return uc
}

func TestPitchUsecase_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("success stores and returns the pitch", func(t *testing.T) {
		repo := &mockPitchRepository{}
		gen := &mockGenerator{}
		obs := &recordingObserver{}
		uc := newTestUsecase(repo, gen, mockLimiter{}, obs)

		p, err := uc.Generate(ctx, entity.GenerateInput{LeadID: " lead-7 ", UserID: "user-1", Prompt: "mention pricing"})

		require.NoError(t, err)
		assert.Contains(t, p.Text, "lead-7")
		assert.Equal(t, "lead-7", p.LeadID)
		assert.Equal(t, "mock", p.Provider)
		assert.Equal(t, "f47ac10b-58cc-4372-a567-0e02b2c3d479", p.ID)
		require.Len(t, repo.created, 1)
		assert.Equal(t, "mention pricing", repo.created[0].Prompt)
		assert.Contains(t, gen.lastReq.ModelPrompt, "mention pricing")
		assert.Equal(t, []string{"mock"}, obs.providers)
		assert.NoError(t, obs.errs[0])
	})

	t.Run("empty prompt is allowed", func(t *testing.T) {
		uc := newTestUsecase(&mockPitchRepository{}, &mockGenerator{}, mockLimiter{}, nil)

		p, err := uc.Generate(ctx, entity.GenerateInput{LeadID: "lead-1", UserID: "user-1"})

		require.NoError(t, err)
		assert.Equal(t, "Generated pitch for lead lead-1", p.Text)
	})

	invalid := []struct {
		name string
		in   entity.GenerateInput
	}{
		{name: "missing lead", in: entity.GenerateInput{UserID: "u"}},
		{name: "whitespace lead", in: entity.GenerateInput{LeadID: "   ", UserID: "u"}},
		{name: "missing user", in: entity.GenerateInput{LeadID: "l"}},
		{name: "lead too long", in: entity.GenerateInput{LeadID: strings.Repeat("x", MaxLeadIDLength+1), UserID: "u"}},
		{name: "user too long", in: entity.GenerateInput{LeadID: "l", UserID: strings.Repeat("u", MaxUserIDLength+1)}},
		{name: "prompt too long", in: entity.GenerateInput{LeadID: "l", UserID: "u", Prompt: strings.Repeat("あ", MaxPromptLength+1)}},
	}
	for _, tt := range invalid {
		t.Run("invalid: "+tt.name, func(t *testing.T) {
			gen := &mockGenerator{}
			uc := newTestUsecase(&mockPitchRepository{}, gen, mockLimiter{}, nil)

			_, err := uc.Generate(ctx, tt.in)

			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, gen.calls, "generator is not called")
		})
	}

	t.Run("prompt at the limit counts runes", func(t *testing.T) {
		uc := newTestUsecase(&mockPitchRepository{}, &mockGenerator{}, mockLimiter{}, nil)

		_, err := uc.Generate(ctx, entity.GenerateInput{LeadID: "l", UserID: "u", Prompt: strings.Repeat("あ", MaxPromptLength)})
		assert.NoError(t, err)
	})

	t.Run("ids at the column width", func(t *testing.T) {
		repo := &mockPitchRepository{}
		uc := newTestUsecase(repo, &mockGenerator{}, mockLimiter{}, nil)

		_, err := uc.Generate(ctx, entity.GenerateInput{
			LeadID: strings.Repeat("l", MaxLeadIDLength),
			UserID: strings.Repeat("u", MaxUserIDLength),
		})
		assert.NoError(t, err)
	})

	t.Run("generator failure", func(t *testing.T) {
		repo := &mockPitchRepository{}
		obs := &recordingObserver{}
		gen := &mockGenerator{GenerateFunc: func(ctx context.Context, req entity.GenerationRequest) (string, error) {
			return "", errors.New("upstream 500")
		}}
		uc := newTestUsecase(repo, gen, mockLimiter{}, obs)

		_, err := uc.Generate(ctx, entity.GenerateInput{LeadID: "l", UserID: "u"})

		assert.ErrorIs(t, err, ErrGenerationFailed)
		assert.Empty(t, repo.created)
		assert.Error(t, obs.errs[0])
	})

	t.Run("rate limiter cancelled", func(t *testing.T) {
		gen := &mockGenerator{}
		uc := newTestUsecase(&mockPitchRepository{}, gen, mockLimiter{err: context.Canceled}, nil)

		_, err := uc.Generate(ctx, entity.GenerateInput{LeadID: "l", UserID: "u"})

		assert.ErrorIs(t, err, ErrGenerationFailed)
		assert.Zero(t, gen.calls)
	})

	t.Run("insert failure", func(t *testing.T) {
		boom := errors.New("db down")
		repo := &mockPitchRepository{CreateFunc: func(ctx context.Context, p *entity.Pitch) error { return boom }}
		uc := newTestUsecase(repo, &mockGenerator{}, mockLimiter{}, nil)

		_, err := uc.Generate(ctx, entity.GenerateInput{LeadID: "l", UserID: "u"})

		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ErrGenerationFailed)
	})
}

func TestPitchUsecase_List(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{name: "default", limit: 0, wantLimit: DefaultListLimit},
		{name: "negative", limit: -3, wantLimit: DefaultListLimit},
		{name: "within range", limit: 5, wantLimit: 5},
		{name: "clamped", limit: 1000, wantLimit: MaxListLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotLimit int
			var gotLead string
			repo := &mockPitchRepository{ListFunc: func(ctx context.Context, userID, leadID string, limit int) ([]entity.Pitch, error) {
				gotLimit, gotLead = limit, leadID
				return []entity.Pitch{{ID: "1"}}, nil
			}}
			uc := newTestUsecase(repo, &mockGenerator{}, mockLimiter{}, nil)

			got, err := uc.List(context.Background(), "user-1", " lead-1 ", tt.limit)

			require.NoError(t, err)
			assert.Len(t, got, 1)
			assert.Equal(t, tt.wantLimit, gotLimit)
			assert.Equal(t, "lead-1", gotLead)
		})
	}

	t.Run("missing user", func(t *testing.T) {
		uc := newTestUsecase(&mockPitchRepository{}, &mockGenerator{}, mockLimiter{}, nil)
		_, err := uc.List(context.Background(), "", "", 10)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestPitchUsecase_Get(t *testing.T) {
	id := "f47ac10b-58cc-4372-a567-0e02b2c3d479"
	repo := &mockPitchRepository{FindByIDFunc: func(ctx context.Context, got string) (*entity.Pitch, error) {
		if got == id {
			return &entity.Pitch{ID: id}, nil
		}
		return nil, ErrPitchNotFound
	}}
	uc := newTestUsecase(repo, &mockGenerator{}, mockLimiter{}, nil)

	p, err := uc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)

	_, err = uc.Get(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrPitchNotFound)
}

func TestBuildModelPrompt(t *testing.T) {
	assert.Contains(t, BuildModelPrompt("acme", ""), `"acme"`)
	assert.NotContains(t, BuildModelPrompt("acme", "  "), "Additional guidance")
	assert.Contains(t, BuildModelPrompt("acme", "be brief"), "Additional guidance from the sender:\nbe brief")
}
