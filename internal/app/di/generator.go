package di

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go/option"

	"leadswift_backend/internal/feature/pitch/adapters/gemini"
	"leadswift_backend/internal/feature/pitch/adapters/openai"
	"leadswift_backend/internal/feature/pitch/adapters/placeholder"
	"leadswift_backend/internal/feature/pitch/usecase"
	infrahttp "leadswift_backend/internal/platform/http"
)

// generatorTimeout bounds one outbound generation call.
const generatorTimeout = 60 * time.Second

// NewPitchGenerator returns the generator named by provider (PITCH_PROVIDER).
func NewPitchGenerator(ctx context.Context, provider string) (usecase.PitchGenerator, error) {
	switch provider {
	case "", placeholder.Name:
		return placeholder.Generator{}, nil
	case gemini.Name:
		g, err := gemini.NewGenerator(ctx, gemini.ModelFromEnv())
		if err != nil {
			return nil, err
		}
		return g, nil
	case openai.Name:
		g, err := openai.NewGenerator(openai.LoadConfig(), option.WithHTTPClient(infrahttp.NewHTTPClient(generatorTimeout)))
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown PITCH_PROVIDER %q", provider)
	}
}
