// Package openai generates pitches with an OpenAI-compatible chat completions API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"leadswift_backend/internal/feature/pitch/domain/entity"
	"leadswift_backend/internal/feature/pitch/usecase"
)

const (
	// Name is the provider name recorded on generated pitches.
	Name = "openai"
	// DefaultModel is used when OPENAI_MODEL is unset.
	DefaultModel = "gpt-4o-mini"

	systemPrompt = "You write concise, personalised B2B sales outreach pitches."
)

// Config holds the chat completions connection settings.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// LoadConfig reads OPENAI_API_KEY, OPENAI_MODEL and OPENAI_BASE_URL.
func LoadConfig() Config {
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = DefaultModel
	}
	return Config{
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		Model:   model,
		BaseURL: os.Getenv("OPENAI_BASE_URL"),
	}
}

// Generator calls the chat completions endpoint.
type Generator struct {
	client openai.Client
	model  string
}

var _ usecase.PitchGenerator = (*Generator)(nil)

// NewGenerator validates cfg and builds the client.
func NewGenerator(cfg Config, extra ...option.RequestOption) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing; set OPENAI_API_KEY")
	}
	if cfg.Model == "" {
		return nil, errors.New("openai model is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	opts = append(opts, extra...)
	return &Generator{client: openai.NewClient(opts...), model: cfg.Model}, nil
}

func (g *Generator) Name() string { return Name }

func (g *Generator) Generate(ctx context.Context, req entity.GenerationRequest) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(req.ModelPrompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("openai: empty message")
	}
	return text, nil
}
