// Package gemini はGoogle Gemini APIを使用したピッチ生成器を提供します。
package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"

	"leadswift_backend/internal/feature/pitch/domain/entity"
	"leadswift_backend/internal/feature/pitch/usecase"
)

const (
	// Name は生成したピッチに記録するプロバイダー名です。
	Name = "gemini"
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
)

// ErrEmptyResponse はモデルが本文を返さなかった場合のエラーです。
var ErrEmptyResponse = errors.New("gemini returned no text")

// contentGenerator は genai.Models のうち利用するメソッドです。
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator はGeminiでピッチ本文を生成します。
type Generator struct {
	models contentGenerator
	model  string
}

// Generatorがusecase.PitchGeneratorを実装していることをコンパイル時に検証します。
var _ usecase.PitchGenerator = (*Generator)(nil)

// ModelFromEnv は GEMINI_MODEL またはデフォルトモデルを返します。
func ModelFromEnv() string {
	if m := os.Getenv("GEMINI_MODEL"); m != "" {
		return m
	}
	return DefaultModel
}

// NewGenerator はGeminiクライアントを生成します。
// 認証は GEMINI_API_KEY、または GOOGLE_GENAI_USE_VERTEXAI / GOOGLE_CLOUD_PROJECT / GOOGLE_CLOUD_LOCATION（ADC）に従います。
func NewGenerator(ctx context.Context, model string) (*Generator, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &Generator{models: client.Models, model: model}, nil
}

func (g *Generator) Name() string { return Name }

// Generate はモデル向け指示文からピッチ本文を生成します。
func (g *Generator) Generate(ctx context.Context, req entity.GenerationRequest) (string, error) {
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(req.ModelPrompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
