// Package gemini adapts the Google Gemini API to the hosted analysis backend.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/kailas-cloud/resumatch/internal/domain"
	"github.com/kailas-cloud/resumatch/internal/usecase/hosted"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Config holds the Gemini client settings.
type Config struct {
	APIKey string
	// BaseURL overrides the API endpoint, mostly for tests.
	BaseURL         string
	Model           string
	Temperature     float32
	TopK            float32
	TopP            float32
	MaxOutputTokens int32
	Logger          *zap.Logger
}

// Generator calls Gemini generateContent.
type Generator struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
	logger *zap.Logger
}

// NewGenerator creates a Gemini client.
func NewGenerator(ctx context.Context, cfg *Config) (*Generator, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	gc := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		MaxOutputTokens:  cfg.MaxOutputTokens,
	}
	if cfg.Temperature > 0 {
		gc.Temperature = float32Ptr(cfg.Temperature)
	}
	if cfg.TopK > 0 {
		gc.TopK = float32Ptr(cfg.TopK)
	}
	if cfg.TopP > 0 {
		gc.TopP = float32Ptr(cfg.TopP)
	}

	return &Generator{client: client, model: model, config: gc, logger: logger}, nil
}

// Provider returns "gemini".
func (g *Generator) Provider() string { return "gemini" }

// Model returns the model name.
func (g *Generator) Model() string { return g.model }

// Generate implements hosted.Generator.
func (g *Generator) Generate(ctx context.Context, p hosted.Prompt) (string, error) {
	cfg := *g.config
	if p.System != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: p.System}}}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(p.User), &cfg)
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates: %w", domain.ErrMalformedResponse)
	}

	g.logger.Debug("Gemini generation finished",
		zap.String("model", g.model),
		zap.String("finish_reason", string(resp.Candidates[0].FinishReason)),
	)
	return resp.Text(), nil
}

// classify maps Gemini API errors onto the upstream sentinels.
func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return domain.ClassifyUpstreamStatus(apiErr.Code, apiErr.Message)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return domain.ClassifyUpstreamStatus(apiErrPtr.Code, apiErrPtr.Message)
	}
	return fmt.Errorf("gemini request: %w: %w", domain.ErrUpstreamFailure, err)
}

func float32Ptr(v float32) *float32 { return &v }
