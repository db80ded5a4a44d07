package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/resumatch/internal/domain"
	"github.com/kailas-cloud/resumatch/internal/usecase/hosted"
)

// GeneratorConfig holds the chat completion settings.
type GeneratorConfig struct {
	Config
	Temperature float32
	MaxTokens   int
	// JSONMode asks the server for a JSON object response. Not every
	// OpenAI-compatible server supports it.
	JSONMode bool
}

// Generator is a hosted chat model behind an OpenAI-compatible API.
type Generator struct {
	client      *openai.Client
	model       string
	provider    string
	temperature float32
	maxTokens   int
	jsonMode    bool
	logger      *zap.Logger
}

// NewGenerator creates an OpenAI-compatible chat client.
func NewGenerator(cfg *GeneratorConfig) *Generator {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		client:      newClient(&cfg.Config),
		model:       cfg.Model,
		provider:    cfg.Provider,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		jsonMode:    cfg.JSONMode,
		logger:      logger,
	}
}

// Provider returns the configured provider label.
func (g *Generator) Provider() string { return g.provider }

// Model returns the chat model name.
func (g *Generator) Model() string { return g.model }

// Generate implements hosted.Generator.
func (g *Generator) Generate(ctx context.Context, p hosted.Prompt) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.System},
			{Role: openai.ChatMessageRoleUser, Content: p.User},
		},
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	}
	if g.jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classifyChatError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion has no choices: %w", domain.ErrMalformedResponse)
	}

	g.logger.Debug("Chat completion finished",
		zap.String("model", g.model),
		zap.String("finish_reason", string(resp.Choices[0].FinishReason)),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)
	return resp.Choices[0].Message.Content, nil
}

// HealthCheck verifies API availability via ListModels.
func (g *Generator) HealthCheck(ctx context.Context) error {
	if _, err := g.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

func classifyChatError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return domain.ClassifyUpstreamStatus(apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		msg := extractDetail(reqErr.Body)
		if msg == "" {
			msg = http.StatusText(reqErr.HTTPStatusCode)
		}
		return domain.ClassifyUpstreamStatus(reqErr.HTTPStatusCode, msg)
	}
	return fmt.Errorf("chat completion: %w: %w", domain.ErrUpstreamFailure, err)
}
