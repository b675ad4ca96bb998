package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/careerlens/careerlens/internal/domain"
	"github.com/careerlens/careerlens/internal/metrics"
)

// Generator is a live text-generation provider using an OpenAI-compatible
// chat completions API.
type Generator struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// GeneratorConfig holds the generation provider settings.
type GeneratorConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *zap.Logger
}

// NewGenerator creates an OpenAI-compatible chat completion provider.
func NewGenerator(cfg *GeneratorConfig) *Generator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL

	return &Generator{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

// Complete implements domain.Generator. All provider failures are wrapped
// with domain.ErrGenerationService.
func (g *Generator) Complete(ctx context.Context, req domain.GenerationRequest) (string, error) {
	chatReq := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	start := time.Now()

	resp, err := g.client.CreateChatCompletion(ctx, chatReq)

	duration := time.Since(start)
	intent := string(req.Intent)

	if err != nil {
		metrics.GenerationRequestsTotal.WithLabelValues(g.model, intent, "error").Inc()
		return "", parseGenerationError(err)
	}

	if len(resp.Choices) == 0 {
		metrics.GenerationRequestsTotal.WithLabelValues(g.model, intent, "error").Inc()
		return "", fmt.Errorf("empty completion response: %w", domain.ErrGenerationService)
	}

	metrics.GenerationRequestsTotal.WithLabelValues(g.model, intent, "success").Inc()
	metrics.GenerationRequestDuration.WithLabelValues(g.model, intent).Observe(duration.Seconds())

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (g *Generator) HealthCheck(ctx context.Context) error {
	if _, err := g.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

func parseGenerationError(err error) error {
	wrap := domain.ErrGenerationService

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("generation API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("generation API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("generation request failed: %w", wrap)
}
