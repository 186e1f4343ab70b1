package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"

	"github.com/babygenie/service-planner/internal/config"
)

// ErrMissingAPIKey is returned when no OpenAI key is configured.
var ErrMissingAPIKey = errors.New("openai api key is not configured")

// ChatModel is the subset of the langchaingo model used here.
type ChatModel interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// OpenAIGenerator produces text with an OpenAI chat model.
type OpenAIGenerator struct {
	model       ChatModel
	temperature float64
	timeout     time.Duration
	logger      *zap.Logger
}

// NewOpenAIGenerator creates a generator from the LLM configuration.
func NewOpenAIGenerator(cfg config.LLMConfig, logger *zap.Logger) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
	}
	if cfg.Model != "" {
		opts = append(opts, openai.WithModel(cfg.Model))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create openai client: %w", err)
	}
	return NewGenerator(client, cfg.Temperature, cfg.Timeout, logger), nil
}

// NewGenerator wraps an existing chat model.
func NewGenerator(model ChatModel, temperature float64, timeout time.Duration, logger *zap.Logger) *OpenAIGenerator {
	return &OpenAIGenerator{
		model:       model,
		temperature: temperature,
		timeout:     timeout,
		logger:      logger,
	}
}

// Generate sends one system and one human message and returns the first choice.
func (g *OpenAIGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	start := time.Now()
	resp, err := g.model.GenerateContent(ctx, messages, llms.WithTemperature(g.temperature))
	if err != nil {
		return "", fmt.Errorf("openai completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}

	g.logger.Debug("completion generated", zap.Duration("latency", time.Since(start)))
	return strings.TrimSpace(resp.Choices[0].Content), nil
}
