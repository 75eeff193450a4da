package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/inferra-data/inferra-engine/pkg/config"
	"github.com/inferra-data/inferra-engine/pkg/retry"
)

// openaiRefiner refines reports through an OpenAI-compatible endpoint.
type openaiRefiner struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

func newOpenAIRefiner(cfg config.RefineConfig, logger *zap.Logger) (*openaiRefiner, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}

	return &openaiRefiner{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		logger: logger.Named("llm"),
	}, nil
}

func (r *openaiRefiner) Refine(ctx context.Context, report string) (string, error) {
	start := time.Now()

	resp, err := retry.DoWithResult(ctx, nil, func() (openai.ChatCompletionResponse, error) {
		return r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       r.model,
			Temperature: 0.2,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: report},
			},
		})
	})
	if err != nil {
		return "", fmt.Errorf("refine report: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	r.logger.Info("Report refinement completed",
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("elapsed", time.Since(start)))

	return resp.Choices[0].Message.Content, nil
}
