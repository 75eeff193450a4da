package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"

	"github.com/inferra-data/inferra-engine/pkg/config"
	"github.com/inferra-data/inferra-engine/pkg/retry"
)

// anthropicRefiner refines reports through the Anthropic Messages API.
type anthropicRefiner struct {
	client *anthropic.Client
	model  anthropic.Model
	logger *zap.Logger
}

func newAnthropicRefiner(cfg config.RefineConfig, logger *zap.Logger) (*anthropicRefiner, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	opts := []anthropic.ClientOption{}
	if cfg.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
	}

	return &anthropicRefiner{
		client: anthropic.NewClient(cfg.APIKey, opts...),
		model:  anthropic.Model(cfg.Model),
		logger: logger.Named("llm"),
	}, nil
}

func (r *anthropicRefiner) Refine(ctx context.Context, report string) (string, error) {
	start := time.Now()

	resp, err := retry.DoWithResult(ctx, nil, func() (anthropic.MessagesResponse, error) {
		return r.client.CreateMessages(ctx, anthropic.MessagesRequest{
			Model:     r.model,
			System:    systemPrompt,
			MaxTokens: 4096,
			Messages: []anthropic.Message{
				anthropic.NewUserTextMessage(report),
			},
		})
	})
	if err != nil {
		return "", fmt.Errorf("refine report: %w", err)
	}

	content := resp.GetFirstContentText()
	if content == "" {
		return "", fmt.Errorf("empty response content")
	}

	r.logger.Info("Report refinement completed",
		zap.Int("input_tokens", resp.Usage.InputTokens),
		zap.Int("output_tokens", resp.Usage.OutputTokens),
		zap.Duration("elapsed", time.Since(start)))

	return content, nil
}
