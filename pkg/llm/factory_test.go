package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inferra-data/inferra-engine/pkg/config"
)

func TestNewRefinerDisabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.RefineConfig
	}{
		{"no provider", config.RefineConfig{APIKey: "k"}},
		{"no api key", config.RefineConfig{Provider: "openai", Model: "gpt-4o"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refiner, err := NewRefiner(tt.cfg, zap.NewNop())
			require.NoError(t, err)
			assert.Nil(t, refiner)
		})
	}
}

func TestNewRefinerOpenAI(t *testing.T) {
	refiner, err := NewRefiner(config.RefineConfig{
		Provider: "openai",
		Model:    "gpt-4o-mini",
		APIKey:   "test-key",
	}, zap.NewNop())

	require.NoError(t, err)
	assert.IsType(t, &openaiRefiner{}, refiner)
}

func TestNewRefinerAnthropic(t *testing.T) {
	refiner, err := NewRefiner(config.RefineConfig{
		Provider: "anthropic",
		Model:    "claude-sonnet-4-20250514",
		BaseURL:  "https://proxy.internal/v1",
		APIKey:   "test-key",
	}, zap.NewNop())

	require.NoError(t, err)
	assert.IsType(t, &anthropicRefiner{}, refiner)
}

func TestNewRefinerMissingModel(t *testing.T) {
	_, err := NewRefiner(config.RefineConfig{
		Provider: "openai",
		APIKey:   "test-key",
	}, zap.NewNop())

	assert.Error(t, err)
}

func TestNewRefinerUnknownProvider(t *testing.T) {
	_, err := NewRefiner(config.RefineConfig{
		Provider: "cohere",
		APIKey:   "test-key",
	}, zap.NewNop())

	assert.Error(t, err)
}
