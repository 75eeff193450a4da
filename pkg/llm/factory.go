package llm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/inferra-data/inferra-engine/pkg/config"
)

// NewRefiner builds the configured refinement provider. Returns (nil, nil)
// when refinement is disabled; callers must treat a nil Refiner as "use the
// unrefined report".
func NewRefiner(cfg config.RefineConfig, logger *zap.Logger) (Refiner, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	switch cfg.Provider {
	case "openai":
		return newOpenAIRefiner(cfg, logger)
	case "anthropic":
		return newAnthropicRefiner(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown refine provider %q", cfg.Provider)
	}
}
