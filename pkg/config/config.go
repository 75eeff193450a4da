package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for inferra-engine.
// Configuration can come from a YAML file (config.yaml) or environment
// variables; environment variables override YAML values. Secrets (LLM API
// keys) must only come from environment variables.
type Config struct {
	Env     string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version string `yaml:"-"` // Set at load time, not from config

	// DataDir is the directory scanned for input files. The CLI passes the
	// discovered file set to the analyzer explicitly; there is no ambient
	// process-wide input state.
	DataDir string `yaml:"data_dir" env:"DATA_DIR" env-default:"data"`

	// ReportDir is where generated reports are written.
	ReportDir string `yaml:"report_dir" env:"REPORT_DIR" env-default:"reports"`

	Heuristics HeuristicsConfig `yaml:"heuristics"`
	Workflow   WorkflowConfig   `yaml:"workflow"`
	Refine     RefineConfig     `yaml:"refine"`
}

// HeuristicsConfig exposes every inference threshold. Nothing is hard-baked
// in the miners; all of them read from here.
type HeuristicsConfig struct {
	// BusinessUniqueThreshold and BusinessNullThreshold bound business-field
	// candidates: unique ratio and null ratio must both be strictly below.
	BusinessUniqueThreshold float64 `yaml:"business_unique_threshold" env:"BUSINESS_UNIQUE_THRESHOLD" env-default:"0.1"`
	BusinessNullThreshold   float64 `yaml:"business_null_threshold" env:"BUSINESS_NULL_THRESHOLD" env-default:"0.1"`

	// MinOverlapRatio is the minimum value-set overlap for an implicit FK
	// suggestion.
	MinOverlapRatio float64 `yaml:"min_overlap_ratio" env:"MIN_OVERLAP_RATIO" env-default:"0.5"`

	// MaxConditionCardinality caps the distinct values of a multivariate
	// rule's condition column; MaxViolationRatio caps the conditional null
	// rate of its target.
	MaxConditionCardinality int     `yaml:"max_condition_cardinality" env:"MAX_CONDITION_CARDINALITY" env-default:"10"`
	MaxViolationRatio       float64 `yaml:"max_violation_ratio" env:"MAX_VIOLATION_RATIO" env-default:"0.05"`

	// CorrelationThreshold is the minimum |Pearson r| for a derived-field
	// suggestion; MinCorrelationSamples is the minimum aligned sample size.
	CorrelationThreshold  float64 `yaml:"correlation_threshold" env:"CORRELATION_THRESHOLD" env-default:"0.95"`
	MinCorrelationSamples int     `yaml:"min_correlation_samples" env:"MIN_CORRELATION_SAMPLES" env-default:"10"`

	// MaxDimensionCardinalityPct is the maximum cardinality ratio for a
	// dimension candidate.
	MaxDimensionCardinalityPct float64 `yaml:"max_dimension_cardinality_pct" env:"MAX_DIMENSION_CARDINALITY_PCT" env-default:"0.02"`

	// SampleSize caps the stringified sample values kept per column.
	SampleSize int `yaml:"sample_size" env:"SAMPLE_SIZE" env-default:"5"`
}

// WorkflowConfig designates the columns used by workflow mining.
type WorkflowConfig struct {
	// TimestampColumn orders status observations. When absent or fully null
	// in a table, only the state set is produced.
	TimestampColumn string `yaml:"timestamp_column" env:"WORKFLOW_TIMESTAMP_COLUMN" env-default:"updated_at"`

	// EntityColumn groups rows into logical entities. When a table lacks it,
	// grouping degenerates to one group per row and no transitions are
	// observed.
	EntityColumn string `yaml:"entity_column" env:"WORKFLOW_ENTITY_COLUMN" env-default:"invoice_id"`
}

// RefineConfig configures the optional LLM pass over the generated report.
// Refinement failures always fall back to the unrefined report.
type RefineConfig struct {
	// Provider selects the refinement backend: "openai", "anthropic", or
	// empty to disable.
	Provider string `yaml:"provider" env:"REFINE_PROVIDER" env-default:""`
	BaseURL  string `yaml:"base_url" env:"REFINE_BASE_URL" env-default:""`
	Model    string `yaml:"model" env:"REFINE_MODEL" env-default:""`
	APIKey   string `yaml:"-" env:"REFINE_API_KEY"` // Secret - not in YAML
}

// Enabled reports whether a refinement provider is configured.
func (c *RefineConfig) Enabled() bool {
	return c.Provider != "" && c.APIKey != ""
}

// Load reads configuration from path with environment variable overrides.
// A missing config file is not an error; defaults and environment variables
// apply. The version parameter is injected at build time.
func Load(path, version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	h := c.Heuristics
	for _, check := range []struct {
		name  string
		value float64
	}{
		{"business_unique_threshold", h.BusinessUniqueThreshold},
		{"business_null_threshold", h.BusinessNullThreshold},
		{"min_overlap_ratio", h.MinOverlapRatio},
		{"max_violation_ratio", h.MaxViolationRatio},
		{"correlation_threshold", h.CorrelationThreshold},
		{"max_dimension_cardinality_pct", h.MaxDimensionCardinalityPct},
	} {
		if check.value < 0 || check.value > 1 {
			return fmt.Errorf("%s must be in [0,1], got %v", check.name, check.value)
		}
	}
	if h.MaxConditionCardinality < 1 {
		return fmt.Errorf("max_condition_cardinality must be at least 1")
	}
	if h.MinCorrelationSamples < 2 {
		return fmt.Errorf("min_correlation_samples must be at least 2")
	}
	if h.SampleSize < 1 {
		return fmt.Errorf("sample_size must be at least 1")
	}
	switch c.Refine.Provider {
	case "", "openai", "anthropic":
	default:
		return fmt.Errorf("unknown refine provider %q", c.Refine.Provider)
	}
	return nil
}
