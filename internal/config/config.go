// Package config carries the explicit analysis configuration. All
// settings are passed as values; nothing in the core reads ambient
// globals at computation time.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the complete analysis configuration.
type Config struct {
	Significance SignificanceConfig `yaml:"significance" envconfig:"SIGNIFICANCE"`
	Weighting    WeightingConfig    `yaml:"weighting" envconfig:"WEIGHTING"`
	Ranking      RankingConfig      `yaml:"ranking" envconfig:"RANKING"`
	Engine       EngineConfig       `yaml:"engine" envconfig:"ENGINE"`
}

// SignificanceConfig controls pairwise testing.
type SignificanceConfig struct {
	Alpha float64 `yaml:"alpha" envconfig:"ALPHA" validate:"gt=0,lt=1"`
	// Bonferroni divides alpha by the number of pairwise comparisons.
	Bonferroni bool `yaml:"bonferroni" envconfig:"BONFERRONI"`
	// MinBase suppresses tests for columns whose effective base falls
	// below this threshold.
	MinBase float64 `yaml:"min_base" envconfig:"MIN_BASE" validate:"gte=0"`
}

// WeightingConfig selects the weight source.
type WeightingConfig struct {
	Enabled bool `yaml:"enabled" envconfig:"ENABLED"`
	// Column names the weight variable in the dataset. Required when
	// weighting is enabled.
	Column string `yaml:"column" envconfig:"COLUMN"`
}

// RankingConfig holds ranking-matrix quality thresholds. Breaches are
// soft warnings, never fatal.
type RankingConfig struct {
	MaxTieRate      float64 `yaml:"max_tie_rate" envconfig:"MAX_TIE_RATE" validate:"gte=0,lte=1"`
	MaxGapRate      float64 `yaml:"max_gap_rate" envconfig:"MAX_GAP_RATE" validate:"gte=0,lte=1"`
	MinCompleteness float64 `yaml:"min_completeness" envconfig:"MIN_COMPLETENESS" validate:"gte=0,lte=1"`
}

// EngineConfig controls the per-question fan-out.
type EngineConfig struct {
	MaxConcurrency int `yaml:"max_concurrency" envconfig:"MAX_CONCURRENCY" validate:"gte=1"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Significance: SignificanceConfig{Alpha: 0.05, Bonferroni: true, MinBase: 30},
		Weighting:    WeightingConfig{Enabled: true},
		Ranking:      RankingConfig{MaxTieRate: 0.25, MaxGapRate: 0.25, MinCompleteness: 0.5},
		Engine:       EngineConfig{MaxConcurrency: 4},
	}
}

// Load reads configuration in layers: defaults, then an optional YAML
// file, then CROSSTAB_* environment overrides, then validation.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := envconfig.Process("CROSSTAB", &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and cross-field requirements.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if c.Weighting.Enabled && c.Weighting.Column == "" {
		return fmt.Errorf("config validation failed: weighting enabled but no weight column named")
	}
	return nil
}
