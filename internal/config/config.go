// Package config provides configuration loading for factord.
//
// Precedence (highest to lowest): environment variables (FACTORD_ prefix),
// YAML config file, hardcoded defaults. Every tunable here affects only
// heuristic search quality or ambient behavior; none of them can change a
// factorization result.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/fyrsmithlabs/factord/internal/field"
	"github.com/fyrsmithlabs/factord/internal/logging"
	"github.com/fyrsmithlabs/factord/internal/oracle"
	"github.com/fyrsmithlabs/factord/internal/telemetry"
)

// Config is the root configuration.
type Config struct {
	Field      FieldConfig      `koanf:"field"`
	Oracle     oracle.Config    `koanf:"oracle"`
	Strategies StrategiesConfig `koanf:"strategies"`
	Logging    logging.Config   `koanf:"logging"`
	Metrics    telemetry.Config `koanf:"metrics"`
}

// FieldConfig tunes the field substrate.
type FieldConfig struct {
	// Constants overrides the eight field constants. Empty means the
	// stock table. All values must be strictly positive.
	Constants []float64 `koanf:"constants"`
}

// StrategiesConfig bounds each search strategy.
type StrategiesConfig struct {
	// ArtifactWindow caps division tests in the artifact-guided search.
	ArtifactWindow int64 `koanf:"artifact_window"`

	// ResonanceWindow caps division tests in the resonance-proximity
	// search.
	ResonanceWindow int64 `koanf:"resonance_window"`

	// ResonanceTolerance is the relative resonance match tolerance,
	// in (0, 1].
	ResonanceTolerance float64 `koanf:"resonance_tolerance"`

	// LandmarkPageSize is the periodic landmark stride.
	LandmarkPageSize int64 `koanf:"landmark_page_size"`

	// LandmarkMaxPages caps the landmark page scan.
	LandmarkMaxPages int64 `koanf:"landmark_max_pages"`

	// PollardMaxIterations is the rho iteration ceiling per constant.
	PollardMaxIterations int64 `koanf:"pollard_max_iterations"`

	// TrialDivisionCap is the hard iteration cap on the last-resort scan.
	TrialDivisionCap int64 `koanf:"trial_division_cap"`

	// SmallPrimeCount is the size of the trial-division strip table run
	// before any strategy.
	SmallPrimeCount int `koanf:"small_prime_count"`

	// GlobalBudget is the shared iteration allowance across one whole
	// recursive factorization tree.
	GlobalBudget int64 `koanf:"global_budget"`

	// Parallel enables concurrent evaluation of the two recursive
	// branches after a verified split.
	Parallel bool `koanf:"parallel"`

	// ParallelMinBits is the minimum operand size for a branch to be
	// worth its own goroutine.
	ParallelMinBits int `koanf:"parallel_min_bits"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Oracle: oracle.DefaultConfig(),
		Strategies: StrategiesConfig{
			ArtifactWindow:       4096,
			ResonanceWindow:      4096,
			ResonanceTolerance:   0.25,
			LandmarkPageSize:     48,
			LandmarkMaxPages:     4096,
			PollardMaxIterations: 1 << 22,
			TrialDivisionCap:     1 << 20,
			SmallPrimeCount:      64,
			GlobalBudget:         1 << 26,
			Parallel:             true,
			ParallelMinBits:      96,
		},
		Logging: logging.DefaultConfig(),
		Metrics: telemetry.DefaultConfig(),
	}
}

// Load reads configuration from the optional YAML file at path, then
// overrides with FACTORD_-prefixed environment variables, then validates.
// An empty path skips the file layer.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// FACTORD_STRATEGIES_GLOBAL_BUDGET -> strategies.global_budget
	if err := k.Load(env.Provider("FACTORD_", ".", func(s string) string {
		lower := strings.ToLower(strings.TrimPrefix(s, "FACTORD_"))
		parts := strings.SplitN(lower, "_", 2)
		if len(parts) == 1 {
			return lower
		}
		return parts[0] + "." + parts[1]
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if n := len(c.Field.Constants); n != 0 && n != field.Width {
		return fmt.Errorf("field.constants must have exactly %d entries, got %d", field.Width, n)
	}
	for i, v := range c.Field.Constants {
		if v <= 0 {
			return fmt.Errorf("field.constants[%d] must be strictly positive, got %g", i, v)
		}
	}
	if err := c.Oracle.Validate(); err != nil {
		return fmt.Errorf("oracle: %w", err)
	}
	if err := c.Strategies.Validate(); err != nil {
		return fmt.Errorf("strategies: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

// Validate checks the strategy bounds.
func (c StrategiesConfig) Validate() error {
	positive := []struct {
		name  string
		value int64
	}{
		{"artifact_window", c.ArtifactWindow},
		{"resonance_window", c.ResonanceWindow},
		{"landmark_max_pages", c.LandmarkMaxPages},
		{"pollard_max_iterations", c.PollardMaxIterations},
		{"trial_division_cap", c.TrialDivisionCap},
		{"global_budget", c.GlobalBudget},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d", p.name, p.value)
		}
	}
	if c.ResonanceTolerance <= 0 || c.ResonanceTolerance > 1 {
		return fmt.Errorf("resonance_tolerance must be in (0, 1], got %g", c.ResonanceTolerance)
	}
	if c.LandmarkPageSize < 2 {
		return fmt.Errorf("landmark_page_size must be at least 2, got %d", c.LandmarkPageSize)
	}
	if c.SmallPrimeCount < 1 {
		return fmt.Errorf("small_prime_count must be at least 1, got %d", c.SmallPrimeCount)
	}
	if c.ParallelMinBits < 1 {
		return fmt.Errorf("parallel_min_bits must be at least 1, got %d", c.ParallelMinBits)
	}
	return nil
}

// FieldConstants resolves the configured constant table.
func (c *Config) FieldConstants() field.Constants {
	if len(c.Field.Constants) != field.Width {
		return field.DefaultConstants()
	}
	var out field.Constants
	copy(out[:], c.Field.Constants)
	return out
}
