// Package config handles configuration for recorder-insight.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/recorderlab-dev/recorder-insight/pkg/analysis"
	"github.com/recorderlab-dev/recorder-insight/pkg/flow"
)

// AnalyzerConfig tunes the risk checks and the readiness gate.
type AnalyzerConfig struct {
	LongWaitMs   int              `yaml:"longWaitMs"`
	MinReadiness int              `yaml:"minReadiness"`
	Weights      analysis.Weights `yaml:"weights"`
}

// ReportConfig controls report output.
type ReportConfig struct {
	OutputDir string `yaml:"outputDir"`
}

// Config represents the workspace configuration (config.yaml).
type Config struct {
	Analyzer AnalyzerConfig  `yaml:"analyzer"`
	Report   ReportConfig    `yaml:"report"`
	Flows    []flow.Pattern  `yaml:"flows"` // extra flow patterns, prepended to the defaults
	Rules    []analysis.Rule `yaml:"rules"` // config-defined per-step checks
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromDir looks for config.yaml or config.yml in the directory.
func LoadFromDir(dir string) (*Config, error) {
	// Try config.yaml first
	configPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	// Try config.yml
	configPath = filepath.Join(dir, "config.yml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	// No config file found, return empty config
	return &Config{}, nil
}

// BuildAnalyzer assembles an analyzer from the config. Rule compile
// errors surface here.
func (c *Config) BuildAnalyzer() (*analysis.Analyzer, error) {
	a := analysis.New().
		WithLongWaitMs(c.Analyzer.LongWaitMs).
		WithWeights(c.Analyzer.Weights)
	if len(c.Rules) > 0 {
		if _, err := a.WithRules(c.Rules); err != nil {
			return nil, fmt.Errorf("invalid rule: %w", err)
		}
	}
	return a, nil
}

// Patterns returns the flow pattern table: config-defined patterns
// first, then the built-in defaults.
func (c *Config) Patterns() []flow.Pattern {
	if len(c.Flows) == 0 {
		return flow.DefaultPatterns()
	}
	return append(append([]flow.Pattern{}, c.Flows...), flow.DefaultPatterns()...)
}
