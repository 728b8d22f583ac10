package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/recorderlab-dev/recorder-insight/pkg/analysis"
	"github.com/recorderlab-dev/recorder-insight/pkg/core"
	"github.com/recorderlab-dev/recorder-insight/pkg/flow"
)

func TestLoad_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := `
analyzer:
  longWaitMs: 8000
  minReadiness: 70
  weights:
    high: 20
    medium: 10
    low: 5
report:
  outputDir: out/reports
flows:
  - label: Onboarding
    keywords: [onboarding, tutorial, get started]
rules:
  - id: no_prod_password
    severity: high
    title: Production password typed in clear
    when: type == "input" && value == "hunter2"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Analyzer.LongWaitMs != 8000 {
		t.Errorf("LongWaitMs = %d, want 8000", cfg.Analyzer.LongWaitMs)
	}
	if cfg.Analyzer.MinReadiness != 70 {
		t.Errorf("MinReadiness = %d, want 70", cfg.Analyzer.MinReadiness)
	}
	if cfg.Analyzer.Weights.High != 20 || cfg.Analyzer.Weights.Medium != 10 || cfg.Analyzer.Weights.Low != 5 {
		t.Errorf("Weights = %+v", cfg.Analyzer.Weights)
	}
	if cfg.Report.OutputDir != "out/reports" {
		t.Errorf("OutputDir = %q", cfg.Report.OutputDir)
	}
	if len(cfg.Flows) != 1 || cfg.Flows[0].Label != "Onboarding" || len(cfg.Flows[0].Keywords) != 3 {
		t.Errorf("Flows = %+v", cfg.Flows)
	}
	if len(cfg.Rules) != 1 || cfg.Rules[0].ID != "no_prod_password" {
		t.Errorf("Rules = %+v", cfg.Rules)
	}
}

func TestLoad_NonExistentFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := `analyzer: [invalid yaml`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoad_EmptyConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(configPath, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Analyzer.LongWaitMs != 0 || len(cfg.Rules) != 0 {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestLoadFromDir_ConfigYaml(t *testing.T) {
	dir := t.TempDir()
	content := "analyzer:\n  minReadiness: 50\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Analyzer.MinReadiness != 50 {
		t.Errorf("MinReadiness = %d, want 50", cfg.Analyzer.MinReadiness)
	}
}

func TestLoadFromDir_NoConfig(t *testing.T) {
	cfg, err := LoadFromDir(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Analyzer.MinReadiness != 0 {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestLoadFromDir_PrefersYamlOverYml(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("analyzer:\n  minReadiness: 10\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte("analyzer:\n  minReadiness: 20\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Analyzer.MinReadiness != 10 {
		t.Errorf("expected config.yaml to win, got %d", cfg.Analyzer.MinReadiness)
	}
}

func TestBuildAnalyzer(t *testing.T) {
	cfg := &Config{}
	cfg.Rules = nil

	if _, err := cfg.BuildAnalyzer(); err != nil {
		t.Fatalf("BuildAnalyzer() error: %v", err)
	}
}

func TestBuildAnalyzer_BadRule(t *testing.T) {
	cfg := &Config{}
	cfg.Rules = append(cfg.Rules, analysis.Rule{
		ID:       "bad",
		Severity: core.SeverityHigh,
		When:     "type ==",
	})

	if _, err := cfg.BuildAnalyzer(); err == nil {
		t.Fatal("expected compile error for malformed rule")
	}
}

func TestPatterns(t *testing.T) {
	cfg := &Config{}
	defaults := cfg.Patterns()
	if len(defaults) == 0 {
		t.Fatal("expected default patterns")
	}

	cfg.Flows = append(cfg.Flows, flow.Pattern{
		Label:    "Onboarding",
		Keywords: []string{"tutorial", "get started"},
	})
	combined := cfg.Patterns()
	if combined[0].Label != "Onboarding" {
		t.Errorf("config patterns should come first, got %q", combined[0].Label)
	}
	if len(combined) != len(defaults)+1 {
		t.Errorf("combined length = %d, want %d", len(combined), len(defaults)+1)
	}
}

func TestLoadAgentConfig_Defaults(t *testing.T) {
	t.Setenv("RECORDER_INSIGHT_AGENT_URL", "")
	t.Setenv("RECORDER_INSIGHT_AGENT_TIMEOUT", "")
	os.Unsetenv("RECORDER_INSIGHT_AGENT_URL")
	os.Unsetenv("RECORDER_INSIGHT_AGENT_TIMEOUT")

	cfg, err := LoadAgentConfig("")
	if err != nil {
		t.Fatalf("LoadAgentConfig() error: %v", err)
	}
	if cfg.URL != "http://127.0.0.1:7420" {
		t.Errorf("URL = %q, want default", cfg.URL)
	}
	if cfg.TimeoutSec != 30 {
		t.Errorf("TimeoutSec = %d, want 30", cfg.TimeoutSec)
	}
}

func TestLoadAgentConfig_EnvWins(t *testing.T) {
	t.Setenv("RECORDER_INSIGHT_AGENT_URL", "http://10.0.0.5:9000")

	cfg, err := LoadAgentConfig("")
	if err != nil {
		t.Fatalf("LoadAgentConfig() error: %v", err)
	}
	if cfg.URL != "http://10.0.0.5:9000" {
		t.Errorf("URL = %q, want env override", cfg.URL)
	}
}

func TestLoadAgentConfig_DotEnv(t *testing.T) {
	t.Setenv("RECORDER_INSIGHT_AGENT_TIMEOUT", "")
	os.Unsetenv("RECORDER_INSIGHT_AGENT_TIMEOUT")

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("RECORDER_INSIGHT_AGENT_TIMEOUT=5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAgentConfig(dir)
	if err != nil {
		t.Fatalf("LoadAgentConfig() error: %v", err)
	}
	if cfg.TimeoutSec != 5 {
		t.Errorf("TimeoutSec = %d, want 5 from .env", cfg.TimeoutSec)
	}
}
