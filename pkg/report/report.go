// Package report writes analysis results as a schema-versioned JSON
// document plus a self-contained HTML page.
//
// Layout:
//   - report.json: the full analysis report (single file, atomic writes)
//   - report.html: standalone HTML rendering for file:// viewing
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/recorderlab-dev/recorder-insight/pkg/core"
	"github.com/recorderlab-dev/recorder-insight/pkg/runner"
)

// Version is the report schema version.
const Version = "1.0.0"

// ToolInfo identifies the generator.
type ToolInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Summary contains aggregated counts across the batch.
type Summary struct {
	Total        int `json:"total"`
	Passed       int `json:"passed"`
	Failed       int `json:"failed"`
	Broken       int `json:"broken"`
	HighIssues   int `json:"highIssues"`
	MediumIssues int `json:"mediumIssues"`
	LowIssues    int `json:"lowIssues"`
	MinReadiness int `json:"minReadiness"`
}

// Report is the top-level document written to report.json.
type Report struct {
	Version     string                  `json:"version"`
	RunID       string                  `json:"runId"`
	GeneratedAt time.Time               `json:"generatedAt"`
	Tool        ToolInfo                `json:"tool"`
	Status      string                  `json:"status"`
	Summary     Summary                 `json:"summary"`
	Scenarios   []runner.ScenarioResult `json:"scenarios"`
}

// Config controls report generation.
type Config struct {
	ToolName     string
	ToolVersion  string
	MinReadiness int
}

// Build assembles a Report from a batch result. Each report gets a
// fresh run ID.
func Build(result *runner.RunResult, cfg Config) *Report {
	if cfg.ToolName == "" {
		cfg.ToolName = "recorder-insight"
	}
	return &Report{
		Version:     Version,
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Tool:        ToolInfo{Name: cfg.ToolName, Version: cfg.ToolVersion},
		Status:      result.Status,
		Summary: Summary{
			Total:        result.Total,
			Passed:       result.Passed,
			Failed:       result.Failed,
			Broken:       result.Broken,
			HighIssues:   result.IssueCount(core.SeverityHigh),
			MediumIssues: result.IssueCount(core.SeverityMedium),
			LowIssues:    result.IssueCount(core.SeverityLow),
			MinReadiness: cfg.MinReadiness,
		},
		Scenarios: result.Scenarios,
	}
}

// Write writes report.json and report.html into outputDir, creating
// the directory if needed.
func Write(outputDir string, r *Report) error {
	if err := ensureDir(outputDir); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := atomicWriteJSON(filepath.Join(outputDir, "report.json"), r); err != nil {
		return fmt.Errorf("write report.json: %w", err)
	}
	if err := WriteHTML(filepath.Join(outputDir, "report.html"), r); err != nil {
		return fmt.Errorf("write report.html: %w", err)
	}
	return nil
}

// ReadFile loads a previously written report.json.
func ReadFile(path string) (*Report, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path is a user-provided report file
	if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &r, nil
}

// atomicWriteJSON writes JSON via a temp file and rename so readers
// never observe a partial document.
func atomicWriteJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
