// Package runner analyzes batches of scenario files through a
// fixed-size worker pool and aggregates the results.
package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/recorderlab-dev/recorder-insight/pkg/analysis"
	"github.com/recorderlab-dev/recorder-insight/pkg/core"
	"github.com/recorderlab-dev/recorder-insight/pkg/explain"
	"github.com/recorderlab-dev/recorder-insight/pkg/flow"
	"github.com/recorderlab-dev/recorder-insight/pkg/scenario"
	"github.com/recorderlab-dev/recorder-insight/pkg/suggest"
)

// Status of one analyzed scenario, and of the batch as a whole.
const (
	StatusPassed = "passed" // readiness at or above the gate
	StatusFailed = "failed" // readiness below the gate
	StatusBroken = "broken" // the file could not be loaded
)

// DefaultWorkers is the pool size when the caller does not set one.
const DefaultWorkers = 4

// Config controls a batch run.
type Config struct {
	// MinReadiness is the pass/fail gate, 0-100. Zero means every
	// loadable scenario passes.
	MinReadiness int

	// Workers is the pool size. Non-positive falls back to DefaultWorkers.
	Workers int

	// Analyzer overrides the default analyzer. Nil uses analysis.New().
	Analyzer *analysis.Analyzer

	// Patterns overrides the flow pattern table used for grouping and
	// organization hints. Nil uses flow.DefaultPatterns().
	Patterns []flow.Pattern
}

// ScenarioResult is the full analysis output for one file.
type ScenarioResult struct {
	Path        string                          `json:"path"`
	Name        string                          `json:"name,omitempty"`
	Status      string                          `json:"status"`
	Readiness   int                             `json:"readiness"`
	StepCount   int                             `json:"stepCount"`
	FlowLabel   string                          `json:"flowLabel,omitempty"`
	Issues      []analysis.Issue                `json:"issues,omitempty"`
	Suggestions []suggest.Suggestion            `json:"suggestions,omitempty"`
	Narrative   []string                        `json:"narrative,omitempty"`
	Organize    *explain.OrganizationSuggestion `json:"organize,omitempty"`
	LoadError   string                          `json:"loadError,omitempty"`
}

// RunResult aggregates a batch.
type RunResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Total     int              `json:"total"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Broken    int              `json:"broken"`
	Status    string           `json:"status"`
}

// workItem pairs a file with its position so results keep input order.
type workItem struct {
	path  string
	index int
}

// Runner executes batch analysis.
type Runner struct {
	config   Config
	analyzer *analysis.Analyzer
	patterns []flow.Pattern
}

// New creates a Runner from the given config.
func New(config Config) *Runner {
	analyzer := config.Analyzer
	if analyzer == nil {
		analyzer = analysis.New()
	}
	patterns := config.Patterns
	if patterns == nil {
		patterns = flow.DefaultPatterns()
	}
	if config.Workers <= 0 {
		config.Workers = DefaultWorkers
	}
	return &Runner{config: config, analyzer: analyzer, patterns: patterns}
}

// Run analyzes every file in order. A file that cannot be loaded yields
// a broken entry, never an aborted batch.
func (r *Runner) Run(files []string) *RunResult {
	results := make([]ScenarioResult, len(files))

	workQueue := make(chan workItem, len(files))
	for i, path := range files {
		workQueue <- workItem{path: path, index: i}
	}
	close(workQueue)

	workers := r.config.Workers
	if workers > len(files) {
		workers = len(files)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range workQueue {
				results[item.index] = r.analyzeFile(item.path)
			}
		}()
	}
	wg.Wait()

	return r.buildRunResult(results)
}

// analyzeFile runs the full analysis pipeline for one scenario file.
func (r *Runner) analyzeFile(path string) ScenarioResult {
	sc, err := scenario.ParseFile(path)
	if err != nil {
		return ScenarioResult{
			Path:      path,
			Status:    StatusBroken,
			LoadError: err.Error(),
		}
	}
	return r.Analyze(sc)
}

// Analyze runs the pipeline against an already-loaded scenario.
func (r *Runner) Analyze(sc *scenario.Scenario) ScenarioResult {
	issues := r.analyzer.Analyze(sc.Steps)
	readiness := r.analyzer.ReadinessScore(issues)
	suggestions := suggest.NewEngine().WithPatterns(r.patterns).Build(sc.Steps)
	narrative := explain.Script(sc.Steps)
	label, hits := flow.Infer(sc.Steps, r.patterns)
	org := explain.SuggestOrganizationWithPatterns(sc.Steps, sc.AppPackage, sc.Name, r.patterns)

	status := StatusPassed
	if readiness < r.config.MinReadiness {
		status = StatusFailed
	}

	result := ScenarioResult{
		Path:        sc.SourcePath,
		Name:        sc.Name,
		Status:      status,
		Readiness:   readiness,
		StepCount:   len(sc.Steps),
		Issues:      issues,
		Suggestions: suggestions,
		Narrative:   narrative.Lines,
		Organize:    &org,
	}
	if hits >= flow.MinHits {
		result.FlowLabel = label
	}
	return result
}

// buildRunResult folds scenario results into the batch summary.
func (r *Runner) buildRunResult(results []ScenarioResult) *RunResult {
	out := &RunResult{
		Scenarios: results,
		Total:     len(results),
	}
	for _, sr := range results {
		switch sr.Status {
		case StatusPassed:
			out.Passed++
		case StatusFailed:
			out.Failed++
		case StatusBroken:
			out.Broken++
		}
	}
	if out.Failed > 0 || out.Broken > 0 {
		out.Status = StatusFailed
	} else {
		out.Status = StatusPassed
	}
	return out
}

// IssueCount sums the issues across all scenarios of a severity.
func (rr *RunResult) IssueCount(severity core.Severity) int {
	n := 0
	for _, sr := range rr.Scenarios {
		for _, issue := range sr.Issues {
			if issue.Severity == severity {
				n++
			}
		}
	}
	return n
}

// CollectFiles expands files and directories into the list of scenario
// files to analyze. Directories are walked recursively for .json,
// .yaml, and .yml files; explicit file arguments are kept as-is. The
// result is de-duplicated and directory contents are sorted.
func CollectFiles(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}

		var found []string
		err = filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() {
				return nil
			}
			switch strings.ToLower(filepath.Ext(p)) {
			case ".json", ".yaml", ".yml":
				found = append(found, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", path, err)
		}
		sort.Strings(found)
		for _, f := range found {
			add(f)
		}
	}

	return files, nil
}
