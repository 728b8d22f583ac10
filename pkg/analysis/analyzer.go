// Package analysis scans recorded scenarios for structural risks and
// aggregates them into a 0-100 readiness score.
package analysis

import (
	"fmt"

	"github.com/recorderlab-dev/recorder-insight/pkg/core"
	"github.com/recorderlab-dev/recorder-insight/pkg/locator"
	"github.com/recorderlab-dev/recorder-insight/pkg/scenario"
)

// Issue IDs that consumers match on. The empty-scenario and
// missing-assertions IDs are part of the output contract.
const (
	IssueEmptyScenario     = "empty_scenario"
	IssueDisabledSteps     = "disabled_steps"
	IssueMissingAssertions = "missing_assertions"
	IssueUnstableLocator   = "unstable_locator"
	IssueLongWait          = "long_wait"
	IssueConsecutiveWaits  = "consecutive_waits"
	IssueEmptyInput        = "empty_input"
)

// DefaultLongWaitMs is the threshold above which a wait is flagged.
const DefaultLongWaitMs = 5000

// Issue is one finding about a scenario.
type Issue struct {
	ID       string        `json:"id"`
	Severity core.Severity `json:"severity"`
	Title    string        `json:"title"`
	Detail   string        `json:"detail,omitempty"`
	// StepIndex is the 0-based step the issue refers to, -1 for
	// scenario-level findings.
	StepIndex int `json:"stepIndex"`
}

// Weights are the readiness-score penalties per severity.
type Weights struct {
	High   int `json:"high" yaml:"high"`
	Medium int `json:"medium" yaml:"medium"`
	Low    int `json:"low" yaml:"low"`
}

// DefaultWeights returns the standard penalty model.
func DefaultWeights() Weights {
	return Weights{
		High:   core.SeverityHigh.DefaultWeight(),
		Medium: core.SeverityMedium.DefaultWeight(),
		Low:    core.SeverityLow.DefaultWeight(),
	}
}

func (w Weights) penalty(s core.Severity) int {
	switch s {
	case core.SeverityHigh:
		return w.High
	case core.SeverityMedium:
		return w.Medium
	case core.SeverityLow:
		return w.Low
	}
	return 0
}

// Analyzer runs the structural risk checks. The zero value is not
// usable; construct with New.
type Analyzer struct {
	longWaitMs int
	weights    Weights
	rules      []compiledRule
}

// New creates an Analyzer with the default thresholds and weights.
func New() *Analyzer {
	return &Analyzer{
		longWaitMs: DefaultLongWaitMs,
		weights:    DefaultWeights(),
	}
}

// WithLongWaitMs overrides the long-wait threshold. Non-positive values
// keep the default.
func (a *Analyzer) WithLongWaitMs(ms int) *Analyzer {
	if ms > 0 {
		a.longWaitMs = ms
	}
	return a
}

// WithWeights overrides the readiness penalty model. Zero-valued weights
// keep their defaults.
func (a *Analyzer) WithWeights(w Weights) *Analyzer {
	def := DefaultWeights()
	if w.High <= 0 {
		w.High = def.High
	}
	if w.Medium <= 0 {
		w.Medium = def.Medium
	}
	if w.Low <= 0 {
		w.Low = def.Low
	}
	a.weights = w
	return a
}

// scanState is the accumulator threaded through the forward pass. It
// keeps the reset/count semantics in one place instead of loop locals.
type scanState struct {
	consecutiveWaits int
}

// Analyze runs every check against the action list and returns the
// findings in emission order. The input slice is never modified.
func (a *Analyzer) Analyze(actions []scenario.Action) []Issue {
	if len(actions) == 0 {
		return []Issue{{
			ID:        IssueEmptyScenario,
			Severity:  core.SeverityMedium,
			Title:     "Scenario has no steps",
			Detail:    "Record at least one interaction before replaying.",
			StepIndex: -1,
		}}
	}

	var issues []Issue

	if disabled := len(actions) - scenario.CountEnabled(actions); disabled > 0 {
		issues = append(issues, Issue{
			ID:        IssueDisabledSteps,
			Severity:  core.SeverityLow,
			Title:     fmt.Sprintf("%d disabled step(s)", disabled),
			Detail:    "Disabled steps are skipped during replay. Re-enable or remove them once the scenario is final.",
			StepIndex: -1,
		})
	}

	if scenario.CountAsserts(actions) == 0 {
		issues = append(issues, Issue{
			ID:        IssueMissingAssertions,
			Severity:  core.SeverityHigh,
			Title:     "No assertions in scenario",
			Detail:    "Without assertions the replay only proves the app did not crash, not that it behaved correctly.",
			StepIndex: -1,
		})
	}

	state := scanState{}
	for i, action := range actions {
		issues = append(issues, a.checkStep(i, action, &state)...)
		issues = append(issues, a.applyRules(i, action)...)
	}

	return issues
}

// checkStep runs the per-step checks and advances the accumulator.
func (a *Analyzer) checkStep(i int, action scenario.Action, state *scanState) []Issue {
	var issues []Issue

	if action.Type.RequiresLocator() && !locator.HasStable(action) {
		issues = append(issues, Issue{
			ID:        IssueUnstableLocator,
			Severity:  core.SeverityHigh,
			Title:     fmt.Sprintf("Unstable locator at step %d", i),
			Detail:    "The step has no resolvable element target and will rely on raw coordinates, which break on layout changes.",
			StepIndex: i,
		})
	}

	if action.Type == scenario.ActionWait {
		ms, ok := action.WaitMillis()
		if ok {
			if ms > a.longWaitMs {
				issues = append(issues, Issue{
					ID:        IssueLongWait,
					Severity:  core.SeverityMedium,
					Title:     fmt.Sprintf("Long wait at step %d (%d ms)", i, ms),
					Detail:    "Long fixed waits slow every replay. Prefer an assertion on the element you are waiting for.",
					StepIndex: i,
				})
			}
			state.consecutiveWaits++
			if state.consecutiveWaits >= 2 {
				issues = append(issues, Issue{
					ID:        IssueConsecutiveWaits,
					Severity:  core.SeverityMedium,
					Title:     fmt.Sprintf("Consecutive waits at step %d", i),
					Detail:    "Back-to-back waits usually mean one longer wait or a missing assertion.",
					StepIndex: i,
				})
			}
		}
	} else {
		state.consecutiveWaits = 0
	}

	if action.Type == scenario.ActionInput {
		if isBlank(action.Value) {
			issues = append(issues, Issue{
				ID:        IssueEmptyInput,
				Severity:  core.SeverityMedium,
				Title:     fmt.Sprintf("Empty input value at step %d", i),
				Detail:    "The input step types nothing. Set the text to enter or disable the step.",
				StepIndex: i,
			})
		}
	}

	return issues
}

// ReadinessScore folds the issue list into a 0-100 health score using
// the additive penalty model: only counts per severity matter, never
// issue order.
func (a *Analyzer) ReadinessScore(issues []Issue) int {
	score := 100
	for _, issue := range issues {
		score -= a.weights.penalty(issue.Severity)
	}
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
