package analysis

import (
	"reflect"
	"testing"

	"github.com/recorderlab-dev/recorder-insight/pkg/core"
	"github.com/recorderlab-dev/recorder-insight/pkg/scenario"
)

func boolPtr(b bool) *bool { return &b }

func countByID(issues []Issue, id string) int {
	n := 0
	for _, issue := range issues {
		if issue.ID == id {
			n++
		}
	}
	return n
}

func findByID(issues []Issue, id string) *Issue {
	for i := range issues {
		if issues[i].ID == id {
			return &issues[i]
		}
	}
	return nil
}

func TestAnalyze_EmptyScenario(t *testing.T) {
	issues := New().Analyze(nil)

	if len(issues) != 1 {
		t.Fatalf("got %d issues, want exactly 1", len(issues))
	}
	if issues[0].ID != IssueEmptyScenario {
		t.Errorf("got id %q, want %q", issues[0].ID, IssueEmptyScenario)
	}
	if issues[0].Severity != core.SeverityMedium {
		t.Errorf("got severity %q, want medium", issues[0].Severity)
	}
	if issues[0].StepIndex != -1 {
		t.Errorf("got stepIndex %d, want -1", issues[0].StepIndex)
	}
}

func TestAnalyze_MissingAssertions(t *testing.T) {
	actions := []scenario.Action{
		{Type: scenario.ActionTap, ElementID: "com.app:id/go"},
		{Type: scenario.ActionScroll},
	}

	issues := New().Analyze(actions)
	if countByID(issues, IssueMissingAssertions) != 1 {
		t.Errorf("want exactly one %s issue, got %d", IssueMissingAssertions, countByID(issues, IssueMissingAssertions))
	}

	// With an assert present the issue disappears.
	actions = append(actions, scenario.Action{Type: scenario.ActionAssert, ElementText: "Done"})
	issues = New().Analyze(actions)
	if countByID(issues, IssueMissingAssertions) != 0 {
		t.Errorf("assert present but %s still emitted", IssueMissingAssertions)
	}
}

func TestAnalyze_DisabledSteps(t *testing.T) {
	actions := []scenario.Action{
		{Type: scenario.ActionTap, ElementID: "com.app:id/a"},
		{Type: scenario.ActionTap, ElementID: "com.app:id/b", Enabled: boolPtr(false)},
		{Type: scenario.ActionAssert, ElementText: "ok", Enabled: boolPtr(false)},
	}

	issues := New().Analyze(actions)
	issue := findByID(issues, IssueDisabledSteps)
	if issue == nil {
		t.Fatalf("no %s issue emitted", IssueDisabledSteps)
	}
	if issue.Severity != core.SeverityLow {
		t.Errorf("got severity %q, want low", issue.Severity)
	}
	if issue.Title != "2 disabled step(s)" {
		t.Errorf("got title %q, want it to name the count 2", issue.Title)
	}
}

func TestAnalyze_UnstableLocator(t *testing.T) {
	tests := []struct {
		name   string
		action scenario.Action
		want   int
	}{
		{
			name:   "tap with coordinates only",
			action: scenario.Action{Type: scenario.ActionTap, Coordinates: &scenario.Coordinates{X: 10, Y: 20}},
			want:   1,
		},
		{
			name:   "tap with element id",
			action: scenario.Action{Type: scenario.ActionTap, ElementID: "com.app:id/btn"},
			want:   0,
		},
		{
			name:   "scroll never needs a locator",
			action: scenario.Action{Type: scenario.ActionScroll},
			want:   0,
		},
		{
			name:   "input with no target",
			action: scenario.Action{Type: scenario.ActionInput, Value: "hello"},
			want:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := New().Analyze([]scenario.Action{tt.action})
			if got := countByID(issues, IssueUnstableLocator); got != tt.want {
				t.Errorf("got %d %s issues, want %d", got, IssueUnstableLocator, tt.want)
			}
		})
	}
}

func TestAnalyze_Waits(t *testing.T) {
	actions := []scenario.Action{
		{Type: scenario.ActionWait, Value: "2000"},
		{Type: scenario.ActionWait, Value: "6000"},
		{Type: scenario.ActionWait, Value: "1000"},
		{Type: scenario.ActionTap, ElementID: "com.app:id/x"},
		{Type: scenario.ActionWait, Value: "500"},
	}

	issues := New().Analyze(actions)

	if got := countByID(issues, IssueLongWait); got != 1 {
		t.Errorf("got %d long_wait issues, want 1", got)
	}
	// Steps 1 and 2 are each beyond the first wait of the run; step 4
	// starts a fresh run after the tap reset.
	if got := countByID(issues, IssueConsecutiveWaits); got != 2 {
		t.Errorf("got %d consecutive_waits issues, want 2", got)
	}
}

func TestAnalyze_InvalidWaitValueDoesNotCount(t *testing.T) {
	actions := []scenario.Action{
		{Type: scenario.ActionWait, Value: "soon"},
		{Type: scenario.ActionWait, Value: "2000"},
	}

	issues := New().Analyze(actions)
	// The malformed wait neither counts toward the run nor flags long_wait.
	if got := countByID(issues, IssueConsecutiveWaits); got != 0 {
		t.Errorf("got %d consecutive_waits issues, want 0", got)
	}
	if got := countByID(issues, IssueLongWait); got != 0 {
		t.Errorf("got %d long_wait issues, want 0", got)
	}
}

func TestAnalyze_EmptyInput(t *testing.T) {
	actions := []scenario.Action{
		{Type: scenario.ActionInput, ElementID: "com.app:id/field", Value: "   "},
		{Type: scenario.ActionInput, ElementID: "com.app:id/field2", Value: "hello"},
	}

	issues := New().Analyze(actions)
	if got := countByID(issues, IssueEmptyInput); got != 1 {
		t.Errorf("got %d empty_input issues, want 1", got)
	}
	if issue := findByID(issues, IssueEmptyInput); issue != nil && issue.StepIndex != 0 {
		t.Errorf("empty_input at stepIndex %d, want 0", issue.StepIndex)
	}
}

func TestAnalyze_SpecimenScenario(t *testing.T) {
	// Three steps: coordinate-only tap, 6s wait, assert on text.
	actions := []scenario.Action{
		{Type: scenario.ActionTap, ElementID: "", Coordinates: &scenario.Coordinates{X: 1, Y: 1}},
		{Type: scenario.ActionWait, Value: "6000"},
		{Type: scenario.ActionAssert, ElementText: "Welcome"},
	}

	a := New()
	issues := a.Analyze(actions)

	unstable := findByID(issues, IssueUnstableLocator)
	if unstable == nil || unstable.StepIndex != 0 || unstable.Severity != core.SeverityHigh {
		t.Errorf("want high unstable_locator at step 0, got %+v", unstable)
	}
	longWait := findByID(issues, IssueLongWait)
	if longWait == nil || longWait.StepIndex != 1 || longWait.Severity != core.SeverityMedium {
		t.Errorf("want medium long_wait at step 1, got %+v", longWait)
	}
	if countByID(issues, IssueMissingAssertions) != 0 {
		t.Errorf("missing_assertions emitted despite an assert step")
	}
	if got := a.ReadinessScore(issues); got != 77 {
		t.Errorf("readiness = %d, want 77", got)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	actions := []scenario.Action{
		{Type: scenario.ActionTap, Coordinates: &scenario.Coordinates{X: 5, Y: 5}},
		{Type: scenario.ActionWait, Value: "7000"},
		{Type: scenario.ActionWait, Value: "7000"},
		{Type: scenario.ActionInput, ElementID: "com.app:id/q", Value: ""},
	}

	a := New()
	first := a.Analyze(actions)
	second := a.Analyze(actions)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two runs over the same slice differ:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestReadinessScore(t *testing.T) {
	a := New()

	tests := []struct {
		name   string
		issues []Issue
		want   int
	}{
		{"no issues", nil, 100},
		{"one high", []Issue{{Severity: core.SeverityHigh}}, 85},
		{"one of each", []Issue{
			{Severity: core.SeverityHigh},
			{Severity: core.SeverityMedium},
			{Severity: core.SeverityLow},
		}, 74},
		{"clamped at zero", []Issue{
			{Severity: core.SeverityHigh}, {Severity: core.SeverityHigh},
			{Severity: core.SeverityHigh}, {Severity: core.SeverityHigh},
			{Severity: core.SeverityHigh}, {Severity: core.SeverityHigh},
			{Severity: core.SeverityHigh},
		}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.ReadinessScore(tt.issues); got != tt.want {
				t.Errorf("ReadinessScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReadinessScore_MonotoneNonIncreasing(t *testing.T) {
	a := New()
	issues := []Issue{}
	prev := a.ReadinessScore(issues)

	for _, sev := range []core.Severity{
		core.SeverityLow, core.SeverityMedium, core.SeverityHigh,
		core.SeverityHigh, core.SeverityMedium, core.SeverityLow,
		core.SeverityHigh, core.SeverityHigh, core.SeverityHigh,
	} {
		issues = append(issues, Issue{Severity: sev})
		score := a.ReadinessScore(issues)
		if score > prev {
			t.Fatalf("score increased from %d to %d after appending %s issue", prev, score, sev)
		}
		if score < 0 || score > 100 {
			t.Fatalf("score %d outside [0,100]", score)
		}
		prev = score
	}
}

func TestAnalyze_DoesNotMutateInput(t *testing.T) {
	actions := []scenario.Action{
		{ID: "a1", Type: scenario.ActionTap, Coordinates: &scenario.Coordinates{X: 1, Y: 1}},
		{ID: "a2", Type: scenario.ActionWait, Value: "9000"},
	}
	snapshot := make([]scenario.Action, len(actions))
	copy(snapshot, actions)

	New().Analyze(actions)

	if !reflect.DeepEqual(actions, snapshot) {
		t.Errorf("Analyze mutated its input")
	}
}
