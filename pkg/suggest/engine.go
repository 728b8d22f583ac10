package suggest

import (
	"fmt"
	"strings"

	"github.com/recorderlab-dev/recorder-insight/pkg/core"
	"github.com/recorderlab-dev/recorder-insight/pkg/flow"
	"github.com/recorderlab-dev/recorder-insight/pkg/locator"
	"github.com/recorderlab-dev/recorder-insight/pkg/scenario"
)

// maxDuplicateDistance is how many steps apart two interactions may be
// and still count as a duplicate.
const maxDuplicateDistance = 3

// maxAssertionLabelLen caps the label length for the contextual
// assertion candidate.
const maxAssertionLabelLen = 80

// duplicateExempt lists action types that legitimately repeat.
var duplicateExempt = map[scenario.ActionType]bool{
	scenario.ActionWait:         true,
	scenario.ActionSwipe:        true,
	scenario.ActionScroll:       true,
	scenario.ActionPressKey:     true,
	scenario.ActionHideKeyboard: true,
}

// Engine builds suggestions for a recorded action list.
type Engine struct {
	patterns []flow.Pattern
}

// NewEngine creates an Engine with the default flow pattern table.
func NewEngine() *Engine {
	return &Engine{patterns: flow.DefaultPatterns()}
}

// WithPatterns overrides the flow pattern table. Empty input keeps the
// defaults.
func (e *Engine) WithPatterns(patterns []flow.Pattern) *Engine {
	if len(patterns) > 0 {
		e.patterns = patterns
	}
	return e
}

// Build runs every suggestion rule over the full action list, in step
// order, and returns the collected suggestions. The input is read-only.
func (e *Engine) Build(actions []scenario.Action) []Suggestion {
	var out []Suggestion
	if len(actions) == 0 {
		return out
	}

	hasAssert := scenario.CountAsserts(actions) > 0

	// seen tracks enabled-action indices per type+target fingerprint for
	// duplicate detection.
	seen := make(map[string][]int)

	// Candidate step for the contextual assertion suggestion.
	assertCandidate := -1

	for i, a := range actions {
		out = append(out, renameSuggestions(i, a)...)
		out = append(out, e.locatorSuggestions(i, a)...)

		if a.IsEnabled() {
			if dup := duplicateSuggestion(i, actions, seen); dup != nil {
				out = append(out, *dup)
			}
		}

		if !hasAssert && assertCandidate < 0 && a.Type != scenario.ActionWait {
			if label := locator.TargetLabel(a); label != "" && len(label) <= maxAssertionLabelLen {
				assertCandidate = i
			}
		}
	}

	if !hasAssert && assertCandidate >= 0 {
		out = append(out, contextualAssertion(assertCandidate, actions[assertCandidate]))
	}

	if len(actions) >= 4 {
		if label, hits := flow.Infer(actions, e.patterns); label != "" {
			out = append(out, Suggestion{
				Kind:             KindFlowGrouping,
				Severity:         core.SeverityLow,
				Title:            fmt.Sprintf("Group steps as a %s flow", label),
				Detail:           fmt.Sprintf("The step text matches %d %s keywords. Naming the flow makes suites easier to organize.", hits, strings.ToLower(label)),
				StepIndex:        -1,
				RelatedStepIndex: -1,
				SuggestedText:    label,
				Confidence:       0.5,
				Impact:           "low",
			})
		}
	}

	if !hasAssert {
		out = append(out, Suggestion{
			Kind:             KindMissingAssertion,
			Severity:         core.SeverityHigh,
			Title:            "Add at least one assertion",
			Detail:           "The scenario verifies nothing. Add an assertion on an element that proves the flow succeeded.",
			StepIndex:        -1,
			RelatedStepIndex: -1,
			Confidence:       0.85,
			Impact:           "high",
		})
	}

	return out
}

// renameSuggestions emits the rename and action-hint suggestions for
// one step. The two overlap on purpose: they feed different UI
// surfaces, so they are not deduplicated against each other.
func renameSuggestions(i int, a scenario.Action) []Suggestion {
	var out []Suggestion

	if isGenericDescription(a) {
		if name := friendlyName(a); name != strings.TrimSpace(a.Description) {
			out = append(out, Suggestion{
				Kind:             KindRename,
				Severity:         core.SeverityLow,
				Title:            fmt.Sprintf("Rename step %d", i),
				Detail:           fmt.Sprintf("The current description %q does not say what the step does.", a.Description),
				StepIndex:        i,
				RelatedStepIndex: -1,
				SuggestedText:    name,
				Confidence:       0.6,
				Impact:           "low",
			})
		}
	}

	if hint := actionHint(a); hint != "" && hint != strings.TrimSpace(a.Description) {
		out = append(out, Suggestion{
			Kind:             KindActionHint,
			Severity:         core.SeverityLow,
			Title:            fmt.Sprintf("Describe step %d by its target", i),
			StepIndex:        i,
			RelatedStepIndex: -1,
			SuggestedText:    hint,
			Confidence:       0.55,
			Impact:           "low",
		})
	}

	return out
}

// locatorSuggestions emits the locator-warning and ensure-fallbacks
// suggestions for locator-requiring steps that look fragile.
func (e *Engine) locatorSuggestions(i int, a scenario.Action) []Suggestion {
	if !a.Type.RequiresLocator() {
		return nil
	}

	score := locator.Score(a)
	stable := locator.HasStable(a)
	if stable && score >= locator.SuggestScore {
		return nil
	}

	critical := locator.IsCritical(score)
	severity := core.SeverityMedium
	if critical || score < locator.HighRiskScore {
		severity = core.SeverityHigh
	}

	detail := fmt.Sprintf("Locator reliability is %d/100.", score)
	if expr := firstNonEmpty(a.SmartXPath, a.XPath, a.Locator); locator.IsWeakXPath(expr) {
		detail += " The XPath matches by class only, so sibling elements can steal the match after layout changes."
	}

	value, strategy := proposedLocator(a)
	out := []Suggestion{{
		Kind:             KindLocatorWarning,
		Severity:         severity,
		Title:            fmt.Sprintf("Fragile locator at step %d", i),
		Detail:           detail,
		StepIndex:        i,
		RelatedStepIndex: -1,
		ProposedLocator:  value,
		ProposedStrategy: strategy,
		Confidence:       0.8,
		Impact:           "high",
	}}

	if !a.LocatorBundle.HasFallbacks() {
		fbSeverity := core.SeverityMedium
		if critical {
			fbSeverity = core.SeverityHigh
		}
		out = append(out, Suggestion{
			Kind:             KindEnsureFallbacks,
			Severity:         fbSeverity,
			Title:            fmt.Sprintf("Add fallback locators at step %d", i),
			Detail:           "Self-healing needs at least one alternate candidate to recover when the primary locator stops matching.",
			StepIndex:        i,
			RelatedStepIndex: -1,
			Confidence:       0.7,
			Impact:           "medium",
		})
	}

	return out
}

// duplicateSuggestion flags step i as a duplicate of the nearest
// qualifying earlier step sharing its target fingerprint, and records
// the step for later comparisons. Disabled steps never reach here.
func duplicateSuggestion(i int, actions []scenario.Action, seen map[string][]int) *Suggestion {
	a := actions[i]
	fp := targetFingerprint(a)
	if fp == "" {
		return nil
	}
	key := string(a.Type) + "\x00" + fp
	defer func() { seen[key] = append(seen[key], i) }()

	if duplicateExempt[a.Type] {
		return nil
	}

	prior := seen[key]
	for j := len(prior) - 1; j >= 0; j-- {
		p := prior[j]
		if i-p > maxDuplicateDistance {
			break
		}
		// Repeated typing into the same field only counts when the
		// typed value repeats too.
		if a.Type == scenario.ActionInput && strings.TrimSpace(actions[p].Value) != strings.TrimSpace(a.Value) {
			continue
		}
		return &Suggestion{
			Kind:             KindDuplicateStep,
			Severity:         core.SeverityMedium,
			Title:            fmt.Sprintf("Step %d repeats step %d", i, p),
			Detail:           "Two nearby interactions hit the same element. Confirm the repeat is intentional or disable one.",
			StepIndex:        i,
			RelatedStepIndex: p,
			Confidence:       0.65,
			Impact:           "medium",
		}
	}
	return nil
}

func contextualAssertion(i int, a scenario.Action) Suggestion {
	label := locator.TargetLabel(a)
	value, strategy := proposedLocator(a)
	if value == "" {
		value = locator.BestDisplay(a)
	}
	return Suggestion{
		Kind:             KindContextualAssertion,
		Severity:         core.SeverityMedium,
		Title:            fmt.Sprintf("Verify %q appears", label),
		Detail:           fmt.Sprintf("Anchor an assertion near step %d so the replay checks the screen actually showed %q.", i, label),
		StepIndex:        i,
		RelatedStepIndex: -1,
		SuggestedText:    fmt.Sprintf("Verify %q appears", label),
		ProposedLocator:  value,
		ProposedStrategy: strategy,
		Confidence:       0.75,
		Impact:           "medium",
	}
}

// proposedLocator picks the concrete replacement candidate: the bundle
// primary, then the smart or raw XPath, then a synthesized contextual
// XPath.
func proposedLocator(a scenario.Action) (value, strategy string) {
	if b := a.LocatorBundle; b != nil && strings.TrimSpace(b.Primary.Value) != "" {
		return b.Primary.Value, b.Primary.Strategy
	}
	if x := strings.TrimSpace(a.SmartXPath); x != "" {
		return x, string(scenario.StrategyXPath)
	}
	if x := strings.TrimSpace(a.XPath); x != "" {
		return x, string(scenario.StrategyXPath)
	}
	if x := locator.ContextualXPath(a); x != "" {
		return x, string(scenario.StrategyXPath)
	}
	return "", ""
}

// targetFingerprint normalizes the step's best target identifier for
// duplicate matching: lowercased with whitespace collapsed.
func targetFingerprint(a scenario.Action) string {
	var raw string
	if b := a.LocatorBundle; b != nil && strings.TrimSpace(b.Primary.Value) != "" {
		raw = b.Primary.Value
	} else {
		raw = firstNonEmpty(a.Locator, a.XPath, a.ElementID, a.ElementContentDesc, a.ElementText)
	}
	if raw == "" {
		return ""
	}
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
