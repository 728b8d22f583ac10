// Package explain turns recorded scenarios and replay failures into
// plain-language narratives, and proposes scenario organization.
package explain

import (
	"fmt"
	"strings"

	"github.com/recorderlab-dev/recorder-insight/pkg/analysis"
	"github.com/recorderlab-dev/recorder-insight/pkg/locator"
	"github.com/recorderlab-dev/recorder-insight/pkg/scenario"
)

// minTransitionsForWaitAdvice is how many screen-changing actions a
// scenario needs, with zero waits, before the pacing recommendation
// fires.
const minTransitionsForWaitAdvice = 3

// RiskEntry marks one risky step in the narrative.
type RiskEntry struct {
	// StepIndex is 0-based within the enabled-step sequence.
	StepIndex int    `json:"stepIndex"`
	Reason    string `json:"reason"`
}

// ScriptExplanation is the plain-language rendering of a scenario.
type ScriptExplanation struct {
	Summary         string      `json:"summary"`
	Lines           []string    `json:"lines"`
	Risks           []RiskEntry `json:"risks,omitempty"`
	Recommendations []string    `json:"recommendations,omitempty"`
}

// Script narrates the enabled steps of a scenario: one sentence per
// step, risky-step callouts, and pacing recommendations. An empty or
// fully disabled scenario yields a neutral explanation.
func Script(actions []scenario.Action) ScriptExplanation {
	enabled := make([]scenario.Action, 0, len(actions))
	for _, a := range actions {
		if a.IsEnabled() {
			enabled = append(enabled, a)
		}
	}
	if len(enabled) == 0 {
		return ScriptExplanation{Summary: "The scenario has no enabled steps to explain."}
	}

	var (
		lines       []string
		risks       []RiskEntry
		asserts     int
		waits       int
		transitions int
		longWait    bool
	)

	for i, a := range enabled {
		lines = append(lines, fmt.Sprintf("Step %d: %s", i+1, sentence(a)))

		if a.Type == scenario.ActionAssert {
			asserts++
		}
		if a.Type.IsTransition() {
			transitions++
		}

		if a.Type.RequiresLocator() && !locator.HasStable(a) {
			risks = append(risks, RiskEntry{StepIndex: i, Reason: "no stable locator; replay depends on raw coordinates"})
		}
		if a.Type == scenario.ActionWait {
			if ms, ok := a.WaitMillis(); ok {
				waits++
				if ms > analysis.DefaultLongWaitMs {
					longWait = true
					risks = append(risks, RiskEntry{StepIndex: i, Reason: fmt.Sprintf("fixed wait of %d ms slows every replay", ms)})
				}
			}
		}
		if a.Type == scenario.ActionInput && strings.TrimSpace(a.Value) == "" {
			risks = append(risks, RiskEntry{StepIndex: i, Reason: "input step types nothing"})
		}
	}

	var recs []string
	if asserts == 0 {
		recs = append(recs, "Add an assertion so the replay verifies an outcome, not just survival.")
	}
	if transitions >= minTransitionsForWaitAdvice && waits == 0 {
		recs = append(recs, "Add waits or assertions after navigation-heavy sequences so the replay does not outrun the app.")
	}
	if longWait {
		recs = append(recs, "Replace long fixed waits with assertions on the element being waited for.")
	}

	return ScriptExplanation{
		Summary:         fmt.Sprintf("The scenario runs %d enabled step(s); %d look risky.", len(enabled), len(risks)),
		Lines:           lines,
		Risks:           risks,
		Recommendations: recs,
	}
}

// sentence renders one action as plain English.
func sentence(a scenario.Action) string {
	target := locator.TargetLabel(a)

	switch a.Type {
	case scenario.ActionTap:
		return withTarget("tap", target, a)
	case scenario.ActionDoubleTap:
		return withTarget("double-tap", target, a)
	case scenario.ActionLongPress:
		return withTarget("long-press", target, a)
	case scenario.ActionInput:
		if target != "" {
			return fmt.Sprintf("type %q into %q.", a.Value, target)
		}
		return fmt.Sprintf("type %q into the focused field.", a.Value)
	case scenario.ActionScroll:
		return "scroll the screen."
	case scenario.ActionSwipe:
		if c := a.Coordinates; c != nil && c.EndX != nil && c.EndY != nil {
			return fmt.Sprintf("swipe from (%d, %d) to (%d, %d).", c.X, c.Y, *c.EndX, *c.EndY)
		}
		return "swipe the screen."
	case scenario.ActionWait:
		if ms, ok := a.WaitMillis(); ok {
			return fmt.Sprintf("wait %d ms.", ms)
		}
		return "wait."
	case scenario.ActionAssert:
		if target != "" {
			return fmt.Sprintf("verify that %q is visible.", target)
		}
		return "verify the expected element is visible."
	case scenario.ActionOpenApp:
		if v := strings.TrimSpace(a.Value); v != "" {
			return fmt.Sprintf("open the app %s.", v)
		}
		return "open the app."
	case scenario.ActionStopApp:
		return "stop the app."
	case scenario.ActionClearCache:
		return "clear the app cache."
	case scenario.ActionHideKeyboard:
		return "hide the on-screen keyboard."
	case scenario.ActionPressKey:
		if v := strings.TrimSpace(a.Value); v != "" {
			return fmt.Sprintf("press the %s key.", v)
		}
		return "press a key."
	case scenario.ActionUninstallApp:
		return "uninstall the app."
	}
	return fmt.Sprintf("perform a %s action.", a.Type)
}

func withTarget(verb, target string, a scenario.Action) string {
	if target != "" {
		return fmt.Sprintf("%s %q.", verb, target)
	}
	if c := a.Coordinates; c != nil {
		return fmt.Sprintf("%s the screen at (%d, %d).", verb, c.X, c.Y)
	}
	return fmt.Sprintf("%s an element.", verb)
}
