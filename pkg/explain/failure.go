package explain

import (
	"fmt"
	"strings"

	"github.com/recorderlab-dev/recorder-insight/pkg/locator"
	"github.com/recorderlab-dev/recorder-insight/pkg/scenario"
)

// FailureCategory classifies a replay failure message.
type FailureCategory string

// Failure categories. The string values are part of the output contract.
const (
	CategoryElementResolution FailureCategory = "element_resolution"
	CategoryTiming            FailureCategory = "timing"
	CategoryConnectivity      FailureCategory = "connectivity"
	CategoryManualStop        FailureCategory = "manual_stop"
	CategoryExecutionError    FailureCategory = "execution_error"
	CategoryUnknown           FailureCategory = "unknown"
)

// ReplayFailureExplanation classifies one failure message with
// remediation steps. Confidence communicates classification certainty;
// there is no error path.
type ReplayFailureExplanation struct {
	Category    FailureCategory `json:"category"`
	Summary     string          `json:"summary"`
	Confidence  float64         `json:"confidence"`
	Remediation []string        `json:"remediation"`
}

// ReplayFailure classifies a replay failure message by substring match.
// When failed is non-nil and carries a derivable locator, the
// element-resolution category gets a concrete locator suggestion
// prepended to its remediation list.
func ReplayFailure(message string, failed *scenario.Action) ReplayFailureExplanation {
	normalized := strings.ToLower(strings.TrimSpace(message))

	if normalized == "" {
		return ReplayFailureExplanation{
			Category:   CategoryUnknown,
			Summary:    "The replay failed without an error message.",
			Confidence: 0.45,
			Remediation: []string{
				"Re-run the scenario and watch the device screen for where it stops.",
				"Check the agent log for the last executed step.",
			},
		}
	}

	switch {
	case strings.Contains(normalized, "element not found"),
		strings.Contains(normalized, "not found"),
		strings.Contains(normalized, "locator"):
		remediation := []string{
			"Verify the element is on screen at that point in the flow.",
			"Prefer a resource-id or content-desc locator over text or coordinates.",
			"Add fallback locator candidates so replay can self-heal.",
		}
		if failed != nil {
			if alt := alternateLocator(*failed); alt != "" {
				remediation = append([]string{fmt.Sprintf("Try the locator %s for this step.", alt)}, remediation...)
			}
		}
		return ReplayFailureExplanation{
			Category:    CategoryElementResolution,
			Summary:     "The replay could not find the element the step targets.",
			Confidence:  0.92,
			Remediation: remediation,
		}

	case strings.Contains(normalized, "timed out"),
		strings.Contains(normalized, "timeout"):
		return ReplayFailureExplanation{
			Category:   CategoryTiming,
			Summary:    "A step took longer than its allowed time.",
			Confidence: 0.88,
			Remediation: []string{
				"Add an assertion that waits for the screen to settle before the failing step.",
				"Check whether the app shows a loading state at that point.",
				"Increase the step timeout only after the above.",
			},
		}

	case strings.Contains(normalized, "connection"),
		strings.Contains(normalized, "device"),
		strings.Contains(normalized, "adb"):
		return ReplayFailureExplanation{
			Category:   CategoryConnectivity,
			Summary:    "The device or agent connection dropped during replay.",
			Confidence: 0.84,
			Remediation: []string{
				"Check that the device is still connected (adb devices).",
				"Restart the local agent and Appium session.",
				"Re-plug USB or restart the emulator if the device shows offline.",
			},
		}

	case strings.Contains(normalized, "stopped by user"):
		return ReplayFailureExplanation{
			Category:   CategoryManualStop,
			Summary:    "The replay was stopped manually.",
			Confidence: 0.99,
			Remediation: []string{
				"Re-run the scenario when ready; no fix is needed.",
			},
		}
	}

	return ReplayFailureExplanation{
		Category:   CategoryExecutionError,
		Summary:    fmt.Sprintf("The replay failed with: %s", strings.TrimSpace(message)),
		Confidence: 0.6,
		Remediation: []string{
			"Check the agent log around the failing step for detail.",
			"Re-run the scenario to see whether the failure is consistent.",
		},
	}
}

// alternateLocator derives a locator worth trying for the failed step:
// a synthesized contextual XPath first, then whatever display locator
// the recording captured.
func alternateLocator(a scenario.Action) string {
	if x := locator.ContextualXPath(a); x != "" {
		return x
	}
	return locator.BestDisplay(a)
}
