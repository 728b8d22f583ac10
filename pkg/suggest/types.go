// Package suggest builds step-targeted improvement suggestions for a
// recorded scenario: renames, locator hardening, duplicate detection,
// assertion placement, and flow grouping. Every suggestion is advisory;
// the engine never modifies the recording.
package suggest

import "github.com/recorderlab-dev/recorder-insight/pkg/core"

// Kind identifies what a suggestion proposes.
type Kind string

// Suggestion kinds. The string values are part of the output contract.
const (
	KindRename              Kind = "rename"
	KindActionHint          Kind = "action_hint"
	KindLocatorWarning      Kind = "locator_warning"
	KindEnsureFallbacks     Kind = "ensure_fallbacks"
	KindDuplicateStep       Kind = "duplicate_step"
	KindContextualAssertion Kind = "contextual_assertion"
	KindFlowGrouping        Kind = "flow_grouping"
	KindMissingAssertion    Kind = "missing_assertion"
)

// Suggestion is one advisory improvement for human approval.
type Suggestion struct {
	Kind     Kind          `json:"kind"`
	Severity core.Severity `json:"severity"`
	Title    string        `json:"title"`
	Detail   string        `json:"detail,omitempty"`

	// StepIndex anchors the suggestion to a 0-based step, -1 for
	// scenario-level suggestions.
	StepIndex int `json:"stepIndex"`
	// RelatedStepIndex points at the nearest earlier duplicate for
	// duplicate_step suggestions, -1 otherwise.
	RelatedStepIndex int `json:"relatedStepIndex"`

	// SuggestedText carries proposed replacement text (new description,
	// flow name, assertion label).
	SuggestedText string `json:"suggestedText,omitempty"`
	// ProposedLocator/ProposedStrategy pre-fill a locator editor for
	// locator_warning and contextual_assertion suggestions.
	ProposedLocator  string `json:"proposedLocator,omitempty"`
	ProposedStrategy string `json:"proposedStrategy,omitempty"`

	Confidence float64 `json:"confidence"` // 0-1
	Impact     string  `json:"impact"`     // high, medium, low
}
