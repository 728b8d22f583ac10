package explain

import (
	"fmt"
	"strings"

	"github.com/recorderlab-dev/recorder-insight/pkg/flow"
	"github.com/recorderlab-dev/recorder-insight/pkg/scenario"
)

// DefaultFlowLabel names scenarios whose steps match no known flow
// pattern.
const DefaultFlowLabel = "Core Flow"

// smokeSuiteMaxSteps is the enabled-step count at or below which a
// scenario is tagged for the smoke suite rather than regression.
const smokeSuiteMaxSteps = 8

// OrganizationSuggestion proposes naming, tagging, and suite placement
// for a scenario.
type OrganizationSuggestion struct {
	Name      string   `json:"name"`
	FlowLabel string   `json:"flowLabel"`
	Tags      []string `json:"tags"`
	Suites    []string `json:"suites"`
}

// SuggestOrganization derives a flow label, tag set, display name, and
// suite placement from the recorded actions. currentName wins when set;
// otherwise the name combines the flow label with the app's short name
// (the last dot-segment of appPackage).
func SuggestOrganization(actions []scenario.Action, appPackage, currentName string) OrganizationSuggestion {
	return SuggestOrganizationWithPatterns(actions, appPackage, currentName, nil)
}

// SuggestOrganizationWithPatterns is SuggestOrganization with a custom
// flow pattern table. A nil table uses the defaults.
func SuggestOrganizationWithPatterns(actions []scenario.Action, appPackage, currentName string, patterns []flow.Pattern) OrganizationSuggestion {
	label, _ := flow.Infer(actions, patterns)
	if label == "" {
		label = DefaultFlowLabel
	}

	enabled := scenario.CountEnabled(actions)
	sizeTag := "smoke"
	sizeSuite := "Smoke Suite"
	if enabled > smokeSuiteMaxSteps {
		sizeTag = "regression"
		sizeSuite = "Regression Suite"
	}

	tags := []string{sizeTag}
	switch label {
	case "Login":
		tags = append(tags, "login")
	case "Checkout":
		tags = append(tags, "checkout")
	}
	if scenario.CountAsserts(actions) > 0 {
		tags = append(tags, "validated")
	}
	if hasType(actions, scenario.ActionInput) {
		tags = append(tags, "form")
	}
	if hasType(actions, scenario.ActionOpenApp) {
		tags = append(tags, "launch")
	}

	name := strings.TrimSpace(currentName)
	if name == "" {
		if app := appLabel(appPackage); app != "" {
			name = fmt.Sprintf("%s - %s", label, app)
		} else {
			name = label
		}
	}

	return OrganizationSuggestion{
		Name:      name,
		FlowLabel: label,
		Tags:      tags,
		Suites:    []string{label + " Suite", sizeSuite},
	}
}

func hasType(actions []scenario.Action, t scenario.ActionType) bool {
	for _, a := range actions {
		if a.Type == t {
			return true
		}
	}
	return false
}

// appLabel returns the last dot-segment of an Android package name.
func appLabel(pkg string) string {
	pkg = strings.TrimSpace(pkg)
	if pkg == "" {
		return ""
	}
	if i := strings.LastIndex(pkg, "."); i >= 0 && i+1 < len(pkg) {
		return pkg[i+1:]
	}
	return pkg
}
