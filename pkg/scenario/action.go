// Package scenario defines recorded mobile scenarios and their actions.
package scenario

import (
	"strconv"
	"strings"
)

// ActionType represents the type of a recorded action.
type ActionType string

// Action type constants.
const (
	// Gestures
	ActionTap       ActionType = "tap"
	ActionDoubleTap ActionType = "doubleTap"
	ActionLongPress ActionType = "longPress"
	ActionScroll    ActionType = "scroll"
	ActionSwipe     ActionType = "swipe"

	// Text & Keys
	ActionInput        ActionType = "input"
	ActionPressKey     ActionType = "pressKey"
	ActionHideKeyboard ActionType = "hideKeyboard"

	// Timing & Verification
	ActionWait   ActionType = "wait"
	ActionAssert ActionType = "assert"

	// App Management
	ActionOpenApp      ActionType = "openApp"
	ActionStopApp      ActionType = "stopApp"
	ActionClearCache   ActionType = "clearCache"
	ActionUninstallApp ActionType = "uninstallApp"
)

// RequiresLocator reports whether the action type needs a resolvable
// element target to replay.
func (t ActionType) RequiresLocator() bool {
	switch t {
	case ActionTap, ActionInput, ActionLongPress, ActionAssert:
		return true
	}
	return false
}

// IsTransition reports whether the action type typically moves the app
// to a different screen or state.
func (t ActionType) IsTransition() bool {
	switch t {
	case ActionTap, ActionInput, ActionOpenApp, ActionScroll, ActionSwipe:
		return true
	}
	return false
}

// LocatorStrategy describes how the legacy locator string is interpreted.
type LocatorStrategy string

// Locator strategy constants.
const (
	StrategyID              LocatorStrategy = "id"
	StrategyAccessibilityID LocatorStrategy = "accessibilityId"
	StrategyText            LocatorStrategy = "text"
	StrategyXPath           LocatorStrategy = "xpath"
	StrategyCoordinates     LocatorStrategy = "coordinates"
	StrategyNone            LocatorStrategy = ""
)

// LocatorCandidate is one strategy+value pair with a recorded confidence.
type LocatorCandidate struct {
	Strategy string `json:"strategy" yaml:"strategy"`
	Value    string `json:"value" yaml:"value"`
	Score    int    `json:"score" yaml:"score"` // 0-100
	Source   string `json:"source,omitempty" yaml:"source,omitempty"`
	Reason   string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// LocatorBundle is the preferred locator representation: one primary
// candidate plus ranked fallbacks for self-healing.
type LocatorBundle struct {
	Primary   LocatorCandidate   `json:"primary" yaml:"primary"`
	Fallbacks []LocatorCandidate `json:"fallbacks,omitempty" yaml:"fallbacks,omitempty"`
}

// HasFallbacks reports whether at least one fallback candidate exists.
func (b *LocatorBundle) HasFallbacks() bool {
	return b != nil && len(b.Fallbacks) > 0
}

// Coordinates holds gesture coordinates. EndX/EndY are set for swipes.
type Coordinates struct {
	X    int  `json:"x" yaml:"x"`
	Y    int  `json:"y" yaml:"y"`
	EndX *int `json:"endX,omitempty" yaml:"endX,omitempty"`
	EndY *int `json:"endY,omitempty" yaml:"endY,omitempty"`
}

// Action is one recorded step in a scenario.
//
// The locator fields exist in two generations: locatorBundle is the
// preferred structured form; locator/locatorStrategy/xpath/smartXPath and
// the element* attributes are legacy fields kept for older recordings.
type Action struct {
	ID          string     `json:"id,omitempty" yaml:"id,omitempty"`
	Type        ActionType `json:"type" yaml:"type"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`

	Locator         string          `json:"locator,omitempty" yaml:"locator,omitempty"`
	LocatorStrategy LocatorStrategy `json:"locatorStrategy,omitempty" yaml:"locatorStrategy,omitempty"`
	LocatorBundle   *LocatorBundle  `json:"locatorBundle,omitempty" yaml:"locatorBundle,omitempty"`
	XPath           string          `json:"xpath,omitempty" yaml:"xpath,omitempty"`
	SmartXPath      string          `json:"smartXPath,omitempty" yaml:"smartXPath,omitempty"`

	ElementID          string `json:"elementId,omitempty" yaml:"elementId,omitempty"`
	ElementText        string `json:"elementText,omitempty" yaml:"elementText,omitempty"`
	ElementClass       string `json:"elementClass,omitempty" yaml:"elementClass,omitempty"`
	ElementContentDesc string `json:"elementContentDesc,omitempty" yaml:"elementContentDesc,omitempty"`

	// Value's meaning depends on Type: input text, wait duration in ms
	// (numeric string), app package, key name.
	Value       string       `json:"value,omitempty" yaml:"value,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty" yaml:"coordinates,omitempty"`

	// Enabled defaults to true when absent from the recording.
	Enabled *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`

	ReliabilityScore *int   `json:"reliabilityScore,omitempty" yaml:"reliabilityScore,omitempty"` // cached 0-100
	AssertionType    string `json:"assertionType,omitempty" yaml:"assertionType,omitempty"`       // assert only
}

// IsEnabled reports whether the action participates in replay.
// Absent means enabled.
func (a Action) IsEnabled() bool {
	return a.Enabled == nil || *a.Enabled
}

// WaitMillis parses Value as a non-negative wait duration in milliseconds.
// Empty, non-numeric, and negative values report ok=false.
func (a Action) WaitMillis() (int, bool) {
	v := strings.TrimSpace(a.Value)
	if v == "" {
		return 0, false
	}
	ms, err := strconv.ParseFloat(v, 64)
	if err != nil || ms < 0 {
		return 0, false
	}
	return int(ms), true
}

// CountAsserts returns the number of assert actions in the list.
func CountAsserts(actions []Action) int {
	n := 0
	for _, a := range actions {
		if a.Type == ActionAssert {
			n++
		}
	}
	return n
}

// CountEnabled returns the number of enabled actions in the list.
func CountEnabled(actions []Action) int {
	n := 0
	for _, a := range actions {
		if a.IsEnabled() {
			n++
		}
	}
	return n
}
