package scenario

import "time"

// Scenario is a persisted recording: an ordered, named sequence of actions.
// It is created by the recorder, loaded read-only by the analysis engine,
// and updated only through explicit save calls outside this module.
type Scenario struct {
	ID          string     `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	AppPackage  string     `json:"appPackage,omitempty" yaml:"appPackage,omitempty"`
	Steps       []Action   `json:"steps" yaml:"steps"`
	CreatedAt   *time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`

	SourcePath string `json:"-" yaml:"-"` // where the scenario was loaded from
}

// EnabledSteps returns the enabled actions in order.
// The receiver's slice is never modified.
func (s *Scenario) EnabledSteps() []Action {
	out := make([]Action, 0, len(s.Steps))
	for _, a := range s.Steps {
		if a.IsEnabled() {
			out = append(out, a)
		}
	}
	return out
}
