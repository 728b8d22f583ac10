// Package core holds the shared kernel: issue severities, agent errors,
// and the device-agent collaborator interface.
package core

// Severity grades analysis findings. The string values are part of the
// output contract consumed by the platform UI.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Rank returns an ordering value, highest severity first.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// DefaultWeight returns the readiness-score penalty for the severity.
func (s Severity) DefaultWeight() int {
	switch s {
	case SeverityHigh:
		return 15
	case SeverityMedium:
		return 8
	case SeverityLow:
		return 3
	default:
		return 0
	}
}

// Valid reports whether the severity is one of the known grades.
func (s Severity) Valid() bool {
	return s == SeverityHigh || s == SeverityMedium || s == SeverityLow
}
