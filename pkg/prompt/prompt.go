// Package prompt renders a structured natural-language prompt document
// for an external AI assistant from a recorded scenario and its
// context. Rendering is deterministic: the same input always produces
// the identical string, so callers can cache and diff the output.
package prompt

import (
	"fmt"
	"strings"

	"github.com/recorderlab-dev/recorder-insight/pkg/locator"
	"github.com/recorderlab-dev/recorder-insight/pkg/scenario"
)

// Section placeholders rendered when a toggleable section is disabled.
// The section header stays so downstream parsers see a fixed layout.
const (
	DeviceContextOmitted = "Device context intentionally omitted."
	SafetyRulesOmitted   = "Safety rules intentionally omitted."
)

// defaultObjective is used when the caller supplies none.
const defaultObjective = "Review the recorded scenario and suggest improvements that make replay more reliable."

// safetyRules are the non-breaking constraints included unless the
// caller opts out.
var safetyRules = []string{
	"Do not remove or reorder the existing steps.",
	"Do not change locators that currently work.",
	"Keep every existing assertion; add new ones instead of replacing them.",
	"Keep waits unless replacing them with an explicit assertion.",
	"Propose changes as additions for human review, never as silent edits.",
}

// DeviceContext describes the device the scenario was recorded on.
type DeviceContext struct {
	Name      string
	Platform  string
	OSVersion string
	Serial    string
}

// Input is everything the prompt renders. All fields are optional;
// zero values fall back to sensible defaults.
type Input struct {
	Objective   string
	AppPackage  string
	Device      DeviceContext
	Steps       []scenario.Action
	Constraints []string

	IncludeDeviceContext bool
	IncludeSafetyRules   bool
}

// Build renders the prompt document. It has no failure modes and never
// mutates its input.
func Build(in Input) string {
	var b strings.Builder

	b.WriteString("# Mobile Automation Assistant Request\n\n")

	b.WriteString("## Goal\n")
	objective := strings.TrimSpace(in.Objective)
	if objective == "" {
		objective = defaultObjective
	}
	b.WriteString(objective)
	b.WriteString("\n\n")

	b.WriteString("## Context\n")
	if pkg := strings.TrimSpace(in.AppPackage); pkg != "" {
		fmt.Fprintf(&b, "The scenario targets the Android app %s. ", pkg)
	}
	fmt.Fprintf(&b, "It was captured with a recorder that stores one locator bundle per step; the steps below are replayed in order.\n\n")

	b.WriteString("## Device Context\n")
	if in.IncludeDeviceContext {
		writeDeviceContext(&b, in.Device)
	} else {
		b.WriteString(DeviceContextOmitted)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("## Recorded Steps\n")
	if len(in.Steps) == 0 {
		b.WriteString("No steps recorded yet.\n")
	} else {
		for i, step := range in.Steps {
			b.WriteString(stepLine(i, step))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	b.WriteString("## Non-breaking Constraints\n")
	if in.IncludeSafetyRules {
		for _, rule := range safetyRules {
			fmt.Fprintf(&b, "- %s\n", rule)
		}
	} else {
		b.WriteString(SafetyRulesOmitted)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("## User Constraints\n")
	if len(in.Constraints) == 0 {
		b.WriteString("None.\n")
	} else {
		for _, c := range in.Constraints {
			fmt.Fprintf(&b, "- %s\n", c)
		}
	}
	b.WriteString("\n")

	b.WriteString("## Required Output Format\n")
	b.WriteString("Respond with a numbered list of proposed changes. For each change name the step it applies to, the exact edit, and the reason in one sentence.\n")

	return b.String()
}

// stepLine renders one step: index, type, description, best locator,
// and the value when present.
func stepLine(i int, a scenario.Action) string {
	display := locator.BestDisplay(a)
	if display == "" {
		display = "N/A"
	}
	line := fmt.Sprintf("%d. [%s] %s (locator: %s)", i+1, a.Type, describeStep(a), display)
	if v := strings.TrimSpace(a.Value); v != "" {
		line += fmt.Sprintf(" value=%q", v)
	}
	return line
}

func describeStep(a scenario.Action) string {
	if d := strings.TrimSpace(a.Description); d != "" {
		return d
	}
	return string(a.Type) + " step"
}

func writeDeviceContext(b *strings.Builder, d DeviceContext) {
	wrote := false
	if d.Name != "" {
		fmt.Fprintf(b, "Device: %s\n", d.Name)
		wrote = true
	}
	if d.Platform != "" || d.OSVersion != "" {
		fmt.Fprintf(b, "Platform: %s %s\n", strings.TrimSpace(d.Platform), strings.TrimSpace(d.OSVersion))
		wrote = true
	}
	if d.Serial != "" {
		fmt.Fprintf(b, "Serial: %s\n", d.Serial)
		wrote = true
	}
	if !wrote {
		b.WriteString("No device details captured.\n")
	}
}
