package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/recorderlab-dev/recorder-insight/pkg/core"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

// colorsEnabled determines if ANSI colors should be used
var colorsEnabled = true

func init() {
	// Respect NO_COLOR environment variable
	if os.Getenv("NO_COLOR") != "" {
		colorsEnabled = false
		return
	}
	// Check if stdout is a terminal
	if fileInfo, err := os.Stdout.Stat(); err == nil {
		if (fileInfo.Mode() & os.ModeCharDevice) == 0 {
			colorsEnabled = false
		}
	}
}

// color returns the color code if colors are enabled, empty string otherwise
func color(c string) string {
	if colorsEnabled {
		return c
	}
	return ""
}

// severityColor maps a severity to its display color.
func severityColor(s core.Severity) string {
	switch s {
	case core.SeverityHigh:
		return colorRed
	case core.SeverityMedium:
		return colorYellow
	}
	return colorGray
}

// readinessColor buckets the score for display.
func readinessColor(score int) string {
	switch {
	case score >= 80:
		return colorGreen
	case score >= 60:
		return colorYellow
	}
	return colorRed
}

// header prints a bold section header.
func header(w func(format string, a ...interface{}), title string) {
	w("\n%s%s%s\n", color(colorBold), title, color(colorReset))
	w("%s\n", strings.Repeat("─", len(title)))
}

// sprintf-style writer bound to the app's output stream.
func printerTo(out interface{ Write([]byte) (int, error) }) func(format string, a ...interface{}) {
	return func(format string, a ...interface{}) {
		fmt.Fprintf(out, format, a...)
	}
}
