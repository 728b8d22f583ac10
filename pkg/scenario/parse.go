package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ParseError represents a scenario file error with location info.
type ParseError struct {
	Path    string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ParseActions decodes a recorded action list defensively. The input may be
// a JSON array of actions or a JSON string containing such an array
// (recordings round-tripped through a row store arrive double-encoded).
// Invalid JSON and non-array values yield an empty list, never an error.
func ParseActions(data []byte) []Action {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil
	}

	var actions []Action
	if err := json.Unmarshal([]byte(trimmed), &actions); err == nil {
		return actions
	}

	// Double-encoded: a JSON string holding the array.
	var inner string
	if err := json.Unmarshal([]byte(trimmed), &inner); err == nil {
		if err := json.Unmarshal([]byte(inner), &actions); err == nil {
			return actions
		}
	}

	return nil
}

// ParseActionsString is ParseActions for string input.
func ParseActionsString(s string) []Action {
	return ParseActions([]byte(s))
}

// scenarioDoc mirrors Scenario but defers steps decoding, since the steps
// field may be an array or a JSON-encoded string.
type scenarioDoc struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	AppPackage  string          `json:"appPackage"`
	Steps       json.RawMessage `json:"steps"`
	CreatedAt   *time.Time      `json:"createdAt"`
	UpdatedAt   *time.Time      `json:"updatedAt"`
}

// ParseFile loads a scenario document from a JSON or YAML file.
// JSON files may contain either a scenario object or a bare action array.
func ParseFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path is a user-provided scenario file
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(data, path)
	default:
		return parseJSON(data, path)
	}
}

func parseYAML(data []byte, path string) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, &ParseError{Path: path, Message: err.Error()}
	}
	if s.Name == "" {
		s.Name = baseName(path)
	}
	s.SourcePath = path
	return &s, nil
}

func parseJSON(data []byte, path string) (*Scenario, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, &ParseError{Path: path, Message: "empty scenario file"}
	}

	// Bare action array export.
	if strings.HasPrefix(trimmed, "[") {
		s := &Scenario{
			Name:       baseName(path),
			Steps:      ParseActions(data),
			SourcePath: path,
		}
		return s, nil
	}

	var doc scenarioDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: path, Message: err.Error()}
	}

	s := &Scenario{
		ID:          doc.ID,
		Name:        doc.Name,
		Description: doc.Description,
		AppPackage:  doc.AppPackage,
		Steps:       ParseActions(doc.Steps),
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
		SourcePath:  path,
	}
	if s.Name == "" {
		s.Name = baseName(path)
	}
	return s, nil
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
