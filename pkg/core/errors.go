package core

import (
	"fmt"
)

// ErrorCategory classifies agent-side failures for reporting.
type ErrorCategory int

const (
	ErrCategoryNone       ErrorCategory = iota // No error
	ErrCategoryConnection                      // Agent unreachable, device connection lost
	ErrCategoryTimeout                         // Request or boot timed out
	ErrCategoryAgent                           // Agent responded with a failure
	ErrCategoryConfig                          // Invalid configuration, missing required field
)

// String returns the string representation of ErrorCategory.
func (c ErrorCategory) String() string {
	switch c {
	case ErrCategoryNone:
		return "none"
	case ErrCategoryConnection:
		return "connection"
	case ErrCategoryTimeout:
		return "timeout"
	case ErrCategoryAgent:
		return "agent"
	case ErrCategoryConfig:
		return "config"
	default:
		return "unknown"
	}
}

// AgentError represents a structured error from the agent surface.
type AgentError struct {
	Category ErrorCategory
	Code     string                 // Machine-readable code: agent_unreachable, request_timeout, etc.
	Message  string                 // Human-readable message
	Details  map[string]interface{} // Additional context
	Cause    error                  // Underlying error
}

// Error implements the error interface.
func (e *AgentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *AgentError) Unwrap() error {
	return e.Cause
}

// WithCause returns a copy of the error with the given cause.
func (e *AgentError) WithCause(cause error) *AgentError {
	return &AgentError{
		Category: e.Category,
		Code:     e.Code,
		Message:  e.Message,
		Details:  e.Details,
		Cause:    cause,
	}
}

// WithMessage returns a copy of the error with a custom message.
func (e *AgentError) WithMessage(msg string) *AgentError {
	return &AgentError{
		Category: e.Category,
		Code:     e.Code,
		Message:  msg,
		Details:  e.Details,
		Cause:    e.Cause,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *AgentError) WithDetails(details map[string]interface{}) *AgentError {
	merged := make(map[string]interface{})
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	return &AgentError{
		Category: e.Category,
		Code:     e.Code,
		Message:  e.Message,
		Details:  merged,
		Cause:    e.Cause,
	}
}

// Predefined errors for the agent surface.
var (
	// Connection errors
	ErrAgentUnreachable = &AgentError{
		Category: ErrCategoryConnection,
		Code:     "agent_unreachable",
		Message:  "could not connect to the device agent",
	}
	ErrDeviceDisconnected = &AgentError{
		Category: ErrCategoryConnection,
		Code:     "device_disconnected",
		Message:  "device connection lost",
	}

	// Timeout errors
	ErrRequestTimeout = &AgentError{
		Category: ErrCategoryTimeout,
		Code:     "request_timeout",
		Message:  "agent request timed out",
	}
	ErrBootTimeout = &AgentError{
		Category: ErrCategoryTimeout,
		Code:     "boot_timeout",
		Message:  "emulator did not boot in time",
	}

	// Agent errors
	ErrEndpointFailed = &AgentError{
		Category: ErrCategoryAgent,
		Code:     "endpoint_failed",
		Message:  "agent endpoint returned an error",
	}
	ErrBadResponse = &AgentError{
		Category: ErrCategoryAgent,
		Code:     "bad_response",
		Message:  "agent returned an unexpected response",
	}
	ErrCommandFailed = &AgentError{
		Category: ErrCategoryAgent,
		Code:     "command_failed",
		Message:  "terminal command failed",
	}

	// Config errors
	ErrInvalidConfig = &AgentError{
		Category: ErrCategoryConfig,
		Code:     "invalid_config",
		Message:  "invalid configuration",
	}
	ErrMissingRequired = &AgentError{
		Category: ErrCategoryConfig,
		Code:     "missing_required",
		Message:  "missing required field",
	}
)

// NewAgentError creates a new AgentError with the given parameters.
func NewAgentError(category ErrorCategory, code, message string) *AgentError {
	return &AgentError{
		Category: category,
		Code:     code,
		Message:  message,
	}
}
