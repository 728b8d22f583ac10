package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestSeverityRank(t *testing.T) {
	tests := []struct {
		severity Severity
		want     int
	}{
		{SeverityHigh, 3},
		{SeverityMedium, 2},
		{SeverityLow, 1},
		{Severity("bogus"), 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.severity), func(t *testing.T) {
			if got := tt.severity.Rank(); got != tt.want {
				t.Errorf("Rank() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSeverityDefaultWeight(t *testing.T) {
	tests := []struct {
		severity Severity
		want     int
	}{
		{SeverityHigh, 15},
		{SeverityMedium, 8},
		{SeverityLow, 3},
		{Severity(""), 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.severity), func(t *testing.T) {
			if got := tt.severity.DefaultWeight(); got != tt.want {
				t.Errorf("DefaultWeight() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAgentErrorWrapping(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := ErrAgentUnreachable.WithCause(cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if err.Code != "agent_unreachable" {
		t.Errorf("got code %q, want %q", err.Code, "agent_unreachable")
	}
	if err.Category != ErrCategoryConnection {
		t.Errorf("got category %v, want connection", err.Category)
	}

	// WithCause must not mutate the predefined error.
	if ErrAgentUnreachable.Cause != nil {
		t.Error("predefined error was mutated")
	}
}

func TestAgentErrorWithDetails(t *testing.T) {
	err := ErrEndpointFailed.WithDetails(map[string]interface{}{"status": 500})
	err2 := err.WithDetails(map[string]interface{}{"path": "/devices"})

	if err2.Details["status"] != 500 || err2.Details["path"] != "/devices" {
		t.Errorf("details not merged: %v", err2.Details)
	}
	if _, ok := err.Details["path"]; ok {
		t.Error("WithDetails mutated the receiver")
	}
}

func TestSetupStatusIsReady(t *testing.T) {
	tests := []struct {
		name   string
		status SetupStatus
		want   bool
	}{
		{
			name:   "all tools ready",
			status: SetupStatus{ADBInstalled: true, NodeInstalled: true, AppiumInstalled: true, AppiumRunning: true},
			want:   true,
		},
		{
			name:   "ready without device",
			status: SetupStatus{ADBInstalled: true, NodeInstalled: true, AppiumInstalled: true, AppiumRunning: true, DeviceConnected: false},
			want:   true,
		},
		{
			name:   "appium not running",
			status: SetupStatus{ADBInstalled: true, NodeInstalled: true, AppiumInstalled: true},
			want:   false,
		},
		{
			name:   "nothing installed",
			status: SetupStatus{},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.IsReady(); got != tt.want {
				t.Errorf("IsReady() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHealthStatusHealthy(t *testing.T) {
	if (&HealthStatus{Status: "ok"}).Healthy() != true {
		t.Error("status ok should be healthy")
	}
	if (&HealthStatus{Status: "degraded"}).Healthy() != false {
		t.Error("non-ok status should not be healthy")
	}
	var nilStatus *HealthStatus
	if nilStatus.Healthy() {
		t.Error("nil status should not be healthy")
	}
}
