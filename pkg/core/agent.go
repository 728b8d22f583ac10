package core

import "context"

// DeviceAgent is the interface to the local helper process that owns
// devices, emulators, and the Appium lifecycle. The analysis core never
// calls it; the surrounding CLI and tooling do.
// Implementations: HTTP client (pkg/agent), test doubles.
type DeviceAgent interface {
	// Health checks that the agent process is up and reports its version.
	Health(ctx context.Context) (*HealthStatus, error)

	// Devices enumerates connected devices and available virtual devices.
	Devices(ctx context.Context) (*DeviceList, error)

	// StartEmulator boots the named AVD and returns its handle.
	StartEmulator(ctx context.Context, avdName string) (*EmulatorHandle, error)

	// StopEmulator shuts down the emulator with the given serial.
	StopEmulator(ctx context.Context, serial string) error

	// SetupStatus returns the aggregated toolchain readiness.
	SetupStatus(ctx context.Context) (*SetupStatus, error)

	// RunCommand executes a shell command through the agent's terminal
	// endpoint and returns its output.
	RunCommand(ctx context.Context, command string) (*CommandOutput, error)
}

// HealthStatus is the agent's health-check response.
type HealthStatus struct {
	Status        string `json:"status"` // "ok" when healthy
	Version       string `json:"version,omitempty"`
	AppiumRunning bool   `json:"appiumRunning"`
	UptimeSec     int64  `json:"uptimeSec,omitempty"`
}

// Healthy reports whether the agent considers itself operational.
func (h *HealthStatus) Healthy() bool {
	return h != nil && h.Status == "ok"
}

// DeviceInfo describes one connected Android device.
type DeviceInfo struct {
	Serial     string `json:"serial"`
	State      string `json:"state,omitempty"` // device, offline, unauthorized
	Model      string `json:"model,omitempty"`
	Brand      string `json:"brand,omitempty"`
	SDK        int    `json:"sdk,omitempty"`
	IsEmulator bool   `json:"isEmulator"`
}

// AVDInfo describes one available Android virtual device.
type AVDInfo struct {
	Name   string `json:"name"`
	Target string `json:"target,omitempty"`
	Path   string `json:"path,omitempty"`
}

// DeviceList is the agent's device enumeration response.
type DeviceList struct {
	Connected []DeviceInfo `json:"connected"`
	AVDs      []AVDInfo    `json:"avds"`
}

// EmulatorHandle identifies an emulator started through the agent.
type EmulatorHandle struct {
	AVD    string `json:"avd"`
	Serial string `json:"serial"`
	Port   int    `json:"port,omitempty"`
	Booted bool   `json:"booted"`
}

// SetupStatus aggregates the agent-side toolchain checks.
type SetupStatus struct {
	ADBInstalled    bool     `json:"adbInstalled"`
	NodeInstalled   bool     `json:"nodeInstalled"`
	AppiumInstalled bool     `json:"appiumInstalled"`
	AppiumRunning   bool     `json:"appiumRunning"`
	DeviceConnected bool     `json:"deviceConnected"`
	Messages        []string `json:"messages,omitempty"`
}

// IsReady reports whether recording/replay can work right now.
// A connected device is informational; the toolchain is what gates setup.
func (s *SetupStatus) IsReady() bool {
	return s.ADBInstalled && s.NodeInstalled && s.AppiumInstalled && s.AppiumRunning
}

// CommandOutput is the result of the agent's terminal endpoint.
type CommandOutput struct {
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr,omitempty"`
	ExitCode   int    `json:"exitCode"`
	DurationMs int64  `json:"durationMs,omitempty"`
}
