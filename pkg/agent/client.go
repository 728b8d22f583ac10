// Package agent implements the HTTP client for the local helper
// process that owns devices, emulators, and the Appium lifecycle.
// The analysis core never talks to it; the CLI and tooling do.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/recorderlab-dev/recorder-insight/pkg/core"
)

// DefaultBaseURL is where the helper agent listens by default.
const DefaultBaseURL = "http://127.0.0.1:7420"

// DefaultTimeout bounds every agent request unless overridden.
const DefaultTimeout = 30 * time.Second

// Client talks to the agent's REST surface. It implements
// core.DeviceAgent.
type Client struct {
	baseURL string
	client  *http.Client
}

var _ core.DeviceAgent = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// NewClient creates a Client for the agent at baseURL. An empty
// baseURL uses the default.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the agent endpoint the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health checks that the agent process is up.
func (c *Client) Health(ctx context.Context) (*core.HealthStatus, error) {
	var out core.HealthStatus
	if err := c.get(ctx, "/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Devices enumerates connected devices and available virtual devices.
func (c *Client) Devices(ctx context.Context) (*core.DeviceList, error) {
	var out core.DeviceList
	if err := c.get(ctx, "/devices", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StartEmulator boots the named AVD through the agent.
func (c *Client) StartEmulator(ctx context.Context, avdName string) (*core.EmulatorHandle, error) {
	if strings.TrimSpace(avdName) == "" {
		return nil, core.ErrMissingRequired.WithMessage("avd name is required")
	}
	var out core.EmulatorHandle
	body := map[string]string{"avd": avdName}
	if err := c.post(ctx, "/emulator/start", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StopEmulator shuts down the emulator with the given serial.
func (c *Client) StopEmulator(ctx context.Context, serial string) error {
	if strings.TrimSpace(serial) == "" {
		return core.ErrMissingRequired.WithMessage("device serial is required")
	}
	body := map[string]string{"serial": serial}
	return c.post(ctx, "/emulator/stop", body, nil)
}

// SetupStatus returns the aggregated toolchain readiness.
func (c *Client) SetupStatus(ctx context.Context) (*core.SetupStatus, error) {
	var out core.SetupStatus
	if err := c.get(ctx, "/setup/status", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RunCommand executes a shell command through the agent's terminal
// endpoint.
func (c *Client) RunCommand(ctx context.Context, command string) (*core.CommandOutput, error) {
	if strings.TrimSpace(command) == "" {
		return nil, core.ErrMissingRequired.WithMessage("command is required")
	}
	var out core.CommandOutput
	body := map[string]string{"command": command}
	if err := c.post(ctx, "/terminal", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// HTTP helpers

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.request(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.request(ctx, http.MethodPost, path, body, out)
}

func (c *Client) request(ctx context.Context, method, path string, body, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return core.ErrInvalidConfig.WithCause(err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return core.ErrInvalidConfig.WithCause(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return core.ErrRequestTimeout.WithCause(err)
		}
		return core.ErrAgentUnreachable.WithCause(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return core.ErrBadResponse.WithCause(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.endpointError(path, resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return core.ErrBadResponse.WithCause(fmt.Errorf("decode %s response: %w", path, err))
	}
	return nil
}

// endpointError maps a non-2xx response to an AgentError, preferring
// the agent's own error message when the body carries one.
func (c *Client) endpointError(path string, status int, body []byte) error {
	msg := fmt.Sprintf("%s returned HTTP %d", path, status)
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Error != "" {
			msg = envelope.Error
		} else if envelope.Message != "" {
			msg = envelope.Message
		}
	}
	return core.ErrEndpointFailed.WithMessage(msg).WithDetails(map[string]interface{}{
		"path":   path,
		"status": status,
	})
}
