package agent

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/recorderlab-dev/recorder-insight/pkg/core"
)

func newTestAgent(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL), srv
}

func TestClient_Health(t *testing.T) {
	client, _ := newTestAgent(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" || r.Method != http.MethodGet {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(core.HealthStatus{
			Status:        "ok",
			Version:       "1.4.2",
			AppiumRunning: true,
		})
	})

	got, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error: %v", err)
	}
	if !got.Healthy() {
		t.Errorf("expected healthy status, got %+v", got)
	}
	if got.Version != "1.4.2" {
		t.Errorf("Version = %q, want 1.4.2", got.Version)
	}
}

func TestClient_Devices(t *testing.T) {
	client, _ := newTestAgent(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(core.DeviceList{
			Connected: []core.DeviceInfo{{Serial: "emulator-5554", State: "device", IsEmulator: true}},
			AVDs:      []core.AVDInfo{{Name: "Pixel_7_API_34"}},
		})
	})

	got, err := client.Devices(context.Background())
	if err != nil {
		t.Fatalf("Devices() error: %v", err)
	}
	if len(got.Connected) != 1 || got.Connected[0].Serial != "emulator-5554" {
		t.Errorf("unexpected connected devices: %+v", got.Connected)
	}
	if len(got.AVDs) != 1 || got.AVDs[0].Name != "Pixel_7_API_34" {
		t.Errorf("unexpected AVDs: %+v", got.AVDs)
	}
}

func TestClient_StartEmulator(t *testing.T) {
	client, _ := newTestAgent(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/emulator/start" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["avd"] != "Pixel_7_API_34" {
			t.Errorf("avd = %q, want Pixel_7_API_34", body["avd"])
		}
		json.NewEncoder(w).Encode(core.EmulatorHandle{
			AVD:    "Pixel_7_API_34",
			Serial: "emulator-5554",
			Port:   5554,
			Booted: true,
		})
	})

	got, err := client.StartEmulator(context.Background(), "Pixel_7_API_34")
	if err != nil {
		t.Fatalf("StartEmulator() error: %v", err)
	}
	if got.Serial != "emulator-5554" || !got.Booted {
		t.Errorf("unexpected handle: %+v", got)
	}
}

func TestClient_StartEmulator_EmptyName(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")

	_, err := client.StartEmulator(context.Background(), "  ")
	var agentErr *core.AgentError
	if !errors.As(err, &agentErr) {
		t.Fatalf("expected *core.AgentError, got %T", err)
	}
	if agentErr.Code != core.ErrMissingRequired.Code {
		t.Errorf("Code = %q, want %q", agentErr.Code, core.ErrMissingRequired.Code)
	}
}

func TestClient_StopEmulator(t *testing.T) {
	var gotSerial string
	client, _ := newTestAgent(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		gotSerial = body["serial"]
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("{}"))
	})

	if err := client.StopEmulator(context.Background(), "emulator-5554"); err != nil {
		t.Fatalf("StopEmulator() error: %v", err)
	}
	if gotSerial != "emulator-5554" {
		t.Errorf("serial = %q, want emulator-5554", gotSerial)
	}
}

func TestClient_RunCommand(t *testing.T) {
	client, _ := newTestAgent(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/terminal" {
			t.Errorf("path = %s, want /terminal", r.URL.Path)
		}
		json.NewEncoder(w).Encode(core.CommandOutput{Stdout: "List of devices attached\n", ExitCode: 0})
	})

	got, err := client.RunCommand(context.Background(), "adb devices")
	if err != nil {
		t.Fatalf("RunCommand() error: %v", err)
	}
	if got.ExitCode != 0 || got.Stdout == "" {
		t.Errorf("unexpected output: %+v", got)
	}
}

func TestClient_EndpointError(t *testing.T) {
	client, _ := newTestAgent(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"emulator already running"}`))
	})

	_, err := client.StartEmulator(context.Background(), "Pixel_7_API_34")
	var agentErr *core.AgentError
	if !errors.As(err, &agentErr) {
		t.Fatalf("expected *core.AgentError, got %T: %v", err, err)
	}
	if agentErr.Code != core.ErrEndpointFailed.Code {
		t.Errorf("Code = %q, want %q", agentErr.Code, core.ErrEndpointFailed.Code)
	}
	if agentErr.Message != "emulator already running" {
		t.Errorf("Message = %q, should carry the agent's error text", agentErr.Message)
	}
	if agentErr.Details["status"] != http.StatusConflict {
		t.Errorf("Details[status] = %v, want %d", agentErr.Details["status"], http.StatusConflict)
	}
}

func TestClient_BadResponse(t *testing.T) {
	client, _ := newTestAgent(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	_, err := client.Health(context.Background())
	var agentErr *core.AgentError
	if !errors.As(err, &agentErr) {
		t.Fatalf("expected *core.AgentError, got %T", err)
	}
	if agentErr.Code != core.ErrBadResponse.Code {
		t.Errorf("Code = %q, want %q", agentErr.Code, core.ErrBadResponse.Code)
	}
}

func TestClient_Unreachable(t *testing.T) {
	// Port 1 is never listening.
	client := NewClient("http://127.0.0.1:1", WithTimeout(500*time.Millisecond))

	_, err := client.Health(context.Background())
	var agentErr *core.AgentError
	if !errors.As(err, &agentErr) {
		t.Fatalf("expected *core.AgentError, got %T: %v", err, err)
	}
	if agentErr.Category != core.ErrCategoryConnection && agentErr.Category != core.ErrCategoryTimeout {
		t.Errorf("Category = %v, want connection or timeout", agentErr.Category)
	}
}

func TestClient_ContextCancel(t *testing.T) {
	client, _ := newTestAgent(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Health(ctx); err == nil {
		t.Fatal("expected error after context cancellation")
	}
}

func TestClosestName(t *testing.T) {
	avds := []string{"Pixel_7_API_34", "Pixel_Tablet_API_33", "Nexus_5_API_30"}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "near miss", in: "Pixel_7_API_33", want: "Pixel_7_API_34"},
		{name: "case insensitive", in: "pixel_7_api_34", want: "Pixel_7_API_34"},
		{name: "too far off", in: "iPhone_15", want: ""},
		{name: "empty input", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClosestName(tt.in, avds); got != tt.want {
				t.Errorf("ClosestName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClosestName_NoCandidates(t *testing.T) {
	if got := ClosestName("Pixel", nil); got != "" {
		t.Errorf("ClosestName with no candidates = %q, want empty", got)
	}
}

func TestAVDNames(t *testing.T) {
	avds := []core.AVDInfo{{Name: "A"}, {Name: "B"}}
	names := AVDNames(avds)
	if len(names) != 2 || names[0] != "A" || names[1] != "B" {
		t.Errorf("AVDNames() = %v", names)
	}
}
