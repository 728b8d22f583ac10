package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetHome_EnvVar(t *testing.T) {
	ResetHome()
	t.Setenv("RECORDER_INSIGHT_HOME", "/custom/path")

	got := GetHome()
	if got != "/custom/path" {
		t.Errorf("GetHome() = %q, want %q", got, "/custom/path")
	}
}

func TestGetHome_FallbackToCwd(t *testing.T) {
	ResetHome()
	t.Setenv("RECORDER_INSIGHT_HOME", "")

	// Without the env var the root comes from the binary location or
	// the working directory; either way it is never empty.
	if got := GetHome(); got == "" {
		t.Error("GetHome() returned empty string")
	}
}

func TestGetHome_Cached(t *testing.T) {
	ResetHome()
	t.Setenv("RECORDER_INSIGHT_HOME", "/first")

	first := GetHome()

	// Change env — should NOT affect cached value
	t.Setenv("RECORDER_INSIGHT_HOME", "/second")
	second := GetHome()

	if first != second {
		t.Errorf("GetHome() not cached: first=%q, second=%q", first, second)
	}
}

func TestGetCacheDir(t *testing.T) {
	ResetHome()
	t.Setenv("RECORDER_INSIGHT_HOME", "/test/home")

	got := GetCacheDir()
	want := filepath.Join("/test/home", "cache")
	if got != want {
		t.Errorf("GetCacheDir() = %q, want %q", got, want)
	}
}

func TestGetReportsDir(t *testing.T) {
	ResetHome()
	t.Setenv("RECORDER_INSIGHT_HOME", "/test/home")

	got := GetReportsDir()
	want := filepath.Join("/test/home", "reports")
	if got != want {
		t.Errorf("GetReportsDir() = %q, want %q", got, want)
	}
}

func TestGetHome_EnvBeatsInstallRoot(t *testing.T) {
	// Even with a plausible <root>/bin layout on disk, the env var wins.
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, "bin"), 0755); err != nil {
		t.Fatal(err)
	}

	ResetHome()
	t.Setenv("RECORDER_INSIGHT_HOME", tmpDir)

	if got := GetHome(); got != tmpDir {
		t.Errorf("GetHome() = %q, want %q", got, tmpDir)
	}
}
