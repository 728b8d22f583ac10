package config

import (
	"os"
	"path/filepath"
	"sync"
)

// envHome points recorder-insight at an explicit workspace root.
const envHome = "RECORDER_INSIGHT_HOME"

var home struct {
	once sync.Once
	dir  string
}

// GetHome returns the workspace root that holds logs/, cache/, and
// reports/. $RECORDER_INSIGHT_HOME wins when set; an installed binary
// at <root>/bin/recorder-insight implies <root>; otherwise the current
// directory is the workspace. The result is cached for the process.
func GetHome() string {
	home.once.Do(func() {
		home.dir = workspaceRoot()
	})
	return home.dir
}

// GetCacheDir returns <home>/cache.
func GetCacheDir() string {
	return filepath.Join(GetHome(), "cache")
}

// GetReportsDir returns <home>/reports, the default report output.
func GetReportsDir() string {
	return filepath.Join(GetHome(), "reports")
}

func workspaceRoot() string {
	if dir := os.Getenv(envHome); dir != "" {
		return dir
	}
	if root, ok := installRoot(); ok {
		return root
	}
	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}
	return "."
}

// installRoot reports the parent of the bin/ directory the running
// binary lives in, when it lives in one. Symlinked binaries resolve to
// their install location first.
func installRoot() (string, bool) {
	execPath, err := os.Executable()
	if err != nil {
		return "", false
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}
	binDir := filepath.Dir(execPath)
	if filepath.Base(binDir) != "bin" {
		return "", false
	}
	return filepath.Dir(binDir), true
}

// ResetHome clears the cached workspace root so tests can change the
// environment between calls.
func ResetHome() {
	home.once = sync.Once{}
	home.dir = ""
}
