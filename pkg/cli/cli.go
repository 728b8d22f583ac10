// Package cli provides the command-line interface for recorder-insight.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/recorderlab-dev/recorder-insight/pkg/config"
	"github.com/recorderlab-dev/recorder-insight/pkg/logger"
)

// Version is set at build time.
var Version = "dev"

// GlobalFlags are available to all commands.
var GlobalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "config",
		Usage:   "Path to workspace config.yaml",
		EnvVars: []string{"RECORDER_INSIGHT_CONFIG"},
	},
	&cli.StringFlag{
		Name:    "agent-url",
		Usage:   "Device agent URL",
		EnvVars: []string{"RECORDER_INSIGHT_AGENT_URL"},
	},
	&cli.BoolFlag{
		Name:    "verbose",
		Usage:   "Enable verbose logging",
		EnvVars: []string{"RECORDER_INSIGHT_VERBOSE"},
	},
	&cli.BoolFlag{
		Name:  "no-ansi",
		Usage: "Disable ANSI colors",
	},
}

// Execute runs the CLI.
func Execute() {
	app := NewApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// NewApp builds the CLI application. Split out of Execute for tests.
func NewApp() *cli.App {
	return &cli.App{
		Name:    "recorder-insight",
		Usage:   "Locator reliability and scenario analysis for recorded Android UI tests",
		Version: Version,
		Description: `Recorder Insight analyzes recorded UI automation scenarios:
locator stability, replay readiness, improvement suggestions, and
plain-language explanations.

Examples:
  recorder-insight analyze scenarios/
  recorder-insight analyze login.json --min-readiness 70
  recorder-insight explain login.json
  recorder-insight failure login.json 2 "element not found"
  recorder-insight prompt login.json --objective "Harden the flow"`,
		Flags: GlobalFlags,
		Before: func(c *cli.Context) error {
			if c.Bool("no-ansi") {
				colorsEnabled = false
			}
			initLog()
			return nil
		},
		After: func(c *cli.Context) error {
			logger.Close()
			return nil
		},
		Commands: []*cli.Command{
			analyzeCommand,
			explainCommand,
			failureCommand,
			organizeCommand,
			promptCommand,
			devicesCommand,
			doctorCommand,
			emulatorCommand,
			execCommand,
		},
	}
}

// initLog opens the diagnostic log under the home directory. Failure to
// open it is not fatal; the CLI just runs without a log.
func initLog() {
	logDir := filepath.Join(config.GetHome(), "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return
	}
	_ = logger.Init(filepath.Join(logDir, "insight.log"))
}

// loadConfig resolves the workspace config: the --config flag when
// given, otherwise config.yaml next to the current directory.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return &config.Config{}, nil
	}
	return config.LoadFromDir(cwd)
}
