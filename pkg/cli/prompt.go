package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/recorderlab-dev/recorder-insight/pkg/prompt"
)

var promptCommand = &cli.Command{
	Name:      "prompt",
	Usage:     "Build an AI assistant prompt from a scenario",
	ArgsUsage: "<scenario-file>",
	Description: `Render a structured prompt document for an external AI assistant.
The document is printed to stdout and can be piped or redirected.

Examples:
  recorder-insight prompt login.json
  recorder-insight prompt login.json --objective "Make locators resilient"
  recorder-insight prompt login.json --constraint "Keep runs under 60s" --no-device-context`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "objective",
			Usage: "What the assistant should achieve",
		},
		&cli.StringSliceFlag{
			Name:  "constraint",
			Usage: "Extra constraint for the assistant (repeatable)",
		},
		&cli.BoolFlag{
			Name:  "no-device-context",
			Usage: "Omit device details from the prompt",
		},
		&cli.BoolFlag{
			Name:  "no-safety-rules",
			Usage: "Omit the non-breaking constraint rules",
		},
		&cli.StringFlag{
			Name:  "device-name",
			Usage: "Device display name for the device context section",
		},
		&cli.StringFlag{
			Name:  "os-version",
			Usage: "Device OS version for the device context section",
		},
		&cli.StringFlag{
			Name:  "serial",
			Usage: "Device serial for the device context section",
		},
	},
	Action: runPrompt,
}

func runPrompt(c *cli.Context) error {
	sc, err := loadScenarioArg(c)
	if err != nil {
		return err
	}

	doc := prompt.Build(prompt.Input{
		Objective:  c.String("objective"),
		AppPackage: sc.AppPackage,
		Device: prompt.DeviceContext{
			Name:      c.String("device-name"),
			Platform:  "Android",
			OSVersion: c.String("os-version"),
			Serial:    c.String("serial"),
		},
		Steps:                sc.Steps,
		Constraints:          c.StringSlice("constraint"),
		IncludeDeviceContext: !c.Bool("no-device-context"),
		IncludeSafetyRules:   !c.Bool("no-safety-rules"),
	})

	fmt.Fprint(c.App.Writer, doc)
	return nil
}
