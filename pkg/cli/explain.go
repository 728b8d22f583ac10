package cli

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/recorderlab-dev/recorder-insight/pkg/explain"
	"github.com/recorderlab-dev/recorder-insight/pkg/scenario"
	"github.com/recorderlab-dev/recorder-insight/pkg/suggest"
)

var explainCommand = &cli.Command{
	Name:      "explain",
	Usage:     "Narrate a scenario in plain language",
	ArgsUsage: "<scenario-file>",
	Description: `Print a step-by-step narration of the scenario with risky steps
called out and pacing recommendations.

Examples:
  recorder-insight explain login.json
  recorder-insight explain login.json --suggestions`,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "suggestions",
			Usage: "Also print improvement suggestions",
		},
	},
	Action: runExplain,
}

var failureCommand = &cli.Command{
	Name:      "failure",
	Usage:     "Classify a replay failure message",
	ArgsUsage: "<scenario-file> <step-index> <message>",
	Description: `Classify a replay failure and print remediation steps. The step
index selects the failed step so locator alternatives can be derived.

Examples:
  recorder-insight failure login.json 2 "element not found"
  recorder-insight failure login.json 0 "session timed out"`,
	Action: runFailure,
}

var organizeCommand = &cli.Command{
	Name:      "organize",
	Usage:     "Suggest a name, tags, and suites for a scenario",
	ArgsUsage: "<scenario-file>",
	Action:    runOrganize,
}

func runExplain(c *cli.Context) error {
	sc, err := loadScenarioArg(c)
	if err != nil {
		return err
	}

	w := printerTo(c.App.Writer)
	result := explain.Script(sc.Steps)

	w("%s%s%s\n", color(colorBold), result.Summary, color(colorReset))
	for _, line := range result.Lines {
		w("  %s\n", line)
	}

	if len(result.Risks) > 0 {
		header(w, "Risky steps")
		for _, risk := range result.Risks {
			w("  %s!%s step %d: %s\n", color(colorYellow), color(colorReset), risk.StepIndex+1, risk.Reason)
		}
	}

	if len(result.Recommendations) > 0 {
		header(w, "Recommendations")
		for _, rec := range result.Recommendations {
			w("  - %s\n", rec)
		}
	}

	if c.Bool("suggestions") {
		suggestions := suggest.NewEngine().Build(sc.Steps)
		if len(suggestions) > 0 {
			header(w, "Suggestions")
			for _, s := range suggestions {
				w("  %s[%s]%s %s", color(severityColor(s.Severity)), s.Kind, color(colorReset), s.Title)
				if s.Detail != "" {
					w(" %s%s%s", color(colorGray), s.Detail, color(colorReset))
				}
				w("\n")
			}
		}
	}

	return nil
}

func runFailure(c *cli.Context) error {
	if c.NArg() < 3 {
		return cli.Exit("failure needs <scenario-file> <step-index> <message>", 2)
	}

	sc, err := loadScenarioArg(c)
	if err != nil {
		return err
	}

	stepIndex, err := strconv.Atoi(c.Args().Get(1))
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid step index %q", c.Args().Get(1)), 2)
	}
	var failed *scenario.Action
	if stepIndex >= 0 && stepIndex < len(sc.Steps) {
		failed = &sc.Steps[stepIndex]
	}

	result := explain.ReplayFailure(c.Args().Get(2), failed)

	w := printerTo(c.App.Writer)
	w("%sCategory:%s %s (confidence %.0f%%)\n", color(colorBold), color(colorReset), result.Category, result.Confidence*100)
	w("%s\n", result.Summary)
	header(w, "Remediation")
	for i, step := range result.Remediation {
		w("  %d. %s\n", i+1, step)
	}
	return nil
}

func runOrganize(c *cli.Context) error {
	sc, err := loadScenarioArg(c)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("load config: %v", err), 2)
	}

	org := explain.SuggestOrganizationWithPatterns(sc.Steps, sc.AppPackage, sc.Name, cfg.Patterns())

	w := printerTo(c.App.Writer)
	w("%sName:%s   %s\n", color(colorBold), color(colorReset), org.Name)
	w("%sFlow:%s   %s\n", color(colorBold), color(colorReset), org.FlowLabel)
	w("%sTags:%s   ", color(colorBold), color(colorReset))
	for i, tag := range org.Tags {
		if i > 0 {
			w(", ")
		}
		w("%s", tag)
	}
	w("\n%sSuites:%s ", color(colorBold), color(colorReset))
	for i, suite := range org.Suites {
		if i > 0 {
			w(", ")
		}
		w("%s", suite)
	}
	w("\n")
	return nil
}

// loadScenarioArg parses the first positional argument as a scenario
// file.
func loadScenarioArg(c *cli.Context) (*scenario.Scenario, error) {
	if c.NArg() == 0 {
		return nil, cli.Exit("missing scenario file argument", 2)
	}
	sc, err := scenario.ParseFile(c.Args().First())
	if err != nil {
		return nil, cli.Exit(err.Error(), 2)
	}
	return sc, nil
}
