package cli

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/recorderlab-dev/recorder-insight/pkg/config"
	"github.com/recorderlab-dev/recorder-insight/pkg/core"
	"github.com/recorderlab-dev/recorder-insight/pkg/logger"
	"github.com/recorderlab-dev/recorder-insight/pkg/report"
	"github.com/recorderlab-dev/recorder-insight/pkg/runner"
)

var analyzeCommand = &cli.Command{
	Name:      "analyze",
	Usage:     "Analyze recorded scenarios for replay risks",
	ArgsUsage: "<scenario-file-or-folder>...",
	Description: `Analyze one or more recorded scenario files (.json, .yaml, .yml).
Directories are scanned recursively.

Examples:
  recorder-insight analyze login.json
  recorder-insight analyze scenarios/ --min-readiness 70
  recorder-insight analyze scenarios/ --output ./reports`,
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "min-readiness",
			Usage: "Fail (exit 1) when any scenario scores below this (0-100)",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "Analysis worker pool size",
			Value: runner.DefaultWorkers,
		},
		&cli.StringFlag{
			Name:  "output",
			Usage: "Report output directory (default: <home>/reports)",
		},
		&cli.BoolFlag{
			Name:  "no-report",
			Usage: "Skip writing report.json/report.html",
		},
		&cli.BoolFlag{
			Name:  "issues",
			Usage: "Print every issue, not just the summary table",
		},
	},
	Action: runAnalyze,
}

func runAnalyze(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("analyze needs at least one scenario file or folder", 2)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("load config: %v", err), 2)
	}
	analyzer, err := cfg.BuildAnalyzer()
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	minReadiness := c.Int("min-readiness")
	if minReadiness == 0 {
		minReadiness = cfg.Analyzer.MinReadiness
	}

	files, err := runner.CollectFiles(c.Args().Slice())
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if len(files) == 0 {
		return cli.Exit("no scenario files found", 2)
	}

	logger.Info("analyzing %d scenario file(s), gate=%d", len(files), minReadiness)

	result := runner.New(runner.Config{
		MinReadiness: minReadiness,
		Workers:      c.Int("workers"),
		Analyzer:     analyzer,
		Patterns:     cfg.Patterns(),
	}).Run(files)

	printAnalyzeTable(c, result)
	if c.Bool("issues") {
		printIssueDetails(c, result)
	}

	if !c.Bool("no-report") {
		outputDir := c.String("output")
		if outputDir == "" {
			outputDir = cfg.Report.OutputDir
		}
		if outputDir == "" {
			outputDir = config.GetReportsDir()
		}
		doc := report.Build(result, report.Config{
			ToolVersion:  Version,
			MinReadiness: minReadiness,
		})
		if err := report.Write(outputDir, doc); err != nil {
			return cli.Exit(fmt.Sprintf("write report: %v", err), 2)
		}
		fmt.Fprintf(c.App.Writer, "\nReport written to %s\n", outputDir)
	}

	if result.Status == runner.StatusFailed {
		return cli.Exit("", 1)
	}
	return nil
}

func printAnalyzeTable(c *cli.Context, result *runner.RunResult) {
	table := tablewriter.NewWriter(c.App.Writer)
	table.SetHeader([]string{"Scenario", "Status", "Readiness", "Steps", "Flow", "High", "Med", "Low"})
	table.SetBorder(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})

	for _, sr := range result.Scenarios {
		name := sr.Name
		if name == "" {
			name = sr.Path
		}
		high, med, low := countBySeverity(sr)
		row := []string{
			name, sr.Status, strconv.Itoa(sr.Readiness), strconv.Itoa(sr.StepCount),
			sr.FlowLabel, strconv.Itoa(high), strconv.Itoa(med), strconv.Itoa(low),
		}
		switch sr.Status {
		case runner.StatusFailed:
			table.Rich(row, rowColors(len(row), tablewriter.FgRedColor))
		case runner.StatusBroken:
			table.Rich(row, rowColors(len(row), tablewriter.FgYellowColor))
		default:
			table.Append(row)
		}
	}
	table.SetFooter([]string{
		"total", result.Status, "", strconv.Itoa(result.Total) + " scenario(s)", "",
		strconv.Itoa(result.IssueCount(core.SeverityHigh)),
		strconv.Itoa(result.IssueCount(core.SeverityMedium)),
		strconv.Itoa(result.IssueCount(core.SeverityLow)),
	})
	table.Render()
}

func printIssueDetails(c *cli.Context, result *runner.RunResult) {
	w := printerTo(c.App.Writer)
	for _, sr := range result.Scenarios {
		if len(sr.Issues) == 0 && sr.LoadError == "" {
			continue
		}
		name := sr.Name
		if name == "" {
			name = sr.Path
		}
		header(w, name)
		if sr.LoadError != "" {
			w("  %s✗ %s%s\n", color(colorRed), sr.LoadError, color(colorReset))
			continue
		}
		for _, issue := range sr.Issues {
			w("  %s[%s]%s %s", color(severityColor(issue.Severity)), issue.Severity, color(colorReset), issue.Title)
			if issue.Detail != "" {
				w(" %s%s%s", color(colorGray), issue.Detail, color(colorReset))
			}
			w("\n")
		}
	}
}

func countBySeverity(sr runner.ScenarioResult) (high, med, low int) {
	for _, issue := range sr.Issues {
		switch issue.Severity {
		case core.SeverityHigh:
			high++
		case core.SeverityMedium:
			med++
		case core.SeverityLow:
			low++
		}
	}
	return
}

func rowColors(n int, fg int) []tablewriter.Colors {
	colors := make([]tablewriter.Colors, n)
	for i := range colors {
		colors[i] = tablewriter.Colors{tablewriter.Normal, fg}
	}
	return colors
}
