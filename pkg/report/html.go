package report

import (
	"bytes"
	"fmt"
	"html/template"
	"os"

	"github.com/recorderlab-dev/recorder-insight/pkg/core"
	"github.com/recorderlab-dev/recorder-insight/pkg/runner"
)

// htmlData is the root object handed to the template.
type htmlData struct {
	Title       string
	GeneratedAt string
	RunID       string
	Status      string
	StatusClass string
	Summary     Summary
	PassRate    float64
	Scenarios   []scenarioHTMLData
}

// scenarioHTMLData wraps one result with presentation fields.
type scenarioHTMLData struct {
	runner.ScenarioResult
	StatusClass    string
	ReadinessClass string
	HighCount      int
	MediumCount    int
	LowCount       int
}

// WriteHTML renders the report as a single self-contained HTML file.
func WriteHTML(outputPath string, r *Report) error {
	html, err := renderHTML(r)
	if err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return os.WriteFile(outputPath, []byte(html), 0o644)
}

func renderHTML(r *Report) (string, error) {
	data := buildHTMLData(r)
	tmpl, err := template.New("report").Parse(htmlTemplate)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildHTMLData(r *Report) htmlData {
	data := htmlData{
		Title:       "Scenario Analysis Report",
		GeneratedAt: r.GeneratedAt.Format("2006-01-02 15:04:05 MST"),
		RunID:       r.RunID,
		Status:      r.Status,
		StatusClass: statusClass(r.Status),
		Summary:     r.Summary,
	}
	if r.Summary.Total > 0 {
		data.PassRate = float64(r.Summary.Passed) / float64(r.Summary.Total) * 100
	}

	for _, sr := range r.Scenarios {
		entry := scenarioHTMLData{
			ScenarioResult: sr,
			StatusClass:    statusClass(sr.Status),
			ReadinessClass: readinessClass(sr.Readiness),
		}
		for _, issue := range sr.Issues {
			switch issue.Severity {
			case core.SeverityHigh:
				entry.HighCount++
			case core.SeverityMedium:
				entry.MediumCount++
			case core.SeverityLow:
				entry.LowCount++
			}
		}
		data.Scenarios = append(data.Scenarios, entry)
	}
	return data
}

func statusClass(status string) string {
	switch status {
	case runner.StatusPassed:
		return "passed"
	case runner.StatusFailed:
		return "failed"
	case runner.StatusBroken:
		return "broken"
	}
	return "unknown"
}

// readinessClass buckets the score for coloring.
func readinessClass(score int) string {
	switch {
	case score >= 80:
		return "good"
	case score >= 60:
		return "fair"
	default:
		return "poor"
	}
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 0; background: #f5f6f8; color: #1f2430; }
  .wrap { max-width: 1080px; margin: 0 auto; padding: 24px; }
  header { display: flex; justify-content: space-between; align-items: baseline; margin-bottom: 16px; }
  h1 { font-size: 22px; margin: 0; }
  .meta { color: #6b7280; font-size: 13px; }
  .cards { display: flex; gap: 12px; margin-bottom: 24px; }
  .card { background: #fff; border-radius: 8px; padding: 14px 18px; box-shadow: 0 1px 2px rgba(0,0,0,.08); flex: 1; }
  .card .num { font-size: 26px; font-weight: 600; }
  .card .label { color: #6b7280; font-size: 12px; text-transform: uppercase; letter-spacing: .04em; }
  .badge { display: inline-block; padding: 2px 10px; border-radius: 999px; font-size: 12px; font-weight: 600; }
  .badge.passed { background: #dcfce7; color: #166534; }
  .badge.failed { background: #fee2e2; color: #991b1b; }
  .badge.broken { background: #fef3c7; color: #92400e; }
  .badge.unknown { background: #e5e7eb; color: #374151; }
  table { width: 100%; border-collapse: collapse; background: #fff; border-radius: 8px; overflow: hidden; box-shadow: 0 1px 2px rgba(0,0,0,.08); }
  th, td { text-align: left; padding: 10px 14px; border-bottom: 1px solid #eef0f3; font-size: 14px; }
  th { background: #f9fafb; color: #6b7280; font-size: 12px; text-transform: uppercase; letter-spacing: .04em; }
  .score { font-weight: 600; }
  .score.good { color: #166534; }
  .score.fair { color: #92400e; }
  .score.poor { color: #991b1b; }
  .issues { font-size: 13px; color: #6b7280; }
  .detail { background: #fff; border-radius: 8px; margin-top: 16px; padding: 16px 18px; box-shadow: 0 1px 2px rgba(0,0,0,.08); }
  .detail h3 { margin: 0 0 8px; font-size: 15px; }
  .detail ul { margin: 6px 0; padding-left: 20px; font-size: 13px; }
  .detail li { margin: 3px 0; }
  .loaderr { color: #991b1b; font-size: 13px; }
</style>
</head>
<body>
<div class="wrap">
  <header>
    <h1>{{.Title}} <span class="badge {{.StatusClass}}">{{.Status}}</span></h1>
    <div class="meta">Run {{.RunID}} &middot; {{.GeneratedAt}}</div>
  </header>

  <div class="cards">
    <div class="card"><div class="num">{{.Summary.Total}}</div><div class="label">Scenarios</div></div>
    <div class="card"><div class="num">{{.Summary.Passed}}</div><div class="label">Passed</div></div>
    <div class="card"><div class="num">{{.Summary.Failed}}</div><div class="label">Failed</div></div>
    <div class="card"><div class="num">{{.Summary.Broken}}</div><div class="label">Broken</div></div>
    <div class="card"><div class="num">{{printf "%.0f%%" .PassRate}}</div><div class="label">Pass rate</div></div>
  </div>

  <table>
    <thead>
      <tr><th>Scenario</th><th>Status</th><th>Readiness</th><th>Steps</th><th>Flow</th><th>Issues</th></tr>
    </thead>
    <tbody>
      {{range .Scenarios}}
      <tr>
        <td>{{if .Name}}{{.Name}}{{else}}{{.Path}}{{end}}</td>
        <td><span class="badge {{.StatusClass}}">{{.Status}}</span></td>
        <td><span class="score {{.ReadinessClass}}">{{.Readiness}}</span></td>
        <td>{{.StepCount}}</td>
        <td>{{.FlowLabel}}</td>
        <td class="issues">{{.HighCount}} high / {{.MediumCount}} medium / {{.LowCount}} low</td>
      </tr>
      {{end}}
    </tbody>
  </table>

  {{range .Scenarios}}
  <div class="detail">
    <h3>{{if .Name}}{{.Name}}{{else}}{{.Path}}{{end}}</h3>
    {{if .LoadError}}<div class="loaderr">{{.LoadError}}</div>{{end}}
    {{if .Issues}}
    <ul>
      {{range .Issues}}<li><strong>{{.Severity}}</strong>: {{.Title}}{{if .Detail}} &mdash; {{.Detail}}{{end}}</li>{{end}}
    </ul>
    {{end}}
    {{if .Suggestions}}
    <ul>
      {{range .Suggestions}}<li>{{.Title}}{{if .Detail}} &mdash; {{.Detail}}{{end}}</li>{{end}}
    </ul>
    {{end}}
  </div>
  {{end}}
</div>
</body>
</html>
`
