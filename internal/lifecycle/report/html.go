// Package report renders suite results as a self-contained HTML page.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"os"
	"strings"
	"time"

	"github.com/wesleyorama2/cyclebench/internal/lifecycle"
	"github.com/wesleyorama2/cyclebench/internal/lifecycle/runner"
	"github.com/wesleyorama2/cyclebench/internal/lifecycle/stats"
)

// Chart dimensions of the per-run sample plot, in SVG user units.
const (
	chartWidth  = 600
	chartHeight = 120
)

// ReportData contains all data needed to render the HTML report.
type ReportData struct {
	*runner.SuiteResult
	GeneratedAt time.Time
	Runs        []RunView
}

// RunView is one run prepared for the template.
type RunView struct {
	*runner.RunResult
	Anchor string

	// Points is an SVG polyline of the sample elapsed times.
	Points string

	// ChartMax is the elapsed time at the top of the chart, in ms.
	ChartMax float64
}

// GenerateHTML generates an HTML report from suite results and writes it to a file.
func GenerateHTML(result *runner.SuiteResult, outputPath string) error {
	html, err := GenerateHTMLString(result)
	if err != nil {
		return fmt.Errorf("failed to generate HTML: %w", err)
	}

	if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write HTML file: %w", err)
	}

	return nil
}

// GenerateHTMLString generates an HTML report from suite results and returns it as a string.
func GenerateHTMLString(result *runner.SuiteResult) (string, error) {
	if result == nil {
		return "", fmt.Errorf("result cannot be nil")
	}

	tmpl, err := template.New("report").Funcs(templateFuncs()).Parse(htmlTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	data := ReportData{
		SuiteResult: result,
		GeneratedAt: time.Now(),
		Runs:        make([]RunView, 0, len(result.Runs)),
	}
	for i, rr := range result.Runs {
		view := RunView{RunResult: rr, Anchor: fmt.Sprintf("run-%d", i+1)}
		if rr.Result != nil {
			view.Points, view.ChartMax = samplePoints(rr.Result.Samples)
		}
		data.Runs = append(data.Runs, view)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// samplePoints scales elapsed times into the chart box. The y axis starts
// at zero and tops out at the slowest sample.
func samplePoints(samples []lifecycle.Sample) (string, float64) {
	if len(samples) == 0 {
		return "", 0
	}

	top := 0.0
	for _, s := range samples {
		top = math.Max(top, lifecycle.Millis(s.Elapsed))
	}
	if top == 0 {
		top = 1
	}

	step := 0.0
	if len(samples) > 1 {
		step = float64(chartWidth) / float64(len(samples)-1)
	}

	var sb strings.Builder
	for i, s := range samples {
		x := step * float64(i)
		y := chartHeight - lifecycle.Millis(s.Elapsed)/top*chartHeight
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
	}
	return sb.String(), top
}

// templateFuncs returns the template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDuration": formatDuration,
		"formatMillis":   formatMillis,
		"formatSample":   formatSample,
		"statusClass":    statusClass,
		"hasLayout":      hasLayout,
	}
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	if secs == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dm %ds", mins, secs)
}

// formatMillis formats a statistic; NaN renders as a dash.
func formatMillis(v stats.Value) string {
	if v.IsNaN() {
		return "–"
	}
	ms := float64(v)
	switch {
	case ms < 1:
		return fmt.Sprintf("%.3fms", ms)
	case ms < 100:
		return fmt.Sprintf("%.2fms", ms)
	default:
		return fmt.Sprintf("%.0fms", ms)
	}
}

// formatSample formats a sample field, which may be unset.
func formatSample(d time.Duration) string {
	if d < 0 {
		return "–"
	}
	return formatMillis(stats.Value(lifecycle.Millis(d)))
}

func statusClass(passed bool) string {
	if passed {
		return "pass"
	}
	return "fail"
}

func hasLayout(r *lifecycle.Result) bool {
	return r != nil && r.Layout != nil
}
