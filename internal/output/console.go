// Package output renders suite results for the terminal and as JSON or YAML.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/wesleyorama2/cyclebench/internal/lifecycle"
	"github.com/wesleyorama2/cyclebench/internal/lifecycle/runner"
	"github.com/wesleyorama2/cyclebench/internal/lifecycle/stats"
)

const ruleWidth = 56

// Console writes human-readable results.
type Console struct {
	w       io.Writer
	scheme  *ColorScheme
	noColor bool
	verbose bool
}

// NewConsole creates a console writer. Color is used only when noColor is
// false and UseColor approves w.
func NewConsole(w io.Writer, noColor, verbose bool) *Console {
	noColor = !UseColor(w, noColor)
	scheme := ForcedColorScheme()
	if noColor {
		scheme = NoColorScheme()
	}
	return &Console{w: w, scheme: scheme, noColor: noColor, verbose: verbose}
}

// PrintSuite prints every run followed by the suite verdict.
func (c *Console) PrintSuite(result *runner.SuiteResult) {
	if result == nil {
		return
	}

	rule := c.scheme.Muted.Sprint(strings.Repeat("━", ruleWidth))
	name := result.Name
	if name == "" {
		name = "Lifecycle benchmark"
	}

	c.writeln(rule)
	c.writeln(c.scheme.Title.Sprint(name))
	if result.Description != "" {
		c.writeln(c.scheme.Muted.Sprint(result.Description))
	}
	c.writeln(rule)

	for _, rr := range result.Runs {
		c.writeln("")
		c.PrintRun(rr)
	}

	passed := 0
	for _, rr := range result.Runs {
		if rr.Passed {
			passed++
		}
	}

	verdict := c.scheme.Pass.Sprint("PASSED")
	icon := SuccessIcon(c.noColor)
	if !result.Passed {
		verdict = c.scheme.Fail.Sprint("FAILED")
		icon = ErrorIcon(c.noColor)
	}

	c.writeln("")
	c.writeln(rule)
	c.writeln(fmt.Sprintf("%s %s  %d/%d runs passed in %s",
		icon, verdict, passed, len(result.Runs), formatDuration(result.Duration)))
}

// PrintRun prints one run.
func (c *Console) PrintRun(rr *runner.RunResult) {
	icon := SuccessIcon(c.noColor)
	if !rr.Passed {
		icon = ErrorIcon(c.noColor)
	}

	header := fmt.Sprintf("%s %s", icon, c.scheme.Highlight.Sprint(rr.Name))
	if rr.Config.Kind != "" {
		header += c.scheme.Muted.Sprintf("  %s", rr.Config.Kind)
	}
	if rr.Config.Component != "" {
		header += c.scheme.Muted.Sprintf(" of %s", rr.Config.Component)
	}
	c.writeln(header)

	if rr.Error != "" {
		c.field("Error", c.scheme.Fail.Sprint(rr.Error))
	}

	r := rr.Result
	if r == nil {
		return
	}

	samples := fmt.Sprintf("%d/%d", r.SampleCount, r.RequestedSamples)
	if r.TimedOut {
		samples += " " + c.scheme.Warn.Sprint("(timed out)")
	}
	c.field("Samples", fmt.Sprintf("%s  %s", samples,
		c.scheme.Muted.Sprintf("%d cycles in %s", r.Cycles, formatDuration(r.RunTime))))

	c.summary("", r.Summary)
	c.field("HDR", fmt.Sprintf("p50 %s  p90 %s  p99 %s",
		formatMillis(r.Quantiles.P50), formatMillis(r.Quantiles.P90), formatMillis(r.Quantiles.P99)))

	if r.Layout != nil {
		c.summary("Layout ", *r.Layout)
	}

	if len(rr.Thresholds) > 0 {
		c.writeln("  " + c.scheme.Label.Sprint("Thresholds:"))
		for _, t := range rr.Thresholds {
			status := SuccessIcon(c.noColor)
			if !t.Passed {
				status = ErrorIcon(c.noColor)
			}
			line := fmt.Sprintf("    %s %s", status, t.Expression)
			if t.Value != "" {
				line += c.scheme.Muted.Sprintf(" (actual: %s)", t.Value)
			}
			if !t.Passed && t.Message != "" {
				line += " " + c.scheme.Fail.Sprint(t.Message)
			}
			c.writeln(line)
		}
	}

	if c.verbose && len(r.Samples) > 0 {
		c.writeln("  " + c.scheme.Label.Sprint("Samples:"))
		for i, s := range r.Samples {
			line := fmt.Sprintf("    %3d  cycle %-4d %s", i, s.Cycle, formatMillis(stats.Value(lifecycle.Millis(s.Elapsed))))
			if s.HasLayout() {
				line += c.scheme.Muted.Sprintf("  layout %s", formatMillis(stats.Value(lifecycle.Millis(s.Layout))))
			}
			c.writeln(line)
		}
	}
}

// PrintComponents lists registered components.
func (c *Console) PrintComponents(names []string, describe func(string) string) {
	width := 0
	for _, n := range names {
		width = max(width, len(n))
	}
	for _, n := range names {
		c.writeln(fmt.Sprintf("%s  %s",
			c.scheme.Highlight.Sprintf("%-*s", width, n),
			describe(n)))
	}
}

func (c *Console) summary(prefix string, s stats.Summary) {
	c.field(prefix+"Mean", fmt.Sprintf("%s  median %s  stddev %s",
		c.scheme.Value.Sprint(formatMillis(s.Mean)), formatMillis(s.Median), formatMillis(s.StdDev)))
	c.field(prefix+"Range", fmt.Sprintf("%s .. %s", formatMillis(s.Min), formatMillis(s.Max)))
	c.field(prefix+"Bands", fmt.Sprintf("p70 %s  p95 %s  p99 %s",
		formatMillis(s.P70), formatMillis(s.P95), formatMillis(s.P99)))
}

func (c *Console) field(label, value string) {
	c.writeln(fmt.Sprintf("  %s %s", c.scheme.Label.Sprintf("%-13s", label+":"), value))
}

func (c *Console) writeln(s string) {
	fmt.Fprintln(c.w, s)
}

// formatMillis formats a statistic in milliseconds. NaN prints as "n/a".
func formatMillis(v stats.Value) string {
	if v.IsNaN() {
		return "n/a"
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

// formatDuration formats a duration in a human-readable format.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return d.Round(time.Second).String()
	}
}
