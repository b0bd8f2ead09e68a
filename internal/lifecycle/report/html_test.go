package report

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/wesleyorama2/cyclebench/internal/lifecycle"
	"github.com/wesleyorama2/cyclebench/internal/lifecycle/runner"
	"github.com/wesleyorama2/cyclebench/internal/lifecycle/stats"
	"github.com/wesleyorama2/cyclebench/internal/lifecycle/threshold"
)

func createTestResult() *runner.SuiteResult {
	samples := []lifecycle.Sample{
		{Cycle: 1, End: 2 * time.Millisecond, Elapsed: 2 * time.Millisecond, Layout: time.Millisecond},
		{Cycle: 3, End: 7 * time.Millisecond, Elapsed: 3 * time.Millisecond, Layout: time.Millisecond},
	}
	layout := stats.Summarize([]float64{1, 1})

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &runner.SuiteResult{
		Name:        "Card <benchmarks>",
		Description: "mount and update",
		StartTime:   start,
		EndTime:     start.Add(1500 * time.Millisecond),
		Duration:    1500 * time.Millisecond,
		Runs: []*runner.RunResult{
			{
				Name:   "card-mount",
				Config: lifecycle.Config{Kind: lifecycle.KindMount, Samples: 2, Component: "static"},
				Result: &lifecycle.Result{
					RunID:            "4f7c",
					Kind:             lifecycle.KindMount,
					RequestedSamples: 2,
					SampleCount:      2,
					Cycles:           4,
					Samples:          samples,
					Summary:          stats.Summarize([]float64{2, 3}),
					Quantiles:        stats.ComputeQuantiles([]float64{2, 3}),
					Layout:           &layout,
				},
				Thresholds: []threshold.Result{
					{Expression: "mean < 1ms", Passed: false, Value: "2.500ms", Message: "mean is 2.500ms, threshold: < 1.000ms"},
				},
			},
			{
				Name:   "broken",
				Config: lifecycle.Config{Kind: lifecycle.KindUpdate},
				Error:  "unknown benchmark kind",
			},
		},
	}
}

func TestGenerateHTMLString(t *testing.T) {
	html, err := GenerateHTMLString(createTestResult())
	if err != nil {
		t.Fatalf("GenerateHTMLString() error: %v", err)
	}

	checks := []string{
		"<!DOCTYPE html>",
		"Card &lt;benchmarks&gt;",
		"card-mount",
		"2.50ms",
		"Layout (ms)",
		"mean &lt; 1ms",
		`id="run-1"`,
		`href="#run-2"`,
		"unknown benchmark kind",
		"<polyline points=",
		"2 samples",
		"failed",
	}
	for _, want := range checks {
		if !strings.Contains(html, want) {
			t.Errorf("report does not contain %q", want)
		}
	}

	if strings.Contains(html, "Card <benchmarks>") {
		t.Error("suite name was not escaped")
	}
}

func TestGenerateHTMLString_NilResult(t *testing.T) {
	if _, err := GenerateHTMLString(nil); err == nil {
		t.Error("expected error for nil result")
	}
}

func TestGenerateHTML_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	if err := GenerateHTML(createTestResult(), path); err != nil {
		t.Fatalf("GenerateHTML() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "card-mount") {
		t.Error("written report is missing run name")
	}

	if err := GenerateHTML(createTestResult(), filepath.Join(t.TempDir(), "missing", "report.html")); err == nil {
		t.Error("expected error for unwritable path")
	}
}

func TestSamplePoints(t *testing.T) {
	points, top := samplePoints([]lifecycle.Sample{
		{Elapsed: 0},
		{Elapsed: 2 * time.Millisecond},
		{Elapsed: 4 * time.Millisecond},
	})
	if top != 4 {
		t.Errorf("top = %v, want 4", top)
	}
	if points != "0.0,120.0 300.0,60.0 600.0,0.0" {
		t.Errorf("points = %q", points)
	}

	if points, _ := samplePoints(nil); points != "" {
		t.Errorf("empty points = %q", points)
	}

	if _, top := samplePoints([]lifecycle.Sample{{Elapsed: 0}}); top != 1 {
		t.Errorf("all-zero top = %v, want 1", top)
	}
}

func TestFormatters(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{formatMillis(stats.Value(math.NaN())), "–"},
		{formatMillis(0.25), "0.250ms"},
		{formatMillis(12.346), "12.35ms"},
		{formatMillis(250), "250ms"},
		{formatSample(lifecycle.Unset), "–"},
		{formatSample(1500 * time.Microsecond), "1.50ms"},
		{formatDuration(500 * time.Microsecond), "500µs"},
		{formatDuration(15 * time.Millisecond), "15ms"},
		{formatDuration(2500 * time.Millisecond), "2.5s"},
		{formatDuration(2 * time.Minute), "2m"},
		{formatDuration(90 * time.Second), "1m 30s"},
		{statusClass(true), "pass"},
		{statusClass(false), "fail"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}
