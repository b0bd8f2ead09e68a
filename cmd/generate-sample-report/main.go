// Command generate-sample-report writes an HTML report of a small
// deterministic suite, useful for reviewing report template changes.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/wesleyorama2/cyclebench/internal/config"
	"github.com/wesleyorama2/cyclebench/internal/lifecycle/report"
	"github.com/wesleyorama2/cyclebench/internal/lifecycle/runner"
	"github.com/wesleyorama2/cyclebench/internal/lifecycle/simhost"
)

func main() {
	outputPath := "sample-report.html"
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}

	result, err := runSampleSuite(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := report.GenerateHTML(result, outputPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Sample report generated: %s\n", outputPath)
}

// runSampleSuite runs against a manual clock so the report is identical on
// every invocation apart from its wall-clock timestamps.
func runSampleSuite(ctx context.Context) (*runner.SuiteResult, error) {
	include := true
	suite := &config.SuiteConfig{
		Name:        "Card benchmarks",
		Description: "Sample suite rendered on the simulated host",
		Settings: config.Settings{
			Samples: 40,
			Timeout: config.Duration(5 * time.Second),
		},
		Runs: []*config.RunConfig{
			{
				Name:          "card-mount",
				Kind:          "mount",
				IncludeLayout: &include,
				Component: config.ComponentConfig{
					Name:  "static",
					Props: map[string]any{"mount": "2500us", "layout": "400us"},
				},
				Thresholds: []string{"mean < 3ms", "layout.p99 < 1ms"},
			},
			{
				Name: "card-update",
				Kind: "update",
				Component: config.ComponentConfig{
					Name:  "static",
					Props: map[string]any{"update": "1200us"},
				},
				Thresholds: []string{"mean < 1ms"},
			},
			{
				Name: "card-unmount",
				Kind: "unmount",
				Component: config.ComponentConfig{
					Name:  "static",
					Props: map[string]any{"unmount": "300us"},
				},
			},
		},
	}

	r := runner.New(runner.Options{
		Clock:    simhost.NewManualClock(),
		MinDelay: -1,
	})
	return r.Run(ctx, suite)
}
