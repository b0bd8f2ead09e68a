package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/cyclebench/internal/config"
	"github.com/wesleyorama2/cyclebench/internal/lifecycle/metrics"
	"github.com/wesleyorama2/cyclebench/internal/lifecycle/report"
	"github.com/wesleyorama2/cyclebench/internal/lifecycle/runner"
	"github.com/wesleyorama2/cyclebench/internal/output"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a benchmark suite",
		Long: `Run every benchmark of a suite file, or a single benchmark described by flags.

Config file mode:
  cyclebench run --config suite.yaml

Quick mode (single run):
  cyclebench run --kind mount --component static \
    --prop mount=2ms --prop layout=500us \
    --samples 100 --layout

Reports:
  cyclebench run --config suite.yaml --format json --output result.json \
    --html report.html --metrics-file cyclebench.prom

The command exits with a non-zero status when any run times out or misses
one of its thresholds.`,
		Args: cobra.NoArgs,
		RunE: runSuite,
	}

	cmd.Flags().StringP("config", "c", "", "Suite configuration file (YAML or JSON)")
	cmd.Flags().String("kind", "", "Lifecycle phase to measure: mount, update or unmount")
	cmd.Flags().Int("samples", 0, "Number of samples to collect")
	cmd.Flags().String("timeout", "", "Run timeout (e.g. 10s)")
	cmd.Flags().Bool("layout", false, "Also measure the forced layout flush")
	cmd.Flags().String("component", "static", "Component to benchmark")
	cmd.Flags().StringArray("prop", nil, "Component prop as key=value (repeatable)")
	cmd.Flags().StringArray("threshold", nil, "Threshold expression, e.g. \"mean < 4ms\" (repeatable)")

	cmd.Flags().StringP("format", "f", "", "Output format: text, json or yaml")
	cmd.Flags().StringP("output", "o", "", "Write the formatted result to a file instead of stdout")
	cmd.Flags().String("html", "", "Write an HTML report to this file")
	cmd.Flags().String("metrics-file", "", "Write Prometheus metrics in text format to this file")

	return cmd
}

func runSuite(cmd *cobra.Command, _ []string) error {
	verbose, noColor := globalFlags(cmd)
	configFile, _ := cmd.Flags().GetString("config")
	formatName, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	htmlPath, _ := cmd.Flags().GetString("html")
	metricsPath, _ := cmd.Flags().GetString("metrics-file")

	var suite *config.SuiteConfig
	var err error

	if configFile != "" {
		suite, err = config.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	} else if cmd.Flags().Changed("kind") {
		suite, err = buildSuiteFromFlags(cmd)
		if err != nil {
			return fmt.Errorf("failed to build config: %w", err)
		}
	} else {
		return fmt.Errorf("either --config or --kind is required")
	}

	if formatName == "" {
		formatName = suite.Settings.Format
	}
	format, err := output.ParseFormat(formatName)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), verbose)

	opts := runner.Options{Logger: logger}
	var collector *metrics.Collector
	if metricsPath != "" {
		collector = metrics.NewCollector(nil)
		opts.Observer = collector
	}

	ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), os.Interrupt)
	defer stop()

	result, runErr := runner.New(opts).Run(ctx, suite)
	if result == nil {
		return runErr
	}
	if runErr != nil {
		logger.Warn("Suite interrupted", "error", runErr)
	}

	out := cmd.OutOrStdout()
	if outputPath != "" {
		f, err := createFile(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
		// Colors never go to files
		noColor = true
	}

	if err := output.WriteSuite(out, result, output.Options{
		Format:  format,
		NoColor: noColor,
		Verbose: verbose,
	}); err != nil {
		return err
	}

	if htmlPath != "" {
		if err := ensureDir(htmlPath); err != nil {
			return err
		}
		if err := report.GenerateHTML(result, htmlPath); err != nil {
			return fmt.Errorf("failed to generate HTML report: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Report: %s\n", htmlPath)
	}

	if collector != nil {
		if err := ensureDir(metricsPath); err != nil {
			return err
		}
		if err := collector.WriteTextfile(metricsPath); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	if runErr != nil {
		return runErr
	}
	if !result.Passed {
		return errSuiteFailed
	}
	return nil
}

// buildSuiteFromFlags builds a one-run suite from the quick mode flags.
func buildSuiteFromFlags(cmd *cobra.Command) (*config.SuiteConfig, error) {
	kind, _ := cmd.Flags().GetString("kind")
	samples, _ := cmd.Flags().GetInt("samples")
	timeout, _ := cmd.Flags().GetString("timeout")
	component, _ := cmd.Flags().GetString("component")
	props, _ := cmd.Flags().GetStringArray("prop")
	thresholds, _ := cmd.Flags().GetStringArray("threshold")

	run := &config.RunConfig{
		Kind:       kind,
		Samples:    samples,
		Component:  config.ComponentConfig{Name: component},
		Thresholds: thresholds,
	}

	if cmd.Flags().Changed("layout") {
		layout, _ := cmd.Flags().GetBool("layout")
		run.IncludeLayout = &layout
	}

	if timeout != "" {
		d, err := config.ParseDurationString(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid --timeout: %w", err)
		}
		run.Timeout = config.Duration(d)
	}

	parsed, err := parseProps(props)
	if err != nil {
		return nil, err
	}
	run.Component.Props = parsed

	return &config.SuiteConfig{
		Name: "CLI benchmark",
		Runs: []*config.RunConfig{run},
	}, nil
}

// parseProps parses key=value pairs. Values are decoded as YAML scalars, so
// "20" is an integer, "true" a boolean and "2ms" a string.
func parseProps(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	props := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --prop %q: want key=value", pair)
		}

		var value any
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil || value == nil {
			value = raw
		}
		props[key] = value
	}
	return props, nil
}

func createFile(path string) (*os.File, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// contextOrBackground guards commands executed without a context.
func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
