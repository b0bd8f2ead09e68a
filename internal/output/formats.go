package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/cyclebench/internal/lifecycle/runner"
)

// OutputFormat represents the available output formats
type OutputFormat string

const (
	// FormatText is the default human-readable text format
	FormatText OutputFormat = "text"
	// FormatJSON outputs in JSON format
	FormatJSON OutputFormat = "json"
	// FormatYAML outputs in YAML format
	FormatYAML OutputFormat = "yaml"
)

// ParseFormat parses a format name. The empty string means FormatText.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format: %q (want text, json or yaml)", s)
	}
}

// Options controls WriteSuite.
type Options struct {
	Format  OutputFormat
	NoColor bool

	// Verbose adds per-sample detail to text output and keeps samples in
	// structured output.
	Verbose bool
}

// WriteSuite writes result to w in the requested format.
func WriteSuite(w io.Writer, result *runner.SuiteResult, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		return writeJSON(w, structured(result, opts.Verbose))
	case FormatYAML:
		return writeYAML(w, structured(result, opts.Verbose))
	case FormatText, "":
		NewConsole(w, opts.NoColor, opts.Verbose).PrintSuite(result)
		return nil
	default:
		return fmt.Errorf("unknown output format: %q", opts.Format)
	}
}

// structured drops raw samples unless verbose, leaving the caller's result
// untouched.
func structured(result *runner.SuiteResult, verbose bool) *runner.SuiteResult {
	if verbose || result == nil {
		return result
	}

	out := *result
	out.Runs = make([]*runner.RunResult, len(result.Runs))
	for i, rr := range result.Runs {
		cp := *rr
		if rr.Result != nil {
			res := *rr.Result
			res.Samples = nil
			cp.Result = &res
		}
		out.Runs[i] = &cp
	}
	return &out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}
