package output

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/cyclebench/internal/lifecycle"
	"github.com/wesleyorama2/cyclebench/internal/lifecycle/runner"
	"github.com/wesleyorama2/cyclebench/internal/lifecycle/stats"
	"github.com/wesleyorama2/cyclebench/internal/lifecycle/threshold"
)

func testSuiteResult() *runner.SuiteResult {
	layout := stats.Summarize([]float64{0.5, 0.5})
	return &runner.SuiteResult{
		Name:     "cards",
		Duration: 1200 * time.Millisecond,
		Runs: []*runner.RunResult{
			{
				Name:   "card-mount",
				Config: lifecycle.Config{Kind: lifecycle.KindMount, Samples: 2, Component: "static"},
				Result: &lifecycle.Result{
					Kind:             lifecycle.KindMount,
					RequestedSamples: 2,
					SampleCount:      2,
					Cycles:           4,
					RunTime:          12 * time.Millisecond,
					Samples: []lifecycle.Sample{
						{Cycle: 1, End: 2 * time.Millisecond, Elapsed: 2 * time.Millisecond, Layout: 500 * time.Microsecond},
						{Cycle: 3, End: 9 * time.Millisecond, Elapsed: 4 * time.Millisecond, Layout: 500 * time.Microsecond},
					},
					Summary:   stats.Summarize([]float64{2, 4}),
					Quantiles: stats.ComputeQuantiles([]float64{2, 4}),
					Layout:    &layout,
				},
				Thresholds: []threshold.Result{
					{Expression: "mean < 4ms", Passed: true, Value: "3.000ms"},
					{Expression: "max < 3ms", Passed: false, Value: "4.000ms", Message: "max is 4.000ms, threshold: < 3.000ms"},
				},
			},
			{
				Name:   "card-update",
				Config: lifecycle.Config{Kind: lifecycle.KindUpdate, Samples: 3, Component: "static"},
				Result: &lifecycle.Result{
					Kind:             lifecycle.KindUpdate,
					RequestedSamples: 3,
					TimedOut:         true,
					Summary:          stats.Summarize(nil),
					Quantiles:        stats.ComputeQuantiles(nil),
				},
			},
			{
				Name:  "broken",
				Error: "unknown benchmark kind: \"resize\"",
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{" JSON ", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"junit", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestWriteSuite_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSuite(&buf, testSuiteResult(), Options{Format: FormatText, NoColor: true}))

	out := buf.String()
	for _, want := range []string{
		"cards",
		"✓ mean < 4ms",
		"✗ max < 3ms",
		"(actual: 4.000ms)",
		"2/2",
		"3.00ms",
		"Layout Mean:",
		"0.500ms",
		"(timed out)",
		"n/a",
		"unknown benchmark kind",
		"FAILED",
		"0/3 runs passed in 1.2s",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "\x1b[", "no ANSI codes with NoColor")
	assert.NotContains(t, out, "Samples:\n", "samples only listed when verbose")
}

func TestWriteSuite_TextVerbose(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSuite(&buf, testSuiteResult(), Options{Format: FormatText, NoColor: true, Verbose: true}))

	out := buf.String()
	assert.Contains(t, out, "cycle 1")
	assert.Contains(t, out, "layout 0.500ms")
}

func TestWriteSuite_JSON(t *testing.T) {
	result := testSuiteResult()

	var buf bytes.Buffer
	require.NoError(t, WriteSuite(&buf, result, Options{Format: FormatJSON}))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "cards", decoded["name"])

	runs := decoded["runs"].([]any)
	require.Len(t, runs, 3)

	first := runs[0].(map[string]any)["result"].(map[string]any)
	assert.Equal(t, 3.0, first["mean"])
	assert.Nil(t, first["samples"], "samples dropped unless verbose")

	second := runs[1].(map[string]any)["result"].(map[string]any)
	assert.Nil(t, second["mean"], "NaN encodes as null")
	assert.Equal(t, true, second["timedOut"])

	// The caller's result is not modified
	assert.Len(t, result.Runs[0].Result.Samples, 2)
}

func TestWriteSuite_JSONVerboseKeepsSamples(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSuite(&buf, testSuiteResult(), Options{Format: FormatJSON, Verbose: true}))
	assert.Contains(t, buf.String(), `"samples": [`)
}

func TestWriteSuite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSuite(&buf, testSuiteResult(), Options{Format: FormatYAML}))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "cards", decoded["name"])
	assert.Contains(t, buf.String(), "mean: 3")
	assert.Contains(t, buf.String(), "name: card-update")
}

func TestWriteSuite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteSuite(&buf, testSuiteResult(), Options{Format: "xml"}))
}

func TestPrintComponents(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf, true, false).PrintComponents([]string{"fibonacci", "static"}, func(n string) string {
		return "about " + n
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "fibonacci  about fibonacci", lines[0])
	assert.Equal(t, "static     about static", lines[1])
}

func TestColorSchemes(t *testing.T) {
	for name, scheme := range map[string]*ColorScheme{
		"default": DefaultColorScheme(),
		"none":    NoColorScheme(),
		"forced":  ForcedColorScheme(),
	} {
		for i, c := range scheme.colors() {
			if c == nil {
				t.Errorf("%s scheme color %d is nil", name, i)
			}
		}
	}

	if got := NoColorScheme().Fail.Sprint("x"); got != "x" {
		t.Errorf("NoColorScheme output = %q", got)
	}
	if got := ForcedColorScheme().Fail.Sprint("x"); !strings.Contains(got, "\x1b[") {
		t.Errorf("ForcedColorScheme output = %q, want ANSI codes", got)
	}

	if SuccessIcon(true) != "✓" || ErrorIcon(true) != "✗" || WarningIcon(true) != "⚠" {
		t.Error("plain icons changed")
	}
}

func TestUseColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("FORCE_COLOR", "")
	t.Setenv("TERM", "xterm")

	var buf bytes.Buffer
	assert.False(t, UseColor(&buf, false), "buffers are not terminals")
	assert.False(t, UseColor(os.Stdout, true), "noColor wins")

	t.Setenv("FORCE_COLOR", "1")
	assert.True(t, UseColor(&buf, false))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, UseColor(&buf, false))
}

func TestFormatMillis(t *testing.T) {
	assert.Equal(t, "n/a", formatMillis(stats.Value(math.NaN())))
	assert.Equal(t, "0.125ms", formatMillis(0.125))
	assert.Equal(t, "3.50ms", formatMillis(3.5))
	assert.Equal(t, "1500ms", formatMillis(1500))
	assert.Equal(t, "2m0s", formatDuration(2*time.Minute))
	assert.Equal(t, "750µs", formatDuration(750*time.Microsecond))
}
