package threshold

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/cyclebench/internal/lifecycle"
	"github.com/wesleyorama2/cyclebench/internal/lifecycle/stats"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		expr       string
		path       string
		op         string
		value      float64
		isDuration bool
		isBool     bool
		wantErr    bool
	}{
		{name: "duration", expr: "mean < 4ms", path: "mean", op: "<", value: 4, isDuration: true},
		{name: "microseconds", expr: "p99 <= 500us", path: "p99", op: "<=", value: 0.5, isDuration: true},
		{name: "nested path", expr: "layout.p95 < 2ms", path: "layout.p95", op: "<", value: 2, isDuration: true},
		{name: "no spaces", expr: "sampleCount>=10", path: "sampleCount", op: ">=", value: 10},
		{name: "plain number", expr: "stdDev < 0.75", path: "stdDev", op: "<", value: 0.75},
		{name: "boolean", expr: "timedOut == false", path: "timedOut", op: "==", isBool: true},
		{name: "boolean true", expr: "timedOut != true", path: "timedOut", op: "!=", value: 1, isBool: true},
		{name: "empty", expr: "  ", wantErr: true},
		{name: "no operator", expr: "mean 4ms", wantErr: true},
		{name: "bad operator", expr: "mean =< 4ms", wantErr: true},
		{name: "bad value", expr: "mean < fast", wantErr: true},
		{name: "ordered boolean", expr: "timedOut < true", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Parse(tt.expr)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.path, e.Path)
			assert.Equal(t, tt.op, e.Op)
			assert.InDelta(t, tt.value, e.Value, 1e-9)
			assert.Equal(t, tt.isDuration, e.IsDuration)
			assert.Equal(t, tt.isBool, e.IsBool)
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate([]string{"mean < 4ms", "timedOut == false"}))
	assert.NoError(t, Validate(nil))

	err := Validate([]string{"mean < 4ms", "bogus"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "threshold[1]")
}

func sampleResult() *lifecycle.Result {
	layout := stats.Summarize([]float64{0.5, 1, 1.5})
	return &lifecycle.Result{
		Kind:             lifecycle.KindUpdate,
		RunTime:          250 * time.Millisecond,
		RequestedSamples: 4,
		SampleCount:      4,
		Summary:          stats.Summarize([]float64{2, 3, 4, 5}),
		Quantiles:        stats.ComputeQuantiles([]float64{2, 3, 4, 5}),
		Layout:           &layout,
	}
}

func TestEvaluate(t *testing.T) {
	r := sampleResult()

	tests := []struct {
		expr   string
		passed bool
	}{
		{"mean < 4ms", true},
		{"mean < 3ms", false},
		{"mean == 3.5", true},
		{"max <= 5ms", true},
		{"min > 2ms", false},
		{"layout.mean < 2ms", true},
		{"layout.max < 1ms", false},
		{"quantiles.p50 >= 2ms", true},
		{"sampleCount == 4", true},
		{"sampleCount != 4", false},
		{"timedOut == false", true},
		{"runTime < 300ms", true},
		{"runTime > 1s", false},
	}

	exprs := make([]string, len(tests))
	for i, tt := range tests {
		exprs[i] = tt.expr
	}

	results, err := Evaluate(r, exprs)
	require.NoError(t, err)
	require.Len(t, results, len(tests))

	for i, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got := results[i]
			assert.Equal(t, tt.expr, got.Expression)
			assert.Equal(t, tt.passed, got.Passed, got.Message)
			if !tt.passed {
				assert.NotEmpty(t, got.Message)
			}
		})
	}
	assert.False(t, AllPassed(results))
}

func TestEvaluate_Failures(t *testing.T) {
	r := sampleResult()
	r.Layout = nil
	r.Summary.StdDev = stats.Value(math.NaN())

	results, err := Evaluate(r, []string{
		"layout.mean < 2ms",
		"stdDev < 1ms",
		"timedOut < 1",
		"sampleCount == true",
		"kind == 1",
		"nonsense",
	})
	require.NoError(t, err)
	require.Len(t, results, 6)

	assert.Contains(t, results[0].Message, "unknown metric")
	assert.Contains(t, results[1].Message, "no data")
	assert.Equal(t, "n/a", results[1].Value)
	assert.Contains(t, results[2].Message, "boolean")
	assert.Contains(t, results[3].Message, "number")
	assert.Contains(t, results[4].Message, "not a number")
	assert.Contains(t, results[5].Message, "failed to parse")

	for _, res := range results {
		assert.False(t, res.Passed, res.Expression)
	}
}

func TestEvaluate_Empty(t *testing.T) {
	results, err := Evaluate(sampleResult(), nil)
	require.NoError(t, err)
	assert.Nil(t, results)
	assert.True(t, AllPassed(results))
}

func TestCompareValues(t *testing.T) {
	tests := []struct {
		actual    float64
		op        string
		threshold float64
		want      bool
	}{
		{1, "<", 2, true},
		{2, "<", 2, false},
		{2, "<=", 2, true},
		{3, ">", 2, true},
		{2, ">=", 2, true},
		{2, "==", 2, true},
		{2, "!=", 2, false},
		{2, "~", 2, false},
	}

	for _, tt := range tests {
		if got := compareValues(tt.actual, tt.op, tt.threshold); got != tt.want {
			t.Errorf("compareValues(%v, %q, %v) = %v, want %v", tt.actual, tt.op, tt.threshold, got, tt.want)
		}
	}
}
