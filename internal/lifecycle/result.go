package lifecycle

import (
	"time"

	"github.com/wesleyorama2/cyclebench/internal/lifecycle/stats"
)

// Unset marks a Sample field that has not been measured yet. Closed samples
// never carry negative durations, so a negative value is unambiguous.
const Unset time.Duration = -1

// Sample is one timing window around a single measured render.
type Sample struct {
	// Cycle is the cycle on which the sample was opened.
	Cycle int `json:"cycle" yaml:"cycle"`

	// Start and End are host clock readings.
	Start time.Duration `json:"start" yaml:"start"`
	End   time.Duration `json:"end" yaml:"end"`

	// Elapsed is End - Start.
	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`

	// Layout is the cost of the forced layout flush, or Unset when layout
	// was not measured.
	Layout time.Duration `json:"layout" yaml:"layout"`
}

func openSample(cycle int, start time.Duration) Sample {
	return Sample{Cycle: cycle, Start: start, End: Unset, Elapsed: Unset, Layout: Unset}
}

// Closed reports whether the sample's end has been recorded.
func (s Sample) Closed() bool {
	return s.End >= 0
}

// HasLayout reports whether a layout cost was recorded.
func (s Sample) HasLayout() bool {
	return s.Layout >= 0
}

// Result is the outcome of one run, delivered exactly once to the
// completion handler.
type Result struct {
	// RunID uniquely identifies the run.
	RunID string `json:"runId" yaml:"runId"`

	Kind      Kind   `json:"kind" yaml:"kind"`
	Component string `json:"component,omitempty" yaml:"component,omitempty"`

	// StartTime and EndTime are host clock readings; RunTime is their gap.
	StartTime time.Duration `json:"startTime" yaml:"startTime"`
	EndTime   time.Duration `json:"endTime" yaml:"endTime"`
	RunTime   time.Duration `json:"runTime" yaml:"runTime"`

	// RequestedSamples is Config.Samples.
	RequestedSamples int `json:"requestedSamples" yaml:"requestedSamples"`

	// SampleCount is the number of closed samples aggregated. It is lower
	// than RequestedSamples only when the run timed out.
	SampleCount int `json:"sampleCount" yaml:"sampleCount"`

	// Cycles is the number of cycles the run went through.
	Cycles int `json:"cycles" yaml:"cycles"`

	// TimedOut is set when the run stopped on its timeout rather than on
	// collecting every sample.
	TimedOut bool `json:"timedOut" yaml:"timedOut"`

	Samples []Sample `json:"samples" yaml:"samples"`

	// Elapsed-time statistics, in milliseconds.
	stats.Summary `yaml:",inline"`

	// Quantiles are empirical percentiles of the elapsed times.
	Quantiles stats.Quantiles `json:"quantiles" yaml:"quantiles"`

	// Layout holds layout-cost statistics when layout was measured.
	Layout *stats.Summary `json:"layout,omitempty" yaml:"layout,omitempty"`
}

// Millis converts d to fractional milliseconds.
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func elapsedMillis(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = Millis(s.Elapsed)
	}
	return out
}

func layoutMillis(samples []Sample) []float64 {
	out := make([]float64, 0, len(samples))
	for _, s := range samples {
		if s.HasLayout() {
			out = append(out, Millis(s.Layout))
		}
	}
	return out
}
