// Package stats reduces render timings into summary statistics.
//
// All values are milliseconds expressed as float64. Input slices are never
// modified; every function that needs ordering sorts a private copy.
package stats

import (
	"bytes"
	"math"
	"sort"
	"strconv"
)

// Value is a statistic in milliseconds. NaN marks a statistic of an empty
// data set and is encoded as JSON null.
type Value float64

// IsNaN reports whether v is undefined.
func (v Value) IsNaN() bool {
	return math.IsNaN(float64(v))
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*v = Value(math.NaN())
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*v = Value(f)
	return nil
}

// Summary contains descriptive statistics for a set of timings.
//
// P70, P95 and P99 are not empirical quantiles. They are normal-approximation
// bands: Mean plus one, two and three standard deviations respectively. Use
// Quantiles when the measured distribution is needed.
type Summary struct {
	Max    Value `json:"max" yaml:"max"`
	Min    Value `json:"min" yaml:"min"`
	Median Value `json:"median" yaml:"median"`
	Mean   Value `json:"mean" yaml:"mean"`
	StdDev Value `json:"stdDev" yaml:"stdDev"`
	P70    Value `json:"p70" yaml:"p70"`
	P95    Value `json:"p95" yaml:"p95"`
	P99    Value `json:"p99" yaml:"p99"`
}

// Valid reports whether the summary was computed from at least one value.
func (s Summary) Valid() bool {
	return !s.Mean.IsNaN()
}

// Invalid returns the summary of an empty data set: every field is NaN.
func Invalid() Summary {
	nan := Value(math.NaN())
	return Summary{
		Max:    nan,
		Min:    nan,
		Median: nan,
		Mean:   nan,
		StdDev: nan,
		P70:    nan,
		P95:    nan,
		P99:    nan,
	}
}

// Summarize computes the Summary of values.
//
// An empty input yields Invalid() rather than an error so that a run which
// closed no samples still produces a single, recognisable result.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Invalid()
	}

	sorted := sortedCopy(values)
	mean := Value(Mean(sorted))
	stdDev := Value(StdDev(sorted))

	return Summary{
		Max:    Value(sorted[len(sorted)-1]),
		Min:    Value(sorted[0]),
		Median: Value(median(sorted)),
		Mean:   mean,
		StdDev: stdDev,
		P70:    mean + stdDev,
		P95:    mean + stdDev*2,
		P99:    mean + stdDev*3,
	}
}

// Mean returns the arithmetic mean of values, or NaN when values is empty.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation of values (divides by N),
// or NaN when values is empty.
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	avg := Mean(values)
	squareDiffs := make([]float64, len(values))
	for i, v := range values {
		diff := v - avg
		squareDiffs[i] = diff * diff
	}
	return math.Sqrt(Mean(squareDiffs))
}

// Median returns the median of values, or NaN when values is empty.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return median(sortedCopy(values))
}

// median expects sorted, non-empty input.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	return (sorted[(n-1)>>1] + sorted[n>>1]) / 2
}

func sortedCopy(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted
}
