package stats

import (
	"math"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Histogram bounds, in microseconds: 1µs discernible, up to 1 hour, at 3
// significant figures. Zero values are recorded as zero.
const (
	histogramMin     int64 = 1
	histogramMax     int64 = 3600000000
	histogramSigFigs       = 3
)

// Quantiles contains empirical percentiles of a set of timings, in
// milliseconds. Values are recorded at microsecond resolution, so sub-µs
// differences are not preserved.
type Quantiles struct {
	P50   Value `json:"p50" yaml:"p50"`
	P90   Value `json:"p90" yaml:"p90"`
	P99   Value `json:"p99" yaml:"p99"`
	Count int64 `json:"count" yaml:"count"`
}

// ComputeQuantiles records values into an HDR histogram and reads back the
// 50th, 90th and 99th percentiles. An empty input yields NaN percentiles and
// a zero count.
func ComputeQuantiles(values []float64) Quantiles {
	if len(values) == 0 {
		nan := Value(math.NaN())
		return Quantiles{P50: nan, P90: nan, P99: nan}
	}

	hist := hdrhistogram.New(histogramMin, histogramMax, histogramSigFigs)
	for _, v := range values {
		micros := int64(math.Round(v * 1000))

		// Zero is recordable; only negative readings are clamped
		if micros < 0 {
			micros = 0
		}
		if micros > histogramMax {
			micros = histogramMax
		}
		_ = hist.RecordValue(micros)
	}

	return Quantiles{
		P50:   microsToMillis(hist.ValueAtQuantile(50)),
		P90:   microsToMillis(hist.ValueAtQuantile(90)),
		P99:   microsToMillis(hist.ValueAtQuantile(99)),
		Count: hist.TotalCount(),
	}
}

func microsToMillis(v int64) Value {
	return Value(float64(v) / 1000)
}
