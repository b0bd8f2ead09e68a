package bench

import (
	"context"
	"log/slog"

	"github.com/wesleyorama2/cyclebench/internal/config"
	"github.com/wesleyorama2/cyclebench/internal/lifecycle"
	"github.com/wesleyorama2/cyclebench/internal/lifecycle/runner"
	"github.com/wesleyorama2/cyclebench/internal/lifecycle/simhost"
	"github.com/wesleyorama2/cyclebench/internal/lifecycle/stats"
)

type (
	// Sampler is the benchmark state machine.
	Sampler = lifecycle.Sampler
	// Config describes one run.
	Config = lifecycle.Config
	// Result is the outcome of one run.
	Result = lifecycle.Result
	// Sample is one timing window.
	Sample = lifecycle.Sample
	// Kind is the measured lifecycle phase.
	Kind = lifecycle.Kind
	// Props are passed to the component untouched.
	Props = lifecycle.Props

	Host          = lifecycle.Host
	LayoutFlusher = lifecycle.LayoutFlusher
	Frame         = lifecycle.Frame
	Observer      = lifecycle.Observer
	Option        = lifecycle.Option

	// Summary holds descriptive statistics in milliseconds.
	Summary = stats.Summary
	// Quantiles holds empirical percentiles in milliseconds.
	Quantiles = stats.Quantiles

	// SimHost is the bundled simulated rendering host.
	SimHost = simhost.Host
	// Clock is the time source of a SimHost.
	Clock = simhost.Clock
	// ManualClock only moves when simulated work spends time on it.
	ManualClock = simhost.ManualClock

	// Suite is a parsed suite file.
	Suite = config.SuiteConfig
	// SuiteResult is the outcome of RunSuite.
	SuiteResult = runner.SuiteResult
)

const (
	KindMount   = lifecycle.KindMount
	KindUpdate  = lifecycle.KindUpdate
	KindUnmount = lifecycle.KindUnmount
)

var (
	ErrAlreadyRunning    = lifecycle.ErrAlreadyRunning
	ErrLayoutUnsupported = lifecycle.ErrLayoutUnsupported
	ErrInvalidConfig     = lifecycle.ErrInvalidConfig
)

// New creates an idle Sampler for host.
func New(host Host, opts ...Option) *Sampler {
	return lifecycle.New(host, opts...)
}

// Run starts a run of cfg on host and blocks until the result is delivered
// or ctx is done.
func Run(ctx context.Context, host Host, cfg Config, opts ...Option) (*Result, error) {
	return lifecycle.Run(ctx, host, cfg, opts...)
}

// WithLogger sets the Sampler's logger.
func WithLogger(logger *slog.Logger) Option {
	return lifecycle.WithLogger(logger)
}

// WithObserver registers an Observer.
func WithObserver(o Observer) Option {
	return lifecycle.WithObserver(o)
}

// ParseKind parses "mount", "update" or "unmount".
func ParseKind(s string) (Kind, error) {
	return lifecycle.ParseKind(s)
}

// Summarize computes descriptive statistics of timings in milliseconds.
func Summarize(values []float64) Summary {
	return stats.Summarize(values)
}

// ComputeQuantiles computes empirical P50, P90 and P99.
func ComputeQuantiles(values []float64) Quantiles {
	return stats.ComputeQuantiles(values)
}

// NewManualClock returns a clock starting at zero.
func NewManualClock() *ManualClock {
	return simhost.NewManualClock()
}

// SimHostOptions configures NewSimHost.
type SimHostOptions struct {
	// Clock defaults to the system monotonic clock.
	Clock Clock

	// Logger defaults to a discarding logger.
	Logger *slog.Logger
}

// NewSimHost starts a simulated host with the built-in components on its own
// loop goroutine. Call stop to shut the loop down.
func NewSimHost(opts SimHostOptions) (host *SimHost, stop func()) {
	loop := simhost.NewLoop()
	host = simhost.NewHost(loop, simhost.HostConfig{
		Clock:  opts.Clock,
		Logger: opts.Logger,
	})
	return host, loop.Stop
}

// LoadSuite reads and parses a YAML or JSON suite file.
func LoadSuite(path string) (*Suite, error) {
	return config.LoadConfig(path)
}

// RunSuite runs every benchmark of suite on a fresh simulated host.
func RunSuite(ctx context.Context, suite *Suite) (*SuiteResult, error) {
	return runner.New(runner.Options{}).Run(ctx, suite)
}
