// Package runner executes a benchmark suite: every configured run, one
// after another, on a single simulated host, with thresholds evaluated as
// each run finishes.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/wesleyorama2/cyclebench/internal/config"
	"github.com/wesleyorama2/cyclebench/internal/lifecycle"
	"github.com/wesleyorama2/cyclebench/internal/lifecycle/simhost"
	"github.com/wesleyorama2/cyclebench/internal/lifecycle/threshold"
)

// ErrAlreadyRunning is returned by Run while another suite is executing.
var ErrAlreadyRunning = errors.New("runner is already running")

// Options configures a Runner.
type Options struct {
	// Registry supplies the components. Defaults to simhost.DefaultRegistry().
	Registry *simhost.Registry

	// Clock defaults to a new SystemClock per suite.
	Clock simhost.Clock

	// MinDelay is passed to the host. Zero means simhost.DefaultMinDelay.
	MinDelay time.Duration

	// Logger defaults to a discarding logger.
	Logger *slog.Logger

	// Observer receives every run's events, e.g. a metrics.Collector.
	Observer lifecycle.Observer

	// OnRunComplete, if set, is called after each run with its result.
	OnRunComplete func(*RunResult)
}

// RunResult is the outcome of one configured run.
type RunResult struct {
	Name       string             `json:"name" yaml:"name"`
	Config     lifecycle.Config   `json:"config" yaml:"config"`
	Result     *lifecycle.Result  `json:"result,omitempty" yaml:"result,omitempty"`
	Thresholds []threshold.Result `json:"thresholds,omitempty" yaml:"thresholds,omitempty"`
	Passed     bool               `json:"passed" yaml:"passed"`
	Error      string             `json:"error,omitempty" yaml:"error,omitempty"`
}

// SuiteResult contains the complete suite results.
type SuiteResult struct {
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	StartTime   time.Time     `json:"startTime" yaml:"startTime"`
	EndTime     time.Time     `json:"endTime" yaml:"endTime"`
	Duration    time.Duration `json:"duration" yaml:"duration"`

	Runs []*RunResult `json:"runs" yaml:"runs"`

	// Passed is set when every run finished and met its thresholds.
	Passed bool `json:"passed" yaml:"passed"`
}

// Failed returns the runs that did not pass.
func (s *SuiteResult) Failed() []*RunResult {
	var out []*RunResult
	for _, r := range s.Runs {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}

// Runner executes suites.
type Runner struct {
	opts Options

	mu      sync.Mutex
	running bool
}

// New creates a runner.
func New(opts Options) *Runner {
	if opts.Registry == nil {
		opts.Registry = simhost.DefaultRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{opts: opts}
}

// Check validates suite and verifies every component it names is
// registered.
func (r *Runner) Check(suite *config.SuiteConfig) error {
	if err := suite.Validate(); err != nil {
		return err
	}

	errs := &config.ValidationErrors{}
	for i, run := range suite.Runs {
		if !r.opts.Registry.Has(run.Component.Name) {
			errs.Add(fmt.Sprintf("runs[%d].component.name", i),
				fmt.Sprintf("unknown component %q (known: %v)", run.Component.Name, r.opts.Registry.Names()))
		}
	}
	if errs.HasErrors() {
		return errs
	}
	return nil
}

// Run executes every run of suite in order. A run that fails to start is
// recorded and the suite moves on. If ctx is cancelled the remaining runs
// are skipped and the partial result is returned with ctx.Err().
//
// Defaults are applied to a copy of suite; the caller's value is not
// modified.
func (r *Runner) Run(ctx context.Context, suite *config.SuiteConfig) (*SuiteResult, error) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil, ErrAlreadyRunning
	}
	r.running = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	suite = suite.Clone()
	config.ApplyDefaults(suite)
	if err := r.Check(suite); err != nil {
		return nil, fmt.Errorf("invalid suite: %w", err)
	}

	loop := simhost.NewLoop()
	defer loop.Stop()

	host := simhost.NewHost(loop, simhost.HostConfig{
		Clock:    r.opts.Clock,
		Registry: r.opts.Registry,
		MinDelay: r.opts.MinDelay,
		Logger:   r.opts.Logger,
	})

	opts := []lifecycle.Option{lifecycle.WithLogger(r.opts.Logger)}
	if r.opts.Observer != nil {
		opts = append(opts, lifecycle.WithObserver(r.opts.Observer))
	}
	sampler := lifecycle.New(host, opts...)

	result := &SuiteResult{
		Name:        suite.Name,
		Description: suite.Description,
		StartTime:   time.Now(),
		Passed:      true,
	}

	r.opts.Logger.Info("Suite started", "suite", suite.Name, "runs", len(suite.Runs))

	var runErr error
	for _, run := range suite.Runs {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		rr, err := r.runOne(ctx, sampler, host, suite, run)
		result.Runs = append(result.Runs, rr)
		if !rr.Passed {
			result.Passed = false
		}
		if r.opts.OnRunComplete != nil {
			r.opts.OnRunComplete(rr)
		}
		if err != nil {
			runErr = err
			break
		}
	}
	if runErr != nil {
		result.Passed = false
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)

	r.opts.Logger.Info("Suite finished",
		"suite", suite.Name,
		"passed", result.Passed,
		"duration", result.Duration)

	return result, runErr
}

// runOne returns a non-nil error only when the suite must stop.
func (r *Runner) runOne(ctx context.Context, sampler *lifecycle.Sampler, host *simhost.Host,
	suite *config.SuiteConfig, run *config.RunConfig) (*RunResult, error) {
	rr := &RunResult{Name: run.Name}

	cfg, err := suite.ToLifecycle(run)
	if err != nil {
		rr.Error = err.Error()
		return rr, nil
	}
	rr.Config = cfg

	// Each run starts from an empty tree
	host.Reset()

	res, err := sampler.Run(ctx, cfg)
	if err != nil {
		rr.Error = err.Error()
		r.opts.Logger.Warn("Run failed", "run", run.Name, "error", err)
		if ctx.Err() != nil {
			return rr, err
		}
		return rr, nil
	}
	rr.Result = res
	rr.Passed = !res.TimedOut

	rr.Thresholds, err = threshold.Evaluate(res, run.Thresholds)
	if err != nil {
		rr.Error = err.Error()
		rr.Passed = false
		return rr, nil
	}
	if !threshold.AllPassed(rr.Thresholds) {
		rr.Passed = false
	}

	r.opts.Logger.Info("Run completed",
		"run", run.Name,
		"kind", cfg.Kind,
		"samples", res.SampleCount,
		"mean_ms", float64(res.Mean),
		"timed_out", res.TimedOut,
		"passed", rr.Passed)

	return rr, nil
}
