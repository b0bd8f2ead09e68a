package lifecycle

import (
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wesleyorama2/cyclebench/internal/lifecycle/stats"
)

// State is the externally visible state of a Sampler.
type State int

const (
	// StateIdle means no run is active.
	StateIdle State = iota
	// StateRunning means a run is cycling.
	StateRunning
	// StateCompleting means the run has finished and its result is being
	// assembled.
	StateCompleting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleting:
		return "completing"
	default:
		return "unknown"
	}
}

type actionType int

const (
	actionStart actionType = iota
	actionStartSample
	actionEndSample
	actionEndLayout
	actionTick
	actionReset
)

// action is one state transition. at carries a clock reading for start and
// sample actions, and a duration for actionEndLayout.
type action struct {
	typ actionType
	at  time.Duration
}

// runState is mutated only through apply.
type runState struct {
	state     State
	startTime time.Duration
	cycle     int
	samples   []Sample

	// generation increments on every start so callbacks scheduled by an
	// earlier run are recognised and dropped.
	generation uint64
}

func (st *runState) apply(a action) {
	switch a.typ {
	case actionStart:
		st.state = StateRunning
		st.startTime = a.at
		st.cycle = 0
		st.samples = nil
		st.generation++

	case actionStartSample:
		st.samples = append(st.samples, openSample(st.cycle, a.at))

	case actionEndSample:
		if s := st.openSample(); s != nil {
			// A clock that steps backwards closes the sample at its start
			s.End = max(a.at, s.Start)
			s.Elapsed = s.End - s.Start
		}

	case actionEndLayout:
		if n := len(st.samples); n > 0 && st.samples[n-1].Closed() {
			st.samples[n-1].Layout = max(a.at, 0)
		}

	case actionTick:
		st.cycle++

	case actionReset:
		*st = runState{generation: st.generation}
	}
}

// openSample returns the most recent sample if it has not been closed.
func (st *runState) openSample() *Sample {
	if n := len(st.samples); n > 0 && !st.samples[n-1].Closed() {
		return &st.samples[n-1]
	}
	return nil
}

// sampledCycle reports whether a sample was already opened on cycle.
func (st *runState) sampledCycle(cycle int) bool {
	n := len(st.samples)
	return n > 0 && st.samples[n-1].Cycle == cycle
}

// closedSamples returns a copy of every closed sample, dropping one still
// in flight.
func (st *runState) closedSamples() []Sample {
	out := make([]Sample, 0, len(st.samples))
	for _, s := range st.samples {
		if s.Closed() {
			out = append(out, s)
		}
	}
	return out
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithLogger sets the logger used for run events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sampler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver registers an Observer for run events.
func WithObserver(o Observer) Option {
	return func(s *Sampler) {
		if o != nil {
			s.observer = o
		}
	}
}

// Sampler is the benchmark state machine. It cycles the component between
// visible and hidden through its Host, opens a sample before each measured
// render, closes it once the host reports the commit, and delivers a Result
// after the last cycle or on timeout.
//
// # Thread Safety
//
// A Sampler is not safe for concurrent use. Start, Running and every host
// callback must run on the host's update thread. Only one run is active at a
// time.
type Sampler struct {
	host     Host
	layout   LayoutFlusher
	logger   *slog.Logger
	observer Observer

	cfg        Config
	runID      string
	onComplete func(*Result)
	state      runState
}

// New creates an idle Sampler driving host. If host implements
// LayoutFlusher, layout measurement is available.
func New(host Host, opts ...Option) *Sampler {
	s := &Sampler{
		host:     host,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		observer: nopObserver{},
	}
	if lf, ok := host.(LayoutFlusher); ok {
		s.layout = lf
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins a run. onComplete is called exactly once with the result,
// after the sampler has returned to idle, so it may start the next run.
//
// Start returns ErrAlreadyRunning while a run is active, a *ConfigError
// (matching ErrInvalidConfig) for an invalid cfg, and ErrLayoutUnsupported
// when cfg asks for layout measurement the host cannot provide.
func (s *Sampler) Start(cfg Config, onComplete func(*Result)) error {
	if s.state.state != StateIdle {
		return ErrAlreadyRunning
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.MeasuresLayout() && s.layout == nil {
		return ErrLayoutUnsupported
	}

	s.begin(cfg, onComplete)
	return nil
}

// Running reports whether a run is active.
func (s *Sampler) Running() bool {
	return s.state.state != StateIdle
}

// State returns the current machine state.
func (s *Sampler) State() State {
	return s.state.state
}

// begin starts a run without validating cfg.
func (s *Sampler) begin(cfg Config, onComplete func(*Result)) {
	s.cfg = cfg
	s.runID = uuid.NewString()
	s.onComplete = onComplete
	s.state.apply(action{typ: actionStart, at: s.host.Now()})

	s.logger.Debug("Benchmark run started",
		"run_id", s.runID,
		"kind", cfg.Kind,
		"samples", cfg.Samples,
		"timeout", cfg.Timeout,
		"layout", cfg.MeasuresLayout())
	s.observer.RunStarted(s.runID, cfg)

	gen := s.state.generation
	s.host.Defer(func() {
		if s.current(gen) {
			s.step()
		}
	})
}

func (s *Sampler) current(gen uint64) bool {
	return s.state.state == StateRunning && s.state.generation == gen
}

// step runs the first half of a cycle: open a sample if this cycle is
// measured, then request the render.
func (s *Sampler) step() {
	st := &s.state
	cycle := st.cycle

	if ShouldRecord(s.cfg.Kind, cycle) && !st.sampledCycle(cycle) {
		st.apply(action{typ: actionStartSample, at: s.host.Now()})
	}

	frame := Frame{
		Cycle:     cycle,
		Visible:   ShouldRender(s.cfg.Kind, cycle),
		Component: s.cfg.Component,
		Props:     s.cfg.Props,
	}

	gen := st.generation
	fired := false
	s.host.Render(frame, func() {
		if fired {
			return
		}
		fired = true
		s.committed(gen, cycle)
	})
}

// committed runs the second half of a cycle once the render is visible.
func (s *Sampler) committed(gen uint64, cycle int) {
	st := &s.state
	if !s.current(gen) || st.cycle != cycle {
		return
	}

	now := s.host.Now()

	if open := st.openSample(); open != nil {
		layout := Unset
		if s.cfg.MeasuresLayout() {
			s.layout.FlushLayout()
			layout = s.host.Now() - now
		}

		st.apply(action{typ: actionEndSample, at: now})
		if layout != Unset {
			st.apply(action{typ: actionEndLayout, at: layout})
		}
		s.observer.SampleClosed(s.runID, s.cfg.Kind, st.samples[len(st.samples)-1])
	}

	done := IsDone(s.cfg.Kind, cycle, s.cfg.Samples)
	timedOut := now-st.startTime > s.cfg.Timeout

	if !done && !timedOut {
		s.host.Defer(func() {
			if s.current(gen) {
				st.apply(action{typ: actionTick})
				s.step()
			}
		})
		return
	}

	s.finish(now, timedOut && !done)
}

// finish assembles the result, resets to idle and only then notifies the
// completion handler.
func (s *Sampler) finish(end time.Duration, timedOut bool) {
	st := &s.state
	st.state = StateCompleting

	samples := st.closedSamples()
	elapsed := elapsedMillis(samples)

	result := &Result{
		RunID:            s.runID,
		Kind:             s.cfg.Kind,
		Component:        s.cfg.Component,
		StartTime:        st.startTime,
		EndTime:          end,
		RunTime:          end - st.startTime,
		RequestedSamples: s.cfg.Samples,
		SampleCount:      len(samples),
		Cycles:           st.cycle + 1,
		TimedOut:         timedOut,
		Samples:          samples,
		Summary:          stats.Summarize(elapsed),
		Quantiles:        stats.ComputeQuantiles(elapsed),
	}
	if s.cfg.MeasuresLayout() {
		layout := stats.Summarize(layoutMillis(samples))
		result.Layout = &layout
	}

	onComplete := s.onComplete
	s.onComplete = nil
	st.apply(action{typ: actionReset})

	if timedOut {
		s.logger.Warn("Benchmark run timed out",
			"run_id", result.RunID,
			"kind", result.Kind,
			"samples", result.SampleCount,
			"requested", result.RequestedSamples,
			"timeout", s.cfg.Timeout)
	}
	s.logger.Debug("Benchmark run completed",
		"run_id", result.RunID,
		"kind", result.Kind,
		"samples", result.SampleCount,
		"cycles", result.Cycles,
		"run_time", result.RunTime)
	s.observer.RunCompleted(result)

	if onComplete != nil {
		onComplete(result)
	}
}
