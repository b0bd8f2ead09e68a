package lifecycle

import "time"

// Clock is a monotonic time source. Readings are offsets from an arbitrary
// origin fixed for the clock's lifetime.
type Clock interface {
	Now() time.Duration
}

// Frame is the render the sampler requests for one cycle.
type Frame struct {
	// Cycle is the sampler cycle this frame belongs to.
	Cycle int

	// Visible is true when the component should be present in the tree.
	Visible bool

	// Component and Props come from the run's Config.
	Component string
	Props     Props
}

// Host is the rendering environment a Sampler drives.
//
// All three methods are called from, and must call back on, the host's
// single update thread. The sampler performs no locking of its own.
type Host interface {
	Clock

	// Render applies frame to the tree and calls committed exactly once,
	// after the result has committed. Calling committed synchronously from
	// Render is not allowed.
	Render(frame Frame, committed func())

	// Defer runs fn on the update thread after a minimal delay, giving the
	// host's render pipeline a turn before fn runs.
	Defer(fn func())
}

// LayoutFlusher is implemented by hosts that can force a synchronous layout
// recalculation. It is required for runs with IncludeLayout set.
type LayoutFlusher interface {
	FlushLayout()
}

// Observer receives run lifecycle events. Calls arrive on the host's update
// thread, in order.
type Observer interface {
	RunStarted(runID string, cfg Config)
	SampleClosed(runID string, kind Kind, sample Sample)
	RunCompleted(result *Result)
}

type nopObserver struct{}

func (nopObserver) RunStarted(string, Config)         {}
func (nopObserver) SampleClosed(string, Kind, Sample) {}
func (nopObserver) RunCompleted(*Result)              {}
