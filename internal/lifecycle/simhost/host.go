package simhost

import (
	"io"
	"log/slog"
	"reflect"
	"time"

	"github.com/wesleyorama2/cyclebench/internal/lifecycle"
)

// DefaultMinDelay is the delay Defer applies between cycles.
const DefaultMinDelay = time.Millisecond

// HostConfig configures a Host.
type HostConfig struct {
	// Clock defaults to a new SystemClock.
	Clock Clock

	// Registry defaults to DefaultRegistry().
	Registry *Registry

	// MinDelay defaults to DefaultMinDelay. A negative value posts deferred
	// tasks with no timer at all.
	MinDelay time.Duration

	// Logger defaults to a discarding logger.
	Logger *slog.Logger
}

// RenderCounts tallies the lifecycle calls a Host has made.
type RenderCounts struct {
	Mounts   int
	Updates  int
	Unmounts int
	Empty    int
	Commits  int
	Layouts  int
}

// Host renders simulated components on a Loop. It implements
// lifecycle.Host and lifecycle.LayoutFlusher.
//
// Render runs the component's lifecycle method synchronously, then posts the
// commit notification as a separate loop task, so committed always runs
// after the render has finished and never from inside Render.
type Host struct {
	loop     *Loop
	clock    Clock
	registry *Registry
	minDelay time.Duration
	logger   *slog.Logger

	// Touched only on the loop goroutine.
	mounted      Component
	mountedName  string
	mountedProps lifecycle.Props
	counts       RenderCounts
}

var (
	_ lifecycle.Host          = (*Host)(nil)
	_ lifecycle.LayoutFlusher = (*Host)(nil)
)

// NewHost creates a host that runs on loop.
func NewHost(loop *Loop, config HostConfig) *Host {
	if config.Clock == nil {
		config.Clock = NewSystemClock()
	}
	if config.Registry == nil {
		config.Registry = DefaultRegistry()
	}
	if config.MinDelay == 0 {
		config.MinDelay = DefaultMinDelay
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Host{
		loop:     loop,
		clock:    config.Clock,
		registry: config.Registry,
		minDelay: config.MinDelay,
		logger:   config.Logger,
	}
}

// Now reads the host clock.
func (h *Host) Now() time.Duration {
	return h.clock.Now()
}

// Clock returns the host clock.
func (h *Host) Clock() Clock {
	return h.clock
}

// Registry returns the registry components are built from.
func (h *Host) Registry() *Registry {
	return h.registry
}

// Render reconciles frame against the current tree. A component already in
// the tree is updated in place only when both its name and its props match
// the frame; otherwise it is replaced by a fresh mount, since built-in
// components take their costs from the props they were built with.
func (h *Host) Render(frame lifecycle.Frame, committed func()) {
	switch {
	case frame.Visible && h.mounted != nil && h.mountedName == frame.Component &&
		reflect.DeepEqual(h.mountedProps, frame.Props):
		h.mounted.Update(frame.Props)
		h.counts.Updates++

	case frame.Visible:
		h.unmount()
		c, err := h.registry.New(frame.Component, frame.Props, Env{Clock: h.clock})
		if err != nil {
			h.logger.Warn("Failed to create component, rendering nothing",
				"component", frame.Component,
				"error", err)
			h.counts.Empty++
			break
		}
		c.Mount(frame.Props)
		h.mounted = c
		h.mountedName = frame.Component
		h.mountedProps = frame.Props
		h.counts.Mounts++

	case h.mounted != nil:
		h.unmount()

	default:
		h.counts.Empty++
	}

	h.loop.Post(func() {
		h.counts.Commits++
		committed()
	})
}

func (h *Host) unmount() {
	if h.mounted == nil {
		return
	}
	h.mounted.Unmount()
	h.mounted = nil
	h.mountedName = ""
	h.mountedProps = nil
	h.counts.Unmounts++
}

// FlushLayout runs the mounted component's layout, if it has one.
func (h *Host) FlushLayout() {
	h.counts.Layouts++
	if l, ok := h.mounted.(Layouter); ok {
		l.Layout()
	}
}

// Defer runs fn on the loop after the minimum delay.
func (h *Host) Defer(fn func()) {
	if h.minDelay < 0 {
		h.loop.Post(fn)
		return
	}
	h.loop.After(h.minDelay, fn)
}

// Do runs fn on the loop and waits for it to return. It reports false,
// without running fn, once the loop has been stopped. It must not be called
// from a loop task.
func (h *Host) Do(fn func()) bool {
	return h.loop.Call(fn)
}

// Counts returns the render tallies. The read happens on the loop; after
// the loop is stopped Counts returns zero tallies.
func (h *Host) Counts() RenderCounts {
	var c RenderCounts
	h.Do(func() { c = h.counts })
	return c
}

// Reset unmounts whatever is in the tree and clears the tallies. It does
// nothing once the loop is stopped.
func (h *Host) Reset() {
	h.Do(func() {
		h.unmount()
		h.counts = RenderCounts{}
	})
}
