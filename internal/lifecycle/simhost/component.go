package simhost

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/wesleyorama2/cyclebench/internal/lifecycle"
)

// Component is a simulated UI component. The host calls Mount when the
// component enters the tree, Update on every later render while it stays
// there, and Unmount when it leaves.
type Component interface {
	Mount(props lifecycle.Props)
	Update(props lifecycle.Props)
	Unmount()
}

// Layouter is implemented by components whose layout costs time.
type Layouter interface {
	Layout()
}

// Env is what a factory may use to build a component.
type Env struct {
	Clock Clock
}

// Factory builds a component from its props.
type Factory func(props lifecycle.Props, env Env) (Component, error)

type registration struct {
	description string
	factory     Factory
}

// Registry maps component names to factories.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]registration
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]registration)}
}

// DefaultRegistry returns a registry holding the built-in components.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("static", "fixed costs from props: mount, update, unmount, layout (durations)", newStatic)
	r.Register("fibonacci", "computes fib(n) on render; memo: only on mount; teardown: only on unmount", newFibonacci)
	return r
}

// Register adds or replaces a component.
func (r *Registry) Register(name, description string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = registration{description: description, factory: factory}
}

// New builds the named component.
func (r *Registry) New(name string, props lifecycle.Props, env Env) (Component, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown component: %q", name)
	}

	c, err := entry.factory(props, env)
	if err != nil {
		return nil, fmt.Errorf("component %q: %w", name, err)
	}
	return c, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[name]
	return ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns the description given at registration.
func (r *Registry) Describe(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries[name].description
}

// static spends fixed amounts of clock time in each phase.
type static struct {
	clock Clock

	mount   time.Duration
	update  time.Duration
	unmount time.Duration
	layout  time.Duration
}

func newStatic(props lifecycle.Props, env Env) (Component, error) {
	c := &static{clock: env.Clock}

	var err error
	if c.mount, err = DurationProp(props, "mount", 0); err != nil {
		return nil, err
	}
	if c.update, err = DurationProp(props, "update", 0); err != nil {
		return nil, err
	}
	if c.unmount, err = DurationProp(props, "unmount", 0); err != nil {
		return nil, err
	}
	if c.layout, err = DurationProp(props, "layout", 0); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *static) Mount(lifecycle.Props)  { c.clock.Spend(c.mount) }
func (c *static) Update(lifecycle.Props) { c.clock.Spend(c.update) }
func (c *static) Unmount()               { c.clock.Spend(c.unmount) }
func (c *static) Layout()                { c.clock.Spend(c.layout) }

// MaxFibonacciN bounds the fibonacci component's n. The recursion is
// exponential, and fib(45) already takes seconds.
const MaxFibonacciN = 45

// fibonacci burns real CPU computing fib(n) recursively.
type fibonacci struct {
	n        int
	memo     bool
	teardown bool

	// result keeps the computation observable.
	result int
}

func newFibonacci(props lifecycle.Props, _ Env) (Component, error) {
	n, err := IntProp(props, "n", 20)
	if err != nil {
		return nil, err
	}
	if n < 0 || n > MaxFibonacciN {
		return nil, fmt.Errorf("prop n: must be between 0 and %d", MaxFibonacciN)
	}
	memo, err := BoolProp(props, "memo", false)
	if err != nil {
		return nil, err
	}
	teardown, err := BoolProp(props, "teardown", false)
	if err != nil {
		return nil, err
	}
	return &fibonacci{n: n, memo: memo, teardown: teardown}, nil
}

func (c *fibonacci) Mount(lifecycle.Props) {
	if !c.teardown {
		c.result = fib(c.n)
	}
}

func (c *fibonacci) Update(lifecycle.Props) {
	if !c.teardown && !c.memo {
		c.result = fib(c.n)
	}
}

func (c *fibonacci) Unmount() {
	if c.teardown {
		c.result = fib(c.n)
	}
}

func fib(n int) int {
	if n < 2 {
		return n
	}
	return fib(n-1) + fib(n-2)
}

// DurationProp reads a duration prop. Strings use time.ParseDuration
// syntax; numbers are milliseconds.
func DurationProp(props lifecycle.Props, key string, def time.Duration) (time.Duration, error) {
	v, ok := props[key]
	if !ok || v == nil {
		return def, nil
	}

	var d time.Duration
	switch val := v.(type) {
	case time.Duration:
		d = val
	case string:
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return 0, fmt.Errorf("prop %s: %w", key, err)
		}
		d = parsed
	default:
		ms, err := toFloat(val)
		if err != nil {
			return 0, fmt.Errorf("prop %s: %w", key, err)
		}
		d = time.Duration(ms * float64(time.Millisecond))
	}

	if d < 0 {
		return 0, fmt.Errorf("prop %s: must not be negative", key)
	}
	return d, nil
}

// IntProp reads an integer prop.
func IntProp(props lifecycle.Props, key string, def int) (int, error) {
	v, ok := props[key]
	if !ok || v == nil {
		return def, nil
	}

	switch val := v.(type) {
	case string:
		n, err := strconv.Atoi(val)
		if err != nil {
			return 0, fmt.Errorf("prop %s: %w", key, err)
		}
		return n, nil
	default:
		f, err := toFloat(val)
		if err != nil {
			return 0, fmt.Errorf("prop %s: %w", key, err)
		}
		return int(f), nil
	}
}

// BoolProp reads a boolean prop.
func BoolProp(props lifecycle.Props, key string, def bool) (bool, error) {
	v, ok := props[key]
	if !ok || v == nil {
		return def, nil
	}

	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return false, fmt.Errorf("prop %s: %w", key, err)
		}
		return b, nil
	default:
		return false, fmt.Errorf("prop %s: expected a boolean, got %T", key, v)
	}
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}
