package lifecycle

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultTimeout is the wall-clock budget applied when Config.Timeout is zero.
const DefaultTimeout = 10 * time.Second

var (
	// ErrAlreadyRunning is returned by Start while a run is active.
	ErrAlreadyRunning = errors.New("a benchmark run is already active")

	// ErrLayoutUnsupported is returned by Start when IncludeLayout is set
	// but the host cannot force a layout flush.
	ErrLayoutUnsupported = errors.New("host does not support layout measurement")

	// ErrInvalidConfig is matched by every *ConfigError.
	ErrInvalidConfig = errors.New("invalid benchmark configuration")
)

// Props are the opaque properties handed to the component under test.
type Props map[string]any

// Config describes a single benchmark run. It is copied by Start and never
// modified afterwards.
type Config struct {
	// Kind is the lifecycle phase to measure.
	Kind Kind `json:"kind" yaml:"kind"`

	// Samples is the number of samples to collect.
	Samples int `json:"samples" yaml:"samples"`

	// Timeout bounds the whole run. Zero means DefaultTimeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// IncludeLayout additionally times a forced layout flush after each
	// measured commit. Ignored for unmount runs.
	IncludeLayout bool `json:"includeLayout,omitempty" yaml:"includeLayout,omitempty"`

	// Component names what the host should render.
	Component string `json:"component,omitempty" yaml:"component,omitempty"`

	// Props are passed through to the component untouched.
	Props Props `json:"props,omitempty" yaml:"props,omitempty"`
}

// ApplyDefaults fills zero-valued optional fields.
func (c *Config) ApplyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
}

// MeasuresLayout reports whether samples of this run carry a layout cost.
func (c *Config) MeasuresLayout() bool {
	return c.IncludeLayout && c.Kind != KindUnmount
}

// FieldError is a single configuration violation.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigError lists every violation found by Config.Validate.
type ConfigError struct {
	Errors []*FieldError
}

func (e *ConfigError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("%s: %s", ErrInvalidConfig, e.Errors[0])
	}

	parts := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		parts[i] = err.Error()
	}
	return fmt.Sprintf("%s: %s", ErrInvalidConfig, strings.Join(parts, "; "))
}

// Is lets errors.Is(err, ErrInvalidConfig) match.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

func (e *ConfigError) add(field, message string) {
	e.Errors = append(e.Errors, &FieldError{Field: field, Message: message})
}

// Validate checks the configuration, returning a *ConfigError that names
// every invalid field, or nil.
func (c *Config) Validate() error {
	errs := &ConfigError{}

	if !c.Kind.Valid() {
		errs.add("kind", fmt.Sprintf("unknown benchmark kind %q (want mount, update or unmount)", c.Kind))
	}
	if c.Samples <= 0 {
		errs.add("samples", "must be a positive integer")
	}
	if c.Timeout < 0 {
		errs.add("timeout", "must be positive")
	}

	if len(errs.Errors) > 0 {
		return errs
	}
	return nil
}
