// Package config loads and validates benchmark suite files.
package config

import (
	"time"

	"github.com/wesleyorama2/cyclebench/internal/lifecycle"
)

// DefaultSamples is used when neither a run nor the suite settings name a
// sample count.
const DefaultSamples = 50

// SuiteConfig is the root of a suite file.
//
// Example YAML:
//
//	name: "Card benchmarks"
//	settings:
//	  timeout: 10s
//	  format: text
//	runs:
//	  - name: card-mount
//	    kind: mount
//	    samples: 50
//	    includeLayout: true
//	    component:
//	      name: fibonacci
//	      props: {n: 20}
//	    thresholds:
//	      - "mean < 4ms"
//	      - "layout.p99 < 2ms"
type SuiteConfig struct {
	// Name of the suite (for reporting)
	Name string `json:"name" yaml:"name"`

	// Description of the suite (optional)
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Settings are defaults for every run
	Settings Settings `json:"settings,omitempty" yaml:"settings,omitempty"`

	// Runs execute in order, one at a time
	Runs []*RunConfig `json:"runs" yaml:"runs"`
}

// Settings holds suite-wide defaults.
type Settings struct {
	// Timeout is the default wall-clock budget of a run
	Timeout Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`

	// Samples is the default sample count
	Samples int `json:"samples,omitempty" yaml:"samples,omitempty"`

	// IncludeLayout is the default for runs that do not set it
	IncludeLayout bool `json:"includeLayout,omitempty" yaml:"includeLayout,omitempty"`

	// Format is the default output format: "text", "json" or "yaml"
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// RunConfig is one benchmark run.
type RunConfig struct {
	// Name identifies the run in reports
	Name string `json:"name" yaml:"name"`

	// Kind is "mount", "update" or "unmount"
	Kind string `json:"kind" yaml:"kind"`

	// Samples overrides settings.samples
	Samples int `json:"samples,omitempty" yaml:"samples,omitempty"`

	// Timeout overrides settings.timeout
	Timeout Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`

	// IncludeLayout overrides settings.includeLayout
	IncludeLayout *bool `json:"includeLayout,omitempty" yaml:"includeLayout,omitempty"`

	// Component is the component under test
	Component ComponentConfig `json:"component" yaml:"component"`

	// Thresholds are pass/fail expressions, e.g. "mean < 4ms"
	Thresholds []string `json:"thresholds,omitempty" yaml:"thresholds,omitempty"`
}

// ComponentConfig names a registered component and its props.
type ComponentConfig struct {
	Name  string         `json:"name" yaml:"name"`
	Props map[string]any `json:"props,omitempty" yaml:"props,omitempty"`
}

// Clone returns a copy of the suite whose runs can be modified without
// affecting c. Props maps and threshold slices are shared.
func (c *SuiteConfig) Clone() *SuiteConfig {
	out := *c
	out.Runs = make([]*RunConfig, len(c.Runs))
	for i, run := range c.Runs {
		if run == nil {
			continue
		}
		cp := *run
		if run.IncludeLayout != nil {
			include := *run.IncludeLayout
			cp.IncludeLayout = &include
		}
		out.Runs[i] = &cp
	}
	return &out
}

// ToLifecycle resolves run against the suite settings.
func (s *SuiteConfig) ToLifecycle(run *RunConfig) (lifecycle.Config, error) {
	kind, err := lifecycle.ParseKind(run.Kind)
	if err != nil {
		return lifecycle.Config{}, err
	}

	cfg := lifecycle.Config{
		Kind:          kind,
		Samples:       run.Samples,
		Timeout:       run.Timeout.GetDuration(s.Settings.Timeout.GetDuration(lifecycle.DefaultTimeout)),
		IncludeLayout: s.Settings.IncludeLayout,
		Component:     run.Component.Name,
		Props:         lifecycle.Props(run.Component.Props),
	}
	if cfg.Samples == 0 {
		cfg.Samples = s.Settings.Samples
	}
	if cfg.Samples == 0 {
		cfg.Samples = DefaultSamples
	}
	if run.IncludeLayout != nil {
		cfg.IncludeLayout = *run.IncludeLayout
	}

	if err := cfg.Validate(); err != nil {
		return lifecycle.Config{}, err
	}
	return cfg, nil
}

// Duration is a time.Duration that can be unmarshaled from JSON/YAML strings.
type Duration time.Duration

// GetDuration returns the duration or a default if empty.
func (d Duration) GetDuration(defaultValue time.Duration) time.Duration {
	if d == 0 {
		return defaultValue
	}
	return time.Duration(d)
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	if s == "" || s == "null" {
		*d = 0
		return nil
	}

	dur, err := ParseDurationString(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}

	dur, err := ParseDurationString(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// String returns the duration as a string.
func (d Duration) String() string {
	return time.Duration(d).String()
}
