package config

import (
	"fmt"
	"strings"

	"github.com/wesleyorama2/cyclebench/internal/lifecycle"
	"github.com/wesleyorama2/cyclebench/internal/lifecycle/threshold"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors struct {
	Errors []*ValidationError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Add adds an error to the collection.
func (e *ValidationErrors) Add(field, message string) {
	e.Errors = append(e.Errors, &ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are any errors.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

var validFormats = map[string]bool{"text": true, "json": true, "yaml": true}

// Validate validates the entire suite.
//
// Returns nil if valid, or a ValidationErrors containing all validation errors.
func (c *SuiteConfig) Validate() error {
	errs := &ValidationErrors{}

	validateSettings(&c.Settings, errs)

	if len(c.Runs) == 0 {
		errs.Add("runs", "at least one run is required")
	}

	seen := make(map[string]int)
	for i, run := range c.Runs {
		prefix := fmt.Sprintf("runs[%d]", i)
		if run == nil {
			errs.Add(prefix, "run cannot be empty")
			continue
		}
		if run.Name != "" {
			if first, dup := seen[run.Name]; dup {
				errs.Add(prefix+".name", fmt.Sprintf("duplicate run name %q (also runs[%d])", run.Name, first))
			} else {
				seen[run.Name] = i
			}
		}
		validateRun(prefix, run, errs)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func validateSettings(s *Settings, errs *ValidationErrors) {
	if s.Timeout < 0 {
		errs.Add("settings.timeout", "cannot be negative")
	}
	if s.Samples < 0 {
		errs.Add("settings.samples", "cannot be negative")
	}
	if s.Format != "" && !validFormats[s.Format] {
		errs.Add("settings.format", fmt.Sprintf("unknown format: %s (want text, json or yaml)", s.Format))
	}
}

func validateRun(prefix string, run *RunConfig, errs *ValidationErrors) {
	if run.Kind == "" {
		errs.Add(prefix+".kind", "kind is required")
	} else if _, err := lifecycle.ParseKind(run.Kind); err != nil {
		errs.Add(prefix+".kind", err.Error())
	}

	if run.Samples < 0 {
		errs.Add(prefix+".samples", "samples must be greater than 0")
	}
	if run.Timeout < 0 {
		errs.Add(prefix+".timeout", "cannot be negative")
	}

	if strings.TrimSpace(run.Component.Name) == "" {
		errs.Add(prefix+".component.name", "component name is required")
	}

	for i, expr := range run.Thresholds {
		if _, err := threshold.Parse(expr); err != nil {
			errs.Add(fmt.Sprintf("%s.thresholds[%d]", prefix, i), err.Error())
		}
	}
}
