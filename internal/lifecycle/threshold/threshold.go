// Package threshold evaluates pass/fail expressions such as "mean < 4ms" or
// "layout.p99 <= 2ms" against a benchmark result.
//
// The left-hand side is a path into the result's JSON form, resolved with
// gjson. Statistics are stored in milliseconds, so a duration on the
// right-hand side is converted to milliseconds before comparing. Clock
// fields (startTime, endTime, runTime) are stored in nanoseconds and are
// converted to milliseconds first.
package threshold

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/wesleyorama2/cyclebench/internal/lifecycle"
)

var expressionPattern = regexp.MustCompile(`^([\w.]+)\s*([<>=!]+)\s*(.+)$`)

var operators = map[string]bool{
	"<": true, "<=": true, ">": true, ">=": true, "==": true, "!=": true,
}

// nanosecondPaths hold time.Duration values in the result JSON.
var nanosecondPaths = map[string]bool{
	"startTime": true,
	"endTime":   true,
	"runTime":   true,
}

// Expression is a parsed threshold.
type Expression struct {
	Raw  string
	Path string
	Op   string

	// Value is the right-hand side. For durations it is in milliseconds.
	Value float64

	// IsDuration is set when the right-hand side was written as a duration.
	IsDuration bool

	// IsBool is set for true/false comparisons; Value is then 1 or 0.
	IsBool bool
}

// Result is the outcome of evaluating one expression.
type Result struct {
	Expression string `json:"expression" yaml:"expression"`
	Passed     bool   `json:"passed" yaml:"passed"`
	Value      string `json:"value" yaml:"value"`
	Message    string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Parse parses an expression like "p95 < 3ms".
func Parse(expr string) (Expression, error) {
	raw := strings.TrimSpace(expr)
	if raw == "" {
		return Expression{}, fmt.Errorf("threshold expression cannot be empty")
	}

	matches := expressionPattern.FindStringSubmatch(raw)
	if len(matches) != 4 {
		return Expression{}, fmt.Errorf("invalid expression format: %s", raw)
	}

	e := Expression{Raw: raw, Path: matches[1], Op: matches[2]}
	if !operators[e.Op] {
		return Expression{}, fmt.Errorf("invalid operator %q (want one of <, <=, >, >=, ==, !=)", e.Op)
	}

	valueStr := strings.TrimSpace(matches[3])
	switch valueStr {
	case "true", "false":
		if e.Op != "==" && e.Op != "!=" {
			return Expression{}, fmt.Errorf("boolean thresholds only support == and !=")
		}
		e.IsBool = true
		if valueStr == "true" {
			e.Value = 1
		}
		return e, nil
	}

	if f, err := strconv.ParseFloat(valueStr, 64); err == nil {
		e.Value = f
		return e, nil
	}

	d, err := time.ParseDuration(valueStr)
	if err != nil {
		return Expression{}, fmt.Errorf("invalid threshold value %q: want a number, a duration or a boolean", valueStr)
	}
	e.Value = lifecycle.Millis(d)
	e.IsDuration = true
	return e, nil
}

// Validate checks every expression and returns the first error.
func Validate(exprs []string) error {
	for i, expr := range exprs {
		if _, err := Parse(expr); err != nil {
			return fmt.Errorf("threshold[%d]: %w", i, err)
		}
	}
	return nil
}

// Evaluate checks every expression against r, in order.
func Evaluate(r *lifecycle.Result, exprs []string) ([]Result, error) {
	if len(exprs) == 0 {
		return nil, nil
	}

	doc, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}

	results := make([]Result, 0, len(exprs))
	for _, expr := range exprs {
		results = append(results, evaluate(doc, expr))
	}
	return results, nil
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

func evaluate(doc []byte, expr string) Result {
	result := Result{Expression: expr}

	e, err := Parse(expr)
	if err != nil {
		result.Message = fmt.Sprintf("failed to parse expression: %v", err)
		return result
	}

	field := gjson.GetBytes(doc, e.Path)
	if !field.Exists() {
		result.Message = fmt.Sprintf("unknown metric: %s", e.Path)
		return result
	}

	var actual float64
	switch field.Type {
	case gjson.Null:
		// NaN statistics serialise as null
		result.Value = "n/a"
		result.Message = fmt.Sprintf("%s has no data", e.Path)
		return result
	case gjson.True, gjson.False:
		if !e.IsBool {
			result.Message = fmt.Sprintf("%s is a boolean, threshold value must be true or false", e.Path)
			return result
		}
		if field.Bool() {
			actual = 1
		}
		result.Value = strconv.FormatBool(field.Bool())
	case gjson.Number:
		if e.IsBool {
			result.Message = fmt.Sprintf("%s is a number, threshold value must not be a boolean", e.Path)
			return result
		}
		actual = field.Float()
		if nanosecondPaths[e.Path] {
			actual = lifecycle.Millis(time.Duration(field.Int()))
		}
		result.Value = formatValue(actual, e.IsDuration)
	default:
		result.Message = fmt.Sprintf("%s is not a number", e.Path)
		return result
	}

	result.Passed = compareValues(actual, e.Op, e.Value)
	if !result.Passed {
		result.Message = fmt.Sprintf("%s is %s, threshold: %s %s",
			e.Path, result.Value, e.Op, formatThreshold(e))
	}
	return result
}

func formatValue(v float64, isDuration bool) string {
	if isDuration {
		return fmt.Sprintf("%.3fms", v)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatThreshold(e Expression) string {
	if e.IsBool {
		return strconv.FormatBool(e.Value != 0)
	}
	return formatValue(e.Value, e.IsDuration)
}

func compareValues(actual float64, op string, threshold float64) bool {
	switch op {
	case "<":
		return actual < threshold
	case "<=":
		return actual <= threshold
	case ">":
		return actual > threshold
	case ">=":
		return actual >= threshold
	case "==":
		return actual == threshold
	case "!=":
		return actual != threshold
	default:
		return false
	}
}
