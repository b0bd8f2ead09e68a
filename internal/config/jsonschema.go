package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed suite.schema.json
var suiteSchema string

const suiteSchemaURL = "suite.schema.json"

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// Schema returns the JSON Schema suite files are checked against.
func Schema() string {
	return suiteSchema
}

func compiled() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(suiteSchemaURL, strings.NewReader(suiteSchema)); err != nil {
			compileErr = fmt.Errorf("invalid suite schema: %w", err)
			return
		}
		compiledSchema, compileErr = compiler.Compile(suiteSchemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("invalid suite schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// ValidateSchema checks a raw suite document against the suite schema. YAML
// documents are converted to their JSON form first.
func ValidateSchema(data []byte, path string) error {
	schema, err := compiled()
	if err != nil {
		return err
	}

	doc, err := decodeDocument(data, path)
	if err != nil {
		return err
	}

	if err := schema.Validate(doc); err != nil {
		return &ValidationErrors{Errors: schemaErrors(err)}
	}
	return nil
}

// decodeDocument turns either format into the generic values the schema
// validator understands.
func decodeDocument(data []byte, path string) (interface{}, error) {
	raw := data
	if strings.ToLower(filepath.Ext(path)) != ".json" {
		var node interface{}
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
		var err error
		if raw, err = json.Marshal(node); err != nil {
			return nil, fmt.Errorf("failed to convert YAML config: %w", err)
		}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON config: %w", err)
	}
	return doc, nil
}

func schemaErrors(err error) []*ValidationError {
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []*ValidationError{{Message: err.Error()}}
	}

	var out []*ValidationError
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			out = append(out, &ValidationError{
				Field:   pointerToField(e.InstanceLocation),
				Message: e.Message,
			})
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(verr)
	return out
}

// pointerToField turns "/runs/0/samples" into "runs[0].samples".
func pointerToField(ptr string) string {
	var sb strings.Builder
	for _, part := range strings.Split(strings.TrimPrefix(ptr, "/"), "/") {
		if part == "" {
			continue
		}
		if isIndex(part) {
			sb.WriteString("[" + part + "]")
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(part)
	}
	return sb.String()
}

func isIndex(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
