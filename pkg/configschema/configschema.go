// Package configschema publishes a JSON Schema for block definitions and
// validates raw definitions against it before normalisation.
package configschema

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	santhosh "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-blockgen/pkg/schema"
)

// SchemaID is the $id of the published definition schema.
const SchemaID = "https://goliatone.github.io/go-blockgen/block.schema.json"

// CodeSchemaViolation tags issues raised by schema validation.
const CodeSchemaViolation = "SCHEMA_VIOLATION"

var (
	compiledOnce sync.Once
	compiled     *santhosh.Schema
	compileErr   error
)

// Schema reflects schema.Block into a JSON Schema document. The template
// property also accepts the {"service": name} object form.
func Schema() ([]byte, error) {
	doc, err := document()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

func document() (map[string]any, error) {
	// Fields nest through repeater_fields, so definitions stay referenced.
	reflector := &jsonschema.Reflector{
		ExpandedStruct:             true,
		AllowAdditionalProperties:  true,
		RequiredFromJSONSchemaTags: true,
	}
	reflected := reflector.Reflect(&schema.Block{})
	reflected.ID = jsonschema.ID(SchemaID)
	reflected.Title = "Block definition"

	raw, err := json.Marshal(reflected)
	if err != nil {
		return nil, fmt.Errorf("configschema: encode reflected schema: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("configschema: decode reflected schema: %w", err)
	}

	if props, ok := doc["properties"].(map[string]any); ok {
		props["template"] = map[string]any{
			"oneOf": []any{
				map[string]any{"type": "string"},
				map[string]any{
					"type":       "object",
					"properties": map[string]any{"service": map[string]any{"type": "string"}},
					"required":   []any{"service"},
				},
			},
		}
	}
	return doc, nil
}

func compiledSchema() (*santhosh.Schema, error) {
	compiledOnce.Do(func() {
		raw, err := Schema()
		if err != nil {
			compileErr = err
			return
		}
		compiler := santhosh.NewCompiler()
		compiler.Draft = santhosh.Draft2020
		if err := compiler.AddResource(SchemaID, bytes.NewReader(raw)); err != nil {
			compileErr = fmt.Errorf("configschema: add resource: %w", err)
			return
		}
		compiled, compileErr = compiler.Compile(SchemaID)
		if compileErr != nil {
			compileErr = fmt.Errorf("configschema: compile: %w", compileErr)
		}
	})
	return compiled, compileErr
}

// Validate decodes a JSON or YAML definition and validates it. A payload
// that cannot be decoded yields a single issue at the root.
func Validate(raw []byte) []schema.Issue {
	cfg, err := schema.Decode(raw)
	if err != nil {
		return []schema.Issue{{Code: CodeSchemaViolation, Message: err.Error()}}
	}
	return ValidateConfig(cfg)
}

// ValidateConfig validates an already decoded definition. Issues are sorted
// by path.
func ValidateConfig(cfg schema.RawConfig) []schema.Issue {
	compiledDoc, err := compiledSchema()
	if err != nil {
		return []schema.Issue{{Code: CodeSchemaViolation, Message: err.Error()}}
	}

	// Round trip so YAML scalars arrive as JSON-native values.
	encoded, err := json.Marshal(cfg)
	if err != nil {
		return []schema.Issue{{Code: CodeSchemaViolation, Message: err.Error()}}
	}
	var instance any
	if err := json.Unmarshal(encoded, &instance); err != nil {
		return []schema.Issue{{Code: CodeSchemaViolation, Message: err.Error()}}
	}

	err = compiledDoc.Validate(instance)
	if err == nil {
		return nil
	}
	validationErr, ok := err.(*santhosh.ValidationError)
	if !ok {
		return []schema.Issue{{Code: CodeSchemaViolation, Message: err.Error()}}
	}

	var issues []schema.Issue
	var walk func(*santhosh.ValidationError)
	walk = func(node *santhosh.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, schema.Issue{
				Path:    issuePath(node.InstanceLocation),
				Code:    CodeSchemaViolation,
				Message: strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(validationErr)

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Path < issues[j].Path
	})
	return issues
}

// issuePath turns a JSON pointer into the dotted paths used by schema.Issue.
func issuePath(pointer string) string {
	pointer = strings.TrimPrefix(strings.TrimSpace(pointer), "#")
	pointer = strings.Trim(pointer, "/")
	if pointer == "" {
		return ""
	}
	return strings.ReplaceAll(pointer, "/", ".")
}
