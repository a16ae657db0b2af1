package attributes

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	json "github.com/goccy/go-json"

	"github.com/goliatone/go-blockgen/pkg/fieldtypes"
	"github.com/goliatone/go-blockgen/pkg/values"
)

// JSONSchema describes the attribute tree of set as an OpenAPI schema object.
// Dotted paths become nested objects; unknown attributes are allowed so host
// supplied keys such as className pass through.
func JSONSchema(set Set) *openapi3.Schema {
	root := newObject()
	for _, path := range set.Paths() {
		decl := set[path]
		segments := strings.Split(path, ".")
		parent := root
		for _, segment := range segments[:len(segments)-1] {
			parent = childObject(parent, segment)
		}
		leaf := storageSchema(decl.Type)
		if decl.Default != nil {
			leaf.Default = decl.Default
		}
		parent.Properties[segments[len(segments)-1]] = openapi3.NewSchemaRef("", leaf)
	}
	return root
}

// ValidateValues checks tree against the schema derived from set.
func ValidateValues(set Set, tree values.Tree) error {
	doc, err := jsonNative(tree)
	if err != nil {
		return fmt.Errorf("attributes: encode values: %w", err)
	}
	if err := JSONSchema(set).VisitJSON(doc, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("attributes: %w", err)
	}
	return nil
}

func newObject() *openapi3.Schema {
	obj := openapi3.NewObjectSchema().WithAnyAdditionalProperties()
	obj.Properties = make(openapi3.Schemas)
	return obj
}

func childObject(parent *openapi3.Schema, name string) *openapi3.Schema {
	if ref, ok := parent.Properties[name]; ok && ref != nil && ref.Value != nil && ref.Value.Properties != nil {
		return ref.Value
	}
	child := newObject()
	parent.Properties[name] = openapi3.NewSchemaRef("", child)
	return child
}

func storageSchema(storage fieldtypes.Storage) *openapi3.Schema {
	switch storage {
	case fieldtypes.StorageNumber:
		return openapi3.NewFloat64Schema()
	case fieldtypes.StorageBoolean:
		return openapi3.NewBoolSchema()
	case fieldtypes.StorageArray:
		return openapi3.NewArraySchema()
	case fieldtypes.StorageObject:
		// media attributes hold an object once chosen and an empty string
		// before that
		return openapi3.NewAnyOfSchema(
			openapi3.NewObjectSchema().WithAnyAdditionalProperties(),
			openapi3.NewStringSchema().WithMaxLength(0),
		).WithNullable()
	default:
		return openapi3.NewStringSchema()
	}
}

// jsonNative round-trips tree through JSON so the validator only sees
// map[string]any, []any, float64, string, bool and nil.
func jsonNative(tree values.Tree) (any, error) {
	if tree == nil {
		return map[string]any{}, nil
	}
	payload, err := json.Marshal(tree)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
