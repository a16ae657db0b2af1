package attributes

import (
	"sort"
	"strings"

	"github.com/goliatone/go-blockgen/pkg/fieldtypes"
	"github.com/goliatone/go-blockgen/pkg/schema"
	"github.com/goliatone/go-blockgen/pkg/values"
)

// Declaration is the storage type and default of one attribute.
type Declaration struct {
	Type    fieldtypes.Storage `json:"type"`
	Default any                `json:"default"`
}

// Set maps attribute paths to declarations.
type Set map[string]Declaration

// Paths returns the declared attribute paths sorted lexically.
func (s Set) Paths() []string {
	out := make([]string, 0, len(s))
	for path := range s {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

// Defaults returns a fresh tree holding every declaration default at its
// dotted path.
func (s Set) Defaults() values.Tree {
	tree := make(values.Tree, len(s))
	for _, path := range s.Paths() {
		values.Set(tree, path, cloneDefault(s[path].Default))
	}
	return tree
}

// Compiled is the outcome of compiling a block: the declarations plus the
// fields skipped because their type tag is not registered.
type Compiled struct {
	Set     Set
	Unknown []schema.Field
}

// Build compiles block into attribute declarations.
func Build(block schema.Block, types *fieldtypes.Registry) Set {
	return Compile(block, types).Set
}

// Compile walks the top-level fields followed by every tab's fields. Fields
// without attr_name are presentational and skipped; fields with an unknown
// type are skipped and reported. When two fields share an attr_name the later
// one wins.
func Compile(block schema.Block, types *fieldtypes.Registry) Compiled {
	if types == nil {
		types = fieldtypes.NewRegistry()
	}

	out := Compiled{Set: make(Set)}
	for _, field := range block.AllFields() {
		attr := strings.TrimSpace(field.AttrName)
		if attr == "" {
			continue
		}
		tag := field.Type
		if strings.TrimSpace(tag) == "" {
			tag = schema.DefaultFieldType
		}
		ft, ok := types.Resolve(tag)
		if !ok {
			out.Unknown = append(out.Unknown, field)
			continue
		}
		out.Set[attr] = Declaration{
			Type:    ft.Storage,
			Default: declarationDefault(field.Default, ft.Storage),
		}
	}
	return out
}

func declarationDefault(declared any, storage fieldtypes.Storage) any {
	if declared != nil {
		return declared
	}
	return storage.AttributeDefault()
}

func cloneDefault(value any) any {
	switch typed := value.(type) {
	case []any:
		return append([]any{}, typed...)
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[k] = v
		}
		return out
	default:
		return value
	}
}
