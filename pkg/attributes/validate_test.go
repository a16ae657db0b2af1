package attributes

import (
	"testing"

	"github.com/goliatone/go-blockgen/pkg/fieldtypes"
	"github.com/goliatone/go-blockgen/pkg/schema"
	"github.com/goliatone/go-blockgen/pkg/values"
)

func TestJSONSchemaNestsDottedPaths(t *testing.T) {
	t.Parallel()

	doc := JSONSchema(Set{
		"title":           {Type: fieldtypes.StorageString, Default: ""},
		"settings.layout": {Type: fieldtypes.StorageString, Default: "standard"},
	})

	settings, ok := doc.Properties["settings"]
	if !ok || settings.Value == nil {
		t.Fatalf("expected nested settings object, got %+v", doc.Properties)
	}
	layout, ok := settings.Value.Properties["layout"]
	if !ok || layout.Value.Default != "standard" {
		t.Fatalf("expected layout default, got %+v", settings.Value.Properties)
	}
}

func TestValidateValues(t *testing.T) {
	t.Parallel()

	set := Set{
		"title":      {Type: fieldtypes.StorageString, Default: ""},
		"count":      {Type: fieldtypes.StorageNumber, Default: 0},
		"flags.show": {Type: fieldtypes.StorageBoolean, Default: false},
		"items":      {Type: fieldtypes.StorageArray, Default: []any{}},
	}

	valid := values.Tree{
		"title":     "Hello",
		"count":     2,
		"flags":     map[string]any{"show": true},
		"items":     []string{"a", "b"},
		"className": "extra",
	}
	if err := ValidateValues(set, valid); err != nil {
		t.Fatalf("expected valid tree, got %v", err)
	}

	invalid := values.Tree{"title": 5, "flags": map[string]any{"show": "yes"}}
	if err := ValidateValues(set, invalid); err == nil {
		t.Fatal("expected type mismatch error")
	}
}

func TestValidateFieldRules(t *testing.T) {
	t.Parallel()

	block := schema.Block{Fields: []schema.Field{
		{Name: "t", Type: fieldtypes.TypeTitle, AttrName: "t", Validation: map[string]any{"required": true, "maxLength": 5}},
		{Name: "n", Type: fieldtypes.TypeNumber, AttrName: "n", Validation: map[string]any{"min": 1, "max": 10}},
		{Name: "code", Type: fieldtypes.TypeText, AttrName: "code", Validation: map[string]any{"pattern": "^[A-Z]+$"}},
		{Name: "free", Type: fieldtypes.TypeText, AttrName: "free"},
	}}

	if issues := ValidateFieldRules(block, values.Tree{"t": "Hey", "n": 4, "code": "ABC"}); len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}

	issues := ValidateFieldRules(block, values.Tree{"t": "", "n": 40.0, "code": "abc"})
	paths := map[string]bool{}
	for _, issue := range issues {
		paths[issue.Path] = true
	}
	for _, path := range []string{"t", "n", "code"} {
		if !paths[path] {
			t.Fatalf("expected issue at %s, got %v", path, issues)
		}
	}
	if paths["free"] {
		t.Fatal("fields without rules must not report issues")
	}
}

func TestValidateFieldRulesReportsUnusableRule(t *testing.T) {
	t.Parallel()

	block := schema.Block{Fields: []schema.Field{
		{Name: "n", Type: fieldtypes.TypeNumber, AttrName: "n", Validation: map[string]any{"min": "lots"}},
	}}
	issues := ValidateFieldRules(block, values.Tree{"n": 1})
	if len(issues) != 1 || issues[0].Code != "blockgen.validation.rule_invalid" {
		t.Fatalf("expected rule_invalid issue, got %v", issues)
	}
}
