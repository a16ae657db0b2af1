package schema

import (
	"strings"
	"testing"

	"github.com/goliatone/go-blockgen/pkg/fieldtypes"
)

func issueCodes(issues []Issue) map[string]string {
	out := make(map[string]string, len(issues))
	for _, issue := range issues {
		out[issue.Path] = issue.Code
	}
	return out
}

func TestValidateFlagsOptionTypesWithoutOptions(t *testing.T) {
	t.Parallel()

	for _, tag := range []string{fieldtypes.TypeSelect, fieldtypes.TypeRadio, fieldtypes.TypeCheckbox} {
		tag := tag
		t.Run(tag, func(t *testing.T) {
			t.Parallel()
			block := Block{Name: "card", Title: "Card", Fields: []Field{
				{Name: "choice", Type: tag, AttrName: "choice"},
			}}
			codes := issueCodes(Validate(block, nil))
			if codes["fields[0].options"] != "blockgen.field.options_required" {
				t.Fatalf("expected options issue for %s, got %v", tag, codes)
			}
		})
	}
}

func TestValidateAcceptsCompleteDefinition(t *testing.T) {
	t.Parallel()

	block := Scaffold("Feature Card", "Feature Card", ScaffoldOptions{WithTabs: true, WithImage: true, WithRepeater: true})
	if issues := Validate(block, nil); len(issues) != 0 {
		t.Fatalf("expected scaffold to validate, got %v", issues)
	}
}

func TestValidateReportsStructuralProblems(t *testing.T) {
	t.Parallel()

	block := Block{
		Name: "Bad Name",
		Tabs: []Tab{{Fields: []Field{
			{Name: "rows", Type: fieldtypes.TypeRowRepeater, AttrName: "rows"},
			{Name: "mystery", Type: "hologram", AttrName: "mystery"},
			{Type: fieldtypes.TypeText},
			{Name: "inner", Type: fieldtypes.TypeInnerBlocks},
		}}},
		EnqueueStyles: []Asset{{Handle: "card", Src: "/card.css", Version: "latest"}},
	}

	codes := issueCodes(Validate(block, nil))
	want := map[string]string{
		"name":                              "blockgen.block.name_format",
		"title":                             "blockgen.block.title_required",
		"tabs[0].name":                      "blockgen.tab.name_required",
		"tabs[0].fields[0].repeater_fields": "blockgen.field.repeater_fields_required",
		"tabs[0].fields[1].type":            CodeUnknownFieldType,
		"tabs[0].fields[2].name":            "blockgen.field.name_required",
		"tabs[0].fields[2].attr_name":       "blockgen.field.attr_name_required",
		"enqueue_styles[0].version":         "blockgen.asset.version_invalid",
	}
	for path, code := range want {
		if codes[path] != code {
			t.Fatalf("expected %s at %s, got %v", code, path, codes)
		}
	}
	if _, ok := codes["tabs[0].fields[3].attr_name"]; ok {
		t.Fatal("presentational fields must not require attr_name")
	}
}

func TestValidateRepeaterSubFieldsKeyedByName(t *testing.T) {
	t.Parallel()

	block := Block{Name: "quotes", Title: "Quotes", Fields: []Field{
		{Name: "rows", Type: fieldtypes.TypeRowRepeater, AttrName: "rows", RepeaterFields: []Field{
			{Name: "author", Type: fieldtypes.TypeText},
			{Type: fieldtypes.TypeText},
		}},
	}}
	codes := issueCodes(Validate(block, nil))
	if len(codes) != 1 || codes["fields[0].repeater_fields[1].name"] != "blockgen.field.name_required" {
		t.Fatalf("expected only the unnamed sub-field to be flagged, got %v", codes)
	}
}

func TestValidAssetVersion(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"1.0.0":  true,
		"v2.1.3": true,
		"1.2":    true,
		"":       false,
		"latest": false,
	}
	for input, want := range cases {
		if got := ValidAssetVersion(input); got != want {
			t.Fatalf("ValidAssetVersion(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestIssuesError(t *testing.T) {
	t.Parallel()

	if IssuesError(nil) != nil {
		t.Fatal("expected nil error for no issues")
	}
	err := IssuesError([]Issue{{Path: "name", Message: "required"}})
	if err == nil || !strings.Contains(err.Error(), "name: required") {
		t.Fatalf("unexpected error %v", err)
	}
}
