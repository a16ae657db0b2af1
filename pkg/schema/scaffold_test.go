package schema

import (
	"strings"
	"testing"
)

func TestSanitizeName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Hero Banner":        "hero-banner",
		"  my_block  ":       "my-block",
		"--Pricing__Table--": "pricing-table",
		"card":               "card",
	}
	for input, want := range cases {
		if got := SanitizeName(input); got != want {
			t.Fatalf("SanitizeName(%q) = %q, want %q", input, got, want)
		}
		if !ValidName(SanitizeName(input)) {
			t.Fatalf("SanitizeName(%q) produced invalid name", input)
		}
	}
}

func TestScaffoldWithoutTabs(t *testing.T) {
	t.Parallel()

	block := Scaffold("card", "Card", ScaffoldOptions{WithImage: true})
	if len(block.Tabs) != 0 {
		t.Fatalf("expected no tabs, got %d", len(block.Tabs))
	}
	if len(block.Fields) != 3 || block.Fields[2].AttrName != "image" {
		t.Fatalf("unexpected fields %+v", block.Fields)
	}
	for _, fragment := range []string{`<div class="card">`, "{{title}}", "{{#if image}}", "{{image.url}}"} {
		if !strings.Contains(block.Template, fragment) {
			t.Fatalf("template missing %q:\n%s", fragment, block.Template)
		}
	}
	if block.Icon != DefaultIcon || block.Category != DefaultCategory {
		t.Fatalf("expected defaults, got %q/%q", block.Icon, block.Category)
	}
}

func TestScaffoldWithTabsPrefixesAttributes(t *testing.T) {
	t.Parallel()

	block := Scaffold("card", "Card", ScaffoldOptions{WithTabs: true})
	if len(block.Tabs) != 2 {
		t.Fatalf("expected content and settings tabs, got %d", len(block.Tabs))
	}
	if got := block.Tabs[0].Fields[0].AttrName; got != "content.title" {
		t.Fatalf("expected content.title attr, got %q", got)
	}
	if !strings.Contains(block.Template, "{{content.title}}") {
		t.Fatalf("template should reference tab paths:\n%s", block.Template)
	}
	if block.Tabs[1].Fields[0].Default != "standard" {
		t.Fatalf("expected layout default, got %v", block.Tabs[1].Fields[0].Default)
	}
}

func TestCloneRenamesTemplateAndCopiesFields(t *testing.T) {
	t.Parallel()

	source := Scaffold("card", "Card", ScaffoldOptions{WithTabs: true})
	cloned := Clone(source, "promo-card", "Promo Card")

	if cloned.Name != "promo-card" || cloned.Title != "Promo Card" {
		t.Fatalf("unexpected identity %q/%q", cloned.Name, cloned.Title)
	}
	if !strings.Contains(cloned.Template, `class="promo-card"`) {
		t.Fatalf("expected template class renamed:\n%s", cloned.Template)
	}

	cloned.Tabs[0].Fields[0].Label = "Changed"
	if source.Tabs[0].Fields[0].Label == "Changed" {
		t.Fatal("clone must not share field storage with the source")
	}
}
