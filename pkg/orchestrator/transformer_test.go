package orchestrator

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-blockgen/pkg/source"
)

const presetDocument = `{
  "defaults": {"category": "marketing", "title": "ignored"},
  "modules": {
    "card": {
      "set": {"description": "Promo card"},
      "render_service": "card.render",
      "fields": {
        "content.heading": {"label": "Headline", "default": "Hi", "rename": "headline"}
      }
    }
  }
}`

func TestJSONPresetTransformer(t *testing.T) {
	transformer, err := NewJSONPresetTransformerFromFS(fstest.MapFS{
		"preset.json": &fstest.MapFile{Data: []byte(presetDocument)},
	}, "preset.json")
	if err != nil {
		t.Fatalf("load preset: %v", err)
	}

	original := cardRecord()
	rec := original
	if err := transformer.Transform(context.Background(), &rec); err != nil {
		t.Fatalf("transform: %v", err)
	}

	if rec.Config["category"] != "marketing" {
		t.Fatalf("expected default category, got %v", rec.Config["category"])
	}
	if rec.Config["title"] != "Card" {
		t.Fatalf("expected defaults not to overwrite title, got %v", rec.Config["title"])
	}
	if rec.Config["description"] != "Promo card" || rec.RenderService != "card.render" {
		t.Fatalf("expected module patch applied, got %+v", rec)
	}

	tab := rec.Config["tabs"].([]any)[0].(map[string]any)
	field := tab["fields"].([]any)[0].(map[string]any)
	if field["label"] != "Headline" || field["default"] != "Hi" || field["attr_name"] != "headline" {
		t.Fatalf("unexpected patched field: %v", field)
	}

	origTab := original.Config["tabs"].([]any)[0].(map[string]any)
	origField := origTab["fields"].([]any)[0].(map[string]any)
	if origField["label"] != "Heading" || original.Config["category"] != nil {
		t.Fatalf("expected source record untouched, got %v", original.Config)
	}
}

func TestJSONPresetTransformerBareFieldName(t *testing.T) {
	transformer, err := NewJSONPresetTransformer([]byte(`{"modules":{"card":{"fields":{"heading":{"placeholder":"Type"}}}}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	rec := cardRecord()
	if err := transformer.Transform(context.Background(), &rec); err != nil {
		t.Fatalf("transform: %v", err)
	}
	tab := rec.Config["tabs"].([]any)[0].(map[string]any)
	field := tab["fields"].([]any)[0].(map[string]any)
	if field["placeholder"] != "Type" {
		t.Fatalf("expected placeholder patch, got %v", field)
	}
}

func TestJSONPresetTransformerErrors(t *testing.T) {
	if _, err := NewJSONPresetTransformer([]byte("  ")); err == nil {
		t.Fatalf("expected empty document error")
	}
	if _, err := NewJSONPresetTransformer([]byte("{")); err == nil {
		t.Fatalf("expected parse error")
	}

	transformer, err := NewJSONPresetTransformer([]byte(`{"modules":{"card":{"fields":{"content.missing":{"label":"x"}}}}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	rec := cardRecord()
	if err := transformer.Transform(context.Background(), &rec); err == nil {
		t.Fatalf("expected missing field error")
	}
}

func TestChain(t *testing.T) {
	var calls []string
	step := func(name string) Transformer {
		return TransformerFunc(func(context.Context, *source.Record) error {
			calls = append(calls, name)
			return nil
		})
	}
	rec := cardRecord()
	if err := Chain(step("a"), nil, step("b")).Transform(context.Background(), &rec); err != nil {
		t.Fatalf("chain: %v", err)
	}
	if len(calls) != 2 || calls[0] != "a" || calls[1] != "b" {
		t.Fatalf("unexpected call order %v", calls)
	}
}
