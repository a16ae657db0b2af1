package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-blockgen/internal/logging"
	"github.com/goliatone/go-blockgen/pkg/registry"
	"github.com/goliatone/go-blockgen/pkg/schema"
	"github.com/goliatone/go-blockgen/pkg/source"
	"github.com/goliatone/go-blockgen/pkg/values"
)

func cardRecord() source.Record {
	return source.Record{
		Module: "card",
		Config: schema.RawConfig{
			"name":  "card",
			"title": "Card",
			"tabs": []any{
				map[string]any{
					"name":  "content",
					"title": "Content",
					"fields": []any{
						map[string]any{"name": "heading", "type": "text", "label": "Heading", "attr_name": "heading", "default": "Hello"},
					},
				},
			},
			"template": "<h3>{{heading}}</h3>",
		},
	}
}

func TestOrchestratorLoadAndGenerate(t *testing.T) {
	recorder := logging.NewRecorder()
	failing := source.Func(func(context.Context) ([]source.Record, error) {
		return nil, errors.New("boom")
	})
	broken := source.Record{Module: "broken", Config: schema.RawConfig{"name": "broken"}}

	orch := New(
		WithLoggerProvider(recorder),
		WithSources(source.Static(cardRecord(), broken), failing),
	)

	result, err := orch.Load(context.Background())
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected joined source error, got %v", err)
	}
	if diff := cmp.Diff([]string{"card"}, result.Registered); diff != "" {
		t.Fatalf("registered mismatch (-want +got):\n%s", diff)
	}
	if len(result.Failed) != 1 || result.Failed[0].Module != "broken" {
		t.Fatalf("expected broken record to fail, got %+v", result.Failed)
	}
	if !recorder.Has("error", "orchestrator.source.failed") {
		t.Fatalf("expected source failure log, got:\n%s", recorder.String())
	}

	out, err := orch.Generate(context.Background(), Request{
		Block:      "dgb/card",
		Attributes: values.Tree{"heading": "Hi & bye"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(out) != "<h3>Hi &amp; bye</h3>" {
		t.Fatalf("unexpected output %q", out)
	}

	if _, err := orch.Generate(context.Background(), Request{Block: "missing"}); err == nil {
		t.Fatalf("expected unknown block error")
	}
	if _, err := orch.Generate(context.Background(), Request{}); err == nil {
		t.Fatalf("expected missing block name error")
	}
}

func TestOrchestratorOutputs(t *testing.T) {
	orch := New(WithSources(source.Static(cardRecord())))
	if _, err := orch.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	manifest := orch.Manifest()
	if _, ok := manifest.Blocks["card"]; !ok {
		t.Fatalf("expected card in manifest: %+v", manifest)
	}

	panel, err := orch.Panel(context.Background(), "card", values.Tree{"heading": "Now"})
	if err != nil {
		t.Fatalf("panel: %v", err)
	}
	if !strings.Contains(panel, `value="Now"`) {
		t.Fatalf("expected current value in panel:\n%s", panel)
	}

	doc, err := orch.Docs("card")
	if err != nil {
		t.Fatalf("docs: %v", err)
	}
	if !strings.Contains(doc, "### Heading") {
		t.Fatalf("expected field section in docs:\n%s", doc)
	}

	if _, err := orch.Panel(context.Background(), "missing", nil); err == nil {
		t.Fatalf("expected panel error for unknown block")
	}
	if _, err := orch.Docs("missing"); err == nil {
		t.Fatalf("expected docs error for unknown block")
	}
}

func TestOrchestratorUsesInjectedRegistry(t *testing.T) {
	reg := registry.New()
	orch := New(WithRegistry(reg), WithSources(source.Static(cardRecord())))
	if _, err := orch.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if orch.Registry() != reg || reg.Len() != 1 {
		t.Fatalf("expected injected registry to receive the block")
	}
}

func TestOrchestratorTransformerFailureSkipsRecord(t *testing.T) {
	reject := TransformerFunc(func(_ context.Context, rec *source.Record) error {
		if rec.Module == "card" {
			return errors.New("nope")
		}
		return nil
	})
	orch := New(WithSources(source.Static(cardRecord())), WithTransformer(reject))
	result, err := orch.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(result.Registered) != 0 || len(result.Failed) != 1 {
		t.Fatalf("expected transform failure, got %+v", result)
	}
}

func TestOrchestratorLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	orch := New(WithSources(source.Static(cardRecord())))
	if _, err := orch.Load(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
