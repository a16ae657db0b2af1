package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-blockgen/pkg/schema"
	"github.com/goliatone/go-blockgen/pkg/source"
)

func newDispatcher(t *testing.T, ns Namespace) (*Dispatcher, *Collection) {
	t.Helper()
	collection := NewCollection()
	d, err := NewDispatcher(ns, collection)
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}
	return d, collection
}

func TestDispatcherRegisterRecord(t *testing.T) {
	d, collection := newDispatcher(t, NamespaceBlocks)

	content := `
		{
			"config": {"name": "hero", "title": "Hero"},
			"controls_service": "hero_controls",
			"render_service": "hero_render"
		}
	`
	out, err := d.Handle(context.Background(), "gt_blocks.register", map[string]string{"module": "landing"}, content)
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}

	want := []source.Record{{
		Module:          "landing",
		Kind:            schema.KindBlock,
		Config:          schema.RawConfig{"name": "hero", "title": "Hero"},
		ControlsService: "hero_controls",
		RenderService:   "hero_render",
	}}
	if diff := cmp.Diff(want, collection.Records(), cmpopts.IgnoreFields(source.Record{}, "Origin")); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestDispatcherRegisterBareDefinitionAsWidget(t *testing.T) {
	d, collection := newDispatcher(t, NamespaceWidgets)

	if _, err := d.Handle(context.Background(), "element_widgets.register", nil, `{"name": "counter", "title": "Counter"}`); err != nil {
		t.Fatalf("handle: %v", err)
	}
	records := collection.Records()
	if len(records) != 1 {
		t.Fatalf("expected one record, got %d", len(records))
	}
	if records[0].Kind != schema.KindWidget || records[0].Module != "counter" {
		t.Fatalf("unexpected record %+v", records[0])
	}
	if records[0].Origin == nil || records[0].Origin.Kind() != schema.OriginKindInline {
		t.Fatalf("expected inline origin, got %+v", records[0].Origin)
	}
}

func TestDispatcherRejectsBadTags(t *testing.T) {
	d, collection := newDispatcher(t, NamespaceBlocks)
	ctx := context.Background()

	cases := []struct {
		tag  string
		want error
	}{
		{tag: "gt_blocks", want: ErrInvalidTag},
		{tag: "gt_blocks.register.extra", want: ErrInvalidTag},
		{tag: "element_widgets.register", want: ErrInvalidTag},
		{tag: "gt_blocks.unregister", want: ErrUnknownAction},
	}
	for _, tc := range cases {
		if _, err := d.Handle(ctx, tc.tag, nil, `{"name":"x","title":"X"}`); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.tag, tc.want, err)
		}
	}
	if collection.Len() != 0 {
		t.Fatalf("expected rejected tags to collect nothing")
	}
}

func TestDispatcherRejectsInvalidContent(t *testing.T) {
	d, collection := newDispatcher(t, NamespaceBlocks)

	_, err := d.Handle(context.Background(), "gt_blocks.register", nil, "{not json")
	if !errors.Is(err, schema.ErrInvalidJSON) {
		t.Fatalf("expected ErrInvalidJSON, got %v", err)
	}
	if collection.Len() != 0 {
		t.Fatalf("expected invalid content to collect nothing")
	}
}

func TestParseAction(t *testing.T) {
	if got, err := ParseAction(" Register "); err != nil || got != ActionRegister {
		t.Fatalf("expected register, got %q (%v)", got, err)
	}
	if _, err := ParseAction("explode"); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}

func TestCollectionIsSource(t *testing.T) {
	collection := NewCollection()
	collection.Add(source.Record{Module: "a"})

	records, err := collection.Load(context.Background())
	if err != nil || len(records) != 1 {
		t.Fatalf("unexpected load result %+v (%v)", records, err)
	}
	collection.Reset()
	if collection.Len() != 0 {
		t.Fatalf("expected reset collection to be empty")
	}
}
