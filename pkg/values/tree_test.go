package values

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSetThenGetRoundTrip(t *testing.T) {
	tree := Tree{}
	Set(tree, "a.b.c", 5)

	if got := Get(tree, "a.b.c", nil); got != 5 {
		t.Fatalf("expected 5, got %#v", got)
	}
	if got := Get(tree, "a.b.x", "dflt"); got != "dflt" {
		t.Fatalf("expected default for missing leaf, got %#v", got)
	}
}

func TestGetReturnsDefaultThroughScalar(t *testing.T) {
	tree := Tree{"title": "Hello"}

	if got := Get(tree, "title.text", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback when descending through scalar, got %#v", got)
	}
	if got := Get(nil, "title", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback for nil tree, got %#v", got)
	}
}

func TestSetReplacesScalarIntermediate(t *testing.T) {
	tree := Tree{"settings": "legacy"}
	Set(tree, "settings.layout", "card")

	want := Tree{"settings": map[string]any{"layout": "card"}}
	if diff := cmp.Diff(want, tree); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestSetKeepsSiblings(t *testing.T) {
	tree := Tree{}
	Set(tree, "content.title", "Hi")
	Set(tree, "content.body", "Text")
	Set(tree, "flag", true)

	want := Tree{
		"content": map[string]any{"title": "Hi", "body": "Text"},
		"flag":    true,
	}
	if diff := cmp.Diff(want, tree); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestLookupDistinguishesNilFromMissing(t *testing.T) {
	tree := Tree{"image": nil}

	if _, ok := Lookup(tree, "image"); !ok {
		t.Fatalf("expected explicit nil to resolve")
	}
	if _, ok := Lookup(tree, "missing"); ok {
		t.Fatalf("expected missing path to report false")
	}
}

func TestMergeDeepKeepsNestedSiblings(t *testing.T) {
	defaults := Tree{
		"style": map[string]any{"layout": "wide", "dark": false},
		"items": []any{"a"},
	}
	override := Tree{
		"style": map[string]any{"dark": true},
		"items": []any{"b", "c"},
	}

	got := MergeDeep(defaults, override)
	want := Tree{
		"style": map[string]any{"layout": "wide", "dark": true},
		"items": []any{"b", "c"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}

	got["style"].(map[string]any)["extra"] = 1
	if _, ok := override["style"].(map[string]any)["extra"]; ok {
		t.Fatalf("expected override map to stay untouched")
	}
}

func TestMergeDeepReplacesScalarWithMap(t *testing.T) {
	got := MergeDeep(Tree{"image": ""}, Tree{"image": map[string]any{"url": "/a.png"}})
	want := Tree{"image": map[string]any{"url": "/a.png"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestCloneIsDeep(t *testing.T) {
	src := Tree{"items": []any{map[string]any{"v": 1}}}
	cloned := Clone(src)
	cloned["items"].([]any)[0].(map[string]any)["v"] = 2

	if got := Get(src["items"].([]any)[0].(map[string]any), "v", nil); got != 1 {
		t.Fatalf("expected source untouched, got %#v", got)
	}
}
