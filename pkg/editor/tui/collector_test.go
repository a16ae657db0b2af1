package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-blockgen/pkg/fieldtypes"
	"github.com/goliatone/go-blockgen/pkg/schema"
	"github.com/goliatone/go-blockgen/pkg/values"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	textAreas    []string
	infoMessages []string
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
	textPos      int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, _ SelectConfig) ([]int, error) {
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func heroBlock() schema.Block {
	return schema.Block{
		Name:  "hero",
		Title: "Hero",
		Fields: []schema.Field{
			{Name: "heading", Type: fieldtypes.TypeText, Label: "Heading", AttrName: "heading", Validation: map[string]any{"required": true}},
			{Name: "divider", Type: fieldtypes.TypeText, Label: "Divider"},
		},
		Tabs: []schema.Tab{
			{
				Name: "settings",
				Fields: []schema.Field{
					{Name: "body", Type: fieldtypes.TypeTextarea, AttrName: "settings.body"},
					{Name: "count", Type: fieldtypes.TypeNumber, AttrName: "settings.count"},
					{Name: "show", Type: fieldtypes.TypeToggle, AttrName: "settings.show"},
					{Name: "layout", Type: fieldtypes.TypeSelect, AttrName: "settings.layout", Options: []schema.Option{
						{Label: "Wide", Value: "wide"},
						{Label: "Narrow", Value: "narrow"},
					}},
					{Name: "tags", Type: fieldtypes.TypeCheckbox, AttrName: "settings.tags", Options: []schema.Option{
						{Label: "A", Value: "a"},
						{Label: "B", Value: "b"},
						{Label: "C", Value: "c"},
					}},
					{Name: "inner", Type: fieldtypes.TypeInnerBlocks, AttrName: "settings.inner"},
				},
			},
		},
	}
}

func TestCollectorCollectsEveryAttribute(t *testing.T) {
	driver := &stubDriver{
		// empty heading is rejected by the required rule, then retried
		inputs:    []string{"", "Welcome", "nope", "3"},
		textAreas: []string{"Body copy"},
		confirm:   []bool{true},
		selectIdx: []int{1},
		multiIdx:  [][]int{{0, 2}},
	}
	collector := New(WithPromptDriver(driver))

	got, err := collector.Collect(context.Background(), heroBlock(), nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	want := values.Tree{
		"heading": "Welcome",
		"settings": map[string]any{
			"body":   "Body copy",
			"count":  float64(3),
			"show":   true,
			"layout": "narrow",
			"tags":   []any{"a", "c"},
			"inner":  "",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("collected values mismatch (-want +got):\n%s", diff)
	}
	if len(driver.infoMessages) != 2 {
		t.Fatalf("expected two validation messages, got %v", driver.infoMessages)
	}
	if !strings.Contains(driver.infoMessages[0], "heading") {
		t.Fatalf("expected heading message, got %q", driver.infoMessages[0])
	}
}

func TestCollectorRepeaterRows(t *testing.T) {
	block := schema.Block{
		Name: "list",
		Fields: []schema.Field{
			{
				Name:     "rows",
				Type:     fieldtypes.TypeRowRepeater,
				AttrName: "rows",
				RepeaterFields: []schema.Field{
					{Name: "label"},
					{Name: "enabled", Type: fieldtypes.TypeToggle},
				},
			},
			{Name: "pairs", Type: fieldtypes.TypeAttributesRepeater, AttrName: "pairs"},
		},
	}
	driver := &stubDriver{
		inputs:  []string{"First", "data-id", "7"},
		confirm: []bool{true, false, false, true, false},
	}
	got, err := New(WithPromptDriver(driver)).Collect(context.Background(), block, nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	want := values.Tree{
		"rows":  []any{map[string]any{"label": "First", "enabled": false}},
		"pairs": []any{map[string]any{"key": "data-id", "value": "7"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("repeater values mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectorKeepsCallerValuesUntouched(t *testing.T) {
	block := schema.Block{
		Name: "media",
		Fields: []schema.Field{
			{Name: "image", Type: fieldtypes.TypeImage, AttrName: "image"},
		},
	}
	current := values.Tree{"image": map[string]any{"id": 4, "url": "old.png"}}
	driver := &stubDriver{inputs: []string{"new.png"}}

	got, err := New(WithPromptDriver(driver)).Collect(context.Background(), block, current)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if url := values.Get(got, "image.url", nil); url != "new.png" {
		t.Fatalf("expected new url, got %v", url)
	}
	if id := values.Get(got, "image.id", nil); id != 4 {
		t.Fatalf("expected media id to survive, got %v", id)
	}
	if url := values.Get(current, "image.url", nil); url != "old.png" {
		t.Fatalf("caller tree mutated: %v", url)
	}
}

func TestCollectorRenderPretty(t *testing.T) {
	block := schema.Block{
		Name:   "note",
		Fields: []schema.Field{{Name: "text", AttrName: "note.text"}},
	}
	driver := &stubDriver{inputs: []string{"hello"}}
	collector := New(
		WithPromptDriver(driver),
		WithOutputFormat(OutputFormatPrettyText),
		WithSubmitTransformer(func(in map[string]any) (map[string]any, error) {
			in["extra"] = true
			return in, nil
		}),
	)

	out, err := collector.Render(context.Background(), block, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got, want := string(out), "extra=true\nnote.text=hello\n"; got != want {
		t.Fatalf("unexpected output %q, want %q", got, want)
	}
	if collector.ContentType() != "text/plain" {
		t.Fatalf("unexpected content type %s", collector.ContentType())
	}
}

func TestCollectorPropagatesAbort(t *testing.T) {
	block := schema.Block{Name: "x", Fields: []schema.Field{{Name: "a", AttrName: "a"}}}
	driver := &stubDriver{}
	_, err := New(WithPromptDriver(driver)).Collect(context.Background(), block, nil)
	if err == nil {
		t.Fatalf("expected error when driver has no scripted input")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(WithPromptDriver(driver)).Collect(ctx, block, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
