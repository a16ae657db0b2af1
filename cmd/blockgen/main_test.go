package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-blockgen/pkg/editor/tui"
	"github.com/goliatone/go-blockgen/pkg/schema"
)

type scriptedDriver struct {
	tui.PromptDriver
	inputs   []string
	confirms []bool
}

func (d *scriptedDriver) Input(_ context.Context, cfg tui.InputConfig) (string, error) {
	val := d.inputs[0]
	d.inputs = d.inputs[1:]
	if cfg.Validator != nil {
		if err := cfg.Validator(val); err != nil {
			return "", err
		}
	}
	return val, nil
}

func (d *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	val := d.confirms[0]
	d.confirms = d.confirms[1:]
	return val, nil
}

func TestPromptScaffold(t *testing.T) {
	driver := &scriptedDriver{
		inputs:   []string{"promo-card", "Promo Card", "Highlights an offer"},
		confirms: []bool{true, false, true},
	}
	name, title := "", ""
	var opts schema.ScaffoldOptions
	if err := promptScaffold(context.Background(), driver, &name, &title, &opts); err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if name != "promo-card" || title != "Promo Card" || opts.Description != "Highlights an offer" {
		t.Fatalf("unexpected answers: %q %q %+v", name, title, opts)
	}
	if !opts.WithTabs || opts.WithImage || !opts.WithRepeater {
		t.Fatalf("unexpected toggles: %+v", opts)
	}
}

func TestParseAttributes(t *testing.T) {
	tree, err := parseAttributes(`{"content":{"title":"Hi"}}`)
	if err != nil {
		t.Fatalf("inline: %v", err)
	}
	if tree["content"].(map[string]any)["title"] != "Hi" {
		t.Fatalf("unexpected tree %v", tree)
	}

	path := filepath.Join(t.TempDir(), "attrs.json")
	if err := os.WriteFile(path, []byte(`{"count":2}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	tree, err = parseAttributes("@" + path)
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	if tree["count"] != float64(2) {
		t.Fatalf("unexpected tree %v", tree)
	}

	if _, err := parseAttributes("{"); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestReadDefinitionYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.yaml")
	body := "name: note\ntitle: Note\nfields:\n  - name: text\n    attr_name: text\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	block, err := readDefinition(context.Background(), path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if block.Name != "note" || len(block.Fields) != 1 || block.Fields[0].AttrName != "text" {
		t.Fatalf("unexpected block %+v", block)
	}
}
