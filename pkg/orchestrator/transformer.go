package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-blockgen/pkg/schema"
	"github.com/goliatone/go-blockgen/pkg/source"
)

// Transformer mutates a definition record before it is registered.
// Implementations can fill defaults, relabel fields or rewrite services.
type Transformer interface {
	Transform(ctx context.Context, rec *source.Record) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, rec *source.Record) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, rec *source.Record) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, rec)
}

// Chain runs transformers in order and stops at the first error.
func Chain(transformers ...Transformer) Transformer {
	return TransformerFunc(func(ctx context.Context, rec *source.Record) error {
		for _, t := range transformers {
			if t == nil {
				continue
			}
			if err := t.Transform(ctx, rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// JSONPresetTransformer applies declarative overrides loaded from a JSON file.
// Defaults fill keys a definition leaves unset; module patches overwrite
// top-level keys and individual fields:
//
//	{
//	  "defaults": {"category": "marketing"},
//	  "modules": {
//	    "card": {
//	      "set": {"title": "Promo card"},
//	      "fields": {"content.heading": {"label": "Headline", "default": "Hi"}}
//	    }
//	  }
//	}
//
// Field paths are either a field name, searched in top-level fields and then
// every tab, or tab.field.
type JSONPresetTransformer struct {
	document jsonTransformDocument
}

type jsonTransformDocument struct {
	Defaults map[string]any             `json:"defaults"`
	Modules  map[string]jsonModulePatch `json:"modules"`
}

type jsonModulePatch struct {
	Set           map[string]any            `json:"set"`
	Fields        map[string]jsonFieldPatch `json:"fields"`
	RenderService string                    `json:"render_service"`
}

type jsonFieldPatch struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Placeholder string `json:"placeholder"`
	Rename      string `json:"rename"`
	Default     any    `json:"default"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document jsonTransformDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a JSON transformer document from the
// provided filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the declarative patches onto the supplied record. The
// record config is copied before it is modified.
func (t *JSONPresetTransformer) Transform(ctx context.Context, rec *source.Record) error {
	if rec == nil {
		return errors.New("json preset transformer: record is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := make(schema.RawConfig, len(rec.Config)+len(t.document.Defaults))
	for key, value := range rec.Config {
		cfg[key] = value
	}
	for key, value := range t.document.Defaults {
		if _, ok := cfg[key]; !ok {
			cfg[key] = value
		}
	}

	module := rec.Module
	if module == "" {
		module, _ = cfg["name"].(string)
	}
	patch, ok := t.document.Modules[module]
	if !ok {
		rec.Config = cfg
		return nil
	}

	for key, value := range patch.Set {
		cfg[key] = value
	}
	if patch.RenderService != "" {
		rec.RenderService = patch.RenderService
	}
	for path, fieldPatch := range patch.Fields {
		if err := ctx.Err(); err != nil {
			return err
		}
		field := findFieldByPath(cfg, path)
		if field == nil {
			return fmt.Errorf("json preset transformer: field %q not found in %s", path, module)
		}
		applyFieldPatch(field, fieldPatch)
	}
	rec.Config = cfg
	return nil
}

func applyFieldPatch(field map[string]any, patch jsonFieldPatch) {
	if patch.Label != "" {
		field["label"] = patch.Label
	}
	if patch.Description != "" {
		field["description"] = patch.Description
	}
	if patch.Placeholder != "" {
		field["placeholder"] = patch.Placeholder
	}
	if patch.Default != nil {
		field["default"] = patch.Default
	}
	if strings.TrimSpace(patch.Rename) != "" {
		field["attr_name"] = strings.TrimSpace(patch.Rename)
	}
}

// findFieldByPath returns a copy-on-write field map inside cfg. The slices
// and maps along the path are replaced so the source record stays intact.
func findFieldByPath(cfg schema.RawConfig, path string) map[string]any {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	tabName, fieldName, nested := strings.Cut(path, ".")
	if !nested {
		if field := findField(cfg, "fields", tabName); field != nil {
			return field
		}
		tabs, ok := copyEntries(cfg, "tabs")
		if !ok {
			return nil
		}
		for _, tab := range tabs {
			if field := findField(tab, "fields", tabName); field != nil {
				return field
			}
		}
		return nil
	}

	tabs, ok := copyEntries(cfg, "tabs")
	if !ok {
		return nil
	}
	for _, tab := range tabs {
		if tab["name"] == tabName {
			return findField(tab, "fields", fieldName)
		}
	}
	return nil
}

func findField(owner map[string]any, key, name string) map[string]any {
	fields, ok := copyEntries(owner, key)
	if !ok {
		return nil
	}
	for _, field := range fields {
		if field["name"] == name {
			return field
		}
	}
	return nil
}

// copyEntries replaces owner[key] with a shallow copy of its object entries
// and returns them. Non-object entries are kept as they are.
func copyEntries(owner map[string]any, key string) ([]map[string]any, bool) {
	raw, ok := owner[key].([]any)
	if !ok {
		return nil, false
	}
	copied := make([]any, len(raw))
	var entries []map[string]any
	for i, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			copied[i] = item
			continue
		}
		clone := make(map[string]any, len(entry))
		for k, v := range entry {
			clone[k] = v
		}
		copied[i] = clone
		entries = append(entries, clone)
	}
	owner[key] = copied
	return entries, true
}
