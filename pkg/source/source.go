// Package source defines the config records blocks are registered from and
// the Source contract implemented by the directory, SQL and Redis stores.
package source

import (
	"context"
	"strings"

	"github.com/goliatone/go-blockgen/pkg/schema"
)

// Record is one stored definition: the raw config plus the service
// references kept beside it.
type Record struct {
	Module          string           `json:"module"`
	Kind            schema.Kind      `json:"kind,omitempty"`
	Config          schema.RawConfig `json:"config"`
	ControlsService string           `json:"controls_service,omitempty"`
	RenderService   string           `json:"render_service,omitempty"`
	Origin          schema.Origin    `json:"-"`
}

// Source yields definition records.
type Source interface {
	Load(ctx context.Context) ([]Record, error)
}

// Func adapts a function to Source.
type Func func(ctx context.Context) ([]Record, error)

// Load satisfies Source.
func (fn Func) Load(ctx context.Context) ([]Record, error) {
	if fn == nil {
		return nil, nil
	}
	return fn(ctx)
}

// Static returns a Source serving records as given.
func Static(records ...Record) Source {
	return Func(func(context.Context) ([]Record, error) {
		return append([]Record(nil), records...), nil
	})
}

// RecordFromConfig builds a record from a raw config, reading module, kind and
// service references from the config itself.
func RecordFromConfig(cfg schema.RawConfig, origin schema.Origin) Record {
	rec := Record{Config: cfg, Origin: origin}
	rec.Module = stringValue(cfg["module"])
	if rec.Module == "" {
		rec.Module = stringValue(cfg["name"])
	}
	rec.Kind = schema.Kind(stringValue(cfg["kind"]))
	rec.ControlsService = stringValue(cfg["controls_service"])
	rec.RenderService = stringValue(cfg["render_service"])
	return rec
}

// Effective returns the config with the record fields applied: module and
// kind fill missing keys, service references override the config.
func (r Record) Effective() schema.RawConfig {
	cfg := make(schema.RawConfig, len(r.Config)+4)
	for key, value := range r.Config {
		cfg[key] = value
	}
	if r.Module != "" && stringValue(cfg["module"]) == "" {
		cfg["module"] = r.Module
	}
	if r.Kind != "" && stringValue(cfg["kind"]) == "" {
		cfg["kind"] = string(r.Kind)
	}
	if r.ControlsService != "" {
		cfg["controls_service"] = r.ControlsService
	}
	if r.RenderService != "" {
		cfg["render_service"] = r.RenderService
	}
	return cfg
}

// Location describes where the record came from.
func (r Record) Location() string {
	if r.Origin == nil {
		return r.Module
	}
	return r.Origin.Location()
}

func stringValue(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
