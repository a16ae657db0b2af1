package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-blockgen/internal/logging"
	"github.com/goliatone/go-blockgen/pkg/attributes"
	"github.com/goliatone/go-blockgen/pkg/docs"
	"github.com/goliatone/go-blockgen/pkg/editor"
	"github.com/goliatone/go-blockgen/pkg/interfaces"
	"github.com/goliatone/go-blockgen/pkg/registry"
	"github.com/goliatone/go-blockgen/pkg/source"
	"github.com/goliatone/go-blockgen/pkg/values"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a block registry.
func WithRegistry(reg *registry.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = reg
	}
}

// WithSources appends definition sources. Sources load in the order given;
// later definitions replace earlier ones with the same name.
func WithSources(sources ...source.Source) Option {
	return func(o *Orchestrator) {
		for _, src := range sources {
			if src != nil {
				o.sources = append(o.sources, src)
			}
		}
	}
}

// WithTransformer registers a Transformer applied to every record before it
// is registered.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithPanel injects the editor panel renderer.
func WithPanel(panel *editor.Panel) Option {
	return func(o *Orchestrator) {
		o.panel = panel
	}
}

// WithLoggerProvider sets the provider used for orchestrator logs.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *Orchestrator) {
		o.provider = provider
	}
}

// Orchestrator coordinates loading definitions into a registry and exposes
// rendering, editor and documentation outputs for the registered blocks.
type Orchestrator struct {
	registry    *registry.Registry
	sources     []source.Source
	transformer Transformer
	panel       *editor.Panel
	provider    interfaces.LoggerProvider
	logger      interfaces.Logger
	panelErr    error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one block render.
type Request struct {
	// Block is the registered block name, with or without the namespace.
	Block string

	// Attributes holds the stored attribute values keyed by attr path.
	Attributes values.Tree

	// Content is the rendered inner blocks markup.
	Content string

	// Instances carries editor field instances whose values take precedence
	// over Attributes.
	Instances []attributes.FieldInstance
}

// Registry exposes the underlying registry.
func (o *Orchestrator) Registry() *registry.Registry {
	return o.registry
}

// Load reads every source, transforms each record and registers the result.
// A failing source is reported and the remaining sources still load.
func (o *Orchestrator) Load(ctx context.Context) (registry.Result, error) {
	if ctx == nil {
		return registry.Result{}, errors.New("orchestrator: context is required")
	}

	var (
		result registry.Result
		errs   []error
	)
	for _, src := range o.sources {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		records, err := src.Load(ctx)
		if err != nil {
			o.logger.Error("orchestrator.source.failed", "error", err)
			errs = append(errs, fmt.Errorf("orchestrator: load source: %w", err))
			continue
		}
		records, failed := o.applyTransformer(ctx, records)
		result.Failed = append(result.Failed, failed...)

		partial := o.registry.RegisterAll(ctx, records)
		result.Registered = append(result.Registered, partial.Registered...)
		result.Failed = append(result.Failed, partial.Failed...)
	}

	o.logger.Info("orchestrator.load.completed",
		"registered", len(result.Registered),
		"failed", len(result.Failed),
	)
	return result, errors.Join(errs...)
}

// Generate renders the requested block. Unknown blocks and render failures
// are returned as errors; hosts that need the silent contract call the
// registry's RenderInstance directly.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Block == "" {
		return nil, errors.New("orchestrator: block name is required")
	}
	out, err := o.registry.Render(ctx, req.Block, req.Attributes, req.Content, req.Instances...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render %s: %w", req.Block, err)
	}
	return []byte(out), nil
}

// Manifest describes every registered block for the editor.
func (o *Orchestrator) Manifest() editor.Manifest {
	return editor.BuildManifest(o.registry)
}

// Panel renders the editor panel of a registered block.
func (o *Orchestrator) Panel(ctx context.Context, name string, current values.Tree) (string, error) {
	if o.panelErr != nil {
		return "", o.panelErr
	}
	block, ok := o.registry.Lookup(name)
	if !ok {
		return "", fmt.Errorf("orchestrator: block %q is not registered", name)
	}
	return o.panel.Render(ctx, block, current)
}

// Docs returns the Markdown documentation of a registered block.
func (o *Orchestrator) Docs(name string) (string, error) {
	block, ok := o.registry.Lookup(name)
	if !ok {
		return "", fmt.Errorf("orchestrator: block %q is not registered", name)
	}
	return docs.Markdown(block), nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, records []source.Record) ([]source.Record, []registry.Failure) {
	if o.transformer == nil {
		return records, nil
	}
	out := make([]source.Record, 0, len(records))
	var failed []registry.Failure
	for _, rec := range records {
		if err := o.transformer.Transform(ctx, &rec); err != nil {
			o.logger.Warn("orchestrator.transform.failed", "module", rec.Module, "error", err)
			failed = append(failed, registry.Failure{
				Module:   rec.Module,
				Location: rec.Location(),
				Err:      fmt.Errorf("orchestrator: transform record: %w", err),
			})
			continue
		}
		out = append(out, rec)
	}
	return out, failed
}

func (o *Orchestrator) applyDefaults() {
	if o.registry == nil {
		o.registry = registry.New(registry.WithLoggerProvider(o.provider))
	}
	if o.panel == nil {
		panel, err := editor.NewPanel(editor.WithPanelFieldTypes(o.registry.FieldTypes()))
		if err != nil {
			o.panelErr = fmt.Errorf("orchestrator: default panel: %w", err)
		}
		o.panel = panel
	}
	o.logger = logging.ModuleLogger(o.provider, "blockgen.orchestrator")
}
