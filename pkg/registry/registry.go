package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-blockgen/internal/logging"
	"github.com/goliatone/go-blockgen/pkg/attributes"
	"github.com/goliatone/go-blockgen/pkg/fieldtypes"
	"github.com/goliatone/go-blockgen/pkg/interfaces"
	"github.com/goliatone/go-blockgen/pkg/render/sanitize"
	"github.com/goliatone/go-blockgen/pkg/render/template"
	"github.com/goliatone/go-blockgen/pkg/schema"
	"github.com/goliatone/go-blockgen/pkg/services"
	"github.com/goliatone/go-blockgen/pkg/source"
)

// Namespace prefixes block names in the host editor.
const Namespace = "dgb"

type entry struct {
	block      schema.Block
	attributes attributes.Set
}

// Registry maps block names to normalized schemas and their attribute
// declarations. Re-registering a name replaces the whole entry.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry

	provider     interfaces.LoggerProvider
	logger       interfaces.Logger
	types        *fieldtypes.Registry
	services     *services.Registry
	engine       template.Engine
	files        template.FileEngine
	sanitizer    sanitize.Sanitizer
	sanitizerSet bool
	assets       AssetSink
}

// New constructs a Registry applying options. Missing collaborators fall back
// to the built-in field types, an empty service registry, the placeholder
// engine and the content sanitizer.
func New(options ...Option) *Registry {
	r := &Registry{entries: make(map[string]entry)}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	r.applyDefaults()
	return r
}

// FieldTypes returns the field type registry used for compilation.
func (r *Registry) FieldTypes() *fieldtypes.Registry {
	return r.types
}

// Services returns the service registry blocks resolve against.
func (r *Registry) Services() *services.Registry {
	return r.services
}

// Register normalizes raw and stores the result. Failures are logged and
// reported as false.
func (r *Registry) Register(ctx context.Context, raw schema.RawConfig) bool {
	_, err := r.register(ctx, raw)
	return err == nil
}

func (r *Registry) register(ctx context.Context, raw schema.RawConfig) (schema.Block, error) {
	normalizer := schema.NewNormalizer(
		schema.WithControlsResolver(r.services),
		schema.WithLogger(logging.SchemaLogger(r.provider)),
	)
	block, err := normalizer.Normalize(ctx, raw)
	if err != nil {
		r.logger.Error("registry.register.failed", "error", err)
		return schema.Block{}, err
	}
	if err := r.RegisterBlock(ctx, block); err != nil {
		return schema.Block{}, err
	}
	return block, nil
}

// RegisterBlock stores an already normalized block, compiling its attribute
// declarations. Fields with an unknown type are logged and left out of the
// declarations. A render service that is not registered rejects the block.
func (r *Registry) RegisterBlock(ctx context.Context, block schema.Block) error {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	block.Name = strings.TrimSpace(block.Name)
	if block.Name == "" {
		err := schema.MissingRequiredFieldError("name")
		r.logger.Error("registry.register.failed", "error", err)
		return err
	}
	if strings.TrimSpace(block.Title) == "" {
		err := schema.MissingRequiredFieldError("title")
		r.logger.Error("registry.register.failed", "block", block.Name, "error", err)
		return err
	}
	if ref := strings.TrimSpace(block.RenderService); ref != "" && !r.services.HasRender(ref) {
		err := services.UnknownServiceError("render", ref)
		r.logger.Error("registry.register.failed", "block", block.Name, "error", err)
		return err
	}

	block = schema.WithDefaults(block)
	compiled := attributes.Compile(block, r.types)
	for _, field := range compiled.Unknown {
		r.logger.Warn("registry.field.unknown_type",
			"block", block.Name,
			"field", field.Name,
			"error", schema.UnknownFieldTypeError(block.Name, field.Name, field.Type),
		)
	}
	r.logCollisions(block)

	r.mu.Lock()
	_, replaced := r.entries[block.Name]
	r.entries[block.Name] = entry{block: block, attributes: compiled.Set}
	r.mu.Unlock()

	r.logger.Debug("registry.block.registered",
		"block", block.Name,
		"kind", block.Kind,
		"attributes", len(compiled.Set),
		"replaced", replaced,
	)
	return nil
}

// Failure describes a record that could not be registered.
type Failure struct {
	Module   string
	Location string
	Err      error
}

// Result summarises a RegisterAll call.
type Result struct {
	Registered []string
	Failed     []Failure
}

// RegisterAll registers every record in order. Later records win over earlier
// ones sharing a name.
func (r *Registry) RegisterAll(ctx context.Context, records []source.Record) Result {
	var result Result
	for _, rec := range records {
		block, err := r.register(ctx, rec.Effective())
		if err != nil {
			result.Failed = append(result.Failed, Failure{Module: rec.Module, Location: rec.Location(), Err: err})
			continue
		}
		result.Registered = append(result.Registered, block.Name)
	}
	if len(result.Failed) > 0 {
		r.logger.Warn("registry.register_all.partial",
			"registered", len(result.Registered),
			"failed", len(result.Failed),
		)
	}
	return result
}

// Load reads every record from src and registers them.
func (r *Registry) Load(ctx context.Context, src source.Source) (Result, error) {
	if src == nil {
		return Result{}, fmt.Errorf("registry: source is required")
	}
	records, err := src.Load(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("registry: load source: %w", err)
	}
	return r.RegisterAll(ctx, records), nil
}

// Lookup returns the normalized block registered under name. The editor
// namespace prefix is accepted.
func (r *Registry) Lookup(name string) (schema.Block, bool) {
	e, ok := r.entry(name)
	return e.block, ok
}

// Attributes returns a copy of the attribute declarations for name.
func (r *Registry) Attributes(name string) (attributes.Set, bool) {
	e, ok := r.entry(name)
	if !ok {
		return nil, false
	}
	out := make(attributes.Set, len(e.attributes))
	for path, decl := range e.attributes {
		out[path] = decl
	}
	return out, true
}

// Unregister removes name, reporting whether it was present.
func (r *Registry) Unregister(name string) bool {
	key := bareName(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[key]; !ok {
		return false
	}
	delete(r.entries, key)
	return true
}

// Names returns the registered names sorted lexically.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Blocks returns the registered blocks sorted by name.
func (r *Registry) Blocks() []schema.Block {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]schema.Block, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.block)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len reports the number of registered blocks.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// QualifiedName returns the namespaced editor name of a block.
func QualifiedName(name string) string {
	return Namespace + "/" + bareName(name)
}

func (r *Registry) entry(name string) (entry, bool) {
	if r == nil {
		return entry{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[bareName(name)]
	return e, ok
}

func (r *Registry) logCollisions(block schema.Block) {
	seen := make(map[string]string)
	for _, field := range block.AllFields() {
		attr := strings.TrimSpace(field.AttrName)
		if attr == "" {
			continue
		}
		if previous, ok := seen[attr]; ok {
			r.logger.Debug("registry.attribute.collision",
				"block", block.Name,
				"attr_name", attr,
				"overwritten", previous,
				"field", field.Name,
			)
		}
		seen[attr] = field.Name
	}
}

func bareName(name string) string {
	name = strings.TrimSpace(name)
	return strings.TrimPrefix(name, Namespace+"/")
}
