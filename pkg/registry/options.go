package registry

import (
	"github.com/goliatone/go-blockgen/internal/logging"
	"github.com/goliatone/go-blockgen/pkg/fieldtypes"
	"github.com/goliatone/go-blockgen/pkg/interfaces"
	"github.com/goliatone/go-blockgen/pkg/render/sanitize"
	"github.com/goliatone/go-blockgen/pkg/render/template"
	"github.com/goliatone/go-blockgen/pkg/services"
)

// Option customises a Registry.
type Option func(*Registry)

// WithLoggerProvider sets the provider the registry and its normalizer
// obtain their module loggers from.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(r *Registry) {
		r.provider = provider
	}
}

// WithFieldTypes injects the field type registry used to compile attributes.
func WithFieldTypes(types *fieldtypes.Registry) Option {
	return func(r *Registry) {
		r.types = types
	}
}

// WithServices injects the controls and render service registry.
func WithServices(svc *services.Registry) Option {
	return func(r *Registry) {
		r.services = svc
	}
}

// WithEngine overrides the engine used for inline templates.
func WithEngine(engine template.Engine) Option {
	return func(r *Registry) {
		r.engine = engine
	}
}

// WithFileEngine enables template_file rendering through engine.
func WithFileEngine(engine template.FileEngine) Option {
	return func(r *Registry) {
		r.files = engine
	}
}

// WithSanitizer replaces the inner content sanitizer. Passing nil disables
// sanitizing; inner content is then escaped by the inline engine.
func WithSanitizer(s sanitize.Sanitizer) Option {
	return func(r *Registry) {
		r.sanitizer = s
		r.sanitizerSet = true
	}
}

// WithAssetSink receives the scripts and styles of every rendered block.
func WithAssetSink(sink AssetSink) Option {
	return func(r *Registry) {
		r.assets = sink
	}
}

func (r *Registry) applyDefaults() {
	if r.types == nil {
		r.types = fieldtypes.NewRegistry()
	}
	if r.services == nil {
		r.services = services.NewRegistry()
	}
	if !r.sanitizerSet {
		r.sanitizer = sanitize.Content()
	}
	if r.engine == nil {
		if r.sanitizer != nil {
			r.engine = template.New(template.WithRawContent())
		} else {
			r.engine = template.New()
		}
	}
	if r.assets == nil {
		r.assets = noopSink{}
	}
	r.logger = logging.RegistryLogger(r.provider)
}
