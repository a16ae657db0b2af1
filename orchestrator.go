package blockgen

import (
	"context"

	"github.com/goliatone/go-blockgen/pkg/orchestrator"
	"github.com/goliatone/go-blockgen/pkg/source"
)

// Request aliases orchestrator.Request so callers can describe a render from
// the top-level module.
type Request = orchestrator.Request

// Transformer aliases orchestrator.Transformer.
type Transformer = orchestrator.Transformer

// Record aliases source.Record, the stored form of one definition.
type Record = source.Record

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML loads every definition from src, then renders the requested
// block. It is the simplest entry point for callers that just want markup.
func GenerateHTML(ctx context.Context, src source.Source, req Request, options ...orchestrator.Option) ([]byte, error) {
	options = append(options, orchestrator.WithSources(src))
	gen := orchestrator.New(options...)
	if _, err := gen.Load(ctx); err != nil {
		return nil, err
	}
	return gen.Generate(ctx, req)
}

// WithSources forwards definition sources to the orchestrator.
func WithSources(sources ...source.Source) orchestrator.Option {
	return orchestrator.WithSources(sources...)
}

// WithTransformer forwards a record transformer to the orchestrator.
func WithTransformer(t Transformer) orchestrator.Option {
	return orchestrator.WithTransformer(t)
}
