// Package services holds the named controls and render services a block
// definition can reference. The set of names is closed: a definition naming a
// service that was never registered is rejected when the block is registered.
package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blockgen/pkg/schema"
	"github.com/goliatone/go-blockgen/pkg/values"
)

// CodeUnknownService tags lookups of unregistered service names.
const CodeUnknownService = "UNKNOWN_SERVICE"

// ErrUnknownService reports a service name with no registration.
var ErrUnknownService = errors.New("services: unknown service")

// ControlsFunc produces the editor sections for a block.
type ControlsFunc func(ctx context.Context) (schema.Sections, error)

// RenderFunc renders a block instance from its merged attribute data.
type RenderFunc func(ctx context.Context, data values.Tree) (string, error)

// Registry maps service names to implementations.
type Registry struct {
	mu       sync.RWMutex
	controls map[string]ControlsFunc
	render   map[string]RenderFunc
}

var _ schema.ControlsResolver = (*Registry)(nil)

// NewRegistry constructs an empty service registry.
func NewRegistry() *Registry {
	return &Registry{
		controls: make(map[string]ControlsFunc),
		render:   make(map[string]RenderFunc),
	}
}

// RegisterControls adds or replaces a controls service.
func (r *Registry) RegisterControls(name string, fn ControlsFunc) error {
	if r == nil {
		return fmt.Errorf("services: registry is nil")
	}
	key := normalizeName(name)
	if key == "" {
		return fmt.Errorf("services: controls service name is required")
	}
	if fn == nil {
		return fmt.Errorf("services: controls service %q has nil func", key)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.controls[key] = fn
	return nil
}

// RegisterRender adds or replaces a render service.
func (r *Registry) RegisterRender(name string, fn RenderFunc) error {
	if r == nil {
		return fmt.Errorf("services: registry is nil")
	}
	key := normalizeName(name)
	if key == "" {
		return fmt.Errorf("services: render service name is required")
	}
	if fn == nil {
		return fmt.Errorf("services: render service %q has nil func", key)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.render[key] = fn
	return nil
}

// HasControls reports whether name is a registered controls service.
func (r *Registry) HasControls(name string) bool {
	_, ok := r.controlsFunc(name)
	return ok
}

// HasRender reports whether name is a registered render service.
func (r *Registry) HasRender(name string) bool {
	_, ok := r.renderFunc(name)
	return ok
}

// Controls invokes the named controls service. It satisfies
// schema.ControlsResolver.
func (r *Registry) Controls(ctx context.Context, name string) (schema.Sections, error) {
	fn, ok := r.controlsFunc(name)
	if !ok {
		return schema.Sections{}, UnknownServiceError("controls", name)
	}
	return fn(ctx)
}

// Render invokes the named render service.
func (r *Registry) Render(ctx context.Context, name string, data values.Tree) (string, error) {
	fn, ok := r.renderFunc(name)
	if !ok {
		return "", UnknownServiceError("render", name)
	}
	return fn(ctx, data)
}

// Names lists registered controls and render service names, sorted.
func (r *Registry) Names() (controls []string, render []string) {
	if r == nil {
		return nil, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for name := range r.controls {
		controls = append(controls, name)
	}
	for name := range r.render {
		render = append(render, name)
	}
	sort.Strings(controls)
	sort.Strings(render)
	return controls, render
}

func (r *Registry) controlsFunc(name string) (ControlsFunc, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.controls[normalizeName(name)]
	return fn, ok
}

func (r *Registry) renderFunc(name string) (RenderFunc, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.render[normalizeName(name)]
	return fn, ok
}

// UnknownServiceError reports a lookup of an unregistered service.
func UnknownServiceError(kind, name string) error {
	return goerrors.Wrap(fmt.Errorf("%w: %s service %q", ErrUnknownService, kind, name), goerrors.CategoryNotFound, "service is not registered").
		WithTextCode(CodeUnknownService)
}

func normalizeName(name string) string {
	return strings.TrimSpace(name)
}
