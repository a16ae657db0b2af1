package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-blockgen/internal/logging"
	"github.com/goliatone/go-blockgen/pkg/interfaces"
	"github.com/goliatone/go-blockgen/pkg/schema"
	"github.com/goliatone/go-blockgen/pkg/source"
)

// Request is one handler invocation.
type Request struct {
	Action  Action
	Atts    map[string]string
	Content string
}

type handlerFunc func(d *Dispatcher, ctx context.Context, req Request) (string, error)

var actions = map[Action]handlerFunc{
	ActionRegister: (*Dispatcher).register,
}

// Option customises a Dispatcher.
type Option func(*Dispatcher)

// WithLoggerProvider sets the provider for the handlers module logger.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(d *Dispatcher) {
		d.logger = logging.HandlersLogger(provider)
	}
}

// Dispatcher routes tags of one namespace to their action handlers.
type Dispatcher struct {
	namespace  Namespace
	collection *Collection
	logger     interfaces.Logger
}

// NewDispatcher constructs a dispatcher appending into collection.
func NewDispatcher(namespace Namespace, collection *Collection, options ...Option) (*Dispatcher, error) {
	if strings.TrimSpace(string(namespace)) == "" {
		return nil, errors.New("handlers: namespace is required")
	}
	if collection == nil {
		return nil, errors.New("handlers: collection is required")
	}
	d := &Dispatcher{namespace: namespace, collection: collection}
	for _, opt := range options {
		if opt != nil {
			opt(d)
		}
	}
	d.logger = logging.Ensure(d.logger)
	return d, nil
}

// Namespace returns the namespace the dispatcher accepts.
func (d *Dispatcher) Namespace() Namespace {
	return d.namespace
}

// Handle parses tag and runs its action. Content is trimmed before use.
func (d *Dispatcher) Handle(ctx context.Context, tag string, atts map[string]string, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	parts := strings.Split(strings.TrimSpace(tag), ".")
	if len(parts) != 2 {
		err := invalidTagError(tag, "tag must have exactly two parts")
		d.logger.Warn("handlers.tag.invalid", "tag", tag, "error", err)
		return "", err
	}
	if Namespace(parts[0]) != d.namespace {
		err := invalidTagError(tag, fmt.Sprintf("tag is not in namespace %s", d.namespace))
		d.logger.Warn("handlers.tag.invalid", "tag", tag, "error", err)
		return "", err
	}
	action, err := ParseAction(parts[1])
	if err != nil {
		d.logger.Warn("handlers.action.unknown", "tag", tag, "error", err)
		return "", err
	}
	return d.Dispatch(ctx, Request{Action: action, Atts: atts, Content: strings.TrimSpace(content)})
}

// Dispatch runs an already parsed request.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (string, error) {
	handler, ok := actions[req.Action]
	if !ok {
		_, err := ParseAction(string(req.Action))
		return "", err
	}
	return handler(d, ctx, req)
}

// register decodes the content into a record and appends it. The content is
// either a record ({config, controls_service, render_service}) or a bare
// definition. Attributes override record keys.
func (d *Dispatcher) register(_ context.Context, req Request) (string, error) {
	payload := schema.RawConfig{}
	if req.Content != "" {
		decoded, err := schema.Decode([]byte(req.Content))
		if err != nil {
			d.logger.Error("handlers.register.invalid", "namespace", d.namespace, "error", err)
			return "", err
		}
		payload = decoded
	}

	rec := recordFromPayload(payload, d.namespace)
	applyAtts(&rec, req.Atts)

	d.collection.Add(rec)
	d.logger.Debug("handlers.register.collected", "namespace", d.namespace, "module", rec.Module)
	return "", nil
}

func recordFromPayload(payload schema.RawConfig, namespace Namespace) source.Record {
	cfg, nested := payload["config"].(map[string]any)
	if !nested {
		rec := source.RecordFromConfig(payload, schema.OriginInline(string(namespace)))
		if rec.Kind == "" {
			rec.Kind = namespace.Kind()
		}
		return rec
	}

	rec := source.RecordFromConfig(cfg, schema.OriginInline(string(namespace)))
	if module, _ := payload["module"].(string); strings.TrimSpace(module) != "" {
		rec.Module = strings.TrimSpace(module)
	}
	if svc, _ := payload["controls_service"].(string); strings.TrimSpace(svc) != "" {
		rec.ControlsService = strings.TrimSpace(svc)
	}
	if svc, _ := payload["render_service"].(string); strings.TrimSpace(svc) != "" {
		rec.RenderService = strings.TrimSpace(svc)
	}
	if rec.Kind == "" {
		rec.Kind = namespace.Kind()
	}
	return rec
}

func applyAtts(rec *source.Record, atts map[string]string) {
	for key, value := range atts {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		switch key {
		case "module":
			rec.Module = value
		case "kind":
			rec.Kind = schema.Kind(value)
		case "controls_service":
			rec.ControlsService = value
		case "render_service":
			rec.RenderService = value
		}
	}
}
