package registry

import (
	"context"
	"strings"

	"github.com/goliatone/go-blockgen/internal/identity"
	"github.com/goliatone/go-blockgen/pkg/attributes"
	"github.com/goliatone/go-blockgen/pkg/render/template"
	"github.com/goliatone/go-blockgen/pkg/schema"
	"github.com/goliatone/go-blockgen/pkg/values"
)

// RenderInstance renders one instance of name for the host. Unknown names and
// any render failure yield an empty string; the cause is logged.
func (r *Registry) RenderInstance(ctx context.Context, name string, attrs values.Tree, inner string, instances ...attributes.FieldInstance) string {
	out, err := r.Render(ctx, name, attrs, inner, instances...)
	if err != nil {
		return ""
	}
	return out
}

// Render is RenderInstance with the failure returned. The first available
// template wins: template_file, render service, inline template, then the
// inner content itself.
func (r *Registry) Render(ctx context.Context, name string, attrs values.Tree, inner string, instances ...attributes.FieldInstance) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := r.logger.WithContext(ctx)

	e, ok := r.entry(name)
	if !ok {
		err := unknownSchemaError(bareName(name))
		logger.Warn("registry.render.unknown_schema", "block", bareName(name), "error", err)
		return "", err
	}
	block := e.block
	renderID := identity.RenderUUID().String()

	data := r.mergeData(e.attributes, attrs, attributes.Extract(instances))
	r.enqueueAssets(ctx, block)

	out, via, err := r.renderBlock(ctx, block, data, inner)
	if err != nil {
		logger.Error("registry.render.failed",
			"block", block.Name,
			"render_id", renderID,
			"via", via,
			"error", err,
		)
		return "", err
	}
	logger.Debug("registry.render.completed",
		"block", block.Name,
		"render_id", renderID,
		"via", via,
		"bytes", len(out),
	)
	return out, nil
}

func (r *Registry) renderBlock(ctx context.Context, block schema.Block, data values.Tree, inner string) (string, string, error) {
	if file := strings.TrimSpace(block.TemplateFile); file != "" && r.files != nil && r.files.Exists(file) {
		scoped := values.Clone(data)
		scoped[template.ContentKey] = r.sanitizeContent(inner)
		out, err := r.files.RenderFile(ctx, file, r.sanitizeTree(scoped))
		return out, "template_file", err
	}
	if ref := strings.TrimSpace(block.RenderService); ref != "" {
		scoped := values.Clone(data)
		scoped[template.ContentKey] = r.sanitizeContent(inner)
		out, err := r.services.Render(ctx, ref, scoped)
		if err != nil {
			return "", "render_service", template.WrapRenderError(ref, err)
		}
		return out, "render_service", nil
	}
	if strings.TrimSpace(block.Template) != "" {
		out, err := r.engine.Render(ctx, block.Template, r.sanitizeTree(data), r.sanitizeContent(inner))
		return out, "inline", err
	}
	return r.sanitizeContent(inner), "content", nil
}

// mergeData layers attribute defaults, the host attributes and the field
// instance values. Nested maps are merged key by key so a partial override
// keeps the sibling defaults; dotted host attribute keys are expanded into
// nested paths first.
func (r *Registry) mergeData(set attributes.Set, attrs values.Tree, fields values.Tree) values.Tree {
	data := set.Defaults()
	host := make(values.Tree, len(attrs))
	for key, value := range attrs {
		if strings.Contains(key, ".") {
			layer := values.Tree{}
			values.Set(layer, key, value)
			values.MergeDeep(host, layer)
			continue
		}
		values.MergeDeep(host, values.Tree{key: value})
	}
	return values.MergeDeep(data, host, fields)
}

func (r *Registry) sanitizeContent(markup string) string {
	if r.sanitizer == nil {
		return markup
	}
	return r.sanitizer.Sanitize(markup)
}

// sanitizeTree returns a copy of data with every string stored under a key
// ending in _content passed through the sanitizer.
func (r *Registry) sanitizeTree(data values.Tree) values.Tree {
	if r.sanitizer == nil {
		return data
	}
	out := values.Clone(data)
	sanitizeNode(out, r.sanitizer.Sanitize)
	return out
}

func sanitizeNode(node any, clean func(string) string) {
	switch typed := node.(type) {
	case map[string]any:
		for key, value := range typed {
			if text, ok := value.(string); ok && strings.HasSuffix(key, attributes.ContentSuffix) {
				typed[key] = clean(text)
				continue
			}
			sanitizeNode(value, clean)
		}
	case []any:
		for _, item := range typed {
			sanitizeNode(item, clean)
		}
	}
}
