package template

import (
	"context"
	"io"

	"github.com/goliatone/go-blockgen/pkg/values"
)

// Engine renders an inline template string against block data. content is
// the inner content supplied by the host and is exposed as _content.
type Engine interface {
	Render(ctx context.Context, tpl string, data values.Tree, content string) (string, error)
}

// FileEngine renders templates referenced by template_file.
type FileEngine interface {
	Exists(name string) bool
	RenderFile(ctx context.Context, name string, data values.Tree) (string, error)
}

// TemplateRenderer renders a named template, also copying the output to out.
// The editor panel depends on it.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
