// Package gotemplate renders template_file templates and editor panels with
// pongo2, loading from a base directory, an fs.FS, or both.
package gotemplate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	json "github.com/goccy/go-json"

	"github.com/goliatone/go-blockgen/pkg/render/template"
	"github.com/goliatone/go-blockgen/pkg/values"
)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	baseDir   string
	templates fs.FS
	extension string
}

// WithBaseDir loads templates from a directory on disk.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS. With a base dir as well, the
// directory is searched first.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension overrides the extension appended to names that have none.
// The default is .html.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// Engine renders template_file templates and editor panels from a
// pongo2-backed template set. Parsed templates are cached by path.
type Engine struct {
	mu sync.RWMutex

	set     *pongo2.TemplateSet
	cache   map[string]*pongo2.Template
	ext     string
	baseDir string
	files   fs.FS
}

var (
	_ template.TemplateRenderer = (*Engine)(nil)
	_ template.FileEngine       = (*Engine)(nil)
)

// New constructs an Engine. Either a base dir or an fs.FS is required.
func New(options ...Option) (*Engine, error) {
	cfg := &config{extension: ".html"}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.baseDir == "" && cfg.templates == nil {
		return nil, errors.New("gotemplate: need to provide either base dir or fs.FS")
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}

	registerBlockFilters()
	return &Engine{
		set:     pongo2.NewSet("blockgen", loaders...),
		cache:   make(map[string]*pongo2.Template),
		ext:     cfg.extension,
		baseDir: cfg.baseDir,
		files:   cfg.templates,
	}, nil
}

// Exists reports whether name resolves to a template file.
func (e *Engine) Exists(name string) bool {
	if e == nil || strings.TrimSpace(name) == "" {
		return false
	}
	file := e.resolve(name)
	if e.files != nil {
		if _, err := fs.Stat(e.files, path.Clean(strings.TrimPrefix(file, "/"))); err == nil {
			return true
		}
	}
	if e.baseDir != "" {
		candidate := file
		if !filepath.IsAbs(candidate) {
			candidate = filepath.Join(e.baseDir, candidate)
		}
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}

// RenderFile renders the template file name with block data. The data is
// available at the root and, unless an attribute is called data, under data
// so templates can pass the whole tree to the attr filter.
func (e *Engine) RenderFile(ctx context.Context, name string, data values.Tree) (string, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return "", template.WrapRenderError(name, err)
		}
	}
	view := make(map[string]any, len(data)+1)
	for key, value := range data {
		view[key] = value
	}
	if _, taken := view["data"]; !taken {
		view["data"] = map[string]any(data)
	}
	out, err := e.RenderTemplate(name, view)
	if err != nil {
		return "", template.WrapRenderError(name, err)
	}
	return out, nil
}

// RenderTemplate renders a template file by name and writes the result to
// every out writer.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	file := e.resolve(name)
	tmpl, err := e.load(file)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, file, data, out)
}

func (e *Engine) execute(tmpl *pongo2.Template, file string, data any, out []io.Writer) (string, error) {
	view, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: convert data: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(view, &buf); err != nil {
		return "", fmt.Errorf("gotemplate: execute template %q: %w", file, err)
	}

	rendered := buf.String()
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func (e *Engine) resolve(name string) string {
	name = strings.TrimSpace(name)
	if filepath.Ext(name) == "" {
		return name + e.ext
	}
	return name
}

func (e *Engine) load(file string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.cache[file]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[file]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(file)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", file, err)
	}
	e.cache[file] = tmpl
	return tmpl, nil
}

// toContext turns data into a pongo2 context. Maps and slices are walked so
// nested trees stay addressable; other values are round-tripped through JSON
// so struct view models expose their json field names.
func toContext(data any) (pongo2.Context, error) {
	if data == nil {
		return pongo2.Context{}, nil
	}
	converted, err := plain(data)
	if err != nil {
		return nil, err
	}
	tree, ok := converted.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("gotemplate: data of type %T is not an object", data)
	}
	ctx := make(pongo2.Context, len(tree))
	for key, value := range tree {
		if key = strings.TrimSpace(key); key != "" {
			ctx[key] = value
		}
	}
	return ctx, nil
}

func plain(value any) (any, error) {
	switch v := value.(type) {
	case nil, string, bool, int, int64, float64:
		return v, nil
	case pongo2.Context:
		return plain(map[string]any(v))
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			converted, err := plain(item)
			if err != nil {
				return nil, err
			}
			out[key] = converted
		}
		return out, nil
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			converted, err := plain(item)
			if err != nil {
				return nil, err
			}
			out = append(out, converted)
		}
		return out, nil
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return nil, err
		}
		return plain(decoded)
	}
}

var registerOnce sync.Once

// registerBlockFilters installs trim, attr and truthy once per process.
func registerBlockFilters() {
	registerOnce.Do(func() {
		filters := map[string]pongo2.FilterFunction{
			"trim":   filterTrim,
			"attr":   filterAttr,
			"truthy": filterTruthy,
		}
		for name, fn := range filters {
			if !pongo2.FilterExists(name) {
				_ = pongo2.RegisterFilter(name, fn)
			}
		}
	})
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterAttr resolves a dotted attribute path: {{ data|attr:"settings.layout" }}.
func filterAttr(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	tree, ok := in.Interface().(map[string]any)
	if !ok || param == nil {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(values.Get(tree, param.String(), "")), nil
}

// filterTruthy applies the same truthiness rules as inline {{#if}} blocks.
func filterTruthy(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(values.Truthy(in.Interface())), nil
}
