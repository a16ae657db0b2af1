package template

import (
	"context"
	"html"
	"regexp"
	"strings"

	"github.com/goliatone/go-blockgen/pkg/values"
)

// ContentKey is the data key holding the inner content of a render call.
const ContentKey = "_content"

// tokenPattern matches block openers, block closers and variables. Group 1
// and 2 hold the opener kind and path, group 3 the closer kind, group 4 the
// variable path.
var tokenPattern = regexp.MustCompile(`\{\{#(if|each)\s+([a-zA-Z0-9_.]+)\}\}|\{\{/(if|each)\}\}|\{\{([a-zA-Z0-9_.]+)\}\}`)

// Option configures a Placeholder engine.
type Option func(*Placeholder)

// WithRawContent renders paths whose last segment ends in _content without
// escaping. Callers must sanitize those values first.
func WithRawContent() Option {
	return func(p *Placeholder) {
		p.rawContent = true
	}
}

// Placeholder is the minimal templating language used by inline block
// templates. Paths are limited to letters, digits, underscore and dot.
type Placeholder struct {
	rawContent bool
}

var _ Engine = (*Placeholder)(nil)

// New constructs a Placeholder engine.
func New(opts ...Option) *Placeholder {
	p := &Placeholder{}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Render renders tpl with the default engine, escaping every variable.
func Render(tpl string, data values.Tree, content string) string {
	return (&Placeholder{}).render(tpl, data, content)
}

// Render satisfies Engine.
func (p *Placeholder) Render(ctx context.Context, tpl string, data values.Tree, content string) (string, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return "", WrapRenderError("inline", err)
		}
	}
	if p == nil {
		p = &Placeholder{}
	}
	return p.render(tpl, data, content), nil
}

type nodeKind int

const (
	nodeText nodeKind = iota
	nodeVar
	nodeIf
	nodeEach
)

type node struct {
	kind     nodeKind
	text     string
	path     string
	children []node
}

// parse turns tpl into a node tree. Each opener pairs with the closer of the
// same kind at its depth. Closers without a matching opener and openers left
// open at the end are kept as literal text.
func parse(tpl string) []node {
	type frame struct {
		kind     nodeKind
		path     string
		open     string
		children []node
	}
	stack := []*frame{{}}
	top := func() *frame { return stack[len(stack)-1] }
	emit := func(n node) {
		f := top()
		f.children = append(f.children, n)
	}

	last := 0
	for _, loc := range tokenPattern.FindAllStringSubmatchIndex(tpl, -1) {
		if loc[0] > last {
			emit(node{kind: nodeText, text: tpl[last:loc[0]]})
		}
		last = loc[1]
		token := tpl[loc[0]:loc[1]]

		switch {
		case loc[2] >= 0:
			kind := nodeIf
			if tpl[loc[2]:loc[3]] == "each" {
				kind = nodeEach
			}
			stack = append(stack, &frame{kind: kind, path: tpl[loc[4]:loc[5]], open: token})
		case loc[6] >= 0:
			kind := nodeIf
			if tpl[loc[6]:loc[7]] == "each" {
				kind = nodeEach
			}
			if len(stack) == 1 || top().kind != kind {
				emit(node{kind: nodeText, text: token})
				continue
			}
			closed := top()
			stack = stack[:len(stack)-1]
			emit(node{kind: closed.kind, path: closed.path, children: closed.children})
		default:
			emit(node{kind: nodeVar, path: tpl[loc[8]:loc[9]]})
		}
	}
	if last < len(tpl) {
		emit(node{kind: nodeText, text: tpl[last:]})
	}

	for len(stack) > 1 {
		unclosed := top()
		stack = stack[:len(stack)-1]
		emit(node{kind: nodeText, text: unclosed.open})
		for _, child := range unclosed.children {
			emit(child)
		}
	}
	return stack[0].children
}

// render evaluates tpl against data with content exposed as _content.
// Conditionals resolve against the current root and loop bodies use each
// element as their root. Output is written once and never scanned again.
func (p *Placeholder) render(tpl string, data values.Tree, content string) string {
	root := make(values.Tree, len(data)+1)
	for key, value := range data {
		root[key] = value
	}
	root[ContentKey] = content

	var b strings.Builder
	p.exec(&b, parse(tpl), root)
	return b.String()
}

func (p *Placeholder) exec(b *strings.Builder, nodes []node, root values.Tree) {
	for _, n := range nodes {
		switch n.kind {
		case nodeText:
			b.WriteString(n.text)
		case nodeVar:
			text := values.Stringify(values.Get(root, n.path, ""))
			if p.rawContent && isContentPath(n.path) {
				b.WriteString(text)
				continue
			}
			b.WriteString(html.EscapeString(text))
		case nodeIf:
			if values.Truthy(values.Get(root, n.path, "")) {
				p.exec(b, n.children, root)
			}
		case nodeEach:
			items, ok := values.Sequence(values.Get(root, n.path, nil))
			if !ok {
				continue
			}
			for _, item := range items {
				element, _ := item.(map[string]any)
				scope := make(values.Tree, len(element)+1)
				for key, value := range element {
					scope[key] = value
				}
				scope[ContentKey] = ""
				p.exec(b, n.children, scope)
			}
		}
	}
}

func isContentPath(path string) bool {
	last := path
	if idx := strings.LastIndex(path, "."); idx >= 0 {
		last = path[idx+1:]
	}
	return strings.HasSuffix(last, ContentKey)
}
