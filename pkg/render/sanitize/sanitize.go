// Package sanitize holds the HTML policies applied to inner content before it
// reaches a template unescaped, and to SVG icon markup shown in editor panels.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer cleans untrusted markup.
type Sanitizer interface {
	Sanitize(markup string) string
}

// Func adapts a plain function to Sanitizer.
type Func func(string) string

// Sanitize satisfies Sanitizer.
func (fn Func) Sanitize(markup string) string {
	if fn == nil {
		return markup
	}
	return fn(markup)
}

var (
	contentPolicyOnce sync.Once
	contentPolicy     *bluemonday.Policy

	iconPolicyOnce sync.Once
	iconPolicy     *bluemonday.Policy
)

// Content returns the sanitizer used for inner block content. It keeps the
// user generated content subset of HTML and drops scripts, handlers and
// unsafe URLs.
func Content() Sanitizer {
	return Func(func(markup string) string {
		if strings.TrimSpace(markup) == "" {
			return ""
		}
		return contentSanitizer().Sanitize(markup)
	})
}

// Passthrough returns a sanitizer that leaves markup untouched.
func Passthrough() Sanitizer {
	return Func(func(markup string) string { return markup })
}

// Icon cleans inline SVG icon markup. Dashicon slugs and other plain names
// pass through unchanged; anything that is not SVG is stripped to text.
func Icon(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if !strings.HasPrefix(trimmed, "<") {
		return trimmed
	}
	return strings.TrimSpace(iconSanitizer().Sanitize(trimmed))
}

func contentSanitizer() *bluemonday.Policy {
	contentPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class").Globally()
		policy.AllowElements("figure", "figcaption", "section", "article")
		contentPolicy = policy
	})
	return contentPolicy
}

func iconSanitizer() *bluemonday.Policy {
	iconPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		elements := []string{
			"svg", "g", "path", "circle", "rect", "line", "polyline", "polygon",
			"ellipse", "title", "desc", "defs", "use", "clipPath",
		}
		policy.AllowElements(elements...)

		policy.AllowAttrs(
			"xmlns", "viewBox", "width", "height", "fill", "stroke",
			"stroke-width", "stroke-linecap", "stroke-linejoin", "aria-hidden",
			"role", "focusable", "class",
		).OnElements("svg")

		policy.AllowAttrs(
			"href", "xlink:href", "clip-path",
		).OnElements("use")

		for _, el := range []string{"path", "circle", "rect", "line", "polyline", "polygon", "ellipse"} {
			policy.AllowAttrs(
				"d", "cx", "cy", "r", "x", "y", "x1", "y1", "x2", "y2",
				"points", "rx", "ry", "fill", "stroke", "stroke-width",
				"stroke-linecap", "stroke-linejoin", "class",
			).OnElements(el)
		}

		policy.AllowAttrs("id", "clipPathUnits").OnElements("clipPath")
		policy.AllowAttrs("id").OnElements("defs", "g")

		iconPolicy = policy
	})
	return iconPolicy
}
