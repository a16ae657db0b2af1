// Package values implements the nested value store used to assemble block
// attributes from editor field instances and to resolve template placeholders.
// Trees are plain map[string]any values addressed with dot-separated paths.
package values
