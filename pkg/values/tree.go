package values

import (
	"strings"
)

// Tree is a recursive mapping from path segment to either a leaf value or
// another mapping. Trees are owned by a single render invocation.
type Tree = map[string]any

// Get walks path through tree and returns the value found at its end. The
// default is returned at the first missing segment, including when an
// intermediate value exists but is not itself a mapping.
func Get(tree Tree, path string, def any) any {
	if value, ok := Lookup(tree, path); ok {
		return value
	}
	return def
}

// Lookup reports whether path resolves in tree, returning the value found.
func Lookup(tree Tree, path string) (any, bool) {
	if tree == nil || path == "" {
		return nil, false
	}
	var current any = tree
	for _, key := range strings.Split(path, ".") {
		node, ok := asMap(current)
		if !ok {
			return nil, false
		}
		next, exists := node[key]
		if !exists {
			return nil, false
		}
		current = next
	}
	return current, true
}

// Set writes value at path, creating intermediate mappings as needed. A
// non-mapping value sitting on the path is replaced by a fresh mapping and its
// previous content is discarded.
func Set(tree Tree, path string, value any) {
	if tree == nil || path == "" {
		return
	}
	keys := strings.Split(path, ".")
	current := tree
	for _, key := range keys[:len(keys)-1] {
		next, ok := asMap(current[key])
		if !ok {
			next = make(map[string]any)
		}
		current[key] = next
		current = next
	}
	current[keys[len(keys)-1]] = value
}

// MergeDeep copies src into dst recursively. Maps present on both sides are
// merged key by key so nested defaults survive a partial override; any other
// value, including slices, replaces the destination. Values taken from src
// are cloned.
func MergeDeep(dst Tree, sources ...Tree) Tree {
	if dst == nil {
		dst = make(Tree)
	}
	for _, src := range sources {
		mergeInto(dst, src)
	}
	return dst
}

func mergeInto(dst, src map[string]any) {
	for key, value := range src {
		incoming, ok := value.(map[string]any)
		if !ok {
			dst[key] = cloneValue(value)
			continue
		}
		existing, ok := dst[key].(map[string]any)
		if !ok {
			dst[key] = cloneValue(incoming)
			continue
		}
		mergeInto(existing, incoming)
	}
}

// Clone returns a deep copy of tree so callers can mutate the result without
// touching shared defaults.
func Clone(tree Tree) Tree {
	if tree == nil {
		return nil
	}
	out := make(Tree, len(tree))
	for key, value := range tree {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return Clone(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

func asMap(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, v != nil
	case map[string]string:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = item
		}
		return out, true
	default:
		return nil, false
	}
}
