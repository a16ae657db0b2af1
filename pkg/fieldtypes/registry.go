package fieldtypes

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Storage identifies how a field value is persisted as a block attribute.
type Storage string

const (
	StorageString  Storage = "string"
	StorageNumber  Storage = "number"
	StorageBoolean Storage = "boolean"
	StorageArray   Storage = "array"
	StorageObject  Storage = "object"
)

// Valid reports whether s is one of the supported storage types.
func (s Storage) Valid() bool {
	switch s {
	case StorageString, StorageNumber, StorageBoolean, StorageArray, StorageObject:
		return true
	}
	return false
}

// AttributeDefault is the default persisted for an attribute of this storage
// type when the field declares none. Object attributes fall back to an empty
// string, mirroring the host's attribute registration.
func (s Storage) AttributeDefault() any {
	switch s {
	case StorageArray:
		return []any{}
	case StorageBoolean:
		return false
	case StorageNumber:
		return 0
	default:
		return ""
	}
}

// Control names the editor control used to capture a field value.
type Control string

const (
	ControlText          Control = "text"
	ControlTextarea      Control = "textarea"
	ControlNumber        Control = "number"
	ControlSmallNumber   Control = "small-number"
	ControlSelect        Control = "select"
	ControlRadio         Control = "radio"
	ControlCheckboxGroup Control = "checkbox-group"
	ControlCheckbox      Control = "checkbox"
	ControlToggle        Control = "toggle"
	ControlMedia         Control = "media"
	ControlDate          Control = "date"
	ControlCode          Control = "code"
	ControlKeyValue      Control = "key-value"
	ControlRepeater      Control = "repeater"
	ControlInnerBlocks   Control = "inner-blocks"
)

// FieldType describes one field type tag: the control that edits it, the
// storage type of its attribute and the baseline value used when a field does
// not declare a default.
type FieldType struct {
	Tag                    string  `json:"tag"`
	Label                  string  `json:"label"`
	Description            string  `json:"description"`
	Control                Control `json:"control"`
	Storage                Storage `json:"storage"`
	HasOptions             bool    `json:"has_options"`
	RequiresRepeaterFields bool    `json:"requires_repeater_fields,omitempty"`
	Presentational         bool    `json:"presentational,omitempty"`
	Baseline               any     `json:"baseline"`
}

// Default returns declared when it is non-nil, otherwise a fresh copy of the
// type baseline. It never inspects anything but its arguments.
func (ft FieldType) Default(declared any) any {
	if declared != nil {
		return declared
	}
	switch baseline := ft.Baseline.(type) {
	case []any:
		return make([]any, 0, len(baseline))
	case map[string]any:
		return make(map[string]any)
	default:
		return baseline
	}
}

// Registry maps field type tags to descriptors. The zero value is unusable;
// construct registries with NewRegistry.
type Registry struct {
	mu    sync.RWMutex
	types map[string]FieldType
}

// NewRegistry constructs a registry with the built-in field types registered.
func NewRegistry() *Registry {
	reg := &Registry{types: make(map[string]FieldType)}
	reg.registerBuiltins()
	return reg
}

// Register adds or replaces a field type. Extensions are expected to be
// registered once at process start, before any schema is compiled.
func (r *Registry) Register(ft FieldType) error {
	if r == nil {
		return fmt.Errorf("fieldtypes: registry is nil")
	}
	tag := normalizeTag(ft.Tag)
	if tag == "" {
		return fmt.Errorf("fieldtypes: field type tag is required")
	}
	if !ft.Storage.Valid() {
		return fmt.Errorf("fieldtypes: field type %q has invalid storage %q", tag, ft.Storage)
	}
	if ft.Control == "" {
		ft.Control = ControlText
	}
	ft.Tag = tag

	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[tag] = ft
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(ft FieldType) {
	if err := r.Register(ft); err != nil {
		panic(err)
	}
}

// Resolve returns the field type for tag. Unknown tags report false; callers
// treat the field as absent rather than failing.
func (r *Registry) Resolve(tag string) (FieldType, bool) {
	if r == nil {
		return FieldType{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ft, ok := r.types[normalizeTag(tag)]
	return ft, ok
}

// Has reports whether tag is registered.
func (r *Registry) Has(tag string) bool {
	_, ok := r.Resolve(tag)
	return ok
}

// List returns all registered field types sorted by tag.
func (r *Registry) List() []FieldType {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]FieldType, 0, len(r.types))
	for _, ft := range r.types {
		out = append(out, ft)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Tag < out[j].Tag
	})
	return out
}

func normalizeTag(tag string) string {
	return strings.TrimSpace(tag)
}
