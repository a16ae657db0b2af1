package schema

// RawConfig is the mapping view of one block or widget definition before
// normalisation.
type RawConfig = map[string]any

// Kind distinguishes editor blocks from page-builder widgets.
type Kind string

const (
	KindBlock  Kind = "block"
	KindWidget Kind = "widget"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindBlock, KindWidget:
		return true
	default:
		return false
	}
}

// Placement mirrors the page-builder tab a section is shown in.
type Placement string

const (
	PlacementContent Placement = "content"
	PlacementStyle   Placement = "style"
)

// Option is one choice of a select, radio or checkbox field.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value any    `json:"value" yaml:"value"`
}

// Field is a single editable value definition.
type Field struct {
	Name           string         `json:"name" yaml:"name" jsonschema:"required"`
	Type           string         `json:"type" yaml:"type"`
	Label          string         `json:"label,omitempty" yaml:"label,omitempty"`
	AttrName       string         `json:"attr_name,omitempty" yaml:"attr_name,omitempty"`
	Default        any            `json:"default" yaml:"default"`
	Description    string         `json:"description,omitempty" yaml:"description,omitempty"`
	Placeholder    string         `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Options        []Option       `json:"options,omitempty" yaml:"options,omitempty"`
	RepeaterFields []Field        `json:"repeater_fields,omitempty" yaml:"repeater_fields,omitempty"`
	Validation     map[string]any `json:"validation,omitempty" yaml:"validation,omitempty"`
}

// Tab groups fields in the editor.
type Tab struct {
	Name      string    `json:"name" yaml:"name" jsonschema:"required"`
	Title     string    `json:"title,omitempty" yaml:"title,omitempty"`
	Icon      string    `json:"icon,omitempty" yaml:"icon,omitempty"`
	Placement Placement `json:"placement,omitempty" yaml:"placement,omitempty" jsonschema:"enum=content,enum=style"`
	Fields    []Field   `json:"fields" yaml:"fields"`
}

// Supports lists the editor features a block opts into.
type Supports struct {
	HTML      bool `json:"html" yaml:"html"`
	Align     bool `json:"align" yaml:"align"`
	ClassName bool `json:"className" yaml:"className"`
}

// DefaultSupports is applied when a definition omits supports.
func DefaultSupports() Supports {
	return Supports{HTML: false, Align: true, ClassName: true}
}

// Asset is a script or style enqueued when the block renders.
type Asset struct {
	Handle  string   `json:"handle" yaml:"handle"`
	Src     string   `json:"src" yaml:"src"`
	Deps    []string `json:"deps,omitempty" yaml:"deps,omitempty"`
	Version string   `json:"version,omitempty" yaml:"version,omitempty"`
}

// Block is a normalized block or widget schema.
type Block struct {
	Module          string    `json:"module,omitempty" yaml:"module,omitempty"`
	Kind            Kind      `json:"kind,omitempty" yaml:"kind,omitempty" jsonschema:"enum=block,enum=widget"`
	Name            string    `json:"name" yaml:"name" jsonschema:"required,minLength=1"`
	Title           string    `json:"title" yaml:"title" jsonschema:"required,minLength=1"`
	Description     string    `json:"description,omitempty" yaml:"description,omitempty"`
	Icon            string    `json:"icon,omitempty" yaml:"icon,omitempty"`
	Category        string    `json:"category,omitempty" yaml:"category,omitempty"`
	Keywords        []string  `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Tabs            []Tab     `json:"tabs" yaml:"tabs"`
	Fields          []Field   `json:"fields" yaml:"fields"`
	Template        string    `json:"template,omitempty" yaml:"template,omitempty"`
	TemplateFile    string    `json:"template_file,omitempty" yaml:"template_file,omitempty"`
	RenderService   string    `json:"render_service,omitempty" yaml:"render_service,omitempty"`
	ControlsService string    `json:"controls_service,omitempty" yaml:"controls_service,omitempty"`
	Supports        *Supports `json:"supports,omitempty" yaml:"supports,omitempty"`
	EnqueueScripts  []Asset   `json:"enqueue_scripts" yaml:"enqueue_scripts"`
	EnqueueStyles   []Asset   `json:"enqueue_styles" yaml:"enqueue_styles"`
}

// AllFields returns the top-level fields followed by every tab's fields, in
// declaration order.
func (b Block) AllFields() []Field {
	total := len(b.Fields)
	for _, tab := range b.Tabs {
		total += len(tab.Fields)
	}
	out := make([]Field, 0, total)
	out = append(out, b.Fields...)
	for _, tab := range b.Tabs {
		out = append(out, tab.Fields...)
	}
	return out
}

// EffectiveSupports returns the declared supports or the defaults.
func (b Block) EffectiveSupports() Supports {
	if b.Supports == nil {
		return DefaultSupports()
	}
	return *b.Supports
}

// Sections is the payload returned by a controls service.
type Sections struct {
	Sections []RawSection `json:"sections" yaml:"sections"`
}

// RawSection is one controls-service section. Page-builder services use the
// section_* keys; block services use name/title. Field entries are either
// objects or JSON strings holding a serialized field.
type RawSection struct {
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Title  string `json:"title,omitempty" yaml:"title,omitempty"`
	Icon   string `json:"icon,omitempty" yaml:"icon,omitempty"`
	ID     string `json:"section_id,omitempty" yaml:"section_id,omitempty"`
	Label  string `json:"section_label,omitempty" yaml:"section_label,omitempty"`
	Tab    string `json:"section_tab,omitempty" yaml:"section_tab,omitempty"`
	Fields []any  `json:"fields,omitempty" yaml:"fields,omitempty"`
}
