package editor

import (
	json "github.com/goccy/go-json"

	"github.com/goliatone/go-blockgen/pkg/attributes"
	"github.com/goliatone/go-blockgen/pkg/fieldtypes"
	"github.com/goliatone/go-blockgen/pkg/render/sanitize"
	"github.com/goliatone/go-blockgen/pkg/schema"
)

// Catalog is the read side of a block registry.
type Catalog interface {
	Blocks() []schema.Block
	Attributes(name string) (attributes.Set, bool)
	FieldTypes() *fieldtypes.Registry
}

// FieldManifest is a field annotated with its resolved control and storage.
// Repeater sub-fields are annotated the same way.
type FieldManifest struct {
	Name           string             `json:"name"`
	Type           string             `json:"type"`
	Label          string             `json:"label,omitempty"`
	AttrName       string             `json:"attr_name,omitempty"`
	Default        any                `json:"default"`
	Description    string             `json:"description,omitempty"`
	Placeholder    string             `json:"placeholder,omitempty"`
	Options        []schema.Option    `json:"options,omitempty"`
	RepeaterFields []FieldManifest    `json:"repeater_fields,omitempty"`
	Validation     map[string]any     `json:"validation,omitempty"`
	Control        fieldtypes.Control `json:"control,omitempty"`
	Storage        fieldtypes.Storage `json:"storage,omitempty"`
	Known          bool               `json:"known"`
}

// TabManifest is a tab with annotated fields.
type TabManifest struct {
	Name      string           `json:"name"`
	Title     string           `json:"title"`
	Icon      string           `json:"icon,omitempty"`
	Placement schema.Placement `json:"placement"`
	Fields    []FieldManifest  `json:"fields"`
}

// BlockManifest is the editor description of one block.
type BlockManifest struct {
	Name        string          `json:"name"`
	Kind        schema.Kind     `json:"kind"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Icon        string          `json:"icon"`
	Category    string          `json:"category"`
	Keywords    []string        `json:"keywords"`
	Supports    schema.Supports `json:"supports"`
	Tabs        []TabManifest   `json:"tabs"`
	Fields      []FieldManifest `json:"fields"`
	Attributes  attributes.Set  `json:"attributes"`
}

// Manifest maps block names to their editor description.
type Manifest struct {
	Blocks map[string]BlockManifest `json:"blocks"`
}

// BuildManifest describes every block in cat.
func BuildManifest(cat Catalog) Manifest {
	manifest := Manifest{Blocks: make(map[string]BlockManifest)}
	if cat == nil {
		return manifest
	}
	types := cat.FieldTypes()
	for _, block := range cat.Blocks() {
		set, _ := cat.Attributes(block.Name)
		manifest.Blocks[block.Name] = DescribeBlock(block, set, types)
	}
	return manifest
}

// DescribeBlock builds the manifest entry for one block.
func DescribeBlock(block schema.Block, set attributes.Set, types *fieldtypes.Registry) BlockManifest {
	if types == nil {
		types = fieldtypes.NewRegistry()
	}
	if set == nil {
		set = attributes.Build(block, types)
	}
	keywords := block.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	out := BlockManifest{
		Name:        block.Name,
		Kind:        block.Kind,
		Title:       block.Title,
		Description: block.Description,
		Icon:        sanitize.Icon(block.Icon),
		Category:    block.Category,
		Keywords:    keywords,
		Supports:    block.EffectiveSupports(),
		Tabs:        make([]TabManifest, 0, len(block.Tabs)),
		Fields:      describeFields(block.Fields, types),
		Attributes:  set,
	}
	for _, tab := range block.Tabs {
		placement := tab.Placement
		if placement == "" {
			placement = schema.PlacementContent
		}
		out.Tabs = append(out.Tabs, TabManifest{
			Name:      tab.Name,
			Title:     tab.Title,
			Icon:      tab.Icon,
			Placement: placement,
			Fields:    describeFields(tab.Fields, types),
		})
	}
	return out
}

// JSON encodes the manifest.
func (m Manifest) JSON() ([]byte, error) {
	return json.Marshal(m)
}

func describeFields(fields []schema.Field, types *fieldtypes.Registry) []FieldManifest {
	out := make([]FieldManifest, 0, len(fields))
	for _, field := range fields {
		entry := FieldManifest{
			Name:        field.Name,
			Type:        field.Type,
			Label:       field.Label,
			AttrName:    field.AttrName,
			Default:     field.Default,
			Description: field.Description,
			Placeholder: field.Placeholder,
			Options:     field.Options,
			Validation:  field.Validation,
		}
		if len(field.RepeaterFields) > 0 {
			entry.RepeaterFields = describeFields(field.RepeaterFields, types)
		}
		tag := field.Type
		if tag == "" {
			tag = schema.DefaultFieldType
		}
		if ft, ok := types.Resolve(tag); ok {
			entry.Control = ft.Control
			entry.Storage = ft.Storage
			entry.Known = true
		}
		out = append(out, entry)
	}
	return out
}
