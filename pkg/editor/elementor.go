package editor

import (
	"strings"

	"github.com/goliatone/go-blockgen/pkg/fieldtypes"
	"github.com/goliatone/go-blockgen/pkg/schema"
	"github.com/goliatone/go-blockgen/pkg/values"
)

// Page-builder tab identifiers.
const (
	TabContent = "content"
	TabStyle   = "style"
)

// ElementorControl is one page-builder control.
type ElementorControl struct {
	ID          string             `json:"id"`
	Label       string             `json:"label"`
	Type        string             `json:"type"`
	Default     any                `json:"default,omitempty"`
	Description string             `json:"description,omitempty"`
	Placeholder string             `json:"placeholder,omitempty"`
	Options     map[string]string  `json:"options,omitempty"`
	Multiple    bool               `json:"multiple,omitempty"`
	Fields      []ElementorControl `json:"fields,omitempty"`
}

// ElementorSection groups controls shown in one page-builder tab.
type ElementorSection struct {
	ID       string             `json:"section_id"`
	Label    string             `json:"section_label"`
	Tab      string             `json:"section_tab"`
	Controls []ElementorControl `json:"controls"`
}

var controlConstants = map[string]string{
	fieldtypes.TypeText:               "TEXT",
	fieldtypes.TypeTextarea:           "TEXTAREA",
	fieldtypes.TypeNumber:             "NUMBER",
	fieldtypes.TypeSmallNumber:        "NUMBER",
	fieldtypes.TypeSelect:             "SELECT",
	fieldtypes.TypeRadio:              "CHOOSE",
	fieldtypes.TypeCheckbox:           "SELECT2",
	fieldtypes.TypeSingleCheckbox:     "SWITCHER",
	fieldtypes.TypeToggle:             "SWITCHER",
	fieldtypes.TypeImage:              "MEDIA",
	fieldtypes.TypeDate:               "DATE_TIME",
	fieldtypes.TypeTitle:              "TEXT",
	fieldtypes.TypePurpose:            "TEXTAREA",
	fieldtypes.TypeQuery:              "CODE",
	fieldtypes.TypeService:            "TEXT",
	fieldtypes.TypeAwesomeCode:        "CODE",
	fieldtypes.TypeEnvPath:            "TEXT",
	fieldtypes.TypeAttributesRepeater: "REPEATER",
	fieldtypes.TypeRowRepeater:        "REPEATER",
	fieldtypes.TypeInnerBlocks:        "WYSIWYG",
}

// ControlConstant maps a field type tag to the page-builder control
// constant. Unmapped tags are upper-cased.
func ControlConstant(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		tag = schema.DefaultFieldType
	}
	if constant, ok := controlConstants[tag]; ok {
		return constant
	}
	return strings.ToUpper(strings.ReplaceAll(tag, "-", "_"))
}

// ElementorControls maps each tab of block to a controls section. Top-level
// fields form a leading content section named after the block.
func ElementorControls(block schema.Block) []ElementorSection {
	var sections []ElementorSection
	if len(block.Fields) > 0 {
		sections = append(sections, ElementorSection{
			ID:       block.Name + "_content",
			Label:    block.Title,
			Tab:      TabContent,
			Controls: elementorControls(block.Fields),
		})
	}
	for _, tab := range block.Tabs {
		placement := TabContent
		if tab.Placement == schema.PlacementStyle {
			placement = TabStyle
		}
		label := tab.Title
		if label == "" {
			label = tab.Name
		}
		sections = append(sections, ElementorSection{
			ID:       tab.Name,
			Label:    label,
			Tab:      placement,
			Controls: elementorControls(tab.Fields),
		})
	}
	return sections
}

func elementorControls(fields []schema.Field) []ElementorControl {
	out := make([]ElementorControl, 0, len(fields))
	for _, field := range fields {
		id := field.AttrName
		if id == "" {
			id = field.Name
		}
		control := ElementorControl{
			ID:          id,
			Label:       field.Label,
			Type:        ControlConstant(field.Type),
			Default:     field.Default,
			Description: field.Description,
			Placeholder: field.Placeholder,
			Multiple:    field.Type == fieldtypes.TypeCheckbox,
		}
		if len(field.Options) > 0 {
			control.Options = make(map[string]string, len(field.Options))
			for _, option := range field.Options {
				control.Options[optionKey(option.Value)] = option.Label
			}
		}
		if len(field.RepeaterFields) > 0 {
			control.Fields = elementorControls(field.RepeaterFields)
		}
		out = append(out, control)
	}
	return out
}

func optionKey(value any) string {
	return values.Stringify(value)
}
