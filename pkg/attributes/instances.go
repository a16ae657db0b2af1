package attributes

import (
	"strings"

	"github.com/goliatone/go-blockgen/pkg/schema"
	"github.com/goliatone/go-blockgen/pkg/values"
)

// ContentSuffix is appended to an attr_name to store the rendered inner
// blocks of a field instance.
const ContentSuffix = "_content"

// FieldInstance is one field value captured by the editor.
type FieldInstance struct {
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	Label          string          `json:"label,omitempty"`
	Value          any             `json:"value"`
	Tab            string          `json:"tab,omitempty"`
	AttrName       string          `json:"attr_name"`
	Options        []schema.Option `json:"options,omitempty"`
	Validation     map[string]any  `json:"validation,omitempty"`
	RepeaterFields []schema.Field  `json:"repeater_fields,omitempty"`
	InnerContent   string          `json:"inner_content,omitempty"`
}

// Extract writes every instance value at its attr_name. Instances without an
// attr_name or without a value are ignored. Later instances overwrite earlier
// ones sharing a path.
func Extract(instances []FieldInstance) values.Tree {
	tree := make(values.Tree)
	for _, instance := range instances {
		attr := strings.TrimSpace(instance.AttrName)
		if attr == "" || instance.Value == nil {
			continue
		}
		values.Set(tree, attr, instance.Value)
		if instance.InnerContent != "" {
			values.Set(tree, attr+ContentSuffix, instance.InnerContent)
		}
	}
	return tree
}

// Instances builds the editor field instances for block, reading current
// values from tree and falling back to the declaration defaults in set.
func Instances(block schema.Block, set Set, tree values.Tree) []FieldInstance {
	out := make([]FieldInstance, 0, len(block.Fields))
	appendField := func(tab string, field schema.Field) {
		instance := FieldInstance{
			Name:           field.Name,
			Type:           field.Type,
			Label:          field.Label,
			Tab:            tab,
			AttrName:       field.AttrName,
			Options:        field.Options,
			Validation:     field.Validation,
			RepeaterFields: field.RepeaterFields,
		}
		if field.AttrName != "" {
			if value, ok := values.Lookup(tree, field.AttrName); ok {
				instance.Value = value
			} else if decl, ok := set[field.AttrName]; ok {
				instance.Value = cloneDefault(decl.Default)
			}
		}
		out = append(out, instance)
	}

	for _, field := range block.Fields {
		appendField("", field)
	}
	for _, tab := range block.Tabs {
		for _, field := range tab.Fields {
			appendField(tab.Name, field)
		}
	}
	return out
}
