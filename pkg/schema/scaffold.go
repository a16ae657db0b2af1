package schema

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-blockgen/pkg/fieldtypes"
)

// ScaffoldOptions tunes the generated starter definition.
type ScaffoldOptions struct {
	Description  string
	Icon         string
	Category     string
	WithTabs     bool
	WithImage    bool
	WithRepeater bool
}

// Scaffold builds a starter definition with a title and description field,
// optionally an image, an attributes repeater and a settings tab, plus a
// matching inline template.
func Scaffold(name, title string, opts ScaffoldOptions) Block {
	name = SanitizeName(name)
	if strings.TrimSpace(title) == "" {
		title = name
	}

	prefix := ""
	if opts.WithTabs {
		prefix = "content."
	}

	fields := []Field{
		{Type: fieldtypes.TypeTitle, Name: "block-title", Label: "Title", AttrName: prefix + "title"},
		{Type: fieldtypes.TypeTextarea, Name: "description", Label: "Description", AttrName: prefix + "description"},
	}
	if opts.WithImage {
		fields = append(fields, Field{Type: fieldtypes.TypeImage, Name: "featured-image", Label: "Featured Image", AttrName: prefix + "image"})
	}
	if opts.WithRepeater {
		fields = append(fields, Field{Type: fieldtypes.TypeAttributesRepeater, Name: "attributes", Label: "Attributes", AttrName: prefix + "attributes"})
	}

	block := Block{
		Kind:        KindBlock,
		Name:        name,
		Title:       title,
		Description: opts.Description,
		Icon:        firstNonEmpty(opts.Icon, DefaultIcon),
		Category:    firstNonEmpty(opts.Category, DefaultCategory),
		Keywords:    []string{},
		Template:    ScaffoldTemplate(name, opts.WithTabs, opts.WithImage),
	}

	if opts.WithTabs {
		block.Tabs = []Tab{
			{Name: "content", Title: "Content", Icon: "edit", Placement: PlacementContent, Fields: fields},
			{Name: "settings", Title: "Settings", Icon: "admin-settings", Placement: PlacementContent, Fields: []Field{
				{
					Type:     fieldtypes.TypeSelect,
					Name:     "layout",
					Label:    "Layout",
					AttrName: "settings.layout",
					Default:  "standard",
					Options: []Option{
						{Label: "Standard", Value: "standard"},
						{Label: "Card", Value: "card"},
					},
				},
			}},
		}
	} else {
		block.Fields = fields
	}

	applyDefaults(&block)
	return block
}

// ScaffoldTemplate returns the starter template for a scaffolded block.
func ScaffoldTemplate(name string, withTabs, withImage bool) string {
	prefix := ""
	if withTabs {
		prefix = "content."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<div class=\"%s\">\n", name)
	fmt.Fprintf(&b, "  <h3>{{%stitle}}</h3>\n", prefix)
	fmt.Fprintf(&b, "  <p>{{%sdescription}}</p>\n", prefix)
	if withImage {
		fmt.Fprintf(&b, "  {{#if %simage}}\n", prefix)
		fmt.Fprintf(&b, "    <img src=\"{{%simage.url}}\" alt=\"{{%simage.alt}}\" />\n", prefix, prefix)
		b.WriteString("  {{/if}}\n")
	}
	b.WriteString("</div>")
	return b.String()
}

// Clone copies block under a new name and title. Occurrences of the old name
// inside the inline template are replaced so class names follow the clone.
func Clone(block Block, newName, newTitle string) Block {
	cloned := block
	cloned.Name = newName
	cloned.Title = newTitle
	if block.Name != "" && cloned.Template != "" {
		cloned.Template = strings.ReplaceAll(cloned.Template, block.Name, newName)
	}

	cloned.Keywords = append([]string(nil), block.Keywords...)
	cloned.Fields = cloneFields(block.Fields)
	if block.Tabs != nil {
		cloned.Tabs = make([]Tab, len(block.Tabs))
		for idx, tab := range block.Tabs {
			tab.Fields = cloneFields(tab.Fields)
			cloned.Tabs[idx] = tab
		}
	}
	if block.Supports != nil {
		supports := *block.Supports
		cloned.Supports = &supports
	}
	cloned.EnqueueScripts = cloneAssets(block.EnqueueScripts)
	cloned.EnqueueStyles = cloneAssets(block.EnqueueStyles)
	return cloned
}

func cloneFields(fields []Field) []Field {
	if fields == nil {
		return nil
	}
	out := make([]Field, len(fields))
	for idx, field := range fields {
		field.Options = append([]Option(nil), field.Options...)
		field.RepeaterFields = cloneFields(field.RepeaterFields)
		if field.Validation != nil {
			rules := make(map[string]any, len(field.Validation))
			for k, v := range field.Validation {
				rules[k] = v
			}
			field.Validation = rules
		}
		out[idx] = field
	}
	return out
}

func cloneAssets(assets []Asset) []Asset {
	if assets == nil {
		return nil
	}
	out := make([]Asset, len(assets))
	for idx, asset := range assets {
		asset.Deps = append([]string(nil), asset.Deps...)
		out[idx] = asset
	}
	return out
}
