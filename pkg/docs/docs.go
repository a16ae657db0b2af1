// Package docs generates reference documentation for a block definition as
// Markdown, and as HTML through goldmark.
package docs

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/goliatone/go-blockgen/pkg/schema"
	"github.com/goliatone/go-blockgen/pkg/values"
)

// Markdown documents block: identity, every field with its tab, default,
// validation rules and options, and the inline template when present.
func Markdown(block schema.Block) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", block.Title)
	if block.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", block.Description)
	}

	b.WriteString("## Block Information\n\n")
	fmt.Fprintf(&b, "- **Name**: `%s`\n", block.Name)
	if block.Kind != "" {
		fmt.Fprintf(&b, "- **Kind**: %s\n", block.Kind)
	}
	fmt.Fprintf(&b, "- **Category**: %s\n", block.Category)
	fmt.Fprintf(&b, "- **Icon**: %s\n\n", iconLabel(block.Icon))
	if len(block.Keywords) > 0 {
		fmt.Fprintf(&b, "**Keywords**: %s\n\n", strings.Join(block.Keywords, ", "))
	}

	b.WriteString("## Fields\n\n")
	for _, field := range block.Fields {
		writeField(&b, field, "")
	}
	for _, tab := range block.Tabs {
		title := tab.Title
		if title == "" {
			title = tab.Name
		}
		for _, field := range tab.Fields {
			writeField(&b, field, title)
		}
	}

	if block.Template != "" {
		b.WriteString("## Template\n\n```html\n")
		b.WriteString(block.Template)
		b.WriteString("\n```\n\n")
	} else if block.TemplateFile != "" {
		fmt.Fprintf(&b, "## Template\n\nRendered from `%s`.\n\n", block.TemplateFile)
	}
	if block.RenderService != "" {
		fmt.Fprintf(&b, "**Render service**: `%s`\n\n", block.RenderService)
	}
	return b.String()
}

// HTML renders the Markdown documentation of block.
func HTML(block schema.Block) (string, error) {
	engine := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	var buf bytes.Buffer
	if err := engine.Convert([]byte(Markdown(block)), &buf); err != nil {
		return "", fmt.Errorf("docs: convert markdown: %w", err)
	}
	return buf.String(), nil
}

func writeField(b *strings.Builder, field schema.Field, tab string) {
	label := field.Label
	if label == "" {
		label = field.Name
	}
	fmt.Fprintf(b, "### %s\n\n", label)
	if tab != "" {
		fmt.Fprintf(b, "**Tab**: %s\n\n", tab)
	}
	fmt.Fprintf(b, "- **Type**: `%s`\n", field.Type)
	if field.AttrName != "" {
		fmt.Fprintf(b, "- **Attribute**: `%s`\n", field.AttrName)
	} else {
		b.WriteString("- **Attribute**: none (presentational)\n")
	}
	if field.Default != nil {
		fmt.Fprintf(b, "- **Default**: `%s`\n", formatDefault(field.Default))
	}
	if field.Description != "" {
		fmt.Fprintf(b, "- **Description**: %s\n", field.Description)
	}
	if len(field.Validation) > 0 {
		b.WriteString("- **Validation**:\n")
		rules := make([]string, 0, len(field.Validation))
		for rule := range field.Validation {
			rules = append(rules, rule)
		}
		sort.Strings(rules)
		for _, rule := range rules {
			fmt.Fprintf(b, "  - %s: %s\n", rule, formatDefault(field.Validation[rule]))
		}
	}
	if len(field.Options) > 0 {
		b.WriteString("- **Options**:\n")
		for _, option := range field.Options {
			fmt.Fprintf(b, "  - %s (`%s`)\n", option.Label, values.Stringify(option.Value))
		}
	}
	if len(field.RepeaterFields) > 0 {
		b.WriteString("- **Row fields**:\n")
		for _, sub := range field.RepeaterFields {
			tag := sub.Type
			if tag == "" {
				tag = schema.DefaultFieldType
			}
			fmt.Fprintf(b, "  - `%s` (`%s`)\n", sub.Name, tag)
		}
	}
	b.WriteString("\n")
}

func formatDefault(value any) string {
	switch value.(type) {
	case []any, map[string]any:
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprint(value)
		}
		return string(raw)
	case bool:
		return fmt.Sprint(value)
	}
	return values.Stringify(value)
}

func iconLabel(icon string) string {
	if strings.HasPrefix(strings.TrimSpace(icon), "<") {
		return "inline SVG"
	}
	return icon
}
