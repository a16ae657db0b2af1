package editor

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-blockgen/pkg/attributes"
	"github.com/goliatone/go-blockgen/pkg/fieldtypes"
	"github.com/goliatone/go-blockgen/pkg/render/sanitize"
	rendertemplate "github.com/goliatone/go-blockgen/pkg/render/template"
	gotemplate "github.com/goliatone/go-blockgen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-blockgen/pkg/schema"
	"github.com/goliatone/go-blockgen/pkg/values"
)

// GeneralTab names the tab holding top-level fields in the panel.
const GeneralTab = "general"

// PanelOption configures a Panel.
type PanelOption func(*panelConfig)

type panelConfig struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	types            *fieldtypes.Registry
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) PanelOption {
	return func(cfg *panelConfig) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads panel templates from a directory on disk.
func WithTemplatesDir(path string) PanelOption {
	return func(cfg *panelConfig) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) PanelOption {
	return func(cfg *panelConfig) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithPanelFieldTypes sets the field type registry used to pick controls.
func WithPanelFieldTypes(types *fieldtypes.Registry) PanelOption {
	return func(cfg *panelConfig) {
		if types != nil {
			cfg.types = types
		}
	}
}

// Panel renders the inspector markup for a block instance.
type Panel struct {
	templates rendertemplate.TemplateRenderer
	types     *fieldtypes.Registry
}

// NewPanel constructs a panel renderer applying any provided options.
func NewPanel(options ...PanelOption) (*Panel, error) {
	cfg := panelConfig{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.types == nil {
		cfg.types = fieldtypes.NewRegistry()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("editor panel: configure template renderer: %w", err)
		}
		renderer = engine
	}
	return &Panel{templates: renderer, types: cfg.types}, nil
}

type panelOption struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

type panelField struct {
	Name     string        `json:"name"`
	Label    string        `json:"label"`
	AttrName string        `json:"attr_name"`
	Control  string        `json:"control"`
	Display  string        `json:"display"`
	Checked  bool          `json:"checked"`
	Rows     int           `json:"rows"`
	Columns  []string      `json:"columns"`
	Options  []panelOption `json:"options"`
}

type panelTab struct {
	Name      string       `json:"name"`
	Title     string       `json:"title"`
	Placement string       `json:"placement"`
	Fields    []panelField `json:"fields"`
}

type panelView struct {
	Name        string     `json:"name"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	IconMarkup  bool       `json:"icon_markup"`
	Tabs        []panelTab `json:"tabs"`
}

// Render renders the panel for block using current attribute values. Missing
// values fall back to the declaration defaults.
func (p *Panel) Render(ctx context.Context, block schema.Block, current values.Tree) (string, error) {
	if p == nil || p.templates == nil {
		return "", fmt.Errorf("editor panel: template renderer is nil")
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return "", err
		}
	}

	result, err := p.templates.RenderTemplate(panelTemplate, map[string]any{
		"panel": p.view(block, current),
	})
	if err != nil {
		return "", fmt.Errorf("editor panel: render template: %w", err)
	}
	return result, nil
}

func (p *Panel) view(block schema.Block, current values.Tree) panelView {
	set := attributes.Build(block, p.types)
	instances := attributes.Instances(block, set, current)

	icon := sanitize.Icon(block.Icon)
	view := panelView{
		Name:        block.Name,
		Title:       block.Title,
		Description: block.Description,
		Icon:        icon,
		IconMarkup:  strings.HasPrefix(icon, "<"),
	}

	tabs := make(map[string]int)
	if len(block.Fields) > 0 {
		tabs[GeneralTab] = len(view.Tabs)
		view.Tabs = append(view.Tabs, panelTab{
			Name:      GeneralTab,
			Title:     "General",
			Placement: string(schema.PlacementContent),
		})
	}
	for _, tab := range block.Tabs {
		placement := tab.Placement
		if placement == "" {
			placement = schema.PlacementContent
		}
		title := tab.Title
		if title == "" {
			title = tab.Name
		}
		tabs[tab.Name] = len(view.Tabs)
		view.Tabs = append(view.Tabs, panelTab{Name: tab.Name, Title: title, Placement: string(placement)})
	}

	for _, instance := range instances {
		ft, ok := p.types.Resolve(instance.Type)
		if !ok {
			continue
		}
		name := instance.Tab
		if name == "" {
			name = GeneralTab
		}
		idx, ok := tabs[name]
		if !ok {
			continue
		}
		view.Tabs[idx].Fields = append(view.Tabs[idx].Fields, viewField(instance, ft))
	}
	return view
}

func viewField(instance attributes.FieldInstance, ft fieldtypes.FieldType) panelField {
	label := instance.Label
	if label == "" {
		label = instance.Name
	}
	field := panelField{
		Name:     instance.Name,
		Label:    label,
		AttrName: instance.AttrName,
		Control:  string(ft.Control),
	}

	switch ft.Storage {
	case fieldtypes.StorageBoolean:
		field.Checked = values.Truthy(instance.Value)
	case fieldtypes.StorageArray:
		rows, _ := values.Sequence(instance.Value)
		field.Rows = len(rows)
	case fieldtypes.StorageObject:
		if media, ok := instance.Value.(map[string]any); ok {
			field.Display = values.Stringify(media["url"])
		}
	default:
		field.Display = values.Stringify(instance.Value)
	}

	selected := selectedSet(instance.Value)
	for _, option := range instance.Options {
		value := values.Stringify(option.Value)
		_, isSelected := selected[value]
		field.Options = append(field.Options, panelOption{
			Label:    option.Label,
			Value:    value,
			Selected: isSelected,
		})
	}
	for _, sub := range instance.RepeaterFields {
		column := sub.Label
		if column == "" {
			column = sub.Name
		}
		field.Columns = append(field.Columns, column)
	}
	return field
}

func selectedSet(value any) map[string]struct{} {
	out := make(map[string]struct{})
	if items, ok := values.Sequence(value); ok {
		for _, item := range items {
			out[values.Stringify(item)] = struct{}{}
		}
		return out
	}
	if value != nil {
		out[values.Stringify(value)] = struct{}{}
	}
	return out
}
