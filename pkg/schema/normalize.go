package schema

import (
	"context"
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-blockgen/internal/logging"
	"github.com/goliatone/go-blockgen/pkg/interfaces"
)

// Defaults merged under every definition.
const (
	DefaultIcon         = "admin-generic"
	DefaultCategory     = "widgets"
	DefaultAssetVersion = "1.0.0"
	DefaultFieldType    = "text"
)

// ControlsResolver returns the sections published by a named controls
// service. The services registry satisfies it.
type ControlsResolver interface {
	Controls(ctx context.Context, name string) (Sections, error)
}

// NormalizerOption customises a Normalizer.
type NormalizerOption func(*Normalizer)

// WithControlsResolver wires the collaborator used for controls_service.
func WithControlsResolver(resolver ControlsResolver) NormalizerOption {
	return func(n *Normalizer) {
		n.controls = resolver
	}
}

// WithLogger sets the logger used to report skipped entries.
func WithLogger(logger interfaces.Logger) NormalizerOption {
	return func(n *Normalizer) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// Normalizer turns raw configuration into Block values.
type Normalizer struct {
	controls ControlsResolver
	logger   interfaces.Logger
}

// NewNormalizer constructs a Normalizer.
func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(n)
		}
	}
	return n
}

// Normalize decodes raw with a default normalizer.
func Normalize(ctx context.Context, raw RawConfig) (Block, error) {
	return NewNormalizer().Normalize(ctx, raw)
}

// Normalize enforces name and title, expands controls-service sections into
// tabs and merges the defaults. Malformed field entries are skipped and
// logged; only a missing name or title, or an undecodable top level, fails.
func (n *Normalizer) Normalize(ctx context.Context, raw RawConfig) (Block, error) {
	if n == nil {
		n = NewNormalizer()
	}
	if raw == nil {
		return Block{}, invalidPayloadError(errors.New("definition is empty"))
	}

	working := make(RawConfig, len(raw))
	for key, value := range raw {
		working[key] = value
	}
	liftTemplateService(working)

	name := stringValue(working["name"])
	if name == "" {
		return Block{}, missingRequiredError("name")
	}
	if stringValue(working["title"]) == "" {
		return Block{}, missingRequiredError("title")
	}

	rawFields, rawTabs := working["fields"], working["tabs"]
	delete(working, "fields")
	delete(working, "tabs")

	payload, err := json.Marshal(working)
	if err != nil {
		return Block{}, invalidPayloadError(err)
	}
	var block Block
	if err := json.Unmarshal(payload, &block); err != nil {
		return Block{}, invalidPayloadError(err)
	}
	block.Name = strings.TrimSpace(block.Name)

	logger := logging.WithFields(n.logger, map[string]any{"block": block.Name})
	block.Fields = n.decodeFields(logger, "fields", rawFields)
	block.Tabs = n.decodeTabs(logger, rawTabs)

	if ref := strings.TrimSpace(block.ControlsService); ref != "" {
		if tabs, ok := n.resolveControls(ctx, logger, ref); ok {
			block.Tabs = tabs
		}
	}

	applyDefaults(&block)
	return block, nil
}

func (n *Normalizer) resolveControls(ctx context.Context, logger interfaces.Logger, ref string) ([]Tab, bool) {
	if n.controls == nil {
		logger.Warn("schema.controls.unavailable", "service", ref)
		return nil, false
	}
	sections, err := n.controls.Controls(ctx, ref)
	if err != nil {
		logger.Error("schema.controls.failed", "service", ref, "error", err)
		return nil, false
	}
	if len(sections.Sections) == 0 {
		return nil, false
	}

	tabs := make([]Tab, 0, len(sections.Sections))
	for idx, section := range sections.Sections {
		tab := Tab{
			Name:      firstNonEmpty(section.Name, section.ID),
			Title:     firstNonEmpty(section.Title, section.Label),
			Icon:      section.Icon,
			Placement: Placement(strings.ToLower(strings.TrimSpace(section.Tab))),
		}
		tab.Fields = n.decodeFields(logger, fmt.Sprintf("sections[%d].fields", idx), section.Fields)
		tabs = append(tabs, tab)
	}
	return tabs, true
}

type wireTab struct {
	Name      string          `json:"name"`
	Title     string          `json:"title"`
	Icon      string          `json:"icon"`
	Placement Placement       `json:"placement"`
	Fields    json.RawMessage `json:"fields"`
}

func (n *Normalizer) decodeTabs(logger interfaces.Logger, raw any) []Tab {
	entries, ok := rawEntries(logger, "tabs", raw)
	if !ok {
		return nil
	}
	tabs := make([]Tab, 0, len(entries))
	for idx, entry := range entries {
		var wt wireTab
		if err := json.Unmarshal(entry, &wt); err != nil {
			logger.Warn("schema.tab.malformed", "path", fmt.Sprintf("tabs[%d]", idx), "error", malformedFieldError(fmt.Sprintf("tabs[%d]", idx), err))
			continue
		}
		tabs = append(tabs, Tab{
			Name:      strings.TrimSpace(wt.Name),
			Title:     wt.Title,
			Icon:      wt.Icon,
			Placement: wt.Placement,
			Fields:    n.decodeFields(logger, fmt.Sprintf("tabs[%d].fields", idx), wt.Fields),
		})
	}
	return tabs
}

// decodeFields accepts a list whose entries are field objects or JSON strings
// holding a serialized field. Entries that cannot be decoded are skipped.
func (n *Normalizer) decodeFields(logger interfaces.Logger, path string, raw any) []Field {
	entries, ok := rawEntries(logger, path, raw)
	if !ok {
		return nil
	}
	fields := make([]Field, 0, len(entries))
	for idx, entry := range entries {
		entryPath := fmt.Sprintf("%s[%d]", path, idx)
		field, err := decodeField(entry)
		if err != nil {
			logger.Warn("schema.field.malformed", "path", entryPath, "error", malformedFieldError(entryPath, err))
			continue
		}
		fields = append(fields, field)
	}
	return fields
}

func decodeField(entry json.RawMessage) (Field, error) {
	trimmed := strings.TrimSpace(string(entry))
	if strings.HasPrefix(trimmed, `"`) {
		var serialized string
		if err := json.Unmarshal(entry, &serialized); err != nil {
			return Field{}, err
		}
		entry = json.RawMessage(serialized)
		trimmed = strings.TrimSpace(serialized)
	}
	if !strings.HasPrefix(trimmed, "{") {
		return Field{}, errors.New("field entry is not an object")
	}

	var field Field
	if err := json.Unmarshal(entry, &field); err != nil {
		return Field{}, err
	}
	normalizeField(&field)
	return field, nil
}

func normalizeField(field *Field) {
	field.Name = strings.TrimSpace(field.Name)
	field.Type = strings.TrimSpace(field.Type)
	field.AttrName = strings.TrimSpace(field.AttrName)
	if field.Type == "" {
		field.Type = DefaultFieldType
	}
	for idx := range field.RepeaterFields {
		normalizeField(&field.RepeaterFields[idx])
	}
}

// rawEntries re-encodes a list value so every element can be decoded on its
// own. A nil value yields an empty list.
func rawEntries(logger interfaces.Logger, path string, raw any) ([]json.RawMessage, bool) {
	if raw == nil {
		return nil, false
	}
	var payload []byte
	switch typed := raw.(type) {
	case json.RawMessage:
		payload = typed
	case []byte:
		payload = typed
	default:
		encoded, err := json.Marshal(raw)
		if err != nil {
			logger.Warn("schema.list.malformed", "path", path, "error", err)
			return nil, false
		}
		payload = encoded
	}
	if len(payload) == 0 || string(payload) == "null" {
		return nil, false
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(payload, &entries); err != nil {
		logger.Warn("schema.list.malformed", "path", path, "error", malformedFieldError(path, err))
		return nil, false
	}
	return entries, true
}

// liftTemplateService moves a {"service": name} template reference into
// render_service.
func liftTemplateService(cfg RawConfig) {
	ref, ok := cfg["template"].(map[string]any)
	if !ok {
		return
	}
	if service := stringValue(ref["service"]); service != "" && stringValue(cfg["render_service"]) == "" {
		cfg["render_service"] = service
	}
	delete(cfg, "template")
}

// WithDefaults returns block with the normalizer defaults filled in. Blocks
// built in code go through it before registration.
func WithDefaults(block Block) Block {
	block.Tabs = append([]Tab(nil), block.Tabs...)
	applyDefaults(&block)
	return block
}

func applyDefaults(block *Block) {
	if block.Kind == "" {
		block.Kind = KindBlock
	}
	if strings.TrimSpace(block.Icon) == "" {
		block.Icon = DefaultIcon
	}
	if strings.TrimSpace(block.Category) == "" {
		block.Category = DefaultCategory
	}
	if block.Keywords == nil {
		block.Keywords = []string{}
	}
	if block.Tabs == nil {
		block.Tabs = []Tab{}
	}
	for idx := range block.Tabs {
		if block.Tabs[idx].Placement == "" {
			block.Tabs[idx].Placement = PlacementContent
		}
		if block.Tabs[idx].Fields == nil {
			block.Tabs[idx].Fields = []Field{}
		}
	}
	if block.Fields == nil {
		block.Fields = []Field{}
	}
	if block.Supports == nil {
		supports := DefaultSupports()
		block.Supports = &supports
	}
	block.EnqueueScripts = defaultAssets(block.EnqueueScripts)
	block.EnqueueStyles = defaultAssets(block.EnqueueStyles)
}

func defaultAssets(assets []Asset) []Asset {
	out := make([]Asset, len(assets))
	copy(out, assets)
	for idx := range out {
		if strings.TrimSpace(out[idx].Version) == "" {
			out[idx].Version = DefaultAssetVersion
		}
	}
	return out
}

func stringValue(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
