// Package tui collects block attribute values on a terminal, one prompt per
// field chosen from the field's control.
package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-blockgen/pkg/attributes"
	"github.com/goliatone/go-blockgen/pkg/fieldtypes"
	"github.com/goliatone/go-blockgen/pkg/schema"
	"github.com/goliatone/go-blockgen/pkg/values"
)

// Collector prompts for every attribute of a block.
type Collector struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	types             *fieldtypes.Registry
	submitTransformer SubmitTransformer
}

// New constructs a Collector with defaults (survey driver, JSON output).
func New(options ...Option) *Collector {
	c := &Collector{
		driver:       NewSurveyDriver(),
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.types == nil {
		c.types = fieldtypes.NewRegistry()
	}
	return c
}

// ContentType reports the serialization format used by Render.
func (c *Collector) ContentType() string {
	if c.outputFormat == OutputFormatPrettyText {
		return "text/plain"
	}
	return "application/json"
}

// Collect prompts for each field with an attr_name and returns the attribute
// tree. Current values prefill the prompts, then declaration defaults.
// Presentational and unknown fields are skipped.
func (c *Collector) Collect(ctx context.Context, block schema.Block, current values.Tree) (values.Tree, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.driver == nil {
		return nil, ErrNoDriver
	}

	set := attributes.Build(block, c.types)
	tree := set.Defaults()
	values.MergeDeep(tree, current)

	for _, field := range block.AllFields() {
		if field.AttrName == "" {
			continue
		}
		ft, ok := c.types.Resolve(fieldTag(field))
		if !ok || ft.Presentational {
			continue
		}
		value, err := c.promptField(ctx, field, ft, values.Get(tree, field.AttrName, nil))
		if err != nil {
			return nil, err
		}
		values.Set(tree, field.AttrName, value)
	}
	return tree, nil
}

// Render collects the values and serializes them.
func (c *Collector) Render(ctx context.Context, block schema.Block, current values.Tree) ([]byte, error) {
	tree, err := c.Collect(ctx, block, current)
	if err != nil {
		return nil, err
	}
	out := map[string]any(tree)
	if c.submitTransformer != nil {
		out, err = c.submitTransformer(out)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	if c.outputFormat == OutputFormatPrettyText {
		return []byte(prettyPrint(out)), nil
	}
	return json.Marshal(out)
}

func (c *Collector) promptField(ctx context.Context, field schema.Field, ft fieldtypes.FieldType, current any) (any, error) {
	switch ft.Control {
	case fieldtypes.ControlToggle, fieldtypes.ControlCheckbox:
		return c.driver.Confirm(ctx, ConfirmConfig{
			Message: label(field),
			Default: values.Truthy(current),
			Help:    field.Description,
		})
	case fieldtypes.ControlSelect, fieldtypes.ControlRadio:
		return c.promptChoice(ctx, field, current)
	case fieldtypes.ControlCheckboxGroup:
		return c.promptMulti(ctx, field, current)
	case fieldtypes.ControlNumber, fieldtypes.ControlSmallNumber:
		return c.promptNumber(ctx, field, current)
	case fieldtypes.ControlMedia:
		return c.promptMedia(ctx, field, current)
	case fieldtypes.ControlKeyValue:
		return c.promptKeyValue(ctx, field, current)
	case fieldtypes.ControlRepeater:
		return c.promptRows(ctx, field, current)
	case fieldtypes.ControlTextarea, fieldtypes.ControlCode:
		for {
			resp, err := c.driver.TextArea(ctx, TextAreaConfig{
				Message: label(field),
				Default: values.Stringify(current),
				Help:    field.Description,
			})
			if err != nil {
				return nil, err
			}
			if c.checkRules(ctx, field, resp) {
				return resp, nil
			}
		}
	default:
		for {
			resp, err := c.driver.Input(ctx, InputConfig{
				Message: label(field),
				Default: values.Stringify(current),
				Help:    field.Description,
			})
			if err != nil {
				return nil, err
			}
			if c.checkRules(ctx, field, resp) {
				return resp, nil
			}
		}
	}
}

func (c *Collector) promptChoice(ctx context.Context, field schema.Field, current any) (any, error) {
	labels, keys := optionLabels(field.Options)
	if len(labels) == 0 {
		return current, nil
	}
	idx, err := c.driver.Select(ctx, SelectConfig{
		Message:      label(field),
		Options:      labels,
		DefaultIndex: indexOf(keys, values.Stringify(current)),
		Help:         field.Description,
	})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(field.Options) {
		return current, nil
	}
	return field.Options[idx].Value, nil
}

func (c *Collector) promptMulti(ctx context.Context, field schema.Field, current any) (any, error) {
	labels, keys := optionLabels(field.Options)
	var defaults []int
	if items, ok := values.Sequence(current); ok {
		for _, item := range items {
			if idx := indexOf(keys, values.Stringify(item)); idx >= 0 {
				defaults = append(defaults, idx)
			}
		}
	}
	indices, err := c.driver.MultiSelect(ctx, SelectConfig{
		Message:  label(field),
		Options:  labels,
		Defaults: defaults,
		Help:     field.Description,
	})
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(field.Options) {
			out = append(out, field.Options[idx].Value)
		}
	}
	return out, nil
}

func (c *Collector) promptNumber(ctx context.Context, field schema.Field, current any) (any, error) {
	for {
		resp, err := c.driver.Input(ctx, InputConfig{
			Message: label(field),
			Default: values.Stringify(current),
			Help:    field.Description,
		})
		if err != nil {
			return nil, err
		}
		resp = strings.TrimSpace(resp)
		if resp == "" {
			if c.checkRules(ctx, field, nil) {
				return 0, nil
			}
			continue
		}
		parsed, err := strconv.ParseFloat(resp, 64)
		if err != nil {
			_ = c.driver.Info(ctx, fmt.Sprintf("Invalid %s: %v", field.AttrName, err))
			continue
		}
		if c.checkRules(ctx, field, parsed) {
			return parsed, nil
		}
	}
}

func (c *Collector) promptMedia(ctx context.Context, field schema.Field, current any) (any, error) {
	existing, _ := current.(map[string]any)
	resp, err := c.driver.Input(ctx, InputConfig{
		Message: label(field) + " URL",
		Default: values.Stringify(existing["url"]),
		Help:    field.Description,
	})
	if err != nil {
		return nil, err
	}
	resp = strings.TrimSpace(resp)
	if resp == "" {
		return nil, nil
	}
	media := make(map[string]any, len(existing)+1)
	for key, value := range existing {
		media[key] = value
	}
	media["url"] = resp
	return media, nil
}

func (c *Collector) promptKeyValue(ctx context.Context, field schema.Field, current any) (any, error) {
	pairs, _ := values.Sequence(current)
	out := append([]any(nil), pairs...)
	for {
		add, err := c.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Add %s entry?", label(field)),
		})
		if err != nil {
			return nil, err
		}
		if !add {
			return out, nil
		}
		key, err := c.driver.Input(ctx, InputConfig{Message: "Key"})
		if err != nil {
			return nil, err
		}
		value, err := c.driver.Input(ctx, InputConfig{Message: "Value"})
		if err != nil {
			return nil, err
		}
		out = append(out, map[string]any{"key": key, "value": value})
	}
}

func (c *Collector) promptRows(ctx context.Context, field schema.Field, current any) (any, error) {
	rows, _ := values.Sequence(current)
	out := append([]any(nil), rows...)
	for {
		add, err := c.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Add %s row?", label(field)),
		})
		if err != nil {
			return nil, err
		}
		if !add {
			return out, nil
		}
		row := make(map[string]any, len(field.RepeaterFields))
		for _, sub := range field.RepeaterFields {
			ft, ok := c.types.Resolve(fieldTag(sub))
			if !ok || ft.Presentational {
				continue
			}
			value, err := c.promptField(ctx, sub, ft, ft.Default(sub.Default))
			if err != nil {
				return nil, err
			}
			row[sub.Name] = value
		}
		out = append(out, row)
	}
}

// checkRules reports whether value satisfies the field rules, telling the
// user about the first failure.
func (c *Collector) checkRules(ctx context.Context, field schema.Field, value any) bool {
	if len(field.Validation) == 0 || field.AttrName == "" {
		return true
	}
	single := schema.Block{Fields: []schema.Field{field}}
	tree := values.Tree{}
	values.Set(tree, field.AttrName, value)
	issues := attributes.ValidateFieldRules(single, tree)
	if len(issues) == 0 {
		return true
	}
	_ = c.driver.Info(ctx, fmt.Sprintf("Invalid %s: %s", field.AttrName, issues[0].Message))
	return false
}

func fieldTag(field schema.Field) string {
	if field.Type == "" {
		return schema.DefaultFieldType
	}
	return field.Type
}

func label(field schema.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func optionLabels(options []schema.Option) ([]string, []string) {
	labels := make([]string, 0, len(options))
	keys := make([]string, 0, len(options))
	for _, option := range options {
		key := values.Stringify(option.Value)
		text := option.Label
		if text == "" {
			text = key
		}
		labels = append(labels, text)
		keys = append(keys, key)
	}
	return labels, keys
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}

func prettyPrint(tree map[string]any) string {
	var b strings.Builder
	writePretty(&b, "", tree)
	return b.String()
}

func writePretty(b *strings.Builder, prefix string, value any) {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			writePretty(b, next, v[key])
		}
	case []any:
		for idx, val := range v {
			writePretty(b, fmt.Sprintf("%s[%d]", prefix, idx), val)
		}
	default:
		if prefix != "" {
			fmt.Fprintf(b, "%s=%v\n", prefix, v)
		}
	}
}
