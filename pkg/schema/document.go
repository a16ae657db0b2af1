package schema

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a definition document.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// FormatFromPath infers the document format from a file extension. Unknown
// extensions report false.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".md", ".markdown":
		return FormatMarkdown, true
	default:
		return "", false
	}
}

// Document wraps a raw definition payload and its origin.
type Document struct {
	origin Origin
	format Format
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Origin, format Format, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: origin is required")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return Document{}, fmt.Errorf("schema: document %s is empty", src.Location())
	}
	if format == "" {
		format = FormatJSON
	}

	clone := append([]byte(nil), raw...)
	return Document{origin: src, format: format, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Origin, format Format, raw []byte) Document {
	doc, err := NewDocument(src, format, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Origin returns where the document came from.
func (d Document) Origin() Origin {
	return d.origin
}

// Format returns the document encoding.
func (d Document) Format() Format {
	return d.format
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.origin == nil {
		return ""
	}
	return d.origin.Location()
}

// Config decodes the document into a raw configuration mapping.
func (d Document) Config() (RawConfig, error) {
	var (
		cfg RawConfig
		err error
	)
	switch d.format {
	case FormatMarkdown:
		cfg, err = DecodeMarkdown(d.raw)
	default:
		cfg, err = Decode(d.raw)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Location(), err)
	}
	return cfg, nil
}

// Decode parses a definition payload. JSON is tried first, then YAML.
func Decode(data []byte) (RawConfig, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, invalidPayloadError(errors.New("payload is empty"))
	}

	var cfg RawConfig
	jsonErr := json.Unmarshal(data, &cfg)
	if jsonErr == nil && cfg != nil {
		return cfg, nil
	}

	cfg = nil
	if err := yaml.Unmarshal(data, &cfg); err == nil && cfg != nil {
		return cfg, nil
	}

	if jsonErr == nil {
		jsonErr = errors.New("payload is not an object")
	}
	return nil, invalidPayloadError(jsonErr)
}

// DecodeMarkdown parses a markdown definition: the front matter holds the
// configuration and a non-empty body becomes the inline template unless the
// front matter already sets one.
func DecodeMarkdown(data []byte) (RawConfig, error) {
	var meta map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return nil, invalidPayloadError(fmt.Errorf("parse frontmatter: %w", err))
	}
	if len(meta) == 0 {
		return nil, invalidPayloadError(errors.New("markdown definition has no front matter"))
	}

	cfg := make(RawConfig, len(meta)+1)
	for key, value := range meta {
		cfg[key] = stringKeys(value)
	}
	if tpl := strings.TrimSpace(string(body)); tpl != "" {
		if existing, _ := cfg["template"].(string); strings.TrimSpace(existing) == "" {
			cfg["template"] = tpl
		}
	}
	return cfg, nil
}

// stringKeys converts map[any]any nodes produced by yaml.v2 based decoders
// into map[string]any so the tree can be re-encoded as JSON.
func stringKeys(value any) any {
	switch typed := value.(type) {
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[fmt.Sprint(k)] = stringKeys(v)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[k] = stringKeys(v)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for idx, v := range typed {
			out[idx] = stringKeys(v)
		}
		return out
	default:
		return value
	}
}
