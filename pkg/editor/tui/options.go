package tui

import "github.com/goliatone/go-blockgen/pkg/fieldtypes"

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits the attribute tree as JSON.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatPrettyText emits one path=value line per leaf.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// SubmitTransformer mutates collected values before serialization.
type SubmitTransformer func(map[string]any) (map[string]any, error)

// Option configures a Collector.
type Option func(*Collector)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(c *Collector) {
		if driver != nil {
			c.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(c *Collector) {
		if format != "" {
			c.outputFormat = format
		}
	}
}

// WithFieldTypes sets the registry used to pick a prompt per field.
func WithFieldTypes(types *fieldtypes.Registry) Option {
	return func(c *Collector) {
		if types != nil {
			c.types = types
		}
	}
}

// WithSubmitTransformer allows callers to mutate collected values prior to
// serialization.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(c *Collector) {
		c.submitTransformer = fn
	}
}
