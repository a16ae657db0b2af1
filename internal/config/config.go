// Package config loads the runtime configuration shared by the blockgen CLI
// and hosts that want environment driven defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joeshaw/envdecode"
)

// Config captures the environment driven settings. Defaults are provided via
// struct tags so an empty environment yields a usable configuration.
type Config struct {
	// LogLevel for the go-logger provider. ENV: BLOCKGEN_LOG_LEVEL
	LogLevel string `env:"BLOCKGEN_LOG_LEVEL,default=info"`
	// LogFormat is one of json, console or pretty. ENV: BLOCKGEN_LOG_FORMAT
	LogFormat string `env:"BLOCKGEN_LOG_FORMAT,default=console"`
	// DefinitionsDir holds json, yaml and markdown block definitions.
	DefinitionsDir string `env:"BLOCKGEN_DEFINITIONS_DIR,default=./blocks"`
	// TemplatesDir is the base directory for template_file lookups.
	TemplatesDir string `env:"BLOCKGEN_TEMPLATES_DIR"`
	// DatabaseDSN enables the SQL definitions store when set.
	DatabaseDSN string `env:"BLOCKGEN_DATABASE_DSN"`
	// RedisAddr enables the Redis definitions store when set.
	RedisAddr string `env:"BLOCKGEN_REDIS_ADDR"`
	// RedisPrefix namespaces every Redis key.
	RedisPrefix string `env:"BLOCKGEN_REDIS_PREFIX,default=blockgen:"`
	// SanitizeContent runs inner content through the UGC policy before rendering.
	SanitizeContent bool `env:"BLOCKGEN_SANITIZE_CONTENT,default=true"`
}

// Default returns the configuration used when no environment is present.
func Default() Config {
	return Config{
		LogLevel:        "info",
		LogFormat:       "console",
		DefinitionsDir:  "./blocks",
		RedisPrefix:     "blockgen:",
		SanitizeContent: true,
	}
}

// Load decodes the configuration from the process environment.
func Load() (Config, error) {
	cfg := Default()
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("config: decode environment: %w", err)
	}
	return cfg.normalize()
}

func (c Config) normalize() (Config, error) {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	switch c.LogFormat {
	case "", "json", "console", "pretty":
	default:
		return Config{}, fmt.Errorf("config: unsupported log format %q", c.LogFormat)
	}
	if c.RedisPrefix == "" {
		c.RedisPrefix = "blockgen:"
	}
	return c, nil
}
