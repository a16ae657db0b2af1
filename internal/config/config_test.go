package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"BLOCKGEN_LOG_LEVEL",
		"BLOCKGEN_LOG_FORMAT",
		"BLOCKGEN_DEFINITIONS_DIR",
		"BLOCKGEN_TEMPLATES_DIR",
		"BLOCKGEN_DATABASE_DSN",
		"BLOCKGEN_REDIS_ADDR",
		"BLOCKGEN_REDIS_PREFIX",
		"BLOCKGEN_SANITIZE_CONTENT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BLOCKGEN_LOG_LEVEL", "DEBUG")
	t.Setenv("BLOCKGEN_LOG_FORMAT", "json")
	t.Setenv("BLOCKGEN_DEFINITIONS_DIR", "/srv/blocks")
	t.Setenv("BLOCKGEN_REDIS_ADDR", "localhost:6379")
	t.Setenv("BLOCKGEN_SANITIZE_CONTENT", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected lower-cased level, got %q", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" || cfg.DefinitionsDir != "/srv/blocks" || cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.SanitizeContent {
		t.Fatal("expected sanitize content disabled")
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	t.Setenv("BLOCKGEN_LOG_FORMAT", "xml")
	if _, err := Load(); err == nil {
		t.Fatal("expected format error")
	}
}
