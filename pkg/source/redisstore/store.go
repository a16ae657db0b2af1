// Package redisstore keeps block definitions in a Redis hash keyed by module.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-blockgen/internal/logging"
	"github.com/goliatone/go-blockgen/pkg/interfaces"
	"github.com/goliatone/go-blockgen/pkg/schema"
	"github.com/goliatone/go-blockgen/pkg/source"
)

// DefaultKeyPrefix prefixes the definitions hash key.
const DefaultKeyPrefix = "blockgen:"

// Config configures a Store.
type Config struct {
	// Client is the Redis client instance.
	Client *redis.Client

	// KeyPrefix is prepended to the hash key. Default: "blockgen:".
	KeyPrefix string

	// Logger receives skipped entries.
	Logger interfaces.Logger
}

// Store reads and writes definition records in one Redis hash.
type Store struct {
	client *redis.Client
	key    string
	logger interfaces.Logger
}

var _ source.Source = (*Store)(nil)

// New constructs a Store.
func New(cfg Config) (*Store, error) {
	if cfg.Client == nil {
		return nil, errors.New("redisstore: redis client is required")
	}
	prefix := cfg.KeyPrefix
	if strings.TrimSpace(prefix) == "" {
		prefix = DefaultKeyPrefix
	}
	return &Store{
		client: cfg.Client,
		key:    prefix + "blocks",
		logger: logging.Ensure(cfg.Logger),
	}, nil
}

// Key returns the hash key holding the definitions.
func (s *Store) Key() string {
	return s.key
}

// Save writes rec under its module, replacing any previous entry.
func (s *Store) Save(ctx context.Context, rec source.Record) error {
	module := strings.TrimSpace(rec.Module)
	if module == "" {
		return errors.New("redisstore: record module is required")
	}
	rec.Module = module
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("redisstore: encode %s: %w", module, err)
	}
	if err := s.client.HSet(ctx, s.key, module, payload).Err(); err != nil {
		return fmt.Errorf("redisstore: save %s: %w", module, err)
	}
	return nil
}

// Delete removes module, reporting whether it was present.
func (s *Store) Delete(ctx context.Context, module string) (bool, error) {
	n, err := s.client.HDel(ctx, s.key, strings.TrimSpace(module)).Result()
	if err != nil {
		return false, fmt.Errorf("redisstore: delete %s: %w", module, err)
	}
	return n > 0, nil
}

// Load returns every stored record ordered by module. Entries that cannot be
// decoded are logged and skipped.
func (s *Store) Load(ctx context.Context) ([]source.Record, error) {
	entries, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("redisstore: load %s: %w", s.key, err)
	}

	modules := make([]string, 0, len(entries))
	for module := range entries {
		modules = append(modules, module)
	}
	sort.Strings(modules)

	records := make([]source.Record, 0, len(modules))
	for _, module := range modules {
		rec, err := decodeRecord(entries[module])
		if err != nil {
			s.logger.Warn("source.redisstore.skipped", "key", s.key, "module", module, "error", err)
			continue
		}
		if rec.Module == "" {
			rec.Module = module
		}
		rec.Origin = schema.OriginFromRedis(s.key, module)
		records = append(records, rec)
	}
	return records, nil
}

// decodeRecord accepts a stored record or a bare definition.
func decodeRecord(payload string) (source.Record, error) {
	raw, err := schema.Decode([]byte(payload))
	if err != nil {
		return source.Record{}, err
	}
	cfg, ok := raw["config"].(map[string]any)
	if !ok {
		return source.RecordFromConfig(raw, nil), nil
	}
	var rec source.Record
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return source.Record{}, err
	}
	rec.Config = cfg
	return rec, nil
}
