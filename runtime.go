package blockgen

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-blockgen/internal/config"
	"github.com/goliatone/go-blockgen/internal/logging"
	"github.com/goliatone/go-blockgen/internal/logging/gologger"
	"github.com/goliatone/go-blockgen/pkg/interfaces"
	"github.com/goliatone/go-blockgen/pkg/orchestrator"
	"github.com/goliatone/go-blockgen/pkg/registry"
	"github.com/goliatone/go-blockgen/pkg/render/sanitize"
	"github.com/goliatone/go-blockgen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-blockgen/pkg/services"
	"github.com/goliatone/go-blockgen/pkg/source"
	"github.com/goliatone/go-blockgen/pkg/source/fsdir"
	"github.com/goliatone/go-blockgen/pkg/source/redisstore"
	"github.com/goliatone/go-blockgen/pkg/source/sqlstore"
)

// Config aliases the environment driven runtime configuration.
type Config = config.Config

// LoadConfig reads the BLOCKGEN_* environment.
func LoadConfig() (Config, error) {
	return config.Load()
}

// DefaultConfig returns the configuration used for an empty environment.
func DefaultConfig() Config {
	return config.Default()
}

// Runtime bundles the orchestrator built from a Config with the resources it
// opened. Close releases them.
type Runtime struct {
	Orchestrator *orchestrator.Orchestrator
	Registry     *registry.Registry
	Services     *services.Registry
	Logger       interfaces.LoggerProvider
	SQL          *sqlstore.Store
	Redis        *redisstore.Store

	closers []func() error
}

// Setup builds a Runtime from cfg: the go-logger provider, the registry with
// the configured sanitizer and template directory, and one source per
// configured store. Directory definitions load first, then SQL rows, then
// Redis entries. Extra options are applied after the defaults.
func Setup(ctx context.Context, cfg Config, options ...orchestrator.Option) (*Runtime, error) {
	provider, err := gologger.NewProvider(gologger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return nil, fmt.Errorf("blockgen: logger: %w", err)
	}

	rt := &Runtime{
		Services: services.NewRegistry(),
		Logger:   provider,
	}

	regOpts := []registry.Option{
		registry.WithLoggerProvider(provider),
		registry.WithServices(rt.Services),
	}
	if cfg.SanitizeContent {
		regOpts = append(regOpts, registry.WithSanitizer(sanitize.Content()))
	} else {
		regOpts = append(regOpts, registry.WithSanitizer(nil))
	}
	if cfg.TemplatesDir != "" {
		files, err := gotemplate.New(gotemplate.WithBaseDir(cfg.TemplatesDir))
		if err != nil {
			return nil, fmt.Errorf("blockgen: template engine: %w", err)
		}
		regOpts = append(regOpts, registry.WithFileEngine(files))
	}
	rt.Registry = registry.New(regOpts...)

	sources, err := rt.openSources(ctx, cfg)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}

	opts := []orchestrator.Option{
		orchestrator.WithLoggerProvider(provider),
		orchestrator.WithRegistry(rt.Registry),
		orchestrator.WithSources(sources...),
	}
	rt.Orchestrator = orchestrator.New(append(opts, options...)...)
	return rt, nil
}

func (rt *Runtime) openSources(ctx context.Context, cfg Config) ([]source.Source, error) {
	var sources []source.Source

	if cfg.DefinitionsDir != "" {
		if info, err := os.Stat(cfg.DefinitionsDir); err == nil && info.IsDir() {
			sources = append(sources, fsdir.NewDir(cfg.DefinitionsDir, fsdir.WithLoggerProvider(rt.Logger)))
		}
	}

	if cfg.DatabaseDSN != "" {
		sqldb, err := sql.Open("sqlite3", cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("blockgen: open database: %w", err)
		}
		db := bun.NewDB(sqldb, sqlitedialect.New())
		rt.closers = append(rt.closers, db.Close)

		rt.SQL = sqlstore.New(db, sqlstore.WithLoggerProvider(rt.Logger))
		if err := rt.SQL.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("blockgen: migrate database: %w", err)
		}
		sources = append(sources, rt.SQL)
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		rt.closers = append(rt.closers, client.Close)

		store, err := redisstore.New(redisstore.Config{
			Client:    client,
			KeyPrefix: cfg.RedisPrefix,
			Logger:    logging.SourceLogger(rt.Logger),
		})
		if err != nil {
			return nil, fmt.Errorf("blockgen: redis store: %w", err)
		}
		rt.Redis = store
		sources = append(sources, store)
	}

	return sources, nil
}

// Close releases the database and Redis connections opened by Setup.
func (rt *Runtime) Close() error {
	if rt == nil {
		return nil
	}
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	rt.closers = nil
	return errors.Join(errs...)
}
