// Package sqlstore persists block definitions in a SQL table through bun.
// Each row holds one definition record; only published rows are loaded.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-blockgen/internal/identity"
	"github.com/goliatone/go-blockgen/internal/logging"
	"github.com/goliatone/go-blockgen/pkg/interfaces"
	"github.com/goliatone/go-blockgen/pkg/schema"
	"github.com/goliatone/go-blockgen/pkg/source"
)

// Table is the definitions table name.
const Table = "block_posts"

// Status is the publication state of a stored definition.
type Status string

const (
	StatusPublished Status = "publish"
	StatusDraft     Status = "draft"
)

// ErrNotFound reports a missing definition row.
var ErrNotFound = errors.New("sqlstore: definition not found")

type postModel struct {
	bun.BaseModel `bun:"table:block_posts"`

	ID              uuid.UUID `bun:",pk,type:uuid"`
	Module          string    `bun:"module,notnull"`
	Kind            string    `bun:"kind,notnull"`
	Config          string    `bun:"config,notnull"`
	ControlsService string    `bun:"controls_service"`
	RenderService   string    `bun:"render_service"`
	Status          string    `bun:"status,notnull"`
	UpdatedAt       time.Time `bun:"updated_at,notnull"`
}

// Option customises a Store.
type Option func(*Store)

// WithLoggerProvider sets the provider for the source module logger.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(s *Store) {
		s.logger = logging.SourceLogger(provider)
	}
}

// Store reads and writes definition rows.
type Store struct {
	db     *bun.DB
	logger interfaces.Logger
	now    func() time.Time
}

var _ source.Source = (*Store)(nil)

// New constructs a Store over db.
func New(db *bun.DB, options ...Option) *Store {
	s := &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	s.logger = logging.Ensure(s.logger)
	return s
}

// Migrate creates the definitions table when missing.
func (s *Store) Migrate(ctx context.Context) error {
	if s.db == nil {
		return errors.New("sqlstore: store requires a database")
	}
	if _, err := s.db.NewCreateTable().Model((*postModel)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("sqlstore: create table: %w", err)
	}
	return nil
}

// Save creates or replaces the row for rec. Row ids derive from kind and
// module so saving the same module twice updates one row.
func (s *Store) Save(ctx context.Context, rec source.Record, status Status) (uuid.UUID, error) {
	if s.db == nil {
		return uuid.Nil, errors.New("sqlstore: store requires a database")
	}
	module := strings.TrimSpace(rec.Module)
	if module == "" {
		return uuid.Nil, errors.New("sqlstore: record module is required")
	}
	if status == "" {
		status = StatusPublished
	}
	kind := rec.Kind
	if kind == "" {
		kind = schema.KindBlock
	}

	payload, err := json.Marshal(rec.Config)
	if err != nil {
		return uuid.Nil, fmt.Errorf("sqlstore: encode config for %s: %w", module, err)
	}

	model := postModel{
		ID:              identity.DefinitionUUID(string(kind), module),
		Module:          module,
		Kind:            string(kind),
		Config:          string(payload),
		ControlsService: rec.ControlsService,
		RenderService:   rec.RenderService,
		Status:          string(status),
		UpdatedAt:       s.now(),
	}

	var existing postModel
	err = s.db.NewSelect().Model(&existing).Where("id = ?", model.ID).Scan(ctx)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := s.db.NewInsert().Model(&model).Exec(ctx); err != nil {
			return uuid.Nil, fmt.Errorf("sqlstore: insert %s: %w", module, err)
		}
	case err != nil:
		return uuid.Nil, fmt.Errorf("sqlstore: lookup %s: %w", module, err)
	default:
		if _, err := s.db.NewUpdate().
			Model(&model).
			Column("config", "controls_service", "render_service", "status", "updated_at").
			WherePK().
			Exec(ctx); err != nil {
			return uuid.Nil, fmt.Errorf("sqlstore: update %s: %w", module, err)
		}
	}
	return model.ID, nil
}

// Delete removes the row for module.
func (s *Store) Delete(ctx context.Context, kind schema.Kind, module string) error {
	if s.db == nil {
		return errors.New("sqlstore: store requires a database")
	}
	if kind == "" {
		kind = schema.KindBlock
	}
	res, err := s.db.NewDelete().
		Model((*postModel)(nil)).
		Where("id = ?", identity.DefinitionUUID(string(kind), module)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("sqlstore: delete %s: %w", module, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Load returns every published definition ordered by module. Rows whose
// config cannot be decoded are logged and skipped.
func (s *Store) Load(ctx context.Context) ([]source.Record, error) {
	if s.db == nil {
		return nil, errors.New("sqlstore: store requires a database")
	}
	var rows []postModel
	if err := s.db.NewSelect().
		Model(&rows).
		Where("status = ?", string(StatusPublished)).
		Order("module ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("sqlstore: load: %w", err)
	}

	records := make([]source.Record, 0, len(rows))
	for _, row := range rows {
		cfg, err := schema.Decode([]byte(row.Config))
		if err != nil {
			s.logger.Warn("source.sqlstore.skipped", "id", row.ID.String(), "module", row.Module, "error", err)
			continue
		}
		records = append(records, source.Record{
			Module:          row.Module,
			Kind:            schema.Kind(row.Kind),
			Config:          cfg,
			ControlsService: row.ControlsService,
			RenderService:   row.RenderService,
			Origin:          schema.OriginFromSQL(Table, row.ID.String()),
		})
	}
	return records, nil
}
