package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-blockgen/internal/identity"
	"github.com/goliatone/go-blockgen/internal/logging"
	"github.com/goliatone/go-blockgen/pkg/schema"
	"github.com/goliatone/go-blockgen/pkg/source"
)

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t, "sqlstore_roundtrip")
	ctx := context.Background()

	hero := source.Record{
		Module:        "hero",
		Config:        schema.RawConfig{"name": "hero", "title": "Hero"},
		RenderService: "hero_render",
	}
	id, err := store.Save(ctx, hero, StatusPublished)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if id != identity.DefinitionUUID("block", "hero") {
		t.Fatalf("expected deterministic id, got %s", id)
	}

	if _, err := store.Save(ctx, source.Record{Module: "draft", Config: schema.RawConfig{"name": "draft", "title": "Draft"}}, StatusDraft); err != nil {
		t.Fatalf("Save() draft error = %v", err)
	}

	hero.Config = schema.RawConfig{"name": "hero", "title": "Hero v2"}
	if again, err := store.Save(ctx, hero, ""); err != nil || again != id {
		t.Fatalf("expected update of the same row, got %s (%v)", again, err)
	}

	records, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected only the published record, got %+v", records)
	}
	got := records[0]
	if got.Module != "hero" || got.Kind != schema.KindBlock || got.RenderService != "hero_render" {
		t.Fatalf("unexpected record %+v", got)
	}
	if got.Config["title"] != "Hero v2" {
		t.Fatalf("expected updated config, got %+v", got.Config)
	}
	if got.Origin.Kind() != schema.OriginKindSQL || got.Location() != Table+"/"+id.String() {
		t.Fatalf("unexpected origin %q", got.Location())
	}
}

func TestStoreDelete(t *testing.T) {
	store := newTestStore(t, "sqlstore_delete")
	ctx := context.Background()

	if _, err := store.Save(ctx, source.Record{Module: "card", Kind: schema.KindWidget, Config: schema.RawConfig{"name": "card", "title": "Card"}}, StatusPublished); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Delete(ctx, schema.KindWidget, "card"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := store.Delete(ctx, schema.KindWidget, "card"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreSkipsUndecodableRows(t *testing.T) {
	recorder := logging.NewRecorder()
	store := newTestStore(t, "sqlstore_corrupt", WithLoggerProvider(recorder))
	ctx := context.Background()

	row := postModel{
		ID:        identity.DefinitionUUID("block", "corrupt"),
		Module:    "corrupt",
		Kind:      "block",
		Config:    "{not json",
		Status:    string(StatusPublished),
		UpdatedAt: time.Now().UTC(),
	}
	if _, err := store.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		t.Fatalf("insert: %v", err)
	}

	records, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected corrupt row to be skipped, got %+v", records)
	}
	if !recorder.Has("warn", "source.sqlstore.skipped") {
		t.Fatalf("expected skipped row to be logged, logs: %s", recorder)
	}
}

func TestStoreRequiresModule(t *testing.T) {
	store := newTestStore(t, "sqlstore_module")
	if _, err := store.Save(context.Background(), source.Record{}, StatusPublished); err == nil {
		t.Fatalf("expected error for empty module")
	}
}

func newTestStore(t *testing.T, name string, options ...Option) *Store {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", "file:"+name+"?mode=memory&cache=shared&_fk=1")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store := New(db, options...)
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}
