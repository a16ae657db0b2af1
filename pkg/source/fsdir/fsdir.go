// Package fsdir loads block definitions from a directory tree. JSON, YAML and
// Markdown files are recognised; Markdown front matter holds the config and
// the body becomes the inline template.
package fsdir

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/goliatone/go-blockgen/internal/logging"
	"github.com/goliatone/go-blockgen/pkg/interfaces"
	"github.com/goliatone/go-blockgen/pkg/schema"
	"github.com/goliatone/go-blockgen/pkg/source"
)

// Option customises a Source.
type Option func(*Source)

// WithLoggerProvider sets the provider for the source module logger.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(s *Source) {
		s.logger = logging.SourceLogger(provider)
	}
}

// Source reads definitions from an fs.FS.
type Source struct {
	files  fs.FS
	logger interfaces.Logger
}

var _ source.Source = (*Source)(nil)

// New constructs a Source over files.
func New(files fs.FS, options ...Option) *Source {
	s := &Source{files: files}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	s.logger = logging.Ensure(s.logger)
	return s
}

// NewDir constructs a Source over a directory on disk.
func NewDir(dir string, options ...Option) *Source {
	return New(os.DirFS(dir), options...)
}

// Load walks the tree and decodes every definition file. Files that cannot be
// decoded are logged and skipped. Records are sorted by path.
func (s *Source) Load(ctx context.Context) ([]source.Record, error) {
	if s == nil || s.files == nil {
		return nil, errors.New("fsdir: file system is required")
	}

	type located struct {
		path   string
		record source.Record
	}
	var found []located

	err := fs.WalkDir(s.files, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		format, ok := schema.FormatFromPath(path)
		if !ok {
			return nil
		}

		data, err := fs.ReadFile(s.files, path)
		if err != nil {
			return fmt.Errorf("fsdir: read %s: %w", path, err)
		}
		origin := schema.OriginFromFS(path)
		doc, err := schema.NewDocument(origin, format, data)
		if err != nil {
			s.logger.Warn("source.fsdir.skipped", "path", path, "error", err)
			return nil
		}
		cfg, err := doc.Config()
		if err != nil {
			s.logger.Warn("source.fsdir.skipped", "path", path, "error", err)
			return nil
		}
		found = append(found, located{path: path, record: source.RecordFromConfig(cfg, origin)})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].path < found[j].path })
	records := make([]source.Record, 0, len(found))
	for _, entry := range found {
		records = append(records, entry.record)
	}
	s.logger.Debug("source.fsdir.loaded", "records", len(records))
	return records, nil
}

// IsDefinitionFile reports whether path has a definition extension.
func IsDefinitionFile(path string) bool {
	_, ok := schema.FormatFromPath(path)
	return ok
}
