package blockgen

import (
	"io/fs"

	"github.com/goliatone/go-blockgen/pkg/source"
	"github.com/goliatone/go-blockgen/pkg/source/fsdir"
)

// NewDirSource loads json, yaml and markdown definitions below dir.
func NewDirSource(dir string, options ...fsdir.Option) source.Source {
	return fsdir.NewDir(dir, options...)
}

// NewFSSource loads definitions from an fs.FS, typically an embed.FS.
func NewFSSource(files fs.FS, options ...fsdir.Option) source.Source {
	return fsdir.New(files, options...)
}

// StaticSource serves records held in memory.
func StaticSource(records ...Record) source.Source {
	return source.Static(records...)
}
