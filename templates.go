package blockgen

import (
	"io/fs"

	"github.com/goliatone/go-blockgen/pkg/editor"
)

// EmbeddedTemplates exposes the built-in editor panel templates so callers
// can reuse or extend them without importing the editor package directly.
func EmbeddedTemplates() fs.FS {
	return editor.TemplatesFS()
}
