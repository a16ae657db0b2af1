package editor

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

const panelTemplate = "templates/panel.tmpl"

// TemplatesFS exposes the embedded panel templates so callers can override
// individual files while keeping the rest.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
