package web

import (
	"embed"
	"io/fs"
	"path"
)

var (
	//go:embed static/css/*
	embeddedStaticFiles embed.FS

	//go:embed templates/*.gohtml templates/layouts/*.gohtml
	embeddedTemplates embed.FS
)

// templateEmbedFS serves the embedded templates without their directory
// prefix, so views are named like "authorization" or "layouts/base".
type templateEmbedFS struct {
	content embed.FS
}

// Open opens the named file below templates/.
func (e templateEmbedFS) Open(name string) (fs.File, error) {
	return e.content.Open(path.Join("templates", name))
}
