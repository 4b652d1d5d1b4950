package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

const IndexTemplate = "index.html"

// Templates parses the page templates, for gin's SetHTMLTemplate.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/*.html"))
}

// StaticFS exposes the page scripts and styles.
//
// Typical mount:
//
//	r.StaticFS("/web/static", http.FS(web.StaticFS()))
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return staticFS
	}
	return sub
}
