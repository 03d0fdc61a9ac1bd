// Package web provides embedded web templates.
package web

import (
	"embed"
	"html/template"
	"io"
	"strings"
)

//go:embed templates/*.html
var content embed.FS

// templates holds parsed templates.
var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"join": strings.Join,
}).ParseFS(content, "templates/*.html"))

// ReferencePage is the data rendered by the reference page. Body must
// already be sanitized.
type ReferencePage struct {
	Title       string
	Version     string
	Description string
	BaseURL     string
	Tags        []string
	Body        template.HTML
	GeneratedAt string
	Warnings    []string
}

// RenderReference renders the HTML reference page.
func RenderReference(w io.Writer, page ReferencePage) error {
	return templates.ExecuteTemplate(w, "reference.html", page)
}

// RenderError renders the page shown when no document is available.
func RenderError(w io.Writer, title, message string) error {
	return templates.ExecuteTemplate(w, "error.html", map[string]string{
		"Title":   title,
		"Message": message,
	})
}
