package handlers

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sanixdarker/gqldoc/internal/app"
	"github.com/sanixdarker/gqldoc/internal/openapi"
	"github.com/sanixdarker/gqldoc/internal/server/middleware"
	"github.com/sanixdarker/gqldoc/internal/swagger"
	"github.com/sanixdarker/gqldoc/pkg/reference"
	"github.com/sanixdarker/gqldoc/web"
)

// generated is one rendered generation run. It is never mutated after
// Refresh publishes it.
type generated struct {
	id          string
	doc         *swagger.Document
	json        []byte
	yaml        []byte
	markdown    string
	baseURL     string
	html        string
	generatedAt time.Time
	warnings    []string
}

// DocsHandler serves the generated document in its different renderings.
type DocsHandler struct {
	app *app.App

	mu    sync.RWMutex
	state *generated
	// lastErr is the error of the last refresh that produced no document.
	lastErr error
}

// NewDocsHandler creates a new DocsHandler. Call Refresh before serving.
func NewDocsHandler(application *app.App) *DocsHandler {
	return &DocsHandler{app: application}
}

// Refresh regenerates the document. When the schema cannot be loaded the
// previously generated document keeps being served.
func (h *DocsHandler) Refresh(ctx context.Context) error {
	doc, err := h.app.Generate(ctx)
	if doc == nil {
		h.mu.Lock()
		h.lastErr = err
		h.mu.Unlock()
		return err
	}

	st, renderErr := render(doc)
	if renderErr != nil {
		return renderErr
	}
	st.warnings = warnings(err)

	h.mu.Lock()
	h.state = st
	h.lastErr = nil
	h.mu.Unlock()

	for _, w := range st.warnings {
		h.app.Logger.Warn("usecase skipped", "error", w)
	}
	return nil
}

func render(doc *swagger.Document) (*generated, error) {
	st := &generated{id: uuid.New().String(), doc: doc, generatedAt: time.Now().UTC()}

	var err error
	if st.json, err = swagger.Encode(doc, swagger.FormatJSON); err != nil {
		return nil, err
	}
	if st.yaml, err = swagger.Encode(doc, swagger.FormatYAML); err != nil {
		return nil, err
	}

	ref := openapi.BuildReference(doc)
	ref.Frontmatter.GeneratedAt = st.generatedAt.Format(time.RFC3339)
	st.markdown = reference.Render(ref)
	st.baseURL = ref.Frontmatter.BaseURL
	if st.html, err = reference.ToHTML(ref); err != nil {
		return nil, err
	}
	return st, nil
}

// warnings flattens the joined usecase errors of a generation run.
func warnings(err error) []string {
	if err == nil {
		return nil
	}
	var out []string
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			out = append(out, e.Error())
		}
		return out
	}
	return []string{err.Error()}
}

func (h *DocsHandler) current() (*generated, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.state == nil {
		if h.lastErr != nil {
			return nil, h.lastErr
		}
		return nil, errors.New("document not generated yet")
	}
	return h.state, nil
}

// Index renders the HTML reference.
func (h *DocsHandler) Index(w http.ResponseWriter, r *http.Request) {
	st, err := h.current()
	if err != nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusServiceUnavailable)
		if err := web.RenderError(w, "Documentation unavailable", err.Error()); err != nil {
			h.app.Logger.Error("failed to render error page", "error", err)
		}
		return
	}

	page := web.ReferencePage{
		Title:       st.doc.Info.Title,
		Version:     st.doc.Info.Version,
		Description: st.doc.Info.Description,
		BaseURL:     st.baseURL,
		Body:        template.HTML(st.html),
		GeneratedAt: st.generatedAt.Format(time.RFC1123),
		Warnings:    st.warnings,
	}
	for _, tag := range st.doc.Tags {
		page.Tags = append(page.Tags, tag.Name)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := web.RenderReference(w, page); err != nil {
		h.app.Logger.Error("failed to render reference page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// JSON serves the document as JSON.
func (h *DocsHandler) JSON(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "application/json", "json", func(st *generated) []byte { return st.json })
}

// YAML serves the document as YAML.
func (h *DocsHandler) YAML(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "application/yaml", "yaml", func(st *generated) []byte { return st.yaml })
}

// Markdown serves the Markdown reference.
func (h *DocsHandler) Markdown(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "text/markdown; charset=utf-8", "md", func(st *generated) []byte { return []byte(st.markdown) })
}

func (h *DocsHandler) serve(w http.ResponseWriter, r *http.Request, contentType, ext string, body func(*generated) []byte) {
	st, err := h.current()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	etag := `"` + st.id + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if r.URL.Query().Get("download") != "" {
		filename := middleware.SanitizeFilename(st.doc.Info.Title)
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, filename, ext))
	}
	w.Header().Set("Content-Type", contentType)
	w.Write(body(st))
}

// Reload re-reads the config and regenerates the document.
func (h *DocsHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Reload(); err != nil {
		h.app.Logger.Error("failed to reload config", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := h.Refresh(r.Context()); err != nil {
		h.app.Logger.Error("failed to regenerate document", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	st, _ := h.current()
	writeJSON(w, http.StatusOK, map[string]any{
		"id":           st.id,
		"paths":        st.doc.Paths.Len(),
		"definitions":  st.doc.Definitions.Len(),
		"warnings":     st.warnings,
		"generated_at": st.generatedAt.Format(time.RFC3339),
	})
}

// Health reports whether a document is being served.
func (h *DocsHandler) Health(w http.ResponseWriter, r *http.Request) {
	if _, err := h.current(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
