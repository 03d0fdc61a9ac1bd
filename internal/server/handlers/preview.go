package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sanixdarker/gqldoc/internal/app"
	"github.com/sanixdarker/gqldoc/internal/config"
	"github.com/sanixdarker/gqldoc/internal/openapi"
	"github.com/sanixdarker/gqldoc/internal/swagger"
)

const maxPreviewBytes = 1 << 20

// PreviewHandler composes single usecases without touching the served
// document.
type PreviewHandler struct {
	app *app.App
}

// NewPreviewHandler creates a new PreviewHandler.
func NewPreviewHandler(application *app.App) *PreviewHandler {
	return &PreviewHandler{app: application}
}

// Preview decodes one usecase from the request body and returns the path
// item it generates, keyed by operation id.
func (h *PreviewHandler) Preview(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPreviewBytes)

	var u config.Usecase
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeError(w, http.StatusBadRequest, "invalid usecase: "+err.Error())
		return
	}
	if u.Query == "" {
		writeError(w, http.StatusBadRequest, "usecase query is required")
		return
	}
	if u.Name == "" {
		u.Name = u.Query
	}

	domain := r.URL.Query().Get("domain")
	if domain == "" {
		domain = "Preview"
	}

	g, err := h.app.Generator(r.Context())
	if err != nil {
		h.app.Logger.Error("failed to load schema", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	p, err := g.Composer().Compose(domain, u)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, openapi.ErrMalformedQuery) || errors.Is(err, openapi.ErrUnknownField) || errors.Is(err, openapi.ErrMissingRoot) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}

	paths := swagger.NewMap[*swagger.PathItem]()
	paths.Set(p.ID, p.Item)
	writeJSON(w, http.StatusOK, paths)
}
