package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sanixdarker/gqldoc/internal/app"
)

const testSchema = `
type Query {
  user(id: ID!): User
}

type User {
  id: ID!
  name: String
  friends: [User]
}
`

const testDocs = `
schema: schema.graphql
info:
  title: Users API
  version: 1.2.0
host: api.example.com
basePath: /graphql
domains:
  - name: Users
    usecases:
      - name: Fetch user
        query: query.user
        expand:
          friends: [id]
      - name: Broken
        query: query.nope
`

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "schema.graphql"), []byte(testSchema), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := app.DefaultConfig()
	cfg.ConfigPath = filepath.Join(dir, "gqldoc.yml")
	cfg.LogOutput = &bytes.Buffer{}
	if err := os.WriteFile(cfg.ConfigPath, []byte(testDocs), 0644); err != nil {
		t.Fatal(err)
	}

	application, err := app.New(cfg)
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}
	t.Cleanup(func() { application.Close() })
	return application
}

func newRefreshedHandler(t *testing.T) (*DocsHandler, *app.App) {
	t.Helper()
	application := newTestApp(t)
	h := NewDocsHandler(application)
	if err := h.Refresh(context.Background()); err != nil {
		t.Fatalf("failed to refresh: %v", err)
	}
	return h, application
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	return body["error"]
}

func TestDocsHandler_NotGenerated(t *testing.T) {
	h := NewDocsHandler(newTestApp(t))

	w := httptest.NewRecorder()
	h.JSON(w, httptest.NewRequest(http.MethodGet, "/swagger.json", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", w.Code)
	}
	if msg := decodeError(t, w); msg != "document not generated yet" {
		t.Errorf("unexpected error message %q", msg)
	}

	w = httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected health status 503, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.Index(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected index status 503, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Documentation unavailable") {
		t.Errorf("expected error page, got %s", w.Body.String())
	}
}

func TestDocsHandler_Renderings(t *testing.T) {
	h, _ := newRefreshedHandler(t)

	tests := []struct {
		name        string
		handler     http.HandlerFunc
		path        string
		contentType string
		contains    []string
	}{
		{
			name:        "json",
			handler:     h.JSON,
			path:        "/swagger.json",
			contentType: "application/json",
			contains:    []string{`"swagger": "2.0"`, `"fetch_user"`, `"operationId": "fetch_user"`},
		},
		{
			name:        "yaml",
			handler:     h.YAML,
			path:        "/swagger.yaml",
			contentType: "application/yaml",
			contains:    []string{"fetch_user:", "operationId: fetch_user"},
		},
		{
			name:        "markdown",
			handler:     h.Markdown,
			path:        "/reference.md",
			contentType: "text/markdown; charset=utf-8",
			contains:    []string{`title: "Users API"`, "generated_at:", "## Users", "### Fetch user", "```graphql"},
		},
		{
			name:        "html",
			handler:     h.Index,
			path:        "/",
			contentType: "text/html; charset=utf-8",
			contains:    []string{"Users API", "https://api.example.com/graphql", "Skipped usecases", "Broken", "<h3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.handler(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}
			if got := w.Header().Get("Content-Type"); got != tt.contentType {
				t.Errorf("expected content type %q, got %q", tt.contentType, got)
			}
			for _, want := range tt.contains {
				if !strings.Contains(w.Body.String(), want) {
					t.Errorf("expected body to contain %q, got:\n%s", want, w.Body.String())
				}
			}
		})
	}
}

func TestDocsHandler_Download(t *testing.T) {
	h, _ := newRefreshedHandler(t)

	w := httptest.NewRecorder()
	h.JSON(w, httptest.NewRequest(http.MethodGet, "/swagger.json?download=1", nil))

	want := `attachment; filename="Users_API.json"`
	if got := w.Header().Get("Content-Disposition"); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestDocsHandler_ETag(t *testing.T) {
	h, _ := newRefreshedHandler(t)

	w := httptest.NewRecorder()
	h.YAML(w, httptest.NewRequest(http.MethodGet, "/swagger.yaml", nil))
	etag := w.Header().Get("ETag")
	if etag == "" {
		t.Fatal("expected ETag header")
	}

	req := httptest.NewRequest(http.MethodGet, "/swagger.yaml", nil)
	req.Header.Set("If-None-Match", etag)
	w = httptest.NewRecorder()
	h.YAML(w, req)
	if w.Code != http.StatusNotModified || w.Body.Len() != 0 {
		t.Errorf("expected empty 304, got %d with %d bytes", w.Code, w.Body.Len())
	}

	if err := h.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	w = httptest.NewRecorder()
	h.YAML(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected new generation to invalidate the ETag, got %d", w.Code)
	}
}

func TestDocsHandler_RefreshKeepsPreviousDocument(t *testing.T) {
	h, application := newRefreshedHandler(t)

	schemaPath := application.Docs().Schema[0]
	if err := os.Remove(schemaPath); err != nil {
		t.Fatal(err)
	}
	if err := h.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh to fail without a schema")
	}

	w := httptest.NewRecorder()
	h.JSON(w, httptest.NewRequest(http.MethodGet, "/swagger.json", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "fetch_user") {
		t.Errorf("expected previous document to be served, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDocsHandler_Reload(t *testing.T) {
	h, application := newRefreshedHandler(t)

	updated := strings.Replace(testDocs, "Users API", "People API", 1)
	if err := os.WriteFile(application.Config.ConfigPath, []byte(updated), 0644); err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	h.Reload(w, httptest.NewRequest(http.MethodPost, "/api/reload", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Paths    int      `json:"paths"`
		Warnings []string `json:"warnings"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Paths != 1 || len(body.Warnings) != 1 {
		t.Errorf("expected 1 path and 1 warning, got %+v", body)
	}

	w = httptest.NewRecorder()
	h.JSON(w, httptest.NewRequest(http.MethodGet, "/swagger.json", nil))
	if !strings.Contains(w.Body.String(), "People API") {
		t.Errorf("expected reloaded title, got %s", w.Body.String())
	}
}

func TestDocsHandler_ReloadInvalidConfig(t *testing.T) {
	h, application := newRefreshedHandler(t)

	if err := os.WriteFile(application.Config.ConfigPath, []byte("domains: ["), 0644); err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	h.Reload(w, httptest.NewRequest(http.MethodPost, "/api/reload", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
	if msg := decodeError(t, w); !strings.Contains(msg, "failed to load config") {
		t.Errorf("unexpected error message %q", msg)
	}
}

func TestPreviewHandler(t *testing.T) {
	h := NewPreviewHandler(newTestApp(t))

	t.Run("composes usecase", func(t *testing.T) {
		body := `{"name":"Get user","query":"query.user","expand":{"friends":["id"]}}`
		w := httptest.NewRecorder()
		h.Preview(w, httptest.NewRequest(http.MethodPost, "/api/preview?domain=Users", strings.NewReader(body)))

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}
		var paths map[string]struct {
			Post struct {
				OperationID string   `json:"operationId"`
				Tags        []string `json:"tags"`
			} `json:"post"`
		}
		if err := json.NewDecoder(w.Body).Decode(&paths); err != nil {
			t.Fatal(err)
		}
		item, ok := paths["get_user"]
		if !ok {
			t.Fatalf("expected get_user path, got %v", paths)
		}
		if item.Post.OperationID != "get_user" || len(item.Post.Tags) != 1 || item.Post.Tags[0] != "Users" {
			t.Errorf("unexpected operation %+v", item.Post)
		}
	})

	t.Run("default domain and name", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Preview(w, httptest.NewRequest(http.MethodPost, "/api/preview", strings.NewReader(`{"query":"query.user"}`)))

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), `"query.user"`) || !strings.Contains(w.Body.String(), `"Preview"`) {
			t.Errorf("expected query as id and Preview tag, got %s", w.Body.String())
		}
	})

	errorTests := []struct {
		name string
		body string
		want string
	}{
		{name: "invalid json", body: `{`, want: "invalid usecase"},
		{name: "missing query", body: `{"name":"x"}`, want: "query is required"},
		{name: "malformed query", body: `{"name":"x","query":"user"}`, want: "malformed usecase query"},
		{name: "unknown field", body: `{"name":"x","query":"query.nope"}`, want: "unknown field"},
		{name: "invalid select", body: `{"name":"x","query":"query.user","select":3}`, want: "invalid usecase"},
	}
	for _, tt := range errorTests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Preview(w, httptest.NewRequest(http.MethodPost, "/api/preview", strings.NewReader(tt.body)))

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}
			if msg := decodeError(t, w); !strings.Contains(msg, tt.want) {
				t.Errorf("expected error containing %q, got %q", tt.want, msg)
			}
		})
	}
}
