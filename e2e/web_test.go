package e2e

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
)

func get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(getTestURL(path))
	if err != nil {
		t.Fatalf("failed to get %s: %v", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return resp, string(body)
}

func TestReferencePageLoads(t *testing.T) {
	resp, body := get(t, "/")

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
	for _, want := range []string{"Blog API", "https://blog.example.com/graphql", "Fetch user", "Search content"} {
		if !strings.Contains(body, want) {
			t.Errorf("reference page does not contain %q", want)
		}
	}
	if strings.Contains(body, "Skipped usecases") {
		t.Error("expected no skipped usecases")
	}
}

func TestSwaggerJSON(t *testing.T) {
	resp, body := get(t, "/swagger.json")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var doc struct {
		Swagger string                     `json:"swagger"`
		Tags    []struct{ Name string }    `json:"tags"`
		Paths   map[string]json.RawMessage `json:"paths"`
		Defs    map[string]json.RawMessage `json:"definitions"`
	}
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		t.Fatalf("failed to decode document: %v", err)
	}
	if doc.Swagger != "2.0" {
		t.Errorf("expected swagger 2.0, got %q", doc.Swagger)
	}
	if len(doc.Tags) != 2 || doc.Tags[0].Name != "Users" || doc.Tags[1].Name != "Search" {
		t.Errorf("unexpected tags %+v", doc.Tags)
	}
	for _, id := range []string{"fetch_user", "rename_user", "search_content"} {
		if _, ok := doc.Paths[id]; !ok {
			t.Errorf("expected path %s, got %v", id, doc.Paths)
		}
	}
	for _, name := range []string{"User", "Post", "SearchResult"} {
		if _, ok := doc.Defs[name]; !ok {
			t.Errorf("expected definition %s", name)
		}
	}
}

func TestSwaggerYAMLDownload(t *testing.T) {
	resp, body := get(t, "/swagger.yaml?download=1")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Disposition"); got != `attachment; filename="Blog_API.yaml"` {
		t.Errorf("unexpected Content-Disposition %q", got)
	}
	if !strings.Contains(body, "operationId: search_content") {
		t.Errorf("expected search usecase in YAML, got:\n%s", body)
	}
}

func TestReferenceMarkdown(t *testing.T) {
	_, body := get(t, "/reference.md")

	for _, want := range []string{"## Users", "### Rename user", "## Search", "Searches users and posts.", "... on Post"} {
		if !strings.Contains(body, want) {
			t.Errorf("reference does not contain %q", want)
		}
	}
}

func TestSecurityHeadersPresent(t *testing.T) {
	resp, _ := get(t, "/healthz")

	if resp.Header.Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing X-Content-Type-Options header")
	}
	if !strings.Contains(resp.Header.Get("Content-Security-Policy"), "frame-ancestors 'none'") {
		t.Error("missing Content-Security-Policy header")
	}
}

func TestPreviewEndpoint(t *testing.T) {
	body := `{"name":"User posts","query":"query.user","select":["id",{"posts":["title"]}]}`
	resp, err := http.Post(getTestURL("/api/preview?domain=Users"), "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("failed to post preview: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("X-RateLimit-Limit") == "" {
		t.Error("expected API routes to be rate limited")
	}

	out, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(out), `"user_posts"`) {
		t.Errorf("expected user_posts path, got %s", out)
	}
}

func TestPreviewRejectsUnknownField(t *testing.T) {
	body := `{"name":"Nope","query":"query.nope"}`
	resp, err := http.Post(getTestURL("/api/preview"), "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("failed to post preview: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", resp.StatusCode)
	}
}

func TestReloadEndpoint(t *testing.T) {
	resp, err := http.Post(getTestURL("/api/reload"), "application/json", nil)
	if err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	var out struct {
		Paths int `json:"paths"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Paths != 3 {
		t.Errorf("expected 3 paths, got %d", out.Paths)
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	resp, _ := get(t, "/convert")

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", resp.StatusCode)
	}
}
