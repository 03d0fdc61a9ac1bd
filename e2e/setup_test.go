package e2e

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sanixdarker/gqldoc/internal/app"
	"github.com/sanixdarker/gqldoc/internal/server"
)

var (
	testApp    *app.App
	testServer *server.Server
	testPort   = 18080
	baseURL    string
)

const schemaSDL = `
type Query {
  user(id: ID!): User
  search(term: String!): [SearchResult]
}

type Mutation {
  rename(id: ID!, name: String!): User
}

type User {
  id: ID!
  name: String
  posts: [Post]
}

type Post {
  id: ID!
  title: String
  author: User
}

union SearchResult = User | Post
`

const docsConfig = `
schema: schema.graphql
info:
  title: Blog API
  version: 0.1.0
host: blog.example.com
basePath: /graphql
schemes: [https]
domains:
  - name: Users
    description: Accounts and their posts.
    usecases:
      - name: Fetch user
        query: query.user
        expand:
          posts: [id, title]
      - name: Rename user
        query: mutation.rename
  - name: Search
    usecasesDir: usecases
`

const searchUsecase = `---
query: query.search
select:
  User: [id, name]
  Post: [id, title]
---
Searches users and posts.
`

// TestMain writes a documentation workspace and serves it.
func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "gqldoc-e2e-*")
	if err != nil {
		fmt.Printf("failed to create temp dir: %v\n", err)
		os.Exit(1)
	}
	defer os.RemoveAll(tmpDir)

	if err := writeWorkspace(tmpDir); err != nil {
		fmt.Printf("failed to write workspace: %v\n", err)
		os.Exit(1)
	}

	cfg := app.DefaultConfig()
	cfg.ConfigPath = filepath.Join(tmpDir, "gqldoc.yml")
	cfg.Port = testPort
	cfg.LogOutput = io.Discard

	testApp, err = app.New(cfg)
	if err != nil {
		fmt.Printf("failed to initialize app: %v\n", err)
		os.Exit(1)
	}
	defer testApp.Close()

	testServer = server.New(context.Background(), testApp)
	baseURL = fmt.Sprintf("http://localhost:%d", testPort)

	go func() {
		if err := testServer.Start(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("server error: %v\n", err)
		}
	}()

	if err := waitForServer(baseURL+"/healthz", 5*time.Second); err != nil {
		fmt.Printf("server failed to start: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	testServer.Shutdown()

	os.Exit(code)
}

func writeWorkspace(dir string) error {
	files := map[string]string{
		"schema.graphql":             schemaSDL,
		"gqldoc.yml":                 docsConfig,
		"usecases/Search content.md": searchUsecase,
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}

// waitForServer waits for the server to be ready
func waitForServer(url string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for server")
		case <-ticker.C:
			resp, err := http.Get(url)
			if err == nil {
				resp.Body.Close()
				return nil
			}
		}
	}
}

// getTestURL returns the full URL for a given path
func getTestURL(path string) string {
	return baseURL + path
}
