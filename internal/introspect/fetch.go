package introspect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sanixdarker/gqldoc/internal/gqltype"
	"github.com/vektah/gqlparser/v2/ast"
)

// Result is a loaded remote schema.
type Result struct {
	Schema    *gqltype.Schema
	SDL       string
	FetchedAt time.Time
}

// Client fetches schemas from GraphQL endpoints.
type Client struct {
	client  *http.Client
	headers map[string]string
	cache   *Cache
}

// NewClient creates a client that sends headers with every request. A nil
// httpClient uses a client with a 30 second timeout; a nil cache disables
// caching.
func NewClient(httpClient *http.Client, headers map[string]string, cache *Cache) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		client:  httpClient,
		headers: headers,
		cache:   cache,
	}
}

// Fetch returns the schema served at url, from the cache when possible.
func (c *Client) Fetch(ctx context.Context, url string) (*Result, error) {
	if c.cache != nil {
		if r, ok := c.cache.Get(url); ok {
			return r, nil
		}
	}

	schema, err := c.introspect(ctx, url)
	if err != nil {
		return nil, err
	}
	sdl, err := schema.SDL()
	if err != nil {
		return nil, fmt.Errorf("failed to convert introspection result: %w", err)
	}
	parsed, err := gqltype.LoadSDL(&ast.Source{Name: url, Input: sdl})
	if err != nil {
		return nil, fmt.Errorf("failed to load introspected schema: %w", err)
	}

	r := &Result{Schema: parsed, SDL: sdl, FetchedAt: time.Now()}
	if c.cache != nil {
		c.cache.Set(url, r)
	}
	return r, nil
}

// Invalidate drops any cached result for url.
func (c *Client) Invalidate(url string) {
	if c.cache != nil {
		c.cache.Delete(url)
	}
}

func (c *Client) introspect(ctx context.Context, url string) (*Schema, error) {
	body, err := json.Marshal(map[string]string{"query": Query})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("introspection failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(out.Errors) > 0 {
		msgs := make([]string, len(out.Errors))
		for i, e := range out.Errors {
			msgs[i] = e.Message
		}
		return nil, fmt.Errorf("introspection returned errors: %s", strings.Join(msgs, "; "))
	}
	if out.Data == nil {
		return nil, fmt.Errorf("introspection returned no data")
	}
	return &out.Data.Schema, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "gqldoc/1.0")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
}
