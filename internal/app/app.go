// Package app provides the application container and dependency injection.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sanixdarker/gqldoc/internal/config"
	"github.com/sanixdarker/gqldoc/internal/gqltype"
	"github.com/sanixdarker/gqldoc/internal/introspect"
	"github.com/sanixdarker/gqldoc/internal/openapi"
	"github.com/sanixdarker/gqldoc/internal/swagger"
)

// Config holds application configuration.
type Config struct {
	ConfigPath string
	Port       int
	Debug      bool
	// Timeout bounds introspection requests.
	Timeout  time.Duration
	CacheTTL time.Duration
	// Introspection and Schema override the values of the config file.
	Introspection string
	Schema        []string
	LogOutput     io.Writer
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ConfigPath: "./gqldoc.yml",
		Port:       8080,
		Timeout:    30 * time.Second,
		CacheTTL:   10 * time.Minute,
	}
}

// App is the main application container.
type App struct {
	Config        *Config
	Logger        *slog.Logger
	Introspection *introspect.Client

	mu    sync.RWMutex
	docs  *config.Config
	cache *introspect.Cache
}

// NewLogger returns a slog logger backed by a charm log handler.
func NewLogger(w io.Writer, debug bool) *slog.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "gqldoc",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	return slog.New(handler)
}

// New creates a new application instance and loads the documentation
// config.
func New(cfg *Config) (*App, error) {
	out := cfg.LogOutput
	if out == nil {
		out = os.Stderr
	}
	logger := NewLogger(out, cfg.Debug)

	a := &App{
		Config: cfg,
		Logger: logger,
		cache:  introspect.NewCache(cfg.CacheTTL),
	}
	if err := a.Reload(); err != nil {
		a.Close()
		return nil, err
	}

	a.Introspection = introspect.NewClient(&http.Client{Timeout: cfg.Timeout}, a.Docs().Headers, a.cache)
	return a, nil
}

// Docs returns the current documentation config.
func (a *App) Docs() *config.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.docs
}

// Reload re-reads the documentation config from disk.
func (a *App) Reload() error {
	docs, err := config.Load(a.Config.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.Config.Introspection != "" {
		docs.Introspection = a.Config.Introspection
		docs.Schema = nil
	}
	if len(a.Config.Schema) > 0 {
		docs.Schema = a.Config.Schema
		docs.Introspection = ""
	}

	a.mu.Lock()
	a.docs = docs
	a.mu.Unlock()

	if a.Introspection != nil && docs.Introspection != "" {
		a.Introspection.Invalidate(docs.Introspection)
	}
	a.Logger.Debug("config loaded", "path", a.Config.ConfigPath, "domains", len(docs.Domains), "usecases", docs.UsecaseCount())
	return nil
}

// LoadSchema loads the schema from SDL files or, when configured, from the
// introspection endpoint.
func (a *App) LoadSchema(ctx context.Context) (*gqltype.Schema, error) {
	docs := a.Docs()
	if docs.Introspection != "" {
		a.Logger.Debug("introspecting schema", "url", docs.Introspection)
		r, err := a.Introspection.Fetch(ctx, docs.Introspection)
		if err != nil {
			return nil, fmt.Errorf("failed to introspect schema: %w", err)
		}
		return r.Schema, nil
	}

	a.Logger.Debug("loading schema files", "files", docs.Schema)
	schema, err := gqltype.LoadFiles(docs.Schema...)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	return schema, nil
}

// Generator returns a document generator for the current schema.
func (a *App) Generator(ctx context.Context) (*openapi.Generator, error) {
	schema, err := a.LoadSchema(ctx)
	if err != nil {
		return nil, err
	}
	return openapi.NewGenerator(schema, a.Logger), nil
}

// Generate builds the document for the current config.
func (a *App) Generate(ctx context.Context) (*swagger.Document, error) {
	g, err := a.Generator(ctx)
	if err != nil {
		return nil, err
	}
	return g.Generate(a.Docs())
}

// Close cleans up application resources.
func (a *App) Close() error {
	if a.cache != nil {
		a.cache.Close()
	}
	return nil
}
