// Package server provides the HTTP server.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sanixdarker/gqldoc/internal/app"
	"github.com/sanixdarker/gqldoc/internal/server/handlers"
	servermw "github.com/sanixdarker/gqldoc/internal/server/middleware"
)

// Server represents the HTTP server.
type Server struct {
	app     *app.App
	server  *http.Server
	router  *chi.Mux
	docs    *handlers.DocsHandler
	limiter *servermw.RateLimiter
}

// New creates a new Server. The document is generated once up front; a
// failure is logged and the server starts anyway so that /api/reload can
// recover.
func New(ctx context.Context, application *app.App) *Server {
	s := &Server{
		app:     application,
		router:  chi.NewRouter(),
		docs:    handlers.NewDocsHandler(application),
		limiter: servermw.NewRateLimiter(2, 10),
	}

	if err := s.docs.Refresh(ctx); err != nil {
		application.Logger.Error("failed to generate document", "error", err)
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", application.Config.Port),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(servermw.SecurityHeaders)
	s.router.Use(servermw.Logger(s.app.Logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

func (s *Server) setupRoutes() {
	preview := handlers.NewPreviewHandler(s.app)

	s.router.Get("/", s.docs.Index)
	s.router.Get("/swagger.json", s.docs.JSON)
	s.router.Get("/swagger.yaml", s.docs.YAML)
	s.router.Get("/reference.md", s.docs.Markdown)
	s.router.Get("/healthz", s.docs.Health)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(s.limiter.Limit)
		r.Post("/reload", s.docs.Reload)
		r.Post("/preview", preview.Preview)
	})
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	s.limiter.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}
