// Package web serves the slimming pipeline over HTTP: an upload form, a
// column listing for the picker, a preview and the two downloads.
package web

import (
	"context"
	"net/http"

	"github.com/nconklindev/zempic/internal/config"
	"github.com/nconklindev/zempic/internal/web/middleware"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP front end.
type Server struct {
	cfg    *config.Config
	router *chi.Mux
	server *http.Server
}

// NewServer creates a Server with its routes registered.
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		cfg:    cfg,
		router: chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))
}

func (s *Server) setupRoutes() {
	s.router.Get("/", templ.Handler(IndexPage(s.cfg.Export, s.cfg.Upload.MaxFileSize)).ServeHTTP)
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/columns", s.handleColumns)
		r.Post("/preview", s.handlePreview)
		r.Post("/slim", s.handleSlim)
		r.Post("/slim/filter", s.handleSlimFilter)
	})
}

// ServeHTTP lets the server be mounted or tested without listening.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start listens on the configured address until Shutdown is called.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
