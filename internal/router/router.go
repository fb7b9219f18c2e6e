// Package router sets up all HTTP routes and middleware chains of the
// portfolio front end.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"folio/internal/handlers"
	"folio/internal/metrics"
	"folio/internal/middleware"
)

// Options configure the global middleware.
type Options struct {
	Sessions   middleware.SessionReader // nil serves every visitor anonymously
	Metrics    *metrics.Collector       // nil disables /metrics
	ImgOrigins []string                 // extra image origins for the CSP
}

// New creates and returns the configured Chi router with all middleware
// and routes wired up. files may be nil when images are served by the
// object storage directly.
func New(opts Options, portfolio *handlers.Portfolio, files *handlers.Files) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger(opts.Metrics))
	r.Use(middleware.SecureHeaders(opts.ImgOrigins...))

	r.Get("/health", healthHandler)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	r.Route("/portfolio", func(r chi.Router) {
		r.Use(middleware.LoadViewer(opts.Sessions))
		r.Get("/", portfolio.List)
		r.Get("/sitemap.txt", portfolio.Sitemap)
		r.Get("/{alias}", portfolio.Reader)
	})

	if files != nil {
		r.Get("/files/*", files.Serve)
	}

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
