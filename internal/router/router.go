// Package router sets up the HTTP routes and middleware chains for the
// tablefront API. Read routes are open; write routes sit behind a rate
// limiter. Authentication is handled by the platform gateway in front of
// this service.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tablefront/internal/handlers"
	"tablefront/internal/middleware"
)

// New creates the configured chi router with all middleware and route
// groups wired up. limiter may be nil to disable write rate limiting.
func New(themes *handlers.Themes, sections *handlers.Sections, previewH *handlers.Preview, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Reads.
		r.Get("/themes", themes.List)
		r.Get("/themes/active", themes.Active)
		r.Get("/themes/slug/{slug}", themes.GetBySlug)
		r.Get("/themes/{themeID}", themes.Get)
		r.Get("/themes/{themeID}/sections", sections.List)
		r.Get("/themes/{themeID}/preview", previewH.Get)

		// Writes.
		r.Group(func(r chi.Router) {
			if limiter != nil {
				r.Use(limiter.Middleware)
			}

			r.Post("/themes", themes.Create)
			r.Post("/themes/validate", themes.Validate)
			r.Post("/themes/contrast", themes.Contrast)
			r.Put("/themes/{themeID}", themes.Update)
			r.Post("/themes/{themeID}/activate", themes.Activate)
			r.Delete("/themes/{themeID}", themes.Delete)

			r.Post("/themes/{themeID}/sections", sections.Create)
			r.Post("/themes/{themeID}/sections/reorder", sections.Reorder)
			r.Patch("/sections/{sectionID}", sections.UpdateContent)
			r.Put("/sections/{sectionID}/visibility", sections.SetVisibility)
			r.Delete("/sections/{sectionID}", sections.Delete)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
