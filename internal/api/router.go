package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", s.handleHealth)

		// System metrics
		r.Get("/metrics", s.handleMetrics)

		// Audit trail
		r.Get("/audit", s.handleListAuditLogs)

		// Layout endpoints
		r.Route("/layouts", func(r chi.Router) {
			r.Get("/", s.handleListLayouts)
			r.Post("/", s.handleCreateLayout)

			r.Route("/{layoutID}", func(r chi.Router) {
				r.Get("/", s.handleGetLayout)
				r.Put("/", s.handleUpdateLayout)
				r.Delete("/", s.handleDeleteLayout)

				// Device placements (replaced as a whole document)
				r.Get("/placements", s.handleListPlacements)
				r.Put("/placements", s.handleReplacePlacements)

				// Derived views
				r.Get("/floors/{floorID}/coverage", s.handleFloorCoverage)
				r.Get("/summary", s.handleLayoutSummary)
				r.Get("/effort", s.handleLayoutEffort)

				// Planning against this layout (map-derived door count)
				r.Post("/plan", s.handleLayoutPlan)
				r.Get("/plans", s.handleLayoutPlans)

				// Read-only share links
				r.Post("/share", s.handleCreateShareLink)
			})
		})

		// Plan endpoints (draft-only, no layout required)
		r.Route("/plans", func(r chi.Router) {
			r.Post("/", s.handleCreatePlan)
			r.Post("/preview", s.handlePreviewPlan)
			r.Post("/compare", s.handleComparePlans)
			r.Get("/{planID}", s.handleGetPlan)
		})

		// Shared coverage report (token is the only credential)
		r.Get("/shared/{token}", s.handleSharedReport)

		// WebSocket for editor live updates
		r.Get("/ws", s.handleWebSocket)
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
