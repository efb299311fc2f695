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
		r.Get("/health", s.handleHealth)

		// Adapter endpoints
		r.Route("/adapters", func(r chi.Router) {
			r.Get("/", s.handleListAdapters)
			r.Get("/{id}", s.handleGetAdapter)
		})

		// Universe endpoints
		r.Route("/universes", func(r chi.Router) {
			r.Get("/", s.handleListUniverses)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetUniverse)
				r.Post("/connect", s.handleConnectUniverse)
				r.Post("/disconnect", s.handleDisconnectUniverse)
				r.Get("/frame", s.handleGetFrame)
				r.Get("/channels", s.handleGetChannels)
				r.Put("/channels", s.handleSetChannels)
				r.Get("/channels/{channel}", s.handleGetChannel)
				r.Put("/channels/{channel}", s.handleSetChannel)
			})
		})

		// Fixture endpoints
		r.Route("/fixtures", func(r chi.Router) {
			r.Get("/", s.handleListFixtures)
			r.Post("/", s.handleDefineFixture)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetFixture)
				r.Delete("/", s.handleDeleteFixture)
				r.Post("/control", s.handleControlFixture)
			})
		})

		// Scene endpoints
		r.Route("/scenes", func(r chi.Router) {
			r.Get("/", s.handleListScenes)
			r.Post("/", s.handleCreateScene)
			r.Post("/capture", s.handleCaptureScene)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetScene)
				r.Delete("/", s.handleDeleteScene)
				r.Post("/load", s.handleLoadScene)
			})
		})

		// Effect endpoints
		r.Route("/effects", func(r chi.Router) {
			r.Get("/", s.handleListEffects)
			r.Post("/", s.handleStartEffect)
			r.Post("/stop-all", s.handleStopAllEffects)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetEffect)
				r.Post("/stop", s.handleStopEffect)
			})
		})

		// WebSocket event stream
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
