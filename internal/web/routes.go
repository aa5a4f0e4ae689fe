package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/namevibe/internal/recommend"
	"github.com/kozaktomas/namevibe/internal/web/handlers"
	"github.com/kozaktomas/namevibe/internal/web/middleware"
)

func (s *Server) setupRoutes() {
	// Create handlers
	recommendHandler := handlers.NewRecommendHandler(s.deps.Matcher, s.config.Debug)
	configHandler := handlers.NewConfigHandler(s.config)
	healthHandler := handlers.NewHealthHandler(s.deps.Health)

	// Health check and metrics are not throttled
	s.router.Get("/api/v1/health", healthHandler.Check)
	if s.deps.Metrics != nil {
		s.router.Handle("/metrics", s.deps.Metrics)
	}

	// API routes
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Throttle(s.config.Web.IPRateLimit))

		r.Get("/config", configHandler.Get)
		r.Get("/vibes", configHandler.Vibes)

		// Recommendation (classification is admission-gated inside the matcher)
		r.With(middleware.DebugOverride(s.config.Debug)).Post("/recommend", recommendHandler.Recommend)

		// Shared results
		r.Get("/result/{nameId}", recommendHandler.Result)
	})

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"reason":"` + string(recommend.NotFound) + `"}`))
	})
}
