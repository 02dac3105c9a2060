package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rflorenc/jenkins-workbench/internal/models"
)

// Server holds shared state for all API handlers.
type Server struct {
	Instances *models.InstanceStore
	Jobs      *models.JobStore
	Logger    *slog.Logger

	// CapturesDir is the only directory tree scans may read. Scans are
	// refused when it is empty.
	CapturesDir string
}

// NewRouter builds the chi router with all API routes.
func NewRouter(s *Server) http.Handler {
	if s.Logger == nil {
		s.Logger = slog.Default()
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Instances
		r.Post("/instances", s.CreateInstance)
		r.Get("/instances", s.ListInstances)
		r.Get("/instances/{id}", s.GetInstance)
		r.Put("/instances/{id}", s.UpdateInstance)
		r.Delete("/instances/{id}", s.DeleteInstance)

		// Record decoding
		r.Get("/families", s.ListFamilies)
		r.Get("/families/{family}", s.GetFamily)
		r.Post("/decode/{family}", s.DecodeRecord)

		// Resource paths
		r.Post("/paths/decode", s.DecodePath)
		r.Post("/paths/encode", s.EncodePath)
		r.Post("/instances/{id}/links", s.RecordLinks)

		// Scans (async)
		r.Post("/scans", s.StartScan)

		// Jobs
		r.Get("/jobs", s.ListJobs)
		r.Get("/jobs/{id}", s.GetJob)
		r.Post("/jobs/{id}/cancel", s.CancelJob)
	})

	// WebSocket (outside /api to avoid JSON content-type assumptions)
	r.Get("/ws/jobs/{id}/logs", s.StreamJobLogs)

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
