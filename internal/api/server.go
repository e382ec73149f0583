// Package api serves pipeline runs and their ranked leads over HTTP for
// dashboard clients.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/siddheshmm/leadgen-cli/internal/pipeline"
	"github.com/siddheshmm/leadgen-cli/internal/store"
)

// Server exposes the pipeline and its persisted runs.
type Server struct {
	runCtx   context.Context
	pipeline *pipeline.Pipeline
	store    store.Store
}

// NewServer builds the API over a pipeline and its store. runCtx bounds
// background runs started over HTTP, so shutting the server down cancels
// them.
func NewServer(runCtx context.Context, p *pipeline.Pipeline, st store.Store) *Server {
	return &Server{runCtx: runCtx, pipeline: p, store: st}
}

// Router wires the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/runs", func(r chi.Router) {
		r.Post("/", s.handleCreateRun)
		r.Get("/", s.handleListRuns)
		r.Get("/{id}", s.handleGetRun)
		r.Get("/{id}/leads", s.handleGetLeads)
	})
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
