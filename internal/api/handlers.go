package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/siddheshmm/leadgen-cli/internal/model"
	"github.com/siddheshmm/leadgen-cli/internal/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var q model.Query
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// The run outlives this request; it is bounded by the server context.
	run, err := s.pipeline.Start(s.runCtx, q)
	if err != nil {
		zap.L().Error("failed to start run", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to start run")
		return
	}
	respondJSON(w, http.StatusAccepted, run)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	filter := store.RunFilter{
		Status: model.RunStatus(r.URL.Query().Get("status")),
	}

	var ok bool
	if filter.Limit, ok = intParam(w, r, "limit"); !ok {
		return
	}
	if filter.Offset, ok = intParam(w, r, "offset"); !ok {
		return
	}

	runs, err := s.store.ListRuns(r.Context(), filter)
	if err != nil {
		zap.L().Error("failed to list runs", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}
	if runs == nil {
		runs = []model.Run{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	run, err := s.store.GetRun(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		zap.L().Error("failed to get run", zap.String("run_id", id), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to get run")
		return
	}
	respondJSON(w, http.StatusOK, run)
}

func (s *Server) handleGetLeads(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := s.store.GetRun(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "run not found")
			return
		}
		zap.L().Error("failed to get run", zap.String("run_id", id), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to get run")
		return
	}

	filter := store.LeadFilter{Search: r.URL.Query().Get("q")}

	var ok bool
	if filter.MinScore, ok = intParam(w, r, "min_score"); !ok {
		return
	}
	if filter.Limit, ok = intParam(w, r, "limit"); !ok {
		return
	}

	leads, err := s.store.GetLeads(r.Context(), id, filter)
	if err != nil {
		zap.L().Error("failed to get leads", zap.String("run_id", id), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to get leads")
		return
	}
	if leads == nil {
		leads = []model.RankedLead{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"run_id": id, "leads": leads})
}

// intParam parses an optional non-negative integer query parameter. On a
// malformed value it writes a 400 and reports !ok.
func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		respondError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return n, true
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
