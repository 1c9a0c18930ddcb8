package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"k8s.io/klog/v2"

	"github.com/cityops/parkfee/internal/storage"
	"github.com/cityops/parkfee/pkg/pricing"
)

// RunRequest is the payload of POST /api/v1/runs.
type RunRequest struct {
	Zones    []pricing.Zone   `json:"zones"`
	Settings pricing.Settings `json:"settings"`
}

// RunResponse wraps a completed run with its storage id.
type RunResponse struct {
	RunID  int64           `json:"run_id"`
	Result *pricing.Result `json:"result"`
}

// SelectRequest is the payload of POST /api/v1/runs/{id}/best.
type SelectRequest struct {
	Weights map[string]int `json:"weights"`
}

// CreateRun validates the request, runs the optimization, persists the
// result, and returns it together with the run id.
func (s *Server) CreateRun(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Settings.PopulationSize == 0 {
		req.Settings.PopulationSize = s.defaults.PopulationSize
	}
	if req.Settings.Generations == 0 {
		req.Settings.Generations = s.defaults.Generations
	}
	if req.Settings.TargetOccupancy == 0 {
		req.Settings.TargetOccupancy = s.defaults.TargetOccupancy
	}

	start := time.Now()
	result, err := s.optimize(r, req.Zones, req.Settings)
	if err != nil {
		runsTotal.WithLabelValues("rejected").Inc()
		s.logger.Error(err, "Optimization rejected")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	runsTotal.WithLabelValues("completed").Inc()
	runDuration.Observe(time.Since(start).Seconds())
	frontSize.Observe(float64(len(result.Scenarios)))

	id, err := s.store.SaveRun(r.Context(), result)
	if err != nil {
		s.logger.Error(err, "Failed to persist run")
		http.Error(w, "failed to persist run", http.StatusInternalServerError)
		return
	}

	s.logger.V(2).Info("Run completed", "runID", id, "scenarios", len(result.Scenarios))
	writeJSON(w, http.StatusCreated, RunResponse{RunID: id, Result: result})
}

// GetRun returns a stored run.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "invalid run id", http.StatusBadRequest)
		return
	}

	result, err := s.store.GetRun(r.Context(), id)
	if errors.Is(err, storage.ErrRunNotFound) {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error(err, "Failed to load run", "runID", id)
		http.Error(w, "failed to load run", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, RunResponse{RunID: id, Result: result})
}

// SelectBest applies a weighting to a stored run and returns the single
// best-compromise scenario. No re-optimization happens here.
func (s *Server) SelectBest(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "invalid run id", http.StatusBadRequest)
		return
	}

	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := s.store.GetRun(r.Context(), id)
	if errors.Is(err, storage.ErrRunNotFound) {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error(err, "Failed to load run", "runID", id)
		http.Error(w, "failed to load run", http.StatusInternalServerError)
		return
	}

	scenario, err := pricing.SelectBest(result, req.Weights)
	if errors.Is(err, pricing.ErrNoScenarios) {
		http.Error(w, "no scenarios available", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, scenario)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		klog.Background().Error(err, "Failed to encode response")
	}
}
