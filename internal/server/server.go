// Package server exposes the optimizer over a small REST API: submit a run,
// fetch a stored run, and select the best-compromise scenario from a run
// under a caller-supplied weighting.
package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"k8s.io/klog/v2"

	"github.com/cityops/parkfee/internal/storage"
	"github.com/cityops/parkfee/pkg/pricing"
)

// Defaults applied when a run request omits a setting.
type RunDefaults struct {
	PopulationSize  int
	Generations     int
	TargetOccupancy float64
}

// Server routes optimization requests to the pricing core and the run store.
type Server struct {
	store    storage.RunStore
	defaults RunDefaults
	logger   klog.Logger
	router   *mux.Router

	// optimize is swappable for handler tests.
	optimize func(r *http.Request, zones []pricing.Zone, settings pricing.Settings) (*pricing.Result, error)
}

// New wires the routes. The store must not be nil.
func New(store storage.RunStore, defaults RunDefaults) *Server {
	s := &Server{
		store:    store,
		defaults: defaults,
		logger:   klog.Background().WithValues("component", "server"),
		router:   mux.NewRouter(),
	}
	s.optimize = func(r *http.Request, zones []pricing.Zone, settings pricing.Settings) (*pricing.Result, error) {
		return pricing.Optimize(r.Context(), zones, settings)
	}

	s.router.HandleFunc("/api/v1/runs", s.CreateRun).Methods(http.MethodPost)
	s.router.HandleFunc("/api/v1/runs/{id:[0-9]+}", s.GetRun).Methods(http.MethodGet)
	s.router.HandleFunc("/api/v1/runs/{id:[0-9]+}/best", s.SelectBest).Methods(http.MethodPost)
	s.router.HandleFunc("/healthz", s.Healthz).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Healthz reports liveness.
func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
