// Package server exposes the feature pipelines over HTTP as JSON.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/0x0BSoD/featfeed/internal/feature"
	"github.com/0x0BSoD/featfeed/internal/model"
)

const (
	defaultDemoUsers = 10
	maxDemoUsers     = 10000
	defaultRunsLimit = 20
	maxRunsLimit     = 1000
)

type RunProvider interface {
	Recent(ctx context.Context, feature string, limit int) ([]model.Run, error)
}

type Server struct {
	catalog *feature.Catalog
	runs    RunProvider
}

// New returns the HTTP surface of the catalog. runs may be nil.
func New(catalog *feature.Catalog, runs RunProvider) *Server {
	return &Server{catalog: catalog, runs: runs}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /features", s.handleFeatures)
	mux.HandleFunc("GET /features/{name}/users/{id}", s.handleUser)
	mux.HandleFunc("GET /features/{name}/demo", s.handleDemo)
	mux.HandleFunc("GET /features/{name}/states/{state}", s.handleState)
	mux.HandleFunc("GET /features/{name}/runs", s.handleRuns)
	return mux
}

func (s *Server) handleFeatures(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Names())
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.service(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	writeJSON(w, http.StatusOK, svc.BuildUIForUser(r.Context(), id))
}

func (s *Server) handleDemo(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.service(w, r)
	if !ok {
		return
	}

	users, ok := intQuery(w, r, "users", defaultDemoUsers, maxDemoUsers)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, svc.DemoComplexFlow(users))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.service(w, r)
	if !ok {
		return
	}

	mapper := svc.Mapper()
	switch r.PathValue("state") {
	case "empty":
		writeJSON(w, http.StatusOK, mapper.EmptyState())
	case "loading":
		writeJSON(w, http.StatusOK, mapper.LoadingState())
	case "error":
		writeJSON(w, http.StatusOK, mapper.ErrorState(r.URL.Query().Get("message")))
	default:
		writeError(w, http.StatusNotFound, "unknown state")
	}
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.service(w, r)
	if !ok {
		return
	}

	if s.runs == nil {
		writeError(w, http.StatusNotImplemented, "run storage is not configured")
		return
	}

	limit, ok := intQuery(w, r, "limit", defaultRunsLimit, maxRunsLimit)
	if !ok {
		return
	}

	runs, err := s.runs.Recent(r.Context(), svc.Name(), limit)
	if err != nil {
		log.Printf("[ERROR] failed to load runs of %s: %v", svc.Name(), err)
		writeError(w, http.StatusInternalServerError, "failed to load runs")
		return
	}

	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) service(w http.ResponseWriter, r *http.Request) (*feature.Service, bool) {
	svc, err := s.catalog.Get(r.PathValue("name"))
	if errors.Is(err, feature.ErrUnknownFeature) {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return svc, true
}

// intQuery reads a non-negative integer query parameter no greater than limit.
func intQuery(w http.ResponseWriter, r *http.Request, key string, def, limit int) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, true
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		writeError(w, http.StatusBadRequest, "invalid "+key)
		return 0, false
	}
	if v > limit {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%s must not exceed %d", key, limit))
		return 0, false
	}
	return v, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
