// Package api serves the latest analysis result, the text report, the
// heatmap chart, and the run archive over HTTP.
package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/banshee-data/nav.report/internal/db"
	"github.com/banshee-data/nav.report/internal/heatmap"
	"github.com/banshee-data/nav.report/internal/report"
	"github.com/banshee-data/nav.report/internal/units"
)

const defaultRunsLimit = 20

type Server struct {
	store *ResultStore
	db    *db.DB // nil when archiving is disabled
	units string
}

// NewServer creates an API server over the shared result store. archive
// may be nil, in which case /runs reports the feature as unavailable.
func NewServer(store *ResultStore, archive *db.DB, defaultUnits string) *Server {
	if !units.IsValid(defaultUnits) {
		defaultUnits = units.UPS
	}
	return &Server{
		store: store,
		db:    archive,
		units: defaultUnits,
	}
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/analysis", s.handleAnalysis)
	mux.HandleFunc("/report", s.handleReport)
	mux.HandleFunc("/heatmap", s.handleHeatmap)
	mux.HandleFunc("/runs", s.handleRuns)
	return mux
}

// speedUnits resolves the ?units= query parameter against the server
// default, rejecting unknown values.
func (s *Server) speedUnits(r *http.Request) (string, error) {
	u := r.URL.Query().Get("units")
	if u == "" {
		return s.units, nil
	}
	if !units.IsValid(u) {
		return "", fmt.Errorf("invalid units %q, expected one of %s", u, units.GetValidUnitsString())
	}
	return u, nil
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	targetUnits, err := s.speedUnits(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	navLog, result, analysisErr := s.store.Get()
	if navLog == nil {
		http.Error(w, "no analysis available yet", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if result == nil {
		// Too few samples is a valid, reportable outcome, not a server
		// fault: the payload is the discriminated error document.
		writeJSON(w, map[string]string{"error": analysisErr.Error()})
		return
	}

	// Speeds are stored in native units per second; convert a copy so the
	// snapshot itself stays untouched.
	converted := *result
	converted.AverageSpeed = units.ConvertSpeed(result.AverageSpeed, targetUnits)
	converted.MaxSpeed = units.ConvertSpeed(result.MaxSpeed, targetUnits)
	writeJSON(w, &converted)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	targetUnits, err := s.speedUnits(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	navLog, result, analysisErr := s.store.Get()
	if navLog == nil {
		http.Error(w, "no analysis available yet", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := report.NewFormatter(targetUnits).Write(w, navLog, result, analysisErr); err != nil {
		log.Printf("failed to write report: %v", err)
	}
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	navLog, _, _ := s.store.Get()
	if navLog == nil {
		http.Error(w, "no analysis available yet", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := heatmap.RenderHTML(w, navLog); err != nil {
		log.Printf("failed to render heatmap: %v", err)
	}
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.db == nil {
		http.Error(w, "run archive disabled", http.StatusNotFound)
		return
	}

	limit := defaultRunsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	runs, err := s.db.RecentRuns(limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to retrieve runs: %v", err), http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []db.Run{}
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, runs)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
