package api

import (
	"sync"

	"github.com/banshee-data/nav.report/internal/nav"
	"github.com/banshee-data/nav.report/internal/navlog"
)

// ResultStore holds the most recent pipeline output for the HTTP
// handlers. The watch loop replaces the snapshot wholesale after each
// run; readers always see a complete, consistent result.
type ResultStore struct {
	mu     sync.RWMutex
	log    *navlog.NavLog
	result *nav.AnalysisResult
	err    error
}

// NewResultStore returns an empty store.
func NewResultStore() *ResultStore {
	return &ResultStore{}
}

// Set replaces the current snapshot. result may be nil when the analysis
// failed (err carries the reason, e.g. nav.ErrInsufficientData).
func (s *ResultStore) Set(log *navlog.NavLog, result *nav.AnalysisResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = log
	s.result = result
	s.err = err
}

// Get returns the current snapshot. log is nil until the first run
// completes.
func (s *ResultStore) Get() (*navlog.NavLog, *nav.AnalysisResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.log, s.result, s.err
}
