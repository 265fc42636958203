// Package reporting keeps saved infringement reports in memory and renders
// them for people.
package reporting

import (
	"sync"

	"github.com/turtacn/InfringeCheck/internal/domain/analysis"
	"github.com/turtacn/InfringeCheck/pkg/errors"
)

// Store is an in-memory report store keyed by analysis id.  Reports are lost
// on restart.
type Store struct {
	mu      sync.RWMutex
	reports map[string]analysis.Result
	order   []string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{reports: make(map[string]analysis.Result)}
}

// Record saves r under r.AnalysisID, replacing any earlier report with the
// same id.  A replaced report keeps its original position in List.
func (s *Store) Record(r analysis.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.reports[r.AnalysisID]; !exists {
		s.order = append(s.order, r.AnalysisID)
	}
	s.reports[r.AnalysisID] = r
}

// Get returns the report saved under id.
func (s *Store) Get(id string) (analysis.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reports[id]
	if !ok {
		return analysis.Result{}, errors.New(errors.CodeReportNotFound, "Report not found").WithDetail("id=" + id)
	}
	return r, nil
}

// List returns every report in first-insertion order.  The slice is never
// nil.
func (s *Store) List() []analysis.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]analysis.Result, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.reports[id])
	}
	return out
}

// Len reports how many distinct reports are held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

//Personal.AI order the ending
