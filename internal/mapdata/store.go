package mapdata

import (
	"sync"

	"github.com/paulmach/orb"

	"immoxperts/server/internal/models"
)

// Store holds the rendered point dataset. The synchronizer is its only
// writer; consumers read snapshots and never mutate them. The dataset
// is replaced wholesale on every successful fetch.
type Store struct {
	mu       sync.RWMutex
	features []models.Feature
	version  int64
}

// NewStore creates an empty rendered dataset.
func NewStore() *Store {
	return &Store{}
}

// Replace swaps the full dataset and bumps the version.
func (s *Store) Replace(features []models.Feature) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.features = features
	s.version++
}

// All returns a snapshot of the full dataset.
func (s *Store) All() []models.Feature {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Feature, len(s.features))
	copy(out, s.features)
	return out
}

// Rendered returns the subset of the dataset currently painted inside
// bound. Zone statistics scan this subset, not the full fetch result,
// because clustering and zoom can hide points outside the camera.
func (s *Store) Rendered(bound orb.Bound) []models.Feature {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Feature
	for _, f := range s.features {
		if bound.Contains(f.Point) {
			out = append(out, f)
		}
	}
	return out
}

// Version returns the current dataset version. It increases on every
// replace and lets consumers detect staleness cheaply.
func (s *Store) Version() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Len returns the number of features in the dataset.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.features)
}
