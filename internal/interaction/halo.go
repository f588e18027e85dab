package interaction

import (
	"sync"

	"immoxperts/server/internal/models"
)

// HaloSource is the secondary single-feature data source that drives
// the visual emphasis of the point under interaction. It is kept in
// sync with the machine state: set on any non-idle state, cleared the
// moment the machine returns to idle.
type HaloSource struct {
	mu      sync.RWMutex
	feature *models.Feature
}

// NewHaloSource creates an empty halo source.
func NewHaloSource() *HaloSource {
	return &HaloSource{}
}

// Set points the halo at a feature.
func (h *HaloSource) Set(feature models.Feature) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.feature = &feature
}

// Clear removes the halo.
func (h *HaloSource) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.feature = nil
}

// Current returns the highlighted feature, or nil.
func (h *HaloSource) Current() *models.Feature {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.feature
}
