package mapdata

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"immoxperts/server/internal/models"
	"immoxperts/server/internal/scheduler"
)

// Synchronizer keeps the rendered dataset consistent with the current
// viewport and active filters. Viewport and filter changes coalesce
// through a debouncer so only the last trigger in a burst fetches;
// a newer fetch supersedes an in-flight one.
type Synchronizer struct {
	logger   *logrus.Logger
	client   *Client
	store    *Store
	debounce *scheduler.Debouncer
	settle   scheduler.RetryPolicy
	limit    int

	mu       sync.Mutex
	viewport models.ViewportState
	filters  *models.FilterState
	cancel   context.CancelFunc
	seq      int64
	closed   bool

	subMu    sync.RWMutex
	handlers []func([]models.Feature)
}

// Options configures a Synchronizer.
type Options struct {
	DebounceWindow time.Duration
	FeatureLimit   int
	SettlePolicy   scheduler.RetryPolicy
}

// NewSynchronizer creates a synchronizer writing into store.
func NewSynchronizer(client *Client, store *Store, opts Options, logger *logrus.Logger) *Synchronizer {
	if logger == nil {
		logger = logrus.New()
	}
	if opts.DebounceWindow <= 0 {
		opts.DebounceWindow = 300 * time.Millisecond
	}
	if opts.FeatureLimit <= 0 {
		opts.FeatureLimit = 500
	}

	return &Synchronizer{
		logger:   logger,
		client:   client,
		store:    store,
		debounce: scheduler.NewDebouncer(opts.DebounceWindow),
		settle:   opts.SettlePolicy,
		limit:    opts.FeatureLimit,
	}
}

// Subscribe registers a handler called with the new feature array
// after every successful replace.
func (s *Synchronizer) Subscribe(handler func([]models.Feature)) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.handlers = append(s.handlers, handler)
}

// SetViewport records a pan/zoom-end and schedules a debounced fetch.
func (s *Synchronizer) SetViewport(v models.ViewportState) {
	s.mu.Lock()
	s.viewport = v
	s.mu.Unlock()

	s.debounce.Trigger(s.syncOnce)
}

// SetFilters replaces the active filter set and schedules a debounced
// fetch. A nil value means wide-open defaults.
func (s *Synchronizer) SetFilters(f *models.FilterState) {
	s.mu.Lock()
	s.filters = f
	s.mu.Unlock()

	s.debounce.Trigger(s.syncOnce)
}

// Viewport returns the last recorded viewport state.
func (s *Synchronizer) Viewport() models.ViewportState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewport
}

// SyncNow bypasses the debouncer and fetches immediately.
func (s *Synchronizer) SyncNow() {
	s.debounce.Flush(s.syncOnce)
}

// syncOnce snapshots the current viewport and filters, supersedes any
// in-flight fetch, and replaces the dataset on success. Failures are
// logged and swallowed: the previous dataset stays visible.
func (s *Synchronizer) syncOnce() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.seq++
	seq := s.seq
	viewport := s.viewport
	filters := s.filters
	s.mu.Unlock()

	features, err := s.client.FetchFeatures(ctx, viewport.Bounds, filters, s.limit)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.WithError(err).Error("Viewport fetch failed, keeping previous dataset")
		}
		return
	}

	// A newer trigger may have started while we were in flight; never
	// let a stale result overwrite it. The check and the replace share
	// one critical section so a fetch that passed the check cannot be
	// superseded before it commits.
	s.mu.Lock()
	if s.closed || seq != s.seq {
		s.mu.Unlock()
		return
	}
	s.store.Replace(features)
	s.mu.Unlock()

	s.notify(features)
}

func (s *Synchronizer) notify(features []models.Feature) {
	s.subMu.RLock()
	handlers := s.handlers
	s.subMu.RUnlock()

	for _, handler := range handlers {
		handler(features)
	}
}

// SettleAndSync waits for the camera to come to rest after a fly-to,
// then forces an immediate fetch. The new bounds are not known
// synchronously, so it polls idle with the bounded settle policy and
// reports false when the attempts are exhausted.
func (s *Synchronizer) SettleAndSync(ctx context.Context, idle func() bool) bool {
	if !s.settle.Poll(ctx, idle) {
		s.logger.Warn("Camera never settled, skipping post-navigation fetch")
		return false
	}

	s.SyncNow()
	return true
}

// Close cancels pending timers and in-flight fetches. Further triggers
// are ignored.
func (s *Synchronizer) Close() {
	s.debounce.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
