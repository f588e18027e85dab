package search

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"immoxperts/server/internal/models"
	"immoxperts/server/internal/scheduler"
)

// Searcher merges the three suggestion sources into one ranked list.
// The local gazetteer always answers first and synchronously; the
// backend index is queried next; the external geocoder only runs when
// the backend returned nothing.
type Searcher struct {
	logger     *logrus.Logger
	local      *LocalSource
	backend    *BackendSource
	external   *ExternalSource
	cache      *Cache
	debounce   *scheduler.Debouncer
	maxResults int

	mu     sync.Mutex
	cancel context.CancelFunc
	closed bool
}

// Options configures a Searcher.
type Options struct {
	DebounceWindow time.Duration
	MaxResults     int
	CacheTTL       time.Duration
	CacheEntries   int
}

// NewSearcher wires the three sources together.
func NewSearcher(local *LocalSource, backend *BackendSource, external *ExternalSource, opts Options, logger *logrus.Logger) *Searcher {
	if logger == nil {
		logger = logrus.New()
	}
	if opts.DebounceWindow <= 0 {
		opts.DebounceWindow = 200 * time.Millisecond
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 30
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 30 * time.Minute
	}

	return &Searcher{
		logger:     logger,
		local:      local,
		backend:    backend,
		external:   external,
		cache:      NewCache(opts.CacheTTL, opts.CacheEntries),
		debounce:   scheduler.NewDebouncer(opts.DebounceWindow),
		maxResults: opts.MaxResults,
	}
}

// Cache exposes the result cache, mainly for invalidation on commit.
func (s *Searcher) Cache() *Cache {
	return s.cache
}

// Search runs the full pipeline for one query. A cache hit bypasses
// every network source.
func (s *Searcher) Search(ctx context.Context, query string) ([]models.SuggestionCandidate, error) {
	queryNorm := Normalize(query)
	if queryNorm == "" {
		return nil, nil
	}

	if cached, ok := s.cache.Get(queryNorm); ok {
		return cached, nil
	}

	cities := s.local.Search(queryNorm)

	// A failing backend counts as an empty one: the fallback still
	// runs, and the degraded list is never cached so the next query
	// retries the full pipeline.
	degraded := false
	backendResults, err := s.backend.Search(ctx, query, queryNorm)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.WithError(err).Error("Backend address search failed")
		degraded = true
	}

	// The fallback geocoder is never queried when the backend index
	// answered.
	if len(backendResults) == 0 {
		externalResults, extErr := s.external.Search(ctx, query)
		if extErr != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.logger.WithError(extErr).Warn("Fallback geocoder failed")
			degraded = true
		}
		backendResults = externalResults
	}

	merged := s.merge(query, cities, backendResults)
	if len(merged) > s.maxResults {
		merged = merged[:s.maxResults]
	}

	if !degraded {
		s.cache.Set(queryNorm, merged)
	}
	return merged, nil
}

// merge applies the final ordering policy: a query that looks like a
// specific address puts individual addresses before streets.
func (s *Searcher) merge(query string, cities, rest []models.SuggestionCandidate) []models.SuggestionCandidate {
	var addresses, streets, other []models.SuggestionCandidate
	for _, candidate := range rest {
		switch candidate.Type {
		case models.SuggestionStreet:
			streets = append(streets, candidate)
		case models.SuggestionAddress:
			addresses = append(addresses, candidate)
		default:
			other = append(other, candidate)
		}
	}

	out := make([]models.SuggestionCandidate, 0, len(cities)+len(rest))
	out = append(out, cities...)
	out = append(out, other...)
	if StartsWithDigit(query) {
		out = append(out, addresses...)
		out = append(out, streets...)
	} else {
		out = append(out, streets...)
		out = append(out, addresses...)
	}
	return out
}

// SearchDebounced is the keystroke path: the search runs after the
// debounce window, superseding and cancelling any in-flight query so
// stale results can never overwrite newer ones.
func (s *Searcher) SearchDebounced(query string, deliver func([]models.SuggestionCandidate)) {
	s.debounce.Trigger(func() {
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
		s.mu.Unlock()

		results, err := s.Search(ctx, query)
		if err != nil {
			return
		}
		if ctx.Err() != nil {
			return
		}
		deliver(results)
	})
}

// Commit resolves a submitted query to its best candidate. When
// nothing matched, the raw text is retried as a city-style query
// instead of failing the search.
func (s *Searcher) Commit(ctx context.Context, query string) (*models.SuggestionCandidate, error) {
	results, err := s.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		results = s.local.SearchRelaxed(Normalize(query))
	}
	if len(results) == 0 {
		return nil, nil
	}

	best := results[0]
	s.cache.Invalidate(Normalize(query))
	return &best, nil
}

// Close cancels the pending debounce timer and any in-flight query.
func (s *Searcher) Close() {
	s.debounce.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
