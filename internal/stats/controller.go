package stats

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"immoxperts/server/internal/geocoding"
	"immoxperts/server/internal/mapdata"
	"immoxperts/server/internal/models"
	"immoxperts/server/internal/scheduler"
)

// Snapshot is the current state of the statistics panel.
type Snapshot struct {
	Scope    models.StatScope  `json:"scope"`
	City     string            `json:"city"`
	Quartier string            `json:"quartier"`
	Rows     []models.ZoneStat `json:"rows"`
}

// Controller owns the statistics table and its scope. Commune scope
// fetches pre-aggregated rows for the administrative area under the
// map center; zone scope rescans whatever is currently rendered. The
// rescan is delayed so the rendering layer has finished painting
// before it is queried, and only the newest scheduled rescan runs.
type Controller struct {
	logger   *logrus.Logger
	store    *mapdata.Store
	sync     *mapdata.Synchronizer
	client   *CommuneClient
	geocoder *geocoding.ReverseGeocoder
	rescan   *scheduler.Debouncer

	mu       sync.Mutex
	scope    models.StatScope
	city     string
	quartier string
	rows     []models.ZoneStat
}

// NewController wires the controller into the synchronizer fan-out so
// new data triggers a zone rescan automatically.
func NewController(store *mapdata.Store, syncer *mapdata.Synchronizer, client *CommuneClient, geocoder *geocoding.ReverseGeocoder, rescanDelay time.Duration, logger *logrus.Logger) *Controller {
	if logger == nil {
		logger = logrus.New()
	}
	if rescanDelay <= 0 {
		rescanDelay = 300 * time.Millisecond
	}

	c := &Controller{
		logger:   logger,
		store:    store,
		sync:     syncer,
		client:   client,
		geocoder: geocoder,
		rescan:   scheduler.NewDebouncer(rescanDelay),
		scope:    models.ScopeCommune,
		rows:     EmptyTable(),
	}

	syncer.Subscribe(func([]models.Feature) {
		c.ScheduleRescan()
	})
	return c
}

// SetScope switches the statistics scope. Quartier is documented but
// disabled at runtime: entering it zeroes the table and auto-reverts
// to commune so numbers from another scope are never shown under it.
func (c *Controller) SetScope(ctx context.Context, scope models.StatScope) error {
	if scope == models.ScopeQuartier {
		c.mu.Lock()
		c.rows = EmptyTable()
		c.quartier = ""
		c.mu.Unlock()

		c.logger.WithField("scope", scope.String()).Info("Quartier scope is disabled, reverting to commune")
		scope = models.ScopeCommune
	}

	c.mu.Lock()
	c.scope = scope
	c.mu.Unlock()

	switch scope {
	case models.ScopeCommune:
		return c.refreshCommune(ctx)
	default:
		c.ScheduleRescan()
		return nil
	}
}

// ScheduleRescan schedules a delayed zone rescan. Scope changes, new
// data from the synchronizer, sibling data-version bumps and the
// initial load settle all funnel through here.
func (c *Controller) ScheduleRescan() {
	c.rescan.Trigger(c.rescanZone)
}

// BumpDataVersion is the explicit trigger used by sibling list views.
func (c *Controller) BumpDataVersion() {
	c.ScheduleRescan()
}

func (c *Controller) rescanZone() {
	c.mu.Lock()
	scope := c.scope
	c.mu.Unlock()
	if scope != models.ScopeZone {
		return
	}

	rendered := c.store.Rendered(c.sync.Viewport().Bounds)
	rows := Aggregate(rendered)

	c.mu.Lock()
	c.rows = rows
	c.mu.Unlock()
}

// refreshCommune resolves the administrative code of the map center
// and fetches its pre-aggregated table. Geocoding failures degrade to
// the default city label; a stats fetch failure is surfaced because
// the panel shows a user-facing error for it.
func (c *Controller) refreshCommune(ctx context.Context) error {
	center := c.sync.Viewport().Center()
	place := c.geocoder.ReverseCity(ctx, center[0], center[1])

	c.mu.Lock()
	c.city = place.City
	c.quartier = place.Quartier
	c.mu.Unlock()

	if place.CityCode == "" {
		c.logger.Warn("No administrative code for map center, keeping previous stats")
		return nil
	}

	communeRows, err := c.client.FetchByCode(ctx, place.CityCode)
	if err != nil {
		return fmt.Errorf("failed to fetch commune stats: %w", err)
	}

	rows := EmptyTable()
	for i := range rows {
		for _, row := range communeRows {
			if row.TypeGroupe == rows[i].TypeGroupe {
				rows[i] = models.ZoneStat(row)
				break
			}
		}
	}

	c.mu.Lock()
	c.rows = rows
	c.mu.Unlock()
	return nil
}

// Current returns a snapshot of the statistics panel.
func (c *Controller) Current() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows := make([]models.ZoneStat, len(c.rows))
	copy(rows, c.rows)
	return Snapshot{
		Scope:    c.scope,
		City:     c.city,
		Quartier: c.quartier,
		Rows:     rows,
	}
}

// Close stops the pending rescan timer.
func (c *Controller) Close() {
	c.rescan.Stop()
}
