package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"immoxperts/server/internal/database"
	"immoxperts/server/internal/geocoding"
	"immoxperts/server/internal/geometry"
	"immoxperts/server/internal/interaction"
	"immoxperts/server/internal/mapdata"
	"immoxperts/server/internal/models"
	"immoxperts/server/internal/queue"
	"immoxperts/server/internal/search"
	"immoxperts/server/internal/stats"
)

type Handler struct {
	logger      *logrus.Logger
	store       *mapdata.Store
	syncer      *mapdata.Synchronizer
	mapClient   *mapdata.Client
	statsCtrl   *stats.Controller
	statsClient *stats.CommuneClient
	searcher    *search.Searcher
	geocoder    *geocoding.ReverseGeocoder
	importQueue *queue.AddressQueue
	sessions    *interaction.Sessions
}

// Deps bundles what the handlers need.
type Deps struct {
	Store       *mapdata.Store
	Syncer      *mapdata.Synchronizer
	MapClient   *mapdata.Client
	StatsCtrl   *stats.Controller
	StatsClient *stats.CommuneClient
	Searcher    *search.Searcher
	Geocoder    *geocoding.ReverseGeocoder
	ImportQueue *queue.AddressQueue
	Sessions    *interaction.Sessions
}

func NewHandler(deps Deps, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return &Handler{
		logger:      logger,
		store:       deps.Store,
		syncer:      deps.Syncer,
		mapClient:   deps.MapClient,
		statsCtrl:   deps.StatsCtrl,
		statsClient: deps.StatsClient,
		searcher:    deps.Searcher,
		geocoder:    deps.Geocoder,
		importQueue: deps.ImportQueue,
		sessions:    deps.Sessions,
	}
}

// GetMutations synchronizes the rendered dataset with the requested
// viewport and filters and returns it.
func (h *Handler) GetMutations(c *gin.Context) {
	bound, err := geometry.ParseBounds(c.Query("bounds"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to parse viewport bounds")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bounds parameter"})
		return
	}

	zoom, _ := strconv.ParseFloat(c.DefaultQuery("zoom", "12"), 64)
	h.syncer.SetViewport(models.ViewportState{Bounds: bound, Zoom: zoom})
	h.syncer.SetFilters(parseFilters(c))
	h.syncer.SyncNow()

	c.JSON(http.StatusOK, gin.H{"features": h.store.All()})
}

// GetCommuneStats proxies the pre-aggregated statistics of an
// administrative code.
func (h *Handler) GetCommuneStats(c *gin.Context) {
	code := c.Param("code")
	rows, err := h.statsClient.FetchByCode(c.Request.Context(), code)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get commune stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get commune stats"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// GetZoneStats aggregates the features currently rendered inside the
// requested bounds.
func (h *Handler) GetZoneStats(c *gin.Context) {
	bound, err := geometry.ParseBounds(c.Query("bounds"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to parse zone bounds")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bounds parameter"})
		return
	}

	c.JSON(http.StatusOK, stats.Aggregate(h.store.Rendered(bound)))
}

// GetStatsPanel returns the current statistics panel snapshot.
func (h *Handler) GetStatsPanel(c *gin.Context) {
	c.JSON(http.StatusOK, h.statsCtrl.Current())
}

// SetStatsScope switches the statistics scope.
func (h *Handler) SetStatsScope(c *gin.Context) {
	var req struct {
		Scope string `json:"scope" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse scope request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}

	var scope models.StatScope
	switch req.Scope {
	case "commune":
		scope = models.ScopeCommune
	case "quartier":
		scope = models.ScopeQuartier
	case "zone":
		scope = models.ScopeZone
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown scope"})
		return
	}

	if err := h.statsCtrl.SetScope(c.Request.Context(), scope); err != nil {
		h.logger.WithError(err).Error("Failed to switch stats scope")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to switch stats scope"})
		return
	}

	c.JSON(http.StatusOK, h.statsCtrl.Current())
}

// GetSuggestions runs the ranked multi-source search for a free-text
// query.
func (h *Handler) GetSuggestions(c *gin.Context) {
	query := c.Query("q")
	results, err := h.searcher.Search(c.Request.Context(), query)
	if err != nil {
		h.logger.WithError(err).Error("Suggestion search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Suggestion search failed"})
		return
	}

	c.JSON(http.StatusOK, results)
}

// CommitSuggestion resolves a submitted query to its best candidate.
func (h *Handler) CommitSuggestion(c *gin.Context) {
	var req struct {
		Query string `json:"query" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse commit request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}

	best, err := h.searcher.Commit(c.Request.Context(), req.Query)
	if err != nil {
		h.logger.WithError(err).Error("Suggestion commit failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Suggestion commit failed"})
		return
	}
	if best == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No match for query"})
		return
	}

	c.JSON(http.StatusOK, best)
}

// GetParcelAddresses returns the addresses attached to a cadastral
// parcel.
func (h *Handler) GetParcelAddresses(c *gin.Context) {
	addresses, err := h.mapClient.FetchParcelAddresses(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to get parcel addresses")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get parcel addresses"})
		return
	}

	c.JSON(http.StatusOK, addresses)
}

// ReverseGeocode resolves a coordinate to its administrative context.
func (h *Handler) ReverseGeocode(c *gin.Context) {
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	if errLon != nil || errLat != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coordinates"})
		return
	}

	c.JSON(http.StatusOK, h.geocoder.ReverseCity(c.Request.Context(), lon, lat))
}

// ImportAddresses queues a batch of address rows for the index.
func (h *Handler) ImportAddresses(c *gin.Context) {
	var records []*database.AddressRecord
	if err := c.ShouldBindJSON(&records); err != nil {
		h.logger.WithError(err).Error("Failed to parse import batch")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}

	for _, record := range records {
		record.Normalized = search.Normalize(record.AdresseComplete)
	}

	if err := h.importQueue.Push(records); err != nil {
		h.logger.WithError(err).Error("Failed to queue import batch")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Import queue unavailable"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "queued", "batch_size": len(records)})
}

// CreateSession opens an interaction session classified by the client
// viewport width and pointer capability.
func (h *Handler) CreateSession(c *gin.Context) {
	var req struct {
		WidthPx  int  `json:"width_px"`
		HasTouch bool `json:"has_touch"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse session request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}

	device := models.DeviceClassFor(req.WidthPx, req.HasTouch)
	id, _ := h.sessions.Create(device)
	c.JSON(http.StatusCreated, gin.H{"session_id": id, "device": device.String()})
}

// GetSessionView returns what the session should currently present.
func (h *Handler) GetSessionView(c *gin.Context) {
	machine, ok := h.sessions.Get(c.Param("sid"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown session"})
		return
	}

	c.JSON(http.StatusOK, sessionView(machine))
}

// PushSessionEvent routes one pointer, touch or navigation event to
// the session machine and returns the resulting view.
func (h *Handler) PushSessionEvent(c *gin.Context) {
	machine, ok := h.sessions.Get(c.Param("sid"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown session"})
		return
	}

	var req struct {
		Type       string          `json:"type" binding:"required"`
		Feature    *models.Feature `json:"feature"`
		MovementPx float64         `json:"movement_px"`
		DurationMs int             `json:"duration_ms"`
		Address    string          `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse session event")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}

	switch req.Type {
	case "pointer_enter":
		if req.Feature == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Event requires a feature"})
			return
		}
		machine.PointerEnter(*req.Feature)
	case "pointer_leave":
		machine.PointerLeave()
	case "popup_enter":
		machine.EnterPopup()
	case "popup_leave":
		machine.LeavePopup()
	case "click":
		machine.Click(req.Feature)
	case "touch":
		machine.Touch(req.Feature, req.MovementPx, time.Duration(req.DurationMs)*time.Millisecond)
	case "next":
		machine.Next()
	case "prev":
		machine.Prev()
	case "dismiss":
		machine.Dismiss()
	case "expect_address":
		machine.SetExpectedAddress(req.Address)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown event type"})
		return
	}

	c.JSON(http.StatusOK, sessionView(machine))
}

// CloseSession ends an interaction session.
func (h *Handler) CloseSession(c *gin.Context) {
	if !h.sessions.Close(c.Param("sid")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "closed"})
}

// sessionView pairs the machine view with the halo snapshot so one
// response drives both the detail surface and the emphasis layer.
func sessionView(machine *interaction.Machine) gin.H {
	return gin.H{
		"view": machine.View(),
		"halo": machine.Halo().Current(),
	}
}

// parseFilters builds a filter state from the flattened query fields.
// It returns nil when no filter parameter was sent, which the engine
// treats as wide-open defaults.
func parseFilters(c *gin.Context) *models.FilterState {
	filterKeys := []string{
		"propertyType", "roomCount",
		"minSellPrice", "maxSellPrice",
		"minSurface", "maxSurface",
		"minSurfaceLand", "maxSurfaceLand",
		"minSquareMeterPrice", "maxSquareMeterPrice",
		"minDateMonths", "maxDateMonths",
	}
	present := false
	for _, key := range filterKeys {
		if _, ok := c.GetQuery(key); ok {
			present = true
			break
		}
	}
	if !present {
		return nil
	}

	state := models.DefaultFilterState()
	if v, ok := c.GetQuery("propertyType"); ok {
		state.PropertyTypes = strings.Split(v, ",")
	}
	if v, ok := c.GetQuery("roomCount"); ok {
		state.RoomCounts = strings.Split(v, ",")
	}
	setFloat(c, "minSellPrice", &state.MinSellPrice)
	setFloat(c, "maxSellPrice", &state.MaxSellPrice)
	setFloat(c, "minSurface", &state.MinSurface)
	setFloat(c, "maxSurface", &state.MaxSurface)
	setFloat(c, "minSurfaceLand", &state.MinSurfaceLand)
	setFloat(c, "maxSurfaceLand", &state.MaxSurfaceLand)
	setFloat(c, "minSquareMeterPrice", &state.MinSquareMeterPrice)
	setFloat(c, "maxSquareMeterPrice", &state.MaxSquareMeterPrice)
	setInt(c, "minDateMonths", &state.MinDateMonths)
	setInt(c, "maxDateMonths", &state.MaxDateMonths)
	return &state
}

func setFloat(c *gin.Context, key string, dst *float64) {
	if v, ok := c.GetQuery(key); ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = parsed
		}
	}
}

func setInt(c *gin.Context, key string, dst *int) {
	if v, ok := c.GetQuery(key); ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst = parsed
		}
	}
}
