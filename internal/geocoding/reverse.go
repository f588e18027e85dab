package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// DefaultCity is the display label used when reverse geocoding fails.
const DefaultCity = "AJACCIO"

// PlaceInfo is the administrative context of a coordinate.
type PlaceInfo struct {
	City       string `json:"city"`
	CityCode   string `json:"citycode"`
	PostalCode string `json:"postcode"`
	Quartier   string `json:"quartier"`
}

// ReverseGeocoder resolves (lon, lat) to administrative context. Both
// lookups are best-effort: failures degrade to DefaultCity and an
// empty quartier instead of erroring out.
type ReverseGeocoder struct {
	logger  *logrus.Logger
	baseURL string
	cache   *gocache.Cache
	client  *http.Client
}

// NewReverseGeocoder creates a geocoder against an adresse-API style
// endpoint. Responses are memoized by rounded coordinate for ttl.
func NewReverseGeocoder(logger *logrus.Logger, baseURL string, ttl time.Duration) *ReverseGeocoder {
	return &ReverseGeocoder{
		logger:  logger,
		baseURL: baseURL,
		cache:   gocache.New(ttl, 2*ttl),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type reverseResponse struct {
	Features []struct {
		Properties struct {
			City     string `json:"city"`
			CityCode string `json:"citycode"`
			Postcode string `json:"postcode"`
			District string `json:"district"`
		} `json:"properties"`
	} `json:"features"`
}

// ReverseCity resolves the commune of a coordinate. On any failure it
// returns the default city with empty codes and no error, so callers
// degrade gracefully.
func (g *ReverseGeocoder) ReverseCity(ctx context.Context, lon, lat float64) PlaceInfo {
	cacheKey := fmt.Sprintf("%.4f|%.4f", lon, lat)
	if cached, ok := g.cache.Get(cacheKey); ok {
		return cached.(PlaceInfo)
	}

	info, err := g.fetchReverse(ctx, lon, lat)
	if err != nil {
		g.logger.WithError(err).WithFields(logrus.Fields{
			"lon": lon,
			"lat": lat,
		}).Warn("Reverse geocoding failed, using default city")
		return PlaceInfo{City: DefaultCity}
	}

	g.cache.Set(cacheKey, info, gocache.DefaultExpiration)
	return info
}

// ReverseQuartier resolves the neighborhood-level label of a
// coordinate, or an empty string when unavailable.
func (g *ReverseGeocoder) ReverseQuartier(ctx context.Context, lon, lat float64) string {
	info := g.ReverseCity(ctx, lon, lat)
	return info.Quartier
}

func (g *ReverseGeocoder) fetchReverse(ctx context.Context, lon, lat float64) (PlaceInfo, error) {
	params := url.Values{
		"lon": []string{fmt.Sprintf("%g", lon)},
		"lat": []string{fmt.Sprintf("%g", lat)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/reverse/", nil)
	if err != nil {
		return PlaceInfo{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("User-Agent", "Immoxperts Map Engine/1.0")

	resp, err := g.client.Do(req)
	if err != nil {
		return PlaceInfo{}, fmt.Errorf("reverse geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return PlaceInfo{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return PlaceInfo{}, fmt.Errorf("failed to read response: %w", err)
	}

	var result reverseResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return PlaceInfo{}, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(result.Features) == 0 {
		return PlaceInfo{}, fmt.Errorf("no results for %g,%g", lon, lat)
	}

	props := result.Features[0].Properties
	return PlaceInfo{
		City:       props.City,
		CityCode:   props.CityCode,
		PostalCode: props.Postcode,
		Quartier:   props.District,
	}, nil
}
