package mapdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/sirupsen/logrus"

	"immoxperts/server/internal/geometry"
	"immoxperts/server/internal/models"
)

// Client fetches mutation features and parcel details from the
// upstream data endpoints.
type Client struct {
	logger       *logrus.Logger
	mutationsURL string
	parcelsURL   string
	client       *http.Client
}

// NewClient creates a client against the mutation and parcel
// endpoints.
func NewClient(logger *logrus.Logger, mutationsURL, parcelsURL string) *Client {
	return &Client{
		logger:       logger,
		mutationsURL: mutationsURL,
		parcelsURL:   parcelsURL,
		client:       &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchFeatures requests the features inside bound under the given
// filters. A nil filter state queries with wide-open defaults. Every
// returned feature has an id: features the upstream left without one
// get a synthetic index-based id so the rendering layer can key them
// stably within one paint cycle.
func (c *Client) FetchFeatures(ctx context.Context, bound orb.Bound, filters *models.FilterState, limit int) ([]models.Feature, error) {
	params := filters.QueryValues()
	params.Set("bounds", geometry.FormatBounds(bound))
	params.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.mutationsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.URL.RawQuery = params.Encode()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mutations request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	collection, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feature collection: %w", err)
	}

	features := make([]models.Feature, 0, len(collection.Features))
	for i, raw := range collection.Features {
		point, ok := raw.Geometry.(orb.Point)
		if !ok {
			continue
		}

		feature := models.Feature{
			Point:     point,
			Addresses: models.ParseAddresses(raw.Properties["addresses"]),
		}
		if parcelle, ok := raw.Properties["parcelle"].(string); ok {
			feature.Parcelle = parcelle
		}
		feature.ID = featureID(raw, i)

		features = append(features, feature)
	}
	return features, nil
}

// featureID prefers the upstream id and falls back to the position in
// the collection.
func featureID(raw *geojson.Feature, index int) string {
	switch id := raw.ID.(type) {
	case string:
		if id != "" {
			return id
		}
	case float64:
		return strconv.FormatInt(int64(id), 10)
	}
	if id, ok := raw.Properties["id"].(string); ok && id != "" {
		return id
	}
	if id, ok := raw.Properties["id"].(float64); ok {
		return strconv.FormatInt(int64(id), 10)
	}
	return fmt.Sprintf("feature-%d", index)
}

// FetchParcelAddresses returns the addresses attached to a cadastral
// parcel, consumed when the user clicks a parcel polygon instead of a
// point.
func (c *Client) FetchParcelAddresses(ctx context.Context, parcelID string) ([]models.Address, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.parcelsURL+"/"+parcelID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("parcel request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var addresses []models.Address
	if err := json.NewDecoder(resp.Body).Decode(&addresses); err != nil {
		return nil, fmt.Errorf("failed to parse parcel addresses: %w", err)
	}
	return addresses, nil
}
