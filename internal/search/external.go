package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"immoxperts/server/internal/models"
)

// ExternalSource is the fallback open geocoder, queried only when the
// backend address index returned nothing.
type ExternalSource struct {
	logger  *logrus.Logger
	baseURL string
	limit   int
	client  *http.Client
}

// NewExternalSource creates a fallback source against an adresse-API
// style search endpoint.
func NewExternalSource(logger *logrus.Logger, baseURL string, limit int) *ExternalSource {
	if limit <= 0 {
		limit = 10
	}
	return &ExternalSource{
		logger:  logger,
		baseURL: baseURL,
		limit:   limit,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type geocodeSearchResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Label    string `json:"label"`
			City     string `json:"city"`
			Postcode string `json:"postcode"`
			Type     string `json:"type"`
		} `json:"properties"`
	} `json:"features"`
}

// Search queries the open geocoder for free-text candidates.
func (s *ExternalSource) Search(ctx context.Context, query string) ([]models.SuggestionCandidate, error) {
	params := url.Values{
		"q":     []string{query},
		"limit": []string{strconv.Itoa(s.limit)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/search/", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("User-Agent", "Immoxperts Map Engine/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoder request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var result geocodeSearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse geocoder response: %w", err)
	}

	out := make([]models.SuggestionCandidate, 0, len(result.Features))
	for _, feature := range result.Features {
		if len(feature.Geometry.Coordinates) != 2 {
			continue
		}
		out = append(out, models.SuggestionCandidate{
			DisplayName: feature.Properties.Label,
			Subtitle:    fmt.Sprintf("%s %s", feature.Properties.Postcode, feature.Properties.City),
			Lon:         feature.Geometry.Coordinates[0],
			Lat:         feature.Geometry.Coordinates[1],
			Type:        externalType(feature.Properties.Type),
			Source:      models.SourceExternal,
			Raw:         feature.Properties,
		})
	}
	return out, nil
}

func externalType(t string) models.SuggestionType {
	switch t {
	case "street":
		return models.SuggestionStreet
	case "municipality", "locality":
		return models.SuggestionCity
	default:
		return models.SuggestionAddress
	}
}
