package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"immoxperts/server/internal/models"
)

// CommuneClient fetches pre-aggregated statistics for a fixed
// administrative area by code.
type CommuneClient struct {
	logger  *logrus.Logger
	baseURL string
	client  *http.Client
}

// NewCommuneClient creates a client against the commune statistics
// endpoint.
func NewCommuneClient(logger *logrus.Logger, baseURL string) *CommuneClient {
	return &CommuneClient{
		logger:  logger,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// communeStatRow tolerates both field spellings the endpoint has used
// over time.
type communeStatRow struct {
	TypeGroupe       string   `json:"typeGroupe"`
	Nombre           *int     `json:"nombre"`
	NombreMutations  *int     `json:"nombreMutations"`
	PrixMoyen        *float64 `json:"prixMoyen"`
	PrixMoyenDec2024 *float64 `json:"prixMoyenDec2024"`
	PrixM2Moyen      *float64 `json:"prixM2Moyen"`
	PrixM2Dec2024    *float64 `json:"prixM2MoyenDec2024"`
}

// FetchByCode returns the statistics table of an administrative code.
func (c *CommuneClient) FetchByCode(ctx context.Context, code string) ([]models.CommuneStat, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/commune/"+code, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("commune stats request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var rows []communeStatRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse commune stats: %w", err)
	}

	out := make([]models.CommuneStat, 0, len(rows))
	for _, row := range rows {
		category, ok := CategoryFor(row.TypeGroupe)
		if !ok {
			c.logger.WithField("type_groupe", row.TypeGroupe).Warn("Skipping unknown stat category")
			continue
		}
		out = append(out, models.CommuneStat{
			TypeGroupe:  category,
			Nombre:      firstInt(row.Nombre, row.NombreMutations),
			PrixMoyen:   firstFloat(row.PrixMoyen, row.PrixMoyenDec2024),
			PrixM2Moyen: firstFloat(row.PrixM2Moyen, row.PrixM2Dec2024),
		})
	}
	return out, nil
}

func firstInt(values ...*int) int {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}

func firstFloat(values ...*float64) float64 {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}
