package search

import (
	"context"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat"

	"immoxperts/server/internal/database"
	"immoxperts/server/internal/models"
)

// backendFetchLimit bounds the raw rows pulled from the address index
// before scoring trims them down.
const backendFetchLimit = 50

// BackendSource queries the portal's own address index.
type BackendSource struct {
	db *database.Database
}

// NewBackendSource creates a source over the sqlite address index.
func NewBackendSource(db *database.Database) *BackendSource {
	return &BackendSource{db: db}
}

// Search looks the normalized query up in the address index and
// returns scored address candidates, plus street-level groups unless
// the raw query starts with a number (the user is then targeting a
// specific street-number address, not the street).
func (s *BackendSource) Search(ctx context.Context, rawQuery, queryNorm string) ([]models.SuggestionCandidate, error) {
	records, err := s.db.SearchAddresses(queryNorm, backendFetchLimit)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	var items []scored
	for _, record := range records {
		sc := ScoreAddress(queryNorm, Normalize(record.AdresseComplete))
		if sc == ScoreRejected {
			continue
		}
		items = append(items, scored{candidate: addressCandidate(record), score: sc})
	}
	sortScored(items)
	out := unwrap(items)

	if !StartsWithDigit(rawQuery) {
		out = append(out, groupStreets(records)...)
	}
	return out, nil
}

// groupStreets folds addresses sharing a street key into one
// street-level suggestion positioned at the arithmetic mean of the
// member coordinates.
func groupStreets(records []database.AddressRecord) []models.SuggestionCandidate {
	type group struct {
		records []database.AddressRecord
	}
	groups := make(map[string]*group)
	var order []string

	for _, record := range records {
		if record.StreetName == "" {
			continue
		}
		key := strings.Join([]string{
			strings.ToLower(record.StreetType),
			strings.ToLower(record.StreetName),
			record.CodePostal,
			strings.ToLower(record.Commune),
		}, "|")
		g, ok := groups[key]
		if !ok {
			g = &group{}
			groups[key] = g
			order = append(order, key)
		}
		g.records = append(g.records, record)
	}

	var out []models.SuggestionCandidate
	for _, key := range order {
		g := groups[key]
		if len(g.records) < 2 {
			continue
		}

		lons := make([]float64, len(g.records))
		lats := make([]float64, len(g.records))
		for i, record := range g.records {
			lons[i] = record.Lon
			lats[i] = record.Lat
		}

		first := g.records[0]
		out = append(out, models.SuggestionCandidate{
			DisplayName: strings.TrimSpace(first.StreetType + " " + first.StreetName),
			Subtitle:    fmt.Sprintf("%s %s", first.CodePostal, first.Commune),
			Lon:         stat.Mean(lons, nil),
			Lat:         stat.Mean(lats, nil),
			Type:        models.SuggestionStreet,
			Source:      models.SourceBackend,
			Raw:         g.records,
		})
	}
	return out
}

func addressCandidate(record database.AddressRecord) models.SuggestionCandidate {
	return models.SuggestionCandidate{
		DisplayName: record.AdresseComplete,
		Subtitle:    fmt.Sprintf("%s %s", record.CodePostal, record.Commune),
		Lon:         record.Lon,
		Lat:         record.Lat,
		Type:        models.SuggestionAddress,
		Source:      models.SourceBackend,
		Raw:         record,
	}
}
