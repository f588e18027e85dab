package search

import (
	"fmt"

	"immoxperts/server/config"
	"immoxperts/server/internal/models"
)

// LocalSource resolves queries against the static city, commune and
// department gazetteer. It runs first and fully in memory, so the
// search box gets instant results before any network source answers.
type LocalSource struct {
	maxResults int
}

// NewLocalSource creates a gazetteer source capped at maxResults.
func NewLocalSource(maxResults int) *LocalSource {
	if maxResults <= 0 {
		maxResults = 30
	}
	return &LocalSource{maxResults: maxResults}
}

// Search classifies the query and returns the matching gazetteer
// records in the order mandated for that class.
func (s *LocalSource) Search(queryNorm string) []models.SuggestionCandidate {
	if queryNorm == "" {
		return nil
	}

	// A bare city name expands to its department, the city itself and
	// every subdivision, ascending by postal code.
	for _, city := range config.SupportedCities {
		if Normalize(city.Name) == queryNorm {
			return s.expandCity(city)
		}
	}

	// A subdivision name returns itself plus its parent city.
	for _, arr := range config.Arrondissements {
		if Normalize(arr.Name) == queryNorm {
			out := []models.SuggestionCandidate{arrondissementCandidate(arr)}
			if city := config.GetCityByName(arr.City); city != nil {
				out = append(out, cityCandidate(*city))
			}
			return out
		}
	}

	// A department name puts departments ahead of everything else.
	departmentFirst := false
	for _, dep := range config.Departments {
		if Normalize(dep.Name) == queryNorm {
			departmentFirst = true
			break
		}
	}

	cities := s.scoreCities(queryNorm)
	departments := s.scoreDepartments(queryNorm)
	arrondissements := s.scoreArrondissements(queryNorm)

	var merged []models.SuggestionCandidate
	if departmentFirst {
		merged = append(merged, departments...)
		merged = append(merged, cities...)
	} else {
		merged = append(merged, cities...)
		merged = append(merged, departments...)
	}
	merged = append(merged, arrondissements...)

	if len(merged) > s.maxResults {
		merged = merged[:s.maxResults]
	}
	return merged
}

// SearchRelaxed applies the address-style threshold to the gazetteer.
// It backs the submit fallback: raw text that matched nothing is still
// treated as a city-style query instead of failing the search.
func (s *LocalSource) SearchRelaxed(queryNorm string) []models.SuggestionCandidate {
	var items []scored
	for _, city := range config.SupportedCities {
		if sc := ScoreAddress(queryNorm, Normalize(city.Name)); sc != ScoreRejected {
			items = append(items, scored{candidate: cityCandidate(city), score: sc})
		}
	}
	sortScored(items)
	return unwrap(items)
}

func (s *LocalSource) expandCity(city config.City) []models.SuggestionCandidate {
	var out []models.SuggestionCandidate
	if dep := config.GetDepartmentByCode(city.Department); dep != nil {
		out = append(out, departmentCandidate(*dep))
	}
	out = append(out, cityCandidate(city))
	for _, arr := range config.GetArrondissementsForCity(city.Name) {
		out = append(out, arrondissementCandidate(arr))
	}
	return out
}

func (s *LocalSource) scoreCities(queryNorm string) []models.SuggestionCandidate {
	var items []scored
	for _, city := range config.SupportedCities {
		if sc := ScoreCity(queryNorm, Normalize(city.Name)); sc != ScoreRejected {
			items = append(items, scored{candidate: cityCandidate(city), score: sc})
		}
	}
	sortScored(items)
	return unwrap(items)
}

func (s *LocalSource) scoreDepartments(queryNorm string) []models.SuggestionCandidate {
	var items []scored
	for _, dep := range config.Departments {
		if sc := ScoreCity(queryNorm, Normalize(dep.Name)); sc != ScoreRejected {
			items = append(items, scored{candidate: departmentCandidate(dep), score: sc})
		}
	}
	sortScored(items)
	return unwrap(items)
}

func (s *LocalSource) scoreArrondissements(queryNorm string) []models.SuggestionCandidate {
	var items []scored
	for _, arr := range config.Arrondissements {
		if sc := ScoreCity(queryNorm, Normalize(arr.Name)); sc != ScoreRejected {
			items = append(items, scored{candidate: arrondissementCandidate(arr), score: sc})
		}
	}
	sortScored(items)
	return unwrap(items)
}

func cityCandidate(city config.City) models.SuggestionCandidate {
	return models.SuggestionCandidate{
		DisplayName: city.Name,
		Subtitle:    fmt.Sprintf("%s (%s)", city.PostalCode, city.Department),
		Lon:         city.Lon,
		Lat:         city.Lat,
		Type:        models.SuggestionCity,
		Source:      models.SourceLocal,
		Raw:         city,
	}
}

func departmentCandidate(dep config.Department) models.SuggestionCandidate {
	return models.SuggestionCandidate{
		DisplayName: dep.Name,
		Subtitle:    fmt.Sprintf("Departement %s", dep.Code),
		Lon:         dep.Lon,
		Lat:         dep.Lat,
		Type:        models.SuggestionDepartment,
		Source:      models.SourceLocal,
		Raw:         dep,
	}
}

func arrondissementCandidate(arr config.Arrondissement) models.SuggestionCandidate {
	return models.SuggestionCandidate{
		DisplayName: arr.Name,
		Subtitle:    arr.PostalCode,
		Lon:         arr.Lon,
		Lat:         arr.Lat,
		Type:        models.SuggestionCommune,
		Source:      models.SourceLocal,
		Raw:         arr,
	}
}
