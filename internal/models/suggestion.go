package models

// SuggestionType classifies a navigable location candidate.
type SuggestionType string

const (
	SuggestionAddress    SuggestionType = "address"
	SuggestionStreet     SuggestionType = "street"
	SuggestionCity       SuggestionType = "city"
	SuggestionCommune    SuggestionType = "commune"
	SuggestionDepartment SuggestionType = "department"
)

// SuggestionSource names the data source a candidate came from.
type SuggestionSource string

const (
	SourceLocal    SuggestionSource = "local"
	SourceBackend  SuggestionSource = "backend"
	SourceExternal SuggestionSource = "external"
)

// SuggestionCandidate is one ranked entry of a search result list.
type SuggestionCandidate struct {
	DisplayName string           `json:"display_name"`
	Subtitle    string           `json:"subtitle"`
	Lon         float64          `json:"lon"`
	Lat         float64          `json:"lat"`
	Type        SuggestionType   `json:"type"`
	Source      SuggestionSource `json:"source"`

	// Raw keeps a reference to the source-specific record so a commit
	// can recover zoom hints or address payloads.
	Raw interface{} `json:"-"`
}
