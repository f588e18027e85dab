package models

// TypeGroupe is one of the closed set of property-type categories the
// statistics table is broken down by.
type TypeGroupe string

const (
	TypeAppartement  TypeGroupe = "Appartement"
	TypeMaison       TypeGroupe = "Maison"
	TypeTerrain      TypeGroupe = "Terrain"
	TypeLocal        TypeGroupe = "Local"
	TypeBienMultiple TypeGroupe = "Bien Multiple"
)

// TypeGroupes lists the categories in display order.
var TypeGroupes = []TypeGroupe{
	TypeAppartement,
	TypeMaison,
	TypeTerrain,
	TypeLocal,
	TypeBienMultiple,
}

// ZoneStat is one statistics row derived from the currently rendered
// features. PrixMoyen and PrixM2Moyen are medians despite the naming;
// the historical field names are kept on the wire.
type ZoneStat struct {
	TypeGroupe  TypeGroupe `json:"typeGroupe"`
	Nombre      int        `json:"nombre"`
	PrixMoyen   float64    `json:"prixMoyen"`
	PrixM2Moyen float64    `json:"prixM2Moyen"`
}

// CommuneStat is one pre-aggregated statistics row fetched for a fixed
// administrative area.
type CommuneStat struct {
	TypeGroupe  TypeGroupe `json:"typeGroupe"`
	Nombre      int        `json:"nombre"`
	PrixMoyen   float64    `json:"prixMoyen"`
	PrixM2Moyen float64    `json:"prixM2Moyen"`
}

// StatScope selects where the statistics table is computed from.
type StatScope int

const (
	ScopeCommune StatScope = iota
	ScopeQuartier
	ScopeZone
)

// String returns the string representation of a StatScope.
func (s StatScope) String() string {
	switch s {
	case ScopeCommune:
		return "commune"
	case ScopeQuartier:
		return "quartier"
	case ScopeZone:
		return "zone"
	default:
		return "unknown"
	}
}
