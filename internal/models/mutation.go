package models

import (
	"encoding/json"
	"fmt"
)

// Mutation is a single historical sale record from the DVF dataset.
type Mutation struct {
	IDMutation      int64   `json:"idmutation"`
	ID              int64   `json:"id"`
	TypeBien        string  `json:"type_bien"`
	TypeGroupe      string  `json:"type_groupe"`
	Valeur          float64 `json:"valeur"`
	SurfaceBatiment float64 `json:"sbati"`
	SurfaceTerrain  float64 `json:"sterr"`
	NbPieces        int     `json:"nbpprinc"`
	Date            string  `json:"date"`
}

// IdentityKey returns the deduplication key for a mutation: the
// mutation id when present, the record id otherwise, and a composite
// of date, value and type as a last resort.
func (m Mutation) IdentityKey() string {
	if m.IDMutation != 0 {
		return fmt.Sprintf("m:%d", m.IDMutation)
	}
	if m.ID != 0 {
		return fmt.Sprintf("r:%d", m.ID)
	}
	return fmt.Sprintf("c:%s|%.2f|%s", m.Date, m.Valeur, m.TypeGroupe)
}

// PricePerSqm returns valeur divided by the building surface, or 0
// when the surface is missing.
func (m Mutation) PricePerSqm() float64 {
	if m.SurfaceBatiment <= 0 {
		return 0
	}
	return m.Valeur / m.SurfaceBatiment
}

// Address groups the mutations recorded at one postal address.
type Address struct {
	AdresseComplete string     `json:"adresse_complete"`
	Commune         string     `json:"commune"`
	CodePostal      string     `json:"codepostal"`
	Mutations       []Mutation `json:"mutations"`
}

// ParseAddresses decodes the address list attached to a feature. The
// upstream payload is either a JSON array or a string containing one;
// anything malformed yields an empty list rather than an error so a
// single bad feature never aborts a whole render.
func ParseAddresses(raw interface{}) []Address {
	var data []byte
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		data = encoded
	}

	var addresses []Address
	if err := json.Unmarshal(data, &addresses); err != nil {
		return nil
	}
	return addresses
}
