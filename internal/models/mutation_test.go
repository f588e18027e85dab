package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityKeyPrecedence(t *testing.T) {
	both := Mutation{IDMutation: 7, ID: 9, Date: "2023-01-01", Valeur: 100, TypeGroupe: "Maison"}
	assert.Equal(t, "m:7", both.IdentityKey())

	recordOnly := Mutation{ID: 9, Date: "2023-01-01", Valeur: 100, TypeGroupe: "Maison"}
	assert.Equal(t, "r:9", recordOnly.IdentityKey())

	neither := Mutation{Date: "2023-01-01", Valeur: 100.5, TypeGroupe: "Maison"}
	assert.Equal(t, "c:2023-01-01|100.50|Maison", neither.IdentityKey())
}

func TestPricePerSqm(t *testing.T) {
	assert.Equal(t, 5000.0, Mutation{Valeur: 450000, SurfaceBatiment: 90}.PricePerSqm())
	assert.Equal(t, 0.0, Mutation{Valeur: 450000}.PricePerSqm())
	assert.Equal(t, 0.0, Mutation{Valeur: 450000, SurfaceBatiment: -1}.PricePerSqm())
}

func TestParseAddressesFromString(t *testing.T) {
	raw := `[{"adresse_complete":"10 Rue de Rivoli","commune":"Paris","codepostal":"75004","mutations":[{"idmutation":1,"valeur":450000}]}]`

	addresses := ParseAddresses(raw)
	require.Len(t, addresses, 1)
	assert.Equal(t, "10 Rue de Rivoli", addresses[0].AdresseComplete)
	require.Len(t, addresses[0].Mutations, 1)
	assert.Equal(t, int64(1), addresses[0].Mutations[0].IDMutation)
}

func TestParseAddressesFromDecodedArray(t *testing.T) {
	raw := []interface{}{
		map[string]interface{}{"adresse_complete": "12 Rue de Rivoli", "commune": "Paris"},
	}

	addresses := ParseAddresses(raw)
	require.Len(t, addresses, 1)
	assert.Equal(t, "12 Rue de Rivoli", addresses[0].AdresseComplete)
}

func TestParseAddressesMalformed(t *testing.T) {
	assert.Nil(t, ParseAddresses(nil))
	assert.Nil(t, ParseAddresses("not json"))
	assert.Nil(t, ParseAddresses(`{"adresse_complete":"object not array"}`))
	assert.Nil(t, ParseAddresses(42))
}
