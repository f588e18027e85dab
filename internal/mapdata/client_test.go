package mapdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"immoxperts/server/internal/models"
)

func TestFetchFeaturesAssignsSyntheticIDs(t *testing.T) {
	payload := `{"type":"FeatureCollection","features":[
		{"type":"Feature","id":"abc","geometry":{"type":"Point","coordinates":[2.35,48.85]},"properties":{}},
		{"type":"Feature","geometry":{"type":"Point","coordinates":[2.36,48.86]},"properties":{}},
		{"type":"Feature","geometry":{"type":"Point","coordinates":[2.37,48.87]},"properties":{"id":77}}
	]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer server.Close()

	client := NewClient(logrus.New(), server.URL, server.URL)
	features, err := client.FetchFeatures(context.Background(), orb.Bound{Max: orb.Point{10, 50}}, nil, 500)
	require.NoError(t, err)
	require.Len(t, features, 3)

	assert.Equal(t, "abc", features[0].ID)
	assert.Equal(t, "feature-1", features[1].ID)
	assert.Equal(t, "77", features[2].ID)
}

func TestFetchFeaturesParsesAddresses(t *testing.T) {
	payload := `{"type":"FeatureCollection","features":[
		{"type":"Feature","id":"f-1","geometry":{"type":"Point","coordinates":[2.35,48.85]},"properties":{
			"parcelle":"75104000AB0001",
			"addresses":[{"adresse_complete":"10 Rue de Rivoli","commune":"Paris","codepostal":"75004",
				"mutations":[{"idmutation":5,"type_groupe":"Appartement","valeur":450000,"sbati":45,"date":"2023-06-01"}]}]
		}}
	]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer server.Close()

	client := NewClient(logrus.New(), server.URL, server.URL)
	features, err := client.FetchFeatures(context.Background(), orb.Bound{Max: orb.Point{10, 50}}, nil, 500)
	require.NoError(t, err)
	require.Len(t, features, 1)

	feature := features[0]
	assert.Equal(t, "75104000AB0001", feature.Parcelle)
	require.Len(t, feature.Addresses, 1)
	require.Len(t, feature.Addresses[0].Mutations, 1)
	assert.Equal(t, 10000.0, feature.Addresses[0].Mutations[0].PricePerSqm())
}

func TestFetchFeaturesSendsFilterParams(t *testing.T) {
	var query map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(emptyCollection))
	}))
	defer server.Close()

	filters := models.DefaultFilterState()
	filters.PropertyTypes = []string{"1", "2"}
	filters.MinSellPrice = 200000

	client := NewClient(logrus.New(), server.URL, server.URL)
	_, err := client.FetchFeatures(context.Background(), orb.Bound{Max: orb.Point{10, 50}}, &filters, 250)
	require.NoError(t, err)

	assert.Equal(t, []string{"1,2"}, query["propertyType"])
	assert.Equal(t, []string{"200000"}, query["minSellPrice"])
	assert.Equal(t, []string{"250"}, query["limit"])
	assert.Equal(t, []string{"0,0,10,50"}, query["bounds"])
}

func TestStoreRenderedFiltersByBound(t *testing.T) {
	store := NewStore()
	store.Replace([]models.Feature{
		{ID: "in", Point: orb.Point{2.35, 48.85}},
		{ID: "out", Point: orb.Point{5.37, 43.30}},
	})

	rendered := store.Rendered(orb.Bound{Min: orb.Point{2, 48}, Max: orb.Point{3, 49}})
	require.Len(t, rendered, 1)
	assert.Equal(t, "in", rendered[0].ID)

	assert.Len(t, store.All(), 2)
	assert.Equal(t, int64(1), store.Version())
}
