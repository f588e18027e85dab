package stats

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"immoxperts/server/internal/geocoding"
	"immoxperts/server/internal/mapdata"
	"immoxperts/server/internal/models"
)

const marseilleReverse = `{"features":[{"properties":{"city":"Marseille","citycode":"13055","postcode":"13001","district":"Le Panier"}}]}`

type controllerFixture struct {
	store      *mapdata.Store
	syncer     *mapdata.Synchronizer
	controller *Controller
}

func newControllerFixture(t *testing.T, reverseHandler, statsHandler http.HandlerFunc) *controllerFixture {
	t.Helper()

	reverse := httptest.NewServer(reverseHandler)
	t.Cleanup(reverse.Close)
	statsServer := httptest.NewServer(statsHandler)
	t.Cleanup(statsServer.Close)

	logger := logrus.New()
	store := mapdata.NewStore()

	// The debounce window is never reached in these tests: the
	// synchronizer only carries the viewport state.
	syncer := mapdata.NewSynchronizer(
		mapdata.NewClient(logger, statsServer.URL, statsServer.URL),
		store,
		mapdata.Options{DebounceWindow: time.Hour},
		logger)
	t.Cleanup(syncer.Close)

	controller := NewController(
		store,
		syncer,
		NewCommuneClient(logger, statsServer.URL),
		geocoding.NewReverseGeocoder(logger, reverse.URL, time.Minute),
		10*time.Millisecond,
		logger)
	t.Cleanup(controller.Close)

	return &controllerFixture{store: store, syncer: syncer, controller: controller}
}

func marseilleViewport() models.ViewportState {
	return models.ViewportState{
		Bounds: orb.Bound{Min: orb.Point{5.3, 43.2}, Max: orb.Point{5.5, 43.4}},
		Zoom:   13,
	}
}

func TestQuartierScopeZeroesTableAndReverts(t *testing.T) {
	fixture := newControllerFixture(t,
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(marseilleReverse))
		},
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"typeGroupe":"Appartement","nombre":120,"prixMoyen":310000,"prixM2Moyen":4100}]`))
		})

	fixture.syncer.SetViewport(marseilleViewport())

	err := fixture.controller.SetScope(context.Background(), models.ScopeQuartier)
	require.NoError(t, err)

	snapshot := fixture.controller.Current()
	assert.Equal(t, models.ScopeCommune, snapshot.Scope)
	assert.Equal(t, "Marseille", snapshot.City)

	require.Len(t, snapshot.Rows, len(models.TypeGroupes))
	assert.Equal(t, models.TypeAppartement, snapshot.Rows[0].TypeGroupe)
	assert.Equal(t, 120, snapshot.Rows[0].Nombre)
	assert.Equal(t, 0, snapshot.Rows[1].Nombre)
}

func TestCommuneScopeDegradesWhenGeocodingFails(t *testing.T) {
	fixture := newControllerFixture(t,
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		func(w http.ResponseWriter, r *http.Request) {
			t.Error("stats endpoint must not be queried without a city code")
		})

	fixture.syncer.SetViewport(marseilleViewport())

	err := fixture.controller.SetScope(context.Background(), models.ScopeCommune)
	require.NoError(t, err)

	snapshot := fixture.controller.Current()
	assert.Equal(t, geocoding.DefaultCity, snapshot.City)
	require.Len(t, snapshot.Rows, len(models.TypeGroupes))
	for _, row := range snapshot.Rows {
		assert.Equal(t, 0, row.Nombre)
	}
}

func TestCommuneScopeSurfacesStatsFetchError(t *testing.T) {
	fixture := newControllerFixture(t,
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(marseilleReverse))
		},
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

	fixture.syncer.SetViewport(marseilleViewport())

	err := fixture.controller.SetScope(context.Background(), models.ScopeCommune)
	assert.Error(t, err)
}

func TestZoneScopeRescansRenderedFeatures(t *testing.T) {
	fixture := newControllerFixture(t,
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(marseilleReverse))
		},
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		})

	fixture.syncer.SetViewport(marseilleViewport())
	fixture.store.Replace([]models.Feature{
		{
			ID:    "in-view",
			Point: orb.Point{5.37, 43.30},
			Addresses: []models.Address{{
				Mutations: []models.Mutation{{IDMutation: 1, TypeGroupe: "Maison", Valeur: 500000, SurfaceBatiment: 100}},
			}},
		},
		{
			ID:    "off-view",
			Point: orb.Point{2.35, 48.85},
			Addresses: []models.Address{{
				Mutations: []models.Mutation{{IDMutation: 2, TypeGroupe: "Maison", Valeur: 900000, SurfaceBatiment: 90}},
			}},
		},
	})

	err := fixture.controller.SetScope(context.Background(), models.ScopeZone)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		snapshot := fixture.controller.Current()
		return snapshot.Rows[1].Nombre == 1
	}, 2*time.Second, 10*time.Millisecond)

	snapshot := fixture.controller.Current()
	assert.Equal(t, models.ScopeZone, snapshot.Scope)
	assert.Equal(t, models.TypeMaison, snapshot.Rows[1].TypeGroupe)
	assert.Equal(t, 500000.0, snapshot.Rows[1].PrixMoyen)
	assert.Equal(t, 5000.0, snapshot.Rows[1].PrixM2Moyen)
}

func TestBumpDataVersionTriggersRescan(t *testing.T) {
	fixture := newControllerFixture(t,
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(marseilleReverse))
		},
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		})

	fixture.syncer.SetViewport(marseilleViewport())
	require.NoError(t, fixture.controller.SetScope(context.Background(), models.ScopeZone))

	fixture.store.Replace([]models.Feature{{
		ID:    "late",
		Point: orb.Point{5.37, 43.30},
		Addresses: []models.Address{{
			Mutations: []models.Mutation{{IDMutation: 3, TypeGroupe: "Terrain", Valeur: 80000}},
		}},
	}})
	fixture.controller.BumpDataVersion()

	require.Eventually(t, func() bool {
		return fixture.controller.Current().Rows[2].Nombre == 1
	}, 2*time.Second, 10*time.Millisecond)
}
