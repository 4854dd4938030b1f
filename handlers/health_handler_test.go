package handlers

import (
	"net/http"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lalit-insnapsys/address-details-api/config"
	"github.com/lalit-insnapsys/address-details-api/spatial"
)

func TestGetHealthWithoutStore(t *testing.T) {
	parcels := geojson.NewFeatureCollection()
	parcels.Append(geojson.NewFeature(orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}))
	parcels.Append(geojson.NewFeature(orb.Polygon{{{2, 2}, {3, 2}, {3, 3}, {2, 2}}}))

	h := newTestHandler(&config.Config{}, &spatial.Datasets{Parcels: parcels})
	rec := doRequest(t, h, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var health HealthResponse
	decodeBody(t, rec, &health)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "disabled", health.DBStatus)
	assert.Equal(t, 2, health.Datasets.Parcels)
	assert.Equal(t, 0, health.Datasets.Buildings)
}

func TestGetTransactionsStoreDisabled(t *testing.T) {
	h := newTestHandler(&config.Config{}, nil)
	rec := doRequest(t, h, "/transactions/rue%20de%20Rivoli")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error": "Transaction store is not configured."}`, rec.Body.String())
}
