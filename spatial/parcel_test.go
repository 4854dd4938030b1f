package spatial

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lalit-insnapsys/address-details-api/models"
)

func TestLocateParcelPicksFirstMinimum(t *testing.T) {
	// Distances 12.3, 4.1, 4.1, 9.0: the first occurrence of 4.1 must win.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features": [
            {"properties": {"id": "A", "distance": 12.3}},
            {"properties": {"id": "B", "distance": 4.1}},
            {"properties": {"id": "C", "distance": 4.1}},
            {"properties": {"id": "D", "distance": 9.0}}
        ]}`))
	}))
	defer srv.Close()

	result := LocateParcel(context.Background(), srv.Client(), srv.URL+"?index=parcel", models.GeoPoint{Latitude: 48.85, Longitude: 2.35})
	require.NotNil(t, result.ParcelID)
	assert.Equal(t, "B", *result.ParcelID)
}

func TestLocateParcelSkipsFeaturesWithoutDistance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features": [
            {"properties": {"id": "NO_DISTANCE"}},
            {"properties": {"id": "E", "distance": 5.0}}
        ]}`))
	}))
	defer srv.Close()

	result := LocateParcel(context.Background(), srv.Client(), srv.URL+"?index=parcel", models.GeoPoint{})
	require.NotNil(t, result.ParcelID)
	assert.Equal(t, "E", *result.ParcelID)
}

func TestLocateParcelWithoutFeaturesKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "empty"}`))
	}))
	defer srv.Close()

	result := LocateParcel(context.Background(), srv.Client(), srv.URL+"?index=parcel", models.GeoPoint{})
	assert.Nil(t, result.ParcelID)
	assert.JSONEq(t, `{"status": "empty"}`, string(result.ParcelData))
}

func TestLocateParcelTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	result := LocateParcel(context.Background(), srv.Client(), srv.URL+"?index=parcel", models.GeoPoint{})
	assert.Nil(t, result.ParcelID)
	assert.Contains(t, string(result.ParcelData), "error")
	assert.Contains(t, string(result.ParcelData), "Failed to fetch parcel data")
}

func parcelDatasets() *Datasets {
	fc := geojson.NewFeatureCollection()
	square := orb.Polygon{{{2.35, 48.85}, {2.36, 48.85}, {2.36, 48.86}, {2.35, 48.86}, {2.35, 48.85}}}
	feature := geojson.NewFeature(square)
	feature.ID = "75101000AB0001"
	feature.Properties["commune"] = "75101"
	fc.Append(feature)
	return &Datasets{Parcels: fc}
}

func TestFetchParcelFound(t *testing.T) {
	d := parcelDatasets()
	feature, err := d.FetchParcel("75101000AB0001")
	require.NoError(t, err)
	assert.Equal(t, "75101000AB0001", feature.ID)
}

func TestFetchParcelUnknownID(t *testing.T) {
	d := parcelDatasets()
	_, err := d.FetchParcel("UNKNOWN_ID")
	require.Error(t, err)
	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "No matching parcel found for ID UNKNOWN_ID.", err.Error())
}

func TestFetchParcelMissingDataset(t *testing.T) {
	d := &Datasets{}
	_, err := d.FetchParcel("75101000AB0001")
	require.Error(t, err)
	var unavailable *models.DataUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "Cadastral data not found.", err.Error())
}
