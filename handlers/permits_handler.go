package handlers

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/gorilla/mux"

	"github.com/lalit-insnapsys/address-details-api/models"
	"github.com/lalit-insnapsys/address-details-api/spatial"
)

// PermitsResponse is the merged payload of the combined permits endpoint.
// Spatial members that failed carry an {"error": ...} object in place of
// their value.
type PermitsResponse struct {
	Permits        json.RawMessage `json:"permits"`
	ParcelID       *string         `json:"parcel_id"`
	ParcelData     json.RawMessage `json:"parcel_data"`
	Parcel         any             `json:"parcel"`
	Building       any             `json:"building"`
	BuildingsByEra any             `json:"buildings_by_era"`
}

// GetPermitsAndBuildings merges planning permits with the parcel, building
// footprint and construction-era data for a coordinate. The permits fetch
// runs concurrently with the spatial lookups; the reverse-geocode to
// parcel-detail chain stays sequential because the first feeds the second.
func (h *Handler) GetPermitsAndBuildings(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	houseNumber, err := strconv.Atoi(vars["house_number"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid house number format.")
		return
	}
	streetName := vars["street_name"]

	lat, latErr := strconv.ParseFloat(vars["lat"], 64)
	lon, lonErr := strconv.ParseFloat(vars["lon"], 64)
	if latErr != nil || lonErr != nil ||
		math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		writeError(w, http.StatusBadRequest, "Invalid latitude or longitude format.")
		return
	}
	point := models.GeoPoint{Latitude: lat, Longitude: lon}
	log.Printf("GetPermitsAndBuildings: street=%q number=%d lat=%g lon=%g", streetName, houseNumber, lat, lon)

	ctx := r.Context()

	var permits json.RawMessage
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		permits = h.fetchPermits(ctx, streetName, houseNumber)
	}()

	parcelResult := spatial.LocateParcel(ctx, h.Client, h.Config.ReverseAPIURL, point)
	var parcelID string
	if parcelResult.ParcelID != nil {
		parcelID = *parcelResult.ParcelID
	}
	parcel, parcelErr := h.Data.FetchParcel(parcelID)
	building, buildingErr := h.Data.LocateBuilding(point)
	eras, erasErr := spatial.GroupByEra(ctx, h.Client, h.Config.FootprintsDataURL, point)

	wg.Wait()

	// Every spatial lookup came back empty-handed: nothing at this location.
	if parcelResult.ParcelID == nil && buildingErr != nil && erasErr != nil {
		writeError(w, http.StatusNotFound, "No building or parcel found at this location.")
		return
	}

	writeJSON(w, http.StatusOK, PermitsResponse{
		Permits:        permits,
		ParcelID:       parcelResult.ParcelID,
		ParcelData:     parcelResult.ParcelData,
		Parcel:         valueOrError(parcel, parcelErr),
		Building:       valueOrError(building, buildingErr),
		BuildingsByEra: valueOrError(eras, erasErr),
	})
}

func (h *Handler) fetchPermits(ctx context.Context, streetName string, houseNumber int) json.RawMessage {
	if h.Config.PermitsDataURL == "" {
		return errorBody("PERMITS_DATA is not configured")
	}
	reqURL := h.Config.PermitsDataURL +
		"&q=" + url.QueryEscape(streetName) +
		"&refine.numero_voirie_du_terrain=" + strconv.Itoa(houseNumber)
	body, err := h.fetchJSON(ctx, "permits", reqURL)
	if err != nil {
		log.Printf("GetPermitsAndBuildings: %v", err)
		return errorBody("Failed to fetch permits: " + err.Error())
	}
	return body
}

func valueOrError[T any](v *T, err error) any {
	if err != nil {
		return map[string]string{"error": err.Error()}
	}
	return v
}

func errorBody(msg string) json.RawMessage {
	b, _ := json.Marshal(map[string]string{"error": msg})
	return b
}
