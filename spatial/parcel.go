package spatial

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"

	"github.com/paulmach/orb/geojson"

	"github.com/lalit-insnapsys/address-details-api/models"
)

// LocateParcel queries the reverse-geocoding service for the parcels around a
// point and selects the one with the smallest reported distance. Strict
// less-than comparison keeps the first occurrence of a tied minimum; features
// without a distance are skipped. Failures never propagate as errors: the
// result carries an {"error": ...} body and a nil parcel id instead.
func LocateParcel(ctx context.Context, client *http.Client, baseURL string, point models.GeoPoint) models.ParcelLocateResult {
	reqURL := fmt.Sprintf("%s&lat=%g&lon=%g", baseURL, point.Latitude, point.Longitude)

	body, err := fetchBytes(ctx, client, reqURL)
	if err != nil {
		return models.ParcelLocateResult{ParcelData: errorBody("Failed to fetch parcel data: " + err.Error())}
	}

	var parsed models.ReverseGeocodeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return models.ParcelLocateResult{ParcelData: errorBody("Failed to parse parcel data: " + err.Error())}
	}
	if len(parsed.Features) == 0 {
		return models.ParcelLocateResult{ParcelData: body}
	}

	closest := math.Inf(1)
	var parcelID *string
	for _, feature := range parsed.Features {
		distance := feature.Properties.Distance
		if distance == nil {
			continue
		}
		if *distance < closest {
			closest = *distance
			id := feature.Properties.ID
			parcelID = &id
		}
	}
	return models.ParcelLocateResult{ParcelID: parcelID, ParcelData: body}
}

// FetchParcel scans the static cadastral dataset for the feature whose id
// matches parcelID exactly. No network call is involved.
func (d *Datasets) FetchParcel(parcelID string) (*geojson.Feature, error) {
	if d == nil || d.Parcels == nil {
		return nil, &models.DataUnavailableError{Msg: "Cadastral data not found."}
	}
	for _, feature := range d.Parcels.Features {
		if id, ok := feature.ID.(string); ok && id == parcelID {
			return feature, nil
		}
	}
	return nil, &models.NotFoundError{Msg: fmt.Sprintf("No matching parcel found for ID %s.", parcelID)}
}

func fetchBytes(ctx context.Context, client *http.Client, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return body, nil
}

func errorBody(msg string) json.RawMessage {
	b, _ := json.Marshal(map[string]string{"error": msg})
	return b
}
