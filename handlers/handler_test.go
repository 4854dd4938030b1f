package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/lalit-insnapsys/address-details-api/config"
	"github.com/lalit-insnapsys/address-details-api/spatial"
)

func newTestHandler(cfg *config.Config, data *spatial.Datasets) *Handler {
	return &Handler{
		Config: cfg,
		Client: &http.Client{Timeout: 5 * time.Second},
		Data:   data,
	}
}

// testRouter mirrors the route registration in main so that mux path
// variables and constraints behave as they do in production.
func testRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/districts", h.GetDistrictsList).Methods("GET")
	r.HandleFunc("/streets/{district_code:[0-9]+}", h.GetStreetsByDistrict).Methods("GET")
	r.HandleFunc("/addresses/{street_name}", h.GetAddresses).Methods("GET")
	r.HandleFunc("/history/{district_code:[0-9]+}/{street_name}", h.GetStreetHistory).Methods("GET")
	r.HandleFunc("/permits/{house_number:[0-9]+}/{street_name}/{lat}/{lon}", h.GetPermitsAndBuildings).Methods("GET")
	r.HandleFunc("/transactions/{street_name}", h.GetTransactions).Methods("GET")
	r.HandleFunc("/health", h.GetHealth).Methods("GET")
	return r
}

func doRequest(t *testing.T, h *Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	testRouter(h).ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}
