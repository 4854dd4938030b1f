package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lalit-insnapsys/address-details-api/config"
)

func TestGetDistrictsListProxiesBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"records": [{"fields": {"c_ar": 1}}]}`))
	}))
	defer upstream.Close()

	h := newTestHandler(&config.Config{DistrictsDataURL: upstream.URL}, nil)
	rec := doRequest(t, h, "/districts")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"records": [{"fields": {"c_ar": 1}}]}`, rec.Body.String())
}

func TestGetDistrictsListNotConfigured(t *testing.T) {
	h := newTestHandler(&config.Config{}, nil)
	rec := doRequest(t, h, "/districts")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "DISTRICTS_DATA_URL is not configured"}`, rec.Body.String())
}

func TestGetDistrictsListUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer upstream.Close()

	h := newTestHandler(&config.Config{DistrictsDataURL: upstream.URL}, nil)
	rec := doRequest(t, h, "/districts")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "unexpected status 502")
}

func TestGetDistrictsListRejectsNonJSONBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer upstream.Close()

	h := newTestHandler(&config.Config{DistrictsDataURL: upstream.URL}, nil)
	rec := doRequest(t, h, "/districts")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "not valid JSON")
}
