package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/lalit-insnapsys/address-details-api/config"
	"github.com/lalit-insnapsys/address-details-api/metrics"
	"github.com/lalit-insnapsys/address-details-api/models"
	"github.com/lalit-insnapsys/address-details-api/spatial"
)

// Handler bundles the dependencies every endpoint needs: the configuration,
// a shared HTTP client with a bounded timeout, the static spatial datasets
// and the optional transaction store.
type Handler struct {
	Config *config.Config
	Client *http.Client
	Data   *spatial.Datasets
	DB     *sql.DB
}

func New(cfg *config.Config, data *spatial.Datasets, db *sql.DB) *Handler {
	return &Handler{
		Config: cfg,
		Client: &http.Client{Timeout: cfg.UpstreamTimeout},
		Data:   data,
		DB:     db,
	}
}

// fetchJSON performs a GET against an upstream provider and returns the raw
// JSON body. Non-2xx statuses, transport failures and non-JSON bodies all
// surface as a TransportError.
func (h *Handler) fetchJSON(ctx context.Context, provider, rawURL string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(provider, "error").Inc()
		return nil, &models.TransportError{Op: "fetch " + provider, Err: err}
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(provider, "error").Inc()
		return nil, &models.TransportError{Op: "fetch " + provider, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(provider, "error").Inc()
		return nil, &models.TransportError{Op: "fetch " + provider, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamRequestsTotal.WithLabelValues(provider, "error").Inc()
		return nil, &models.TransportError{Op: "fetch " + provider, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	if !json.Valid(body) {
		metrics.UpstreamRequestsTotal.WithLabelValues(provider, "error").Inc()
		return nil, &models.TransportError{Op: "fetch " + provider, Err: fmt.Errorf("response is not valid JSON")}
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(provider, "success").Inc()
	return body, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writeJSON: failed to encode response: %v", err)
	}
}

func writeRaw(w http.ResponseWriter, status int, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Printf("writeRaw: failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
