package handlers

import (
	"net/http"
)

type HealthResponse struct {
	Status   string `json:"status"`
	DBStatus string `json:"db_status"`
	Datasets struct {
		Parcels   int `json:"parcels"`
		Buildings int `json:"buildings"`
	} `json:"datasets"`
	Error string `json:"error,omitempty"`
}

// GetHealth reports liveness plus the state of the optional transaction store
// and the loaded static datasets.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{Status: "ok"}

	if h.DB == nil {
		response.DBStatus = "disabled"
	} else if err := h.DB.PingContext(r.Context()); err != nil {
		response.Status = "degraded"
		response.DBStatus = "connection_error"
		response.Error = err.Error()
	} else {
		response.DBStatus = "connected"
	}

	if h.Data != nil {
		if h.Data.Parcels != nil {
			response.Datasets.Parcels = len(h.Data.Parcels.Features)
		}
		if h.Data.Buildings != nil {
			response.Datasets.Buildings = len(h.Data.Buildings.Features)
		}
	}

	writeJSON(w, http.StatusOK, response)
}
