package handlers

import (
	"log"
	"net/http"
)

// GetDistrictsList proxies the districts dataset verbatim.
func (h *Handler) GetDistrictsList(w http.ResponseWriter, r *http.Request) {
	log.Printf("GetDistrictsList: fetching districts list")

	if h.Config.DistrictsDataURL == "" {
		writeError(w, http.StatusInternalServerError, "DISTRICTS_DATA_URL is not configured")
		return
	}

	body, err := h.fetchJSON(r.Context(), "districts", h.Config.DistrictsDataURL)
	if err != nil {
		log.Printf("GetDistrictsList: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeRaw(w, http.StatusOK, body)
}
