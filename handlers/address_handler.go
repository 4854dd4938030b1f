package handlers

import (
	"log"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
)

// GetAddresses proxies the address-search dataset with the street name as a
// free-text query.
func (h *Handler) GetAddresses(w http.ResponseWriter, r *http.Request) {
	streetName := mux.Vars(r)["street_name"]
	log.Printf("GetAddresses: searching addresses for %q", streetName)

	if h.Config.AddressDataURL == "" {
		writeError(w, http.StatusInternalServerError, "ADDRESS_DATA_URL is not configured")
		return
	}

	reqURL := h.Config.AddressDataURL + "&q=" + url.QueryEscape(streetName)
	body, err := h.fetchJSON(r.Context(), "addresses", reqURL)
	if err != nil {
		log.Printf("GetAddresses: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeRaw(w, http.StatusOK, body)
}
