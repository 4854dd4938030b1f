package handlers

import (
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/lalit-insnapsys/address-details-api/utils"
)

// GetStreetsByDistrict proxies the streets dataset for one arrondissement.
// The district code accepts both short forms (7, 13) and full postal codes
// (75007, 75013).
func (h *Handler) GetStreetsByDistrict(w http.ResponseWriter, r *http.Request) {
	code, err := strconv.Atoi(mux.Vars(r)["district_code"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid district code format.")
		return
	}
	formatted := utils.FormatDistrictCode(code)
	log.Printf("GetStreetsByDistrict: fetching streets for district %s", formatted)

	if h.Config.StreetsDataURL == "" {
		writeError(w, http.StatusInternalServerError, "STREETS_DATA_URL is not configured")
		return
	}

	reqURL := h.Config.StreetsDataURL + "&refine.arrdt=" + url.QueryEscape(formatted)
	body, err := h.fetchJSON(r.Context(), "streets", reqURL)
	if err != nil {
		log.Printf("GetStreetsByDistrict: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeRaw(w, http.StatusOK, body)
}
