package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/lalit-insnapsys/address-details-api/models"
	"github.com/lalit-insnapsys/address-details-api/utils"
)

// GetStreetHistory queries the street-history dataset for one street of one
// arrondissement and reshapes the records for the front-end. The street name
// is matched after uppercasing, accent stripping and removal of a leading
// house-number token.
func (h *Handler) GetStreetHistory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	code, err := strconv.Atoi(vars["district_code"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid district code format.")
		return
	}
	district := utils.FormatDistrictCode(code)
	cleaned := utils.CleanStreetName(vars["street_name"])
	log.Printf("GetStreetHistory: district=%s street=%q", district, cleaned)

	if h.Config.StreetsHistoryURL == "" {
		writeError(w, http.StatusInternalServerError, "STREETS_HISTORY is not configured")
		return
	}

	reqURL := h.Config.StreetsHistoryURL +
		"&refine.arrdt=" + url.QueryEscape(district) +
		"&q=" + url.QueryEscape(cleaned)
	body, err := h.fetchJSON(r.Context(), "street_history", reqURL)
	if err != nil {
		log.Printf("GetStreetHistory: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var parsed models.HistoryQueryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		log.Printf("GetStreetHistory: failed to parse upstream response: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to parse street history data.")
		return
	}

	var records []models.StreetHistoryRecord
	for _, record := range parsed.Records {
		// The q parameter is fuzzy; keep only records actually naming the street.
		if record.Fields.Typo != "" &&
			!strings.Contains(utils.CleanStreetName(record.Fields.Typo), cleaned) {
			continue
		}
		records = append(records, models.StreetHistoryRecord{
			District:            record.Fields.Arrdt,
			StreetName:          utils.TitleCase(cleaned),
			HistoricalReference: record.Fields.Historique,
			OpeningReference:    record.Fields.Ouverture,
			SanitationReference: record.Fields.Assainissement,
			OriginalReference:   record.Fields.Orig,
		})
	}

	if len(records) == 0 {
		writeError(w, http.StatusNotFound, "No history records found for this street.")
		return
	}
	writeJSON(w, http.StatusOK, records)
}
