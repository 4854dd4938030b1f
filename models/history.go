package models

// StreetHistoryRecord is the reshaped street-history entry returned to the
// front-end.
type StreetHistoryRecord struct {
	District            string `json:"district"`
	StreetName          string `json:"street_name"`
	HistoricalReference string `json:"historical_reference"`
	OpeningReference    string `json:"opening_reference"`
	SanitationReference string `json:"sanitation_reference"`
	OriginalReference   string `json:"original_reference"`
}

// HistoryQueryResponse is the upstream street-history dataset envelope.
type HistoryQueryResponse struct {
	Records []HistoryRecordEnvelope `json:"records"`
}

type HistoryRecordEnvelope struct {
	Fields HistoryFields `json:"fields"`
}

type HistoryFields struct {
	Typo           string `json:"typo"`
	Arrdt          string `json:"arrdt"`
	Historique     string `json:"historique"`
	Ouverture      string `json:"ouverture"`
	Assainissement string `json:"assainissement"`
	Orig           string `json:"orig"`
}
