package models

// RealEstateTransaction is one raw DVF-style transaction record for a street.
type RealEstateTransaction struct {
	DateMutation            string   `json:"date_mutation"`
	ValeurFonciere          float64  `json:"valeur_fonciere"`
	AdresseNomVoie          string   `json:"adresse_nom_voie"`
	TypeLocal               string   `json:"type_local"`
	SurfaceReelleBati       *float64 `json:"surface_reelle_bati"`
	Lot1SurfaceCarrez       *float64 `json:"lot1_surface_carrez"`
	NombrePiecesPrincipales *int     `json:"nombre_pieces_principales"`
	SurfaceTerrain          *float64 `json:"surface_terrain"`
}
