package handlers

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/lalit-insnapsys/address-details-api/models"
	"github.com/lalit-insnapsys/address-details-api/utils"
)

// GetTransactions returns the raw real-estate transaction records recorded
// for a street, newest first.
func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	if h.DB == nil {
		writeError(w, http.StatusServiceUnavailable, "Transaction store is not configured.")
		return
	}

	street := utils.CleanStreetName(mux.Vars(r)["street_name"])
	log.Printf("GetTransactions: street=%q", street)

	rows, err := h.DB.QueryContext(r.Context(), `
        SELECT date_mutation, valeur_fonciere, adresse_nom_voie, type_local,
               surface_reelle_bati, lot1_surface_carrez,
               nombre_pieces_principales, surface_terrain
        FROM real_estate_transactions
        WHERE upper(adresse_nom_voie) = $1
        ORDER BY date_mutation DESC
        LIMIT 200`, street)
	if err != nil {
		log.Printf("GetTransactions: query failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to query transactions.")
		return
	}
	defer rows.Close()

	var transactions []models.RealEstateTransaction
	for rows.Next() {
		var (
			t             models.RealEstateTransaction
			date          time.Time
			surfaceBati   sql.NullFloat64
			surfaceCarrez sql.NullFloat64
			pieces        sql.NullInt64
			terrain       sql.NullFloat64
		)
		if err := rows.Scan(&date, &t.ValeurFonciere, &t.AdresseNomVoie, &t.TypeLocal,
			&surfaceBati, &surfaceCarrez, &pieces, &terrain); err != nil {
			log.Printf("GetTransactions: scan failed: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to read transactions.")
			return
		}
		t.DateMutation = date.Format("2006-01-02")
		if surfaceBati.Valid {
			t.SurfaceReelleBati = &surfaceBati.Float64
		}
		if surfaceCarrez.Valid {
			t.Lot1SurfaceCarrez = &surfaceCarrez.Float64
		}
		if pieces.Valid {
			n := int(pieces.Int64)
			t.NombrePiecesPrincipales = &n
		}
		if terrain.Valid {
			t.SurfaceTerrain = &terrain.Float64
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		log.Printf("GetTransactions: iteration failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to read transactions.")
		return
	}

	if len(transactions) == 0 {
		writeError(w, http.StatusNotFound, fmt.Sprintf("No transactions found for street %s.", street))
		return
	}
	writeJSON(w, http.StatusOK, transactions)
}
