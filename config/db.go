package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
)

const (
	dbMaxRetries = 5
	dbRetryDelay = 5 * time.Second
)

// InitDBWithRetry connects to PostgreSQL, retrying on failure, and makes sure
// the transactions table exists. The returned handle is injected into the
// handlers rather than held as a package global.
func InitDBWithRetry(cfg *Config) (*sql.DB, error) {
	var err error
	for i := 0; i < dbMaxRetries; i++ {
		var db *sql.DB
		db, err = initDB(cfg)
		if err == nil {
			return db, nil
		}
		log.Printf("Failed to connect to PostgreSQL (attempt %d/%d): %v", i+1, dbMaxRetries, err)
		time.Sleep(dbRetryDelay)
	}
	return nil, fmt.Errorf("failed to connect to PostgreSQL after %d attempts: %v", dbMaxRetries, err)
}

func initDB(cfg *Config) (*sql.DB, error) {
	log.Printf("Connecting to PostgreSQL at %s:%s/%s (sslmode=%s)", cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBSSLMode)

	db, err := sql.Open("postgres", cfg.PostgresConnString())
	if err != nil {
		return nil, fmt.Errorf("error opening PostgreSQL database: %v", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to PostgreSQL database: %v", err)
	}

	if err = ensureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	log.Printf("Successfully connected to PostgreSQL database: %s", cfg.DBName)
	return db, nil
}

// ensureSchema creates the raw real-estate transaction table when absent.
func ensureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS real_estate_transactions (
            id SERIAL PRIMARY KEY,
            date_mutation DATE NOT NULL,
            valeur_fonciere NUMERIC(12, 2) NOT NULL,
            adresse_nom_voie VARCHAR(255) NOT NULL,
            type_local VARCHAR(100) NOT NULL,
            surface_reelle_bati DOUBLE PRECISION,
            lot1_surface_carrez DOUBLE PRECISION,
            nombre_pieces_principales INTEGER,
            surface_terrain DOUBLE PRECISION
        )`)
	if err != nil {
		return fmt.Errorf("error creating real_estate_transactions table: %v", err)
	}
	return nil
}

// CloseDB closes the database handle, logging any error.
func CloseDB(db *sql.DB) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		log.Printf("Error closing PostgreSQL connection: %v", err)
	}
}
