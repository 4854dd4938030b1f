package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/lalit-insnapsys/address-details-api/config"
	"github.com/lalit-insnapsys/address-details-api/handlers"
	"github.com/lalit-insnapsys/address-details-api/metrics"
	"github.com/lalit-insnapsys/address-details-api/middleware"
	"github.com/lalit-insnapsys/address-details-api/spatial"
)

func main() {
	startTime := time.Now()
	log.Printf("Starting server initialization at %s", startTime.Format(time.RFC3339))

	cfg := config.Load()

	// Static cadastral datasets, loaded once and shared read-only.
	log.Printf("Loading static datasets from %s...", cfg.DataDir)
	datasets := spatial.LoadDatasets(cfg.DataDir)

	// Optional PostgreSQL store for raw transaction records.
	var db *sql.DB
	if cfg.DBEnabled {
		log.Println("Initializing PostgreSQL database...")
		var err error
		db, err = config.InitDBWithRetry(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize PostgreSQL: %v", err)
		}
		log.Println("PostgreSQL database initialized successfully")
		defer config.CloseDB(db)
	} else {
		log.Println("Transaction store disabled (set DB_ENABLED=true to enable)")
	}

	h := handlers.New(cfg, datasets, db)

	// Create router
	r := mux.NewRouter()

	// CORS configuration
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Origin",
		},
		MaxAge: 86400,
	})

	// Apply middlewares in correct order
	r.Use(corsHandler.Handler)
	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.MetricsMiddleware)
	r.Use(ghandlers.CompressHandler)

	// Districts list doubles as the root endpoint for the mapping front-end.
	r.HandleFunc("/", h.GetDistrictsList).Methods("GET")
	r.Handle("/metrics", metrics.Handler()).Methods("GET")

	// API routes
	api := r.PathPrefix("/api/v1").Subrouter()
	registerRoutes(api, h)
	log.Println("Routes registered successfully")

	// Create server with optimized timeouts
	srv := &http.Server{
		Handler:           r,
		Addr:              ":" + cfg.Port,
		WriteTimeout:      30 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Create error channel for server errors
	serverErrors := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
			serverErrors <- err
		}
	}()

	// Handle graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Wait for shutdown signal or server error
	select {
	case <-stop:
		log.Println("Shutdown signal received")
	case err := <-serverErrors:
		log.Printf("Server error received: %v", err)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	} else {
		log.Println("Server shutdown completed successfully")
	}
}

func registerRoutes(api *mux.Router, h *handlers.Handler) {
	// Districts
	api.HandleFunc("/districts", h.GetDistrictsList).Methods("GET")

	// Streets per arrondissement
	api.HandleFunc("/streets/{district_code:[0-9]+}", h.GetStreetsByDistrict).Methods("GET")

	// Address search
	api.HandleFunc("/addresses/{street_name}", h.GetAddresses).Methods("GET")

	// Street history
	api.HandleFunc("/history/{district_code:[0-9]+}/{street_name}", h.GetStreetHistory).Methods("GET")

	// Combined permits + spatial resolution
	api.HandleFunc("/permits/{house_number:[0-9]+}/{street_name}/{lat}/{lon}", h.GetPermitsAndBuildings).Methods("GET")

	// Raw real-estate transactions
	api.HandleFunc("/transactions/{street_name}", h.GetTransactions).Methods("GET")

	// Health check
	api.HandleFunc("/health", h.GetHealth).Methods("GET")
}
