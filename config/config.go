package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every runtime setting the service needs. It is built once at
// startup and injected into the components that use it; nothing reads
// process-wide environment state after Load returns.
type Config struct {
	Port string

	// Upstream open-data providers. Each value is a base URL with any
	// required API key or fixed query prefix already embedded.
	DistrictsDataURL  string
	StreetsDataURL    string
	AddressDataURL    string
	PermitsDataURL    string
	ReverseAPIURL     string
	StreetsHistoryURL string
	FootprintsDataURL string

	// DataDir holds the static cadastral parcel and building footprint files.
	DataDir string

	UpstreamTimeout time.Duration
	AllowedOrigins  []string

	// Optional PostgreSQL store for raw real-estate transaction records.
	DBEnabled  bool
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
}

// Load reads the optional .env file and builds the configuration.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Config: no .env file loaded: %v", err)
	}

	return &Config{
		Port: getEnvWithDefault("PORT", "8080"),

		DistrictsDataURL:  os.Getenv("DISTRICTS_DATA_URL"),
		StreetsDataURL:    os.Getenv("STREETS_DATA_URL"),
		AddressDataURL:    os.Getenv("ADDRESS_DATA_URL"),
		PermitsDataURL:    os.Getenv("PERMITS_DATA"),
		ReverseAPIURL:     os.Getenv("REVERSE_API_URL"),
		StreetsHistoryURL: os.Getenv("STREETS_HISTORY"),
		FootprintsDataURL: os.Getenv("FOOTPRINTS_DATA"),

		DataDir: getEnvWithDefault("DATA_DIR", "public"),

		UpstreamTimeout: time.Duration(getEnvAsInt("UPSTREAM_TIMEOUT_SECONDS", 10)) * time.Second,
		AllowedOrigins: strings.Split(
			getEnvWithDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"), ","),

		DBEnabled:  getEnvAsBool("DB_ENABLED", false),
		DBHost:     getEnvWithDefault("DB_HOST", "localhost"),
		DBPort:     getEnvWithDefault("DB_PORT", "5432"),
		DBUser:     getEnvWithDefault("DB_USER", "postgres"),
		DBPassword: getEnvWithDefault("DB_PASSWORD", ""),
		DBName:     getEnvWithDefault("DB_NAME", "paris_addresses"),
		DBSSLMode:  getEnvWithDefault("DB_SSL_MODE", "disable"),
	}
}

// PostgresConnString builds the lib/pq connection string.
func (c *Config) PostgresConnString() string {
	return "host=" + c.DBHost + " port=" + c.DBPort + " user=" + c.DBUser +
		" password=" + c.DBPassword + " dbname=" + c.DBName + " sslmode=" + c.DBSSLMode
}

// Helper functions
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		log.Printf("Config: %s is not a valid integer, using default %d", key, defaultValue)
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
		log.Printf("Config: %s is not a valid boolean, using default %t", key, defaultValue)
	}
	return defaultValue
}
