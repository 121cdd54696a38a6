package params

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type API struct {
	Addr        string
	CORSOrigins []string
	// AuditLogFile receives one JSON line per submit/execute event.
	// Empty disables the audit trail.
	AuditLogFile string
}

type Storage struct {
	// DataDir holds the Pebble order database. Empty keeps orders in memory.
	DataDir string
}

type Market struct {
	// ReferencePrices uses the form "BTCUSD:50000,ETHUSD:2000".
	ReferencePrices string
}

type Log struct {
	File    string
	Verbose bool
}

type Config struct {
	API     API
	Storage Storage
	Market  Market
	Log     Log
}

func Default() Config {
	return Config{
		API: API{
			Addr:         ":8080",
			CORSOrigins:  []string{"http://localhost:3000", "http://localhost:3001"},
			AuditLogFile: "data/audit.log",
		},
		Storage: Storage{
			DataDir: "",
		},
		Market: Market{
			ReferencePrices: "BTCUSD:50000,ETHUSD:2000",
		},
		Log: Log{
			File: "data/tradesweep.log",
		},
	}
}

// LoadFromEnv loads configuration from .env file (if exists) and environment variables
// Priority: ENV > .env file > defaults
func LoadFromEnv(envPath string) Config {
	cfg := Default()

	// Try to load .env file (optional - won't fail if not exists)
	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	cfg.API.Addr = getEnv("API_ADDR", cfg.API.Addr)
	cfg.API.AuditLogFile = lookupEnv("AUDIT_LOG_FILE", cfg.API.AuditLogFile)
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.API.CORSOrigins = splitList(origins)
	}

	cfg.Storage.DataDir = getEnv("DATA_DIR", cfg.Storage.DataDir)
	cfg.Market.ReferencePrices = getEnv("REFERENCE_PRICES", cfg.Market.ReferencePrices)

	cfg.Log.File = lookupEnv("LOG_FILE", cfg.Log.File)
	if verbose := os.Getenv("VERBOSE"); verbose != "" {
		cfg.Log.Verbose = verbose == "true"
	}

	return cfg
}

// getEnv returns environment variable value or default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// lookupEnv is like getEnv but honours an explicitly empty value,
// which callers use to switch a file sink off.
func lookupEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
