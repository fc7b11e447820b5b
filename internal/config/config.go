package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Backend names selectable via STORAGE_BACKEND.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
)

// Config holds the application configuration.
type Config struct {
	ServerPort int
	AppEnv     string // "development" or "production"

	StorageBackend string
	DataDir        string // file backend: directory holding one JSON array per collection
	SQLitePath     string
	MongoURI       string
	MongoDatabase  string

	JWTSecret string
	JWTTTL    time.Duration

	GeminiAPIKey string
	GeminiModel  string

	RedisURL string // optional; blueprint cache is skipped when empty

	SnapshotCron string // standard cron expression, file backend only
	SnapshotDir  string
	SnapshotKeep int

	AuthRateRPS   float64
	AuthRateBurst int

	AllowedOrigins []string
}

// Load loads configuration from the environment (and an optional .env file)
// or sets defaults.
func Load() (*Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	mongoURI := getEnv("MONGO_URI", "")
	backend := getEnv("STORAGE_BACKEND", "")
	if backend == "" {
		// Mirror the historical behavior: a configured Mongo URI selects the
		// document store, otherwise fall back to flat files.
		if mongoURI != "" {
			backend = BackendMongo
		} else {
			backend = BackendFile
		}
	}
	switch backend {
	case BackendFile, BackendSQLite, BackendMongo:
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", backend)
	}

	ttlHours, err := strconv.Atoi(getEnv("JWT_TTL_HOURS", "24"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL_HOURS: %w", err)
	}

	keep, err := strconv.Atoi(getEnv("SNAPSHOT_KEEP", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid SNAPSHOT_KEEP: %w", err)
	}

	rps, err := strconv.ParseFloat(getEnv("AUTH_RATE_RPS", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_RATE_RPS: %w", err)
	}
	burst, err := strconv.Atoi(getEnv("AUTH_RATE_BURST", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_RATE_BURST: %w", err)
	}

	return &Config{
		ServerPort:     port,
		AppEnv:         getEnv("APP_ENV", "development"),
		StorageBackend: backend,
		DataDir:        getEnv("DATA_DIR", "./data"),
		SQLitePath:     getEnv("SQLITE_PATH", "./rolodex.db"),
		MongoURI:       mongoURI,
		MongoDatabase:  getEnv("MONGO_DATABASE", "people_manager"),
		JWTSecret:      getEnv("JWT_SECRET", "dev-secret-key-change-in-production"),
		JWTTTL:         time.Duration(ttlHours) * time.Hour,
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		RedisURL:       getEnv("REDIS_URL", ""),
		SnapshotCron:   getEnv("SNAPSHOT_CRON", "0 3 * * *"),
		SnapshotDir:    getEnv("SNAPSHOT_DIR", "./snapshots"),
		SnapshotKeep:   keep,
		AuthRateRPS:    rps,
		AuthRateBurst:  burst,
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
	}, nil
}

// AIEnabled reports whether a Gemini credential was configured at startup.
func (c *Config) AIEnabled() bool {
	return c.GeminiAPIKey != ""
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
