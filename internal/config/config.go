package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/goerr/v2"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	DBDriver      string
	DBDSN         string
	ServerPort    string
	SessionSecret string

	AdminUsername string
	AdminPassword string
	SeedDemoUsers bool

	UploadDir   string
	MaxUploadMB int64

	LogLevel  string
	LogFormat string

	TraceExporter string
	OTLPEndpoint  string
}

// Load reads the environment, after merging an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBDriver:      strings.ToLower(getEnvOr("DB_DRIVER", DriverPostgres)),
		DBDSN:         os.Getenv("DB_DSN"),
		ServerPort:    getEnvOr("SERVER_PORT", "8080"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		AdminUsername: getEnvOr("ADMIN_USERNAME", "admin@risk.local"),
		AdminPassword: getEnvOr("ADMIN_PASSWORD", "Admin123!"),
		UploadDir:     getEnvOr("UPLOAD_DIR", "uploads"),
		LogLevel:      getEnvOr("LOG_LEVEL", "info"),
		LogFormat:     getEnvOr("LOG_FORMAT", "text"),
		TraceExporter: strings.ToLower(getEnvOr("TRACE_EXPORTER", "none")),
		OTLPEndpoint:  getEnvOr("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
	}

	if cfg.DBDSN == "" {
		return nil, goerr.New("DB_DSN is not set")
	}
	switch cfg.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, goerr.New("unsupported DB_DRIVER", goerr.V("driver", cfg.DBDriver))
	}

	maxMB, err := strconv.ParseInt(getEnvOr("MAX_UPLOAD_MB", "10"), 10, 64)
	if err != nil || maxMB <= 0 {
		return nil, goerr.New("MAX_UPLOAD_MB must be a positive integer", goerr.V("value", os.Getenv("MAX_UPLOAD_MB")))
	}
	cfg.MaxUploadMB = maxMB

	if v := os.Getenv("SEED_DEMO_USERS"); v != "" {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, goerr.Wrap(err, "SEED_DEMO_USERS must be a boolean", goerr.V("value", v))
		}
		cfg.SeedDemoUsers = seed
	}

	return cfg, nil
}

// Validate checks what the HTTP server needs on top of Load.
func (c *Config) Validate() error {
	if c.SessionSecret == "" {
		return goerr.New("SESSION_SECRET is not set")
	}
	if len(c.SessionSecret) < 16 {
		return goerr.New("SESSION_SECRET must be at least 16 bytes")
	}
	return nil
}

func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

func getEnvOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
