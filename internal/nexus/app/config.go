package app

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// DefaultMaxUploadBytes caps document uploads at 10 MiB unless overridden.
const DefaultMaxUploadBytes = 10 << 20

type Config struct {
	JWTSecret string // Required: HS256 signing secret for bearer tokens

	Issuer              string        // Optional: issuer claim and TOTP label (default: pixelforge-nexus)
	DatabaseFile        string        // Optional: path to SQLite database file (default: ./nexus.db)
	UploadDir           string        // Optional: directory for stored documents (default: ./uploads)
	PepperFile          string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	MaxUploadBytes      int64         // Optional: document upload size cap (default: 10 MiB)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// ErrMissingJWTSecret fails startup early; tokens signed with a guessable
// default would be worthless.
var ErrMissingJWTSecret = errors.New("NEXUS_JWT_SECRET is required")

func LoadConfig() (Config, error) {
	cfg := Config{
		JWTSecret:           os.Getenv("NEXUS_JWT_SECRET"),
		Issuer:              getEnvOrDefault("NEXUS_ISSUER", "pixelforge-nexus"),
		DatabaseFile:        getEnvOrDefault("NEXUS_DATABASE_FILE", "nexus.db"),
		UploadDir:           getEnvOrDefault("NEXUS_UPLOAD_DIR", "uploads"),
		PepperFile:          getEnvOrDefault("NEXUS_PEPPER_FILE", "pepper"),
		MaxUploadBytes:      getEnvInt64OrDefault("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingJWTSecret
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Also accept integer seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
