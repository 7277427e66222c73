// Package config loads process configuration from the environment.
// A .env file in the working directory is honored when present, which keeps
// local development and container deployments on the same code path.
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the facilitycheck server.
type Config struct {
	DatabaseURL  string // PostgreSQL connection string (required)
	Port         string // HTTP listen port
	UploadDir    string // Directory for uploaded inspection photos
	PasswordMode string // "bcrypt" (default) or "plain" for legacy deployments
	CORSOrigins  string // Comma-separated list of allowed origins
	SeedUsers    bool   // Create default admin/user/viewer accounts at startup
}

// Load reads configuration from the environment, applying defaults for
// everything except the database URL.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		Port:         os.Getenv("PORT"),
		UploadDir:    os.Getenv("UPLOAD_DIR"),
		PasswordMode: os.Getenv("PASSWORD_MODE"),
		CORSOrigins:  os.Getenv("CORS_ORIGINS"),
		SeedUsers:    os.Getenv("SEED_DEFAULT_USERS") != "false",
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	if cfg.PasswordMode == "" {
		cfg.PasswordMode = "bcrypt"
	}
	if cfg.CORSOrigins == "" {
		cfg.CORSOrigins = "*"
	}

	return cfg
}
