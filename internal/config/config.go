package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

type Config struct {
	Port           string
	Env            string
	DBDriver       string // "sqlite" or "mysql"
	DatabaseDSN    string
	JWTSecret      string
	JWTExpiry      time.Duration
	AllowedOrigins []string
}

func Load() Config {
	driver := getEnv("DB_DRIVER", "sqlite")

	// Sensible DSN defaults per driver: a local file for sqlite
	// development, the usual local MySQL for deployments.
	dsnFallback := "recipe.db"
	if driver == "mysql" {
		dsnFallback = "root:password@tcp(127.0.0.1:3306)/recipe?parseTime=true"
	}

	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		DBDriver:       driver,
		DatabaseDSN:    getEnv("DATABASE_DSN", dsnFallback),
		JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		JWTExpiry:      getDurationEnv("JWT_EXPIRY", 24*time.Hour),
		AllowedOrigins: splitEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}

	if cfg.Env == "production" && cfg.JWTSecret == "dev-secret-change-in-production" {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "mysql" {
		slog.Error("unsupported DB_DRIVER", "driver", cfg.DBDriver)
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration, using fallback", "key", key, "value", v)
		return fallback
	}
	return d
}

func splitEnv(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
