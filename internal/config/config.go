package config

import (
	"os"
	"time"
)

type Config struct {
	HTTPAddr    string
	DataDir     string
	JWTSecret   string
	JWTExpiry   time.Duration
	ServiceName string
}

func Load() Config {
	return Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":5000"),
		DataDir:     getenv("DATA_DIR", "./data"),
		JWTSecret:   getenv("JWT_SECRET", "dev-secret-change-me"),
		JWTExpiry:   getduration("JWT_EXPIRY", 7*24*time.Hour),
		ServiceName: getenv("SERVICE_NAME", "shop-api"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
