package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. A .env file in
// the working directory, if present, is loaded first without overriding
// variables already set in the environment.
//
// Recognized variables: ADDRESS, DATABASE_DSN, TOKEN_VALIDITY,
// STORAGE_TIMEOUT, ASSET_SYMBOLS, KAFKA_BROKERS, KAFKA_TOPIC,
// QUOTE_BASE_URL, QUOTE_TIMEOUT. Durations use time.ParseDuration syntax;
// list values are comma-separated.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("ADDRESS"); v != "" {
		config.EndpointAddrHTTP = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("TOKEN_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
	if v := os.Getenv("STORAGE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.StorageTimeout = d
		}
	}
	if v := os.Getenv("ASSET_SYMBOLS"); v != "" {
		config.AssetSymbols = splitList(v)
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		config.KafkaBrokers = splitList(v)
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		config.KafkaTopic = v
	}
	if v := os.Getenv("QUOTE_BASE_URL"); v != "" {
		config.QuoteBaseURL = v
	}
	if v := os.Getenv("QUOTE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.QuoteTimeout = d
		}
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
