// Package config handles configuration for the server component,
// including defaults, .env/JSON overlays, and command-line flags.
package config

import "time"

// Config holds runtime settings for the exchange server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the public HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty means the in-memory store.
//   - TokenValidityDuration: token lifetime; zero issues tokens without expiry.
//   - StorageTimeout: upper bound on a single storage call.
//   - AssetSymbols: the fixed universe of tradable symbols.
//   - KafkaBrokers / KafkaTopic: event publishing; no brokers disables it.
//   - QuoteBaseURL / QuoteTimeout: price feed endpoint settings.
type Config struct {
	EndpointAddrHTTP      string
	DatabaseDSN           string
	TokenValidityDuration time.Duration
	StorageTimeout        time.Duration
	AssetSymbols          []string
	KafkaBrokers          []string
	KafkaTopic            string
	QuoteBaseURL          string
	QuoteTimeout          time.Duration
}

// LoadDefaults populates Config with sensible development defaults.
// An empty DatabaseDSN keeps state in memory, which is lost on restart.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDSN = ""
	c.TokenValidityDuration = 0
	c.StorageTimeout = 5 * time.Second
	c.AssetSymbols = []string{"BTC", "ETH", "USDT", "XRP", "BNB"}
	c.KafkaBrokers = nil
	c.KafkaTopic = "balance_adjusted"
	c.QuoteBaseURL = "https://api.coingecko.com/api/v3"
	c.QuoteTimeout = 10 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment (including an optional .env file), an optional JSON
// file, and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
