package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/vkazakov/cryptoexchange/internal/flagx"
	"github.com/vkazakov/cryptoexchange/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. Duration fields accept both strings like "30s" and integer
// nanoseconds. After unmarshalling, set fields are copied into Config.
type JsonConfig struct {
	EndpointAddrHTTP      *string         `json:"endpoint_addr_http"`
	DatabaseDSN           *string         `json:"database_dsn"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	StorageTimeout        *timex.Duration `json:"storage_timeout"`
	AssetSymbols          []string        `json:"asset_symbols"`
	KafkaBrokers          []string        `json:"kafka_brokers"`
	KafkaTopic            *string         `json:"kafka_topic"`
	QuoteBaseURL          *string         `json:"quote_base_url"`
	QuoteTimeout          *timex.Duration `json:"quote_timeout"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. Absent file means no overlay;
// an unreadable or invalid file panics, configuration errors are fatal.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != nil {
		config.EndpointAddrHTTP = *c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	}
	if c.StorageTimeout != nil {
		config.StorageTimeout = time.Duration(c.StorageTimeout.Duration)
	}
	if c.AssetSymbols != nil {
		config.AssetSymbols = c.AssetSymbols
	}
	if c.KafkaBrokers != nil {
		config.KafkaBrokers = c.KafkaBrokers
	}
	if c.KafkaTopic != nil {
		config.KafkaTopic = *c.KafkaTopic
	}
	if c.QuoteBaseURL != nil {
		config.QuoteBaseURL = *c.QuoteBaseURL
	}
	if c.QuoteTimeout != nil {
		config.QuoteTimeout = time.Duration(c.QuoteTimeout.Duration)
	}
}
