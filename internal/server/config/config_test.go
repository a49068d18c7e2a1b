package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, "", c.DatabaseDSN)
	assert.Equal(t, time.Duration(0), c.TokenValidityDuration)
	assert.Equal(t, 5*time.Second, c.StorageTimeout)
	assert.Equal(t, []string{"BTC", "ETH", "USDT", "XRP", "BNB"}, c.AssetSymbols)
	assert.Nil(t, c.KafkaBrokers)
	assert.Equal(t, "balance_adjusted", c.KafkaTopic)
	assert.Equal(t, "https://api.coingecko.com/api/v3", c.QuoteBaseURL)
	assert.Equal(t, 10*time.Second, c.QuoteTimeout)
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("ADDRESS", ":9090")
	t.Setenv("DATABASE_DSN", "postgres://env")
	t.Setenv("TOKEN_VALIDITY", "30m")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, ":9090", c.EndpointAddrHTTP)
	assert.Equal(t, "postgres://env", c.DatabaseDSN)
	assert.Equal(t, 30*time.Minute, c.TokenValidityDuration)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.KafkaBrokers)
}

func TestParseEnv_InvalidDurationIgnored(t *testing.T) {
	t.Setenv("TOKEN_VALIDITY", "not-a-duration")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, time.Duration(0), c.TokenValidityDuration)
}

func TestParseJson_Overlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	content := `{
		"endpoint_addr_http": ":7070",
		"token_validity_duration": "45m",
		"asset_symbols": ["BTC", "ETH"],
		"kafka_brokers": ["broker:9092"]
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"server", "-c", path}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, ":7070", c.EndpointAddrHTTP)
	assert.Equal(t, 45*time.Minute, c.TokenValidityDuration)
	assert.Equal(t, []string{"BTC", "ETH"}, c.AssetSymbols)
	assert.Equal(t, []string{"broker:9092"}, c.KafkaBrokers)
	// untouched fields keep defaults
	assert.Equal(t, "balance_adjusted", c.KafkaTopic)
}

func TestParseFlags_Overrides(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"server", "-a", ":6060", "-t", "15", "-k", "b1:9092,b2:9092"}

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, ":6060", c.EndpointAddrHTTP)
	assert.Equal(t, 15*time.Minute, c.TokenValidityDuration)
	assert.Equal(t, []string{"b1:9092", "b2:9092"}, c.KafkaBrokers)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList("a, b"))
	assert.Equal(t, []string{"a"}, splitList("a,,"))
	assert.Empty(t, splitList(""))
}
