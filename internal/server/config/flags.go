package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/vkazakov/cryptoexchange/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN (empty keeps state in memory)
//	-t int      token validity, minutes (0 = no expiry)
//	-s int      storage timeout, seconds
//	-k string   Kafka brokers, comma-separated
//	-o string   Kafka topic
//	-q string   quote feed base URL
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t", "-s", "-k", "-o", "-q"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity (in minutes, 0 = no expiry)")
	storageTimeout := fs.Int("s", int(config.StorageTimeout.Seconds()), "storage timeout (in seconds)")

	brokers := fs.String("k", strings.Join(config.KafkaBrokers, ","), "kafka brokers, comma-separated")
	fs.StringVar(&config.KafkaTopic, "o", config.KafkaTopic, "kafka topic")
	fs.StringVar(&config.QuoteBaseURL, "q", config.QuoteBaseURL, "quote feed base URL")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
	config.StorageTimeout = time.Duration(*storageTimeout) * time.Second

	if *brokers == "" {
		config.KafkaBrokers = nil
	} else {
		config.KafkaBrokers = splitList(*brokers)
	}
}
