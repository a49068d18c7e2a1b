// Package quotes fetches USD prices for the supported assets from a
// CoinGecko-compatible endpoint. It is an external collaborator of the
// exchange core: only the HTTP surface consumes it.
package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/vkazakov/cryptoexchange/internal/logging"
)

// DefaultBaseURL is the public CoinGecko simple-price endpoint.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// coinIDs maps exchange symbols to CoinGecko coin identifiers.
var coinIDs = map[string]string{
	"BTC":  "bitcoin",
	"ETH":  "ethereum",
	"USDT": "tether",
	"XRP":  "ripple",
	"BNB":  "binancecoin",
}

// Quote is the last known USD price of one asset.
type Quote struct {
	Symbol   string    `json:"symbol"`
	PriceUSD float64   `json:"price_usd"`
	Updated  time.Time `json:"updated"`
}

// Service fetches and caches quotes for a set of symbols.
type Service struct {
	client  *http.Client
	baseURL string
	symbols []string
	logger  logging.Logger

	mu    sync.Mutex
	cache map[string]Quote
}

// NewService builds a quote Service for the given symbols. Symbols with no
// known CoinGecko id are skipped. timeout bounds a single upstream request.
func NewService(baseURL string, symbols []string, timeout time.Duration, logger logging.Logger) *Service {
	known := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if _, ok := coinIDs[s]; ok {
			known = append(known, s)
		}
	}
	return &Service{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		symbols: known,
		logger:  logger.With("module", "quotes"),
		cache:   make(map[string]Quote),
	}
}

// Refresh fetches current prices for all symbols and updates the cache.
// Transport errors are retried with exponential backoff before giving up.
func (s *Service) Refresh(ctx context.Context) error {
	ids := make([]string, 0, len(s.symbols))
	for _, symbol := range s.symbols {
		ids = append(ids, coinIDs[symbol])
	}

	var prices map[string]map[string]float64

	backoff := retry.WithMaxRetries(3, retry.NewExponential(200*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var fetchErr error
		prices, fetchErr = s.fetch(ctx, ids)
		if fetchErr != nil {
			return retry.RetryableError(fetchErr)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("quote fetch failed: %w", err)
	}

	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, symbol := range s.symbols {
		entry, ok := prices[coinIDs[symbol]]
		if !ok {
			s.logger.Warn(ctx, "no price in upstream response", "symbol", symbol)
			continue
		}
		s.cache[symbol] = Quote{Symbol: symbol, PriceUSD: entry["usd"], Updated: now}
	}

	return nil
}

// Prices returns the cached quotes, refreshing first when the cache is empty.
func (s *Service) Prices(ctx context.Context) (map[string]Quote, error) {
	s.mu.Lock()
	empty := len(s.cache) == 0
	s.mu.Unlock()

	if empty {
		if err := s.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Quote, len(s.cache))
	for symbol, q := range s.cache {
		out[symbol] = q
	}
	return out, nil
}

func (s *Service) fetch(ctx context.Context, ids []string) (map[string]map[string]float64, error) {
	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	q.Set("vs_currencies", "usd")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/simple/price?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var prices map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&prices); err != nil {
		return nil, err
	}
	return prices, nil
}
