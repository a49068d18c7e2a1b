// Package assets defines the fixed set of tradable symbols the exchange
// recognizes. The universe is supplied at process start and is not
// user-extensible.
package assets

import "github.com/shopspring/decimal"

// DefaultSymbols is the symbol set served when no override is configured.
var DefaultSymbols = []string{"BTC", "ETH", "USDT", "XRP", "BNB"}

// Universe is a fixed set of supported asset symbols.
type Universe struct {
	symbols []string
	index   map[string]struct{}
}

// NewUniverse builds a Universe from the given symbols. Duplicates are
// collapsed; order of first appearance is preserved.
func NewUniverse(symbols []string) *Universe {
	u := &Universe{index: make(map[string]struct{}, len(symbols))}
	for _, s := range symbols {
		if _, ok := u.index[s]; ok {
			continue
		}
		u.index[s] = struct{}{}
		u.symbols = append(u.symbols, s)
	}
	return u
}

// Default returns the universe of DefaultSymbols.
func Default() *Universe {
	return NewUniverse(DefaultSymbols)
}

// Contains reports whether symbol is a supported asset.
func (u *Universe) Contains(symbol string) bool {
	_, ok := u.index[symbol]
	return ok
}

// Symbols returns the supported symbols in declaration order.
func (u *Universe) Symbols() []string {
	out := make([]string, len(u.symbols))
	copy(out, u.symbols)
	return out
}

// ZeroHoldings returns a dense holdings map with every supported symbol
// set to zero. New accounts are seeded with this.
func (u *Universe) ZeroHoldings() map[string]decimal.Decimal {
	h := make(map[string]decimal.Decimal, len(u.symbols))
	for _, s := range u.symbols {
		h[s] = decimal.Zero
	}
	return h
}
