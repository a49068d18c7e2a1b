package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a registered user of the exchange. Holdings is a dense map:
// it always contains every supported asset symbol, each quantity >= 0.
type Account struct {
	ID           string
	Login        string
	PasswordHash string
	Holdings     map[string]decimal.Decimal
	CreatedAt    time.Time
}

// CopyHoldings returns an independent copy of the holdings map so that
// callers cannot mutate stored state through the returned value.
func (a *Account) CopyHoldings() map[string]decimal.Decimal {
	c := make(map[string]decimal.Decimal, len(a.Holdings))
	for symbol, qty := range a.Holdings {
		c[symbol] = qty
	}
	return c
}
