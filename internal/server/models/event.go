package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceAdjusted is emitted after a successful buy or sell has been
// persisted. Consumers see the post-adjustment balance.
type BalanceAdjusted struct {
	Login      string          `json:"login"`
	Asset      string          `json:"asset"`
	Direction  Direction       `json:"direction"`
	Quantity   decimal.Decimal `json:"quantity"`
	NewBalance decimal.Decimal `json:"new_balance"`
	OccurredAt time.Time       `json:"occurred_at"`
}
