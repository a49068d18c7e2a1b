// Package events defines the outbound event contract for the exchange.
package events

import (
	"context"

	"github.com/vkazakov/cryptoexchange/internal/server/models"
)

// Publisher delivers balance-adjusted events to interested consumers.
type Publisher interface {
	Publish(ctx context.Context, event models.BalanceAdjusted) error
}

// Noop discards every event. Used in tests and when no broker is configured.
type Noop struct{}

func (Noop) Publish(ctx context.Context, event models.BalanceAdjusted) error { return nil }
