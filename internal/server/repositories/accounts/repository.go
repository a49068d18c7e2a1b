// Package accounts persists exchange accounts: login, password hash, and
// the per-asset holdings map.
package accounts

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/vkazakov/cryptoexchange/internal/server/models"
)

type Repository interface {
	// Create stores a new account. A duplicate login yields
	// common.ErrAlreadyExists and leaves the existing account untouched.
	Create(ctx context.Context, account *models.Account) (*models.Account, error)

	// GetByLogin returns the account for login or common.ErrorNotFound.
	GetByLogin(ctx context.Context, login string) (*models.Account, error)

	// SaveHoldings replaces the stored holdings map for login.
	SaveHoldings(ctx context.Context, login string, holdings map[string]decimal.Decimal) error
}
