package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vkazakov/cryptoexchange/internal/common"
	"github.com/vkazakov/cryptoexchange/internal/server/models"
)

// MemoryRepository is a mutex-guarded in-memory Repository. It backs tests
// and the no-database development mode. All returned accounts are copies.
type MemoryRepository struct {
	mu       sync.Mutex
	accounts map[string]*models.Account
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{accounts: make(map[string]*models.Account)}
}

func (r *MemoryRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.Login]; exists {
		return nil, common.ErrAlreadyExists
	}

	stored := cloneAccount(account)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	r.accounts[account.Login] = stored

	return cloneAccount(stored), nil
}

func (r *MemoryRepository) GetByLogin(ctx context.Context, login string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.accounts[login]
	if !ok {
		return nil, common.ErrorNotFound
	}

	return cloneAccount(stored), nil
}

func (r *MemoryRepository) SaveHoldings(ctx context.Context, login string, holdings map[string]decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.accounts[login]
	if !ok {
		return common.ErrorNotFound
	}

	stored.Holdings = cloneHoldings(holdings)
	return nil
}

func cloneAccount(a *models.Account) *models.Account {
	c := *a
	c.Holdings = cloneHoldings(a.Holdings)
	return &c
}

func cloneHoldings(h map[string]decimal.Decimal) map[string]decimal.Decimal {
	c := make(map[string]decimal.Decimal, len(h))
	for symbol, qty := range h {
		c[symbol] = qty
	}
	return c
}

// Compile-time check that MemoryRepository implements Repository.
var _ Repository = (*MemoryRepository)(nil)
