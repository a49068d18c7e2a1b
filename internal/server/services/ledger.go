package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vkazakov/cryptoexchange/internal/common"
	"github.com/vkazakov/cryptoexchange/internal/logging"
	"github.com/vkazakov/cryptoexchange/internal/server/assets"
	"github.com/vkazakov/cryptoexchange/internal/server/auth"
	"github.com/vkazakov/cryptoexchange/internal/server/events"
	"github.com/vkazakov/cryptoexchange/internal/server/models"
	"github.com/vkazakov/cryptoexchange/internal/server/repositories/accounts"
)

// LedgerService applies buy/sell adjustments to account holdings.
//
// Adjustments on the same account are strictly serialized through a per-login
// mutex, so the read-check-write window of one call never interleaves with
// another call on that account. Adjustments on different accounts proceed in
// parallel.
type LedgerService struct {
	repo           accounts.Repository
	tokens         *auth.TokenService
	universe       *assets.Universe
	publisher      events.Publisher
	logger         logging.Logger
	storageTimeout time.Duration

	muMap map[string]*sync.Mutex // per-login locks
	mapMu sync.Mutex             // protects muMap itself
}

func NewLedgerService(repo accounts.Repository, tokens *auth.TokenService, universe *assets.Universe,
	publisher events.Publisher, logger logging.Logger, storageTimeout time.Duration) *LedgerService {
	return &LedgerService{
		repo:           repo,
		tokens:         tokens,
		universe:       universe,
		publisher:      publisher,
		logger:         logger.With("module", "ledger"),
		storageTimeout: storageTimeout,
		muMap:          make(map[string]*sync.Mutex),
	}
}

func (s *LedgerService) accountLock(login string) *sync.Mutex {
	s.mapMu.Lock()
	defer s.mapMu.Unlock()

	if _, exists := s.muMap[login]; !exists {
		s.muMap[login] = &sync.Mutex{}
	}
	return s.muMap[login]
}

// AdjustWithToken validates the presented token and applies the adjustment
// for the login it carries. The ledger never accepts a raw login as proof of
// identity; this is the entry point the caller-facing surface uses.
func (s *LedgerService) AdjustWithToken(ctx context.Context, token, asset string, quantity decimal.Decimal, direction string) (decimal.Decimal, error) {
	login, err := s.tokens.Validate(token)
	if err != nil {
		return decimal.Zero, err
	}

	dir, err := models.ParseDirection(direction)
	if err != nil {
		return decimal.Zero, err
	}

	return s.Adjust(ctx, login, asset, quantity, dir)
}

// Adjust applies a single buy or sell to one asset of one account and
// returns the new balance. Exactly one of {single-field update, no-op
// failure} happens per call; other assets of the account are untouched.
func (s *LedgerService) Adjust(ctx context.Context, login, asset string, quantity decimal.Decimal, direction models.Direction) (decimal.Decimal, error) {
	if quantity.Cmp(decimal.Zero) <= 0 {
		return decimal.Zero, common.ErrInvalidOperation
	}
	if direction != models.DirectionBuy && direction != models.DirectionSell {
		return decimal.Zero, common.ErrInvalidOperation
	}
	if !s.universe.Contains(asset) {
		return decimal.Zero, common.ErrUnknownAsset
	}

	mu := s.accountLock(login)
	mu.Lock()
	defer mu.Unlock()

	sctx, cancel := storageCtx(ctx, s.storageTimeout)
	defer cancel()

	account, err := s.repo.GetByLogin(sctx, login)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return decimal.Zero, common.ErrAccountNotFound
		}
		return decimal.Zero, mapStorageErr(err)
	}

	current := account.Holdings[asset]

	var next decimal.Decimal
	switch direction {
	case models.DirectionBuy:
		next = current.Add(quantity)
	case models.DirectionSell:
		next = current.Sub(quantity)
		if next.IsNegative() {
			return decimal.Zero, common.ErrInsufficientBalance
		}
	}

	holdings := account.CopyHoldings()
	holdings[asset] = next

	if err := s.repo.SaveHoldings(sctx, login, holdings); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return decimal.Zero, common.ErrAccountNotFound
		}
		return decimal.Zero, mapStorageErr(err)
	}

	event := models.BalanceAdjusted{
		Login:      login,
		Asset:      asset,
		Direction:  direction,
		Quantity:   quantity,
		NewBalance: next,
		OccurredAt: time.Now(),
	}
	// Publishing is best-effort: the adjustment is already committed.
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error(ctx, "event publish failed", "login", login, "asset", asset, "error", err)
	}

	return next, nil
}
