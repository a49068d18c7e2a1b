package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vkazakov/cryptoexchange/internal/common"
	"github.com/vkazakov/cryptoexchange/internal/server/assets"
	"github.com/vkazakov/cryptoexchange/internal/server/auth"
	"github.com/vkazakov/cryptoexchange/internal/server/models"
	"github.com/vkazakov/cryptoexchange/internal/server/repositories/accounts"
)

// UserService provides authentication-related operations:
//   - Register: create accounts with zero holdings for every supported asset
//   - Login: verify credentials and mint a token
//   - Balances: token-gated read of an account's holdings
type UserService struct {
	repo           accounts.Repository
	tokens         *auth.TokenService
	universe       *assets.Universe
	storageTimeout time.Duration
}

// NewUserService constructs a UserService over the given storage contract,
// token service, and asset universe.
func NewUserService(repo accounts.Repository, tokens *auth.TokenService, universe *assets.Universe, storageTimeout time.Duration) *UserService {
	return &UserService{
		repo:           repo,
		tokens:         tokens,
		universe:       universe,
		storageTimeout: storageTimeout,
	}
}

// Register creates a new account for login. The password is stored only as a
// salted one-way hash, and holdings start at zero for every supported asset.
// A duplicate login yields common.ErrAlreadyExists.
func (s *UserService) Register(ctx context.Context, login, password string) (*models.Account, error) {
	if login == "" || password == "" {
		return nil, common.ErrorUnauthorized
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	account := &models.Account{
		ID:           uuid.NewString(),
		Login:        login,
		PasswordHash: hash,
		Holdings:     s.universe.ZeroHoldings(),
	}

	sctx, cancel := storageCtx(ctx, s.storageTimeout)
	defer cancel()

	created, err := s.repo.Create(sctx, account)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyExists
		}
		return nil, mapStorageErr(err)
	}

	return created, nil
}

// Login verifies the login/password pair and returns a signed token on
// success. An unknown login and a wrong password are indistinguishable to the
// caller: both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, login, password string) (string, error) {
	sctx, cancel := storageCtx(ctx, s.storageTimeout)
	defer cancel()

	account, err := s.repo.GetByLogin(sctx, login)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", mapStorageErr(err)
	}

	if !auth.VerifyPassword(account.PasswordHash, password) {
		return "", common.ErrorUnauthorized
	}

	return s.tokens.Issue(account.Login)
}

// Balances validates the presented token and returns a copy of that
// account's holdings.
func (s *UserService) Balances(ctx context.Context, token string) (map[string]decimal.Decimal, error) {
	login, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	sctx, cancel := storageCtx(ctx, s.storageTimeout)
	defer cancel()

	account, err := s.repo.GetByLogin(sctx, login)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Token verified but no backing account: an integrity
			// inconsistency, not a login error.
			return nil, common.ErrAccountNotFound
		}
		return nil, mapStorageErr(err)
	}

	return account.CopyHoldings(), nil
}
