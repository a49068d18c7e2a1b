package accounts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/vkazakov/cryptoexchange/internal/common"
	"github.com/vkazakov/cryptoexchange/internal/dbx"
	"github.com/vkazakov/cryptoexchange/internal/server/models"
)

const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {

	holdings, err := json.Marshal(account.Holdings)
	if err != nil {
		return nil, fmt.Errorf("holdings marshal error: %w", err)
	}

	query :=
		`INSERT INTO accounts (id, login, password_hash, holdings)
         VALUES ($1, $2, $3, $4)
		 RETURNING created_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		account.ID, account.Login, account.PasswordHash, holdings).Scan(&account.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) GetByLogin(ctx context.Context, login string) (*models.Account, error) {
	query :=
		`SELECT id, login, password_hash, holdings, created_at FROM accounts
		 WHERE login = $1
		 `

	account := &models.Account{}
	var holdings []byte
	err := r.db.QueryRowContext(ctx, query, login).
		Scan(&account.ID, &account.Login, &account.PasswordHash, &holdings, &account.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := json.Unmarshal(holdings, &account.Holdings); err != nil {
		return nil, fmt.Errorf("holdings unmarshal error: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) SaveHoldings(ctx context.Context, login string, holdings map[string]decimal.Decimal) error {

	data, err := json.Marshal(holdings)
	if err != nil {
		return fmt.Errorf("holdings marshal error: %w", err)
	}

	query :=
		`UPDATE accounts SET holdings = $2
		 WHERE login = $1
		 `

	res, err := r.db.ExecContext(ctx, query, login, data)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
