package accounts

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/vkazakov/cryptoexchange/internal/server/migrations"
)

// OpenPostgres opens the database behind dsn with the pgx stdlib driver,
// applies embedded goose migrations, and returns a ready repository.
// The caller owns the *sql.DB and closes it on shutdown.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, *PostgresRepository, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return nil, nil, fmt.Errorf("migration dialect error: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, nil, fmt.Errorf("migration error: %w", err)
	}

	return db, NewPostgresRepository(db), nil
}
