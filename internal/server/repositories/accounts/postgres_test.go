package accounts

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/vkazakov/cryptoexchange/internal/common"
	"github.com/vkazakov/cryptoexchange/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func testHoldings() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"BTC": decimal.Zero,
		"ETH": decimal.Zero,
	}
}

// JSON for testHoldings: encoding/json emits map keys sorted.
const testHoldingsJSON = `{"BTC":"0","ETH":"0"}`

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+accounts\s*\(id,\s*login,\s*password_hash,\s*holdings\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+created_at\s*$`

	created := time.Now()
	rows := sqlmock.NewRows([]string{"created_at"}).AddRow(created)
	mock.ExpectQuery(q).
		WithArgs("id-1", "alice", "hash", []byte(testHoldingsJSON)).
		WillReturnRows(rows)

	a := &models.Account{ID: "id-1", Login: "alice", PasswordHash: "hash", Holdings: testHoldings()}
	got, err := repo.Create(context.Background(), a)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.Login != "alice" || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected account: %+v", got)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+accounts`).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Account{ID: "id-1", Login: "alice", Holdings: testHoldings()})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByLogin_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*login,\s*password_hash,\s*holdings,\s*created_at\s+FROM\s+accounts\s+WHERE\s+login\s*=\s*\$1\s*$`

	rows := sqlmock.NewRows([]string{"id", "login", "password_hash", "holdings", "created_at"}).
		AddRow("id-1", "alice", "hash", []byte(`{"BTC":"2","ETH":"0"}`), time.Now())
	mock.ExpectQuery(q).
		WithArgs("alice").
		WillReturnRows(rows)

	got, err := repo.GetByLogin(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByLogin error: %v", err)
	}
	if got.ID != "id-1" || got.Login != "alice" {
		t.Fatalf("unexpected account: %+v", got)
	}
	if !got.Holdings["BTC"].Equal(decimal.NewFromInt(2)) {
		t.Fatalf("unexpected BTC balance: %s", got.Holdings["BTC"])
	}
}

func TestGetByLogin_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*login`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByLogin(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestSaveHoldings_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+accounts\s+SET\s+holdings\s*=\s*\$2\s+WHERE\s+login\s*=\s*\$1\s*$`

	mock.ExpectExec(q).
		WithArgs("alice", []byte(testHoldingsJSON)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SaveHoldings(context.Background(), "alice", testHoldings()); err != nil {
		t.Fatalf("SaveHoldings error: %v", err)
	}
}

func TestSaveHoldings_MissingAccount(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+accounts`).
		WithArgs("ghost", []byte(testHoldingsJSON)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SaveHoldings(context.Background(), "ghost", testHoldings())
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}
