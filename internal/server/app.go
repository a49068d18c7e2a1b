// Package server initializes and runs the exchange server: it wires config,
// storage, the credential and ledger services, event publishing, and the
// HTTP endpoint, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/vkazakov/cryptoexchange/internal/common"
	"github.com/vkazakov/cryptoexchange/internal/logging"
	"github.com/vkazakov/cryptoexchange/internal/server/api"
	"github.com/vkazakov/cryptoexchange/internal/server/assets"
	"github.com/vkazakov/cryptoexchange/internal/server/auth"
	"github.com/vkazakov/cryptoexchange/internal/server/config"
	"github.com/vkazakov/cryptoexchange/internal/server/events"
	kafkaevents "github.com/vkazakov/cryptoexchange/internal/server/events/kafka"
	"github.com/vkazakov/cryptoexchange/internal/server/quotes"
	"github.com/vkazakov/cryptoexchange/internal/server/repositories/accounts"
	"github.com/vkazakov/cryptoexchange/internal/server/services"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB // nil in memory mode
	handler *api.Handler
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	// The signing key lives for exactly one process lifetime and is never
	// persisted: a restart invalidates every outstanding token.
	secret := common.GenerateRandByteArray(32)
	tokens := auth.NewTokenService(secret, cfg.TokenValidityDuration)

	universe := assets.NewUniverse(cfg.AssetSymbols)

	var repo accounts.Repository
	var db *sql.DB
	if cfg.DatabaseDSN != "" {
		var err error
		var pgRepo *accounts.PostgresRepository
		db, pgRepo, err = accounts.OpenPostgres(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		repo = pgRepo
	} else {
		logger.Warn(ctx, "no database DSN configured, state is kept in memory")
		repo = accounts.NewMemoryRepository()
	}

	var publisher events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = kafkaevents.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	}

	users := services.NewUserService(repo, tokens, universe, cfg.StorageTimeout)
	ledger := services.NewLedgerService(repo, tokens, universe, publisher, logger, cfg.StorageTimeout)

	var quoteService *quotes.Service
	if cfg.QuoteBaseURL != "" {
		quoteService = quotes.NewService(cfg.QuoteBaseURL, universe.Symbols(), cfg.QuoteTimeout, logger)
	}

	handler := api.NewHandler(logger, users, ledger, quoteService)

	return &App{config: cfg, logger: logger, db: db, handler: handler}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	mux := http.NewServeMux()
	app.handler.Register(mux)

	srv := &http.Server{Addr: app.config.EndpointAddrHTTP, Handler: mux}

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", app.config.EndpointAddrHTTP)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}
}
