// Package api exposes the caller-facing HTTP surface of the exchange:
// registration, login, buy/sell adjustments, balances, and prices.
package api

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vkazakov/cryptoexchange/internal/logging"
	"github.com/vkazakov/cryptoexchange/internal/server/models"
	"github.com/vkazakov/cryptoexchange/internal/server/quotes"
	"github.com/vkazakov/cryptoexchange/internal/server/services"
)

const maxBodyBytes = 1 << 16

// Handler wires HTTP endpoints to the user and ledger services.
type Handler struct {
	logger logging.Logger
	users  *services.UserService
	ledger *services.LedgerService
	quotes *quotes.Service // nil when no quote feed is configured
}

func NewHandler(logger logging.Logger, users *services.UserService, ledger *services.LedgerService, q *quotes.Service) *Handler {
	return &Handler{
		logger: logger.With("module", "api"),
		users:  users,
		ledger: ledger,
		quotes: q,
	}
}

// Register wires the exchange routes onto the provided mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /auth/sign-in", h.handleSignIn)
	mux.HandleFunc("POST /auth/log-in", h.handleLogIn)
	mux.HandleFunc("POST /exchange/buy", h.handleAdjust(models.DirectionBuy))
	mux.HandleFunc("POST /exchange/sell", h.handleAdjust(models.DirectionSell))
	mux.HandleFunc("GET /exchange/balances", h.handleBalances)
	mux.HandleFunc("GET /home/prices", h.handlePrices)
	mux.HandleFunc("GET /health", h.handleHealth)
}

type authRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type adjustRequest struct {
	Asset    string          `json:"asset"`
	Quantity decimal.Decimal `json:"quantity"`
}

func (h *Handler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := decodeJSON(w, r, maxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidOperation, "malformed request body")
		return
	}

	if _, err := h.users.Register(r.Context(), req.Login, req.Password); err != nil {
		h.logger.Warn(r.Context(), "registration failed", "login", req.Login, "error", err)
		writeServiceError(w, err)
		return
	}

	h.logger.Info(r.Context(), "registered", "login", req.Login)
	writeJSON(w, http.StatusCreated, map[string]string{"message": "user created"})
}

func (h *Handler) handleLogIn(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := decodeJSON(w, r, maxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidOperation, "malformed request body")
		return
	}

	token, err := h.users.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *Handler) handleAdjust(direction models.Direction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, codeInvalidToken, "missing bearer token")
			return
		}

		var req adjustRequest
		if err := decodeJSON(w, r, maxBodyBytes, &req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidOperation, "malformed request body")
			return
		}

		balance, err := h.ledger.AdjustWithToken(r.Context(), token, req.Asset, req.Quantity, string(direction))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"asset":   req.Asset,
			"balance": balance,
		})
	}
}

func (h *Handler) handleBalances(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, codeInvalidToken, "missing bearer token")
		return
	}

	balances, err := h.users.Balances(r.Context(), token)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"balances": balances})
}

func (h *Handler) handlePrices(w http.ResponseWriter, r *http.Request) {
	if h.quotes == nil {
		writeError(w, http.StatusServiceUnavailable, codeInternal, "quote feed not configured")
		return
	}

	prices, err := h.quotes.Prices(r.Context())
	if err != nil {
		h.logger.Error(r.Context(), "price fetch failed", "error", err)
		writeError(w, http.StatusBadGateway, codeInternal, "quote feed unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"prices": prices})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token, token != ""
}
