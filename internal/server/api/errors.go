package api

import (
	"errors"
	"net/http"

	"github.com/vkazakov/cryptoexchange/internal/common"
)

// Stable outward error codes. Clients branch on these, never on messages.
const (
	codeAuthenticationFailed = "authentication_failed"
	codeInvalidToken         = "invalid_token"
	codeAccountNotFound      = "account_not_found"
	codeUnknownAsset         = "unknown_asset"
	codeInvalidOperation     = "invalid_operation"
	codeInsufficientBalance  = "insufficient_balance"
	codeAlreadyExists        = "already_exists"
	codeTransientStorage     = "transient_storage"
	codeInternal             = "internal"
)

// mapError translates a service failure into an HTTP status and outward code.
func mapError(err error) (int, string, string) {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, codeAuthenticationFailed, "invalid login or password"
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, codeInvalidToken, "invalid token"
	case errors.Is(err, common.ErrAccountNotFound):
		// Token verified but no backing account: an integrity inconsistency.
		return http.StatusInternalServerError, codeAccountNotFound, "account not found"
	case errors.Is(err, common.ErrUnknownAsset):
		return http.StatusBadRequest, codeUnknownAsset, "unknown asset"
	case errors.Is(err, common.ErrInvalidOperation):
		return http.StatusBadRequest, codeInvalidOperation, "invalid operation"
	case errors.Is(err, common.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity, codeInsufficientBalance, "insufficient balance"
	case errors.Is(err, common.ErrAlreadyExists):
		return http.StatusConflict, codeAlreadyExists, "login already taken"
	case errors.Is(err, common.ErrTransientStorage):
		return http.StatusServiceUnavailable, codeTransientStorage, "storage temporarily unavailable"
	default:
		return http.StatusInternalServerError, codeInternal, "internal error"
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	status, code, msg := mapError(err)
	writeError(w, status, code, msg)
}
