// Package common defines shared constants and sentinel errors used across
// the exchange components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound       = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrTransientStorage = errors.New("transient storage failure")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Ledger errors.
	ErrAccountNotFound     = errors.New("account not found")
	ErrUnknownAsset        = errors.New("unknown asset")
	ErrInvalidOperation    = errors.New("invalid operation")
	ErrInsufficientBalance = errors.New("insufficient balance")
)
