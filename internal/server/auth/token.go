// Package auth implements the credential side of the exchange: stateless
// signed tokens binding a login to a request, and password hashing.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vkazakov/cryptoexchange/internal/common"
)

// Claims carries the token payload: the registered claim set plus the login
// the token was issued for.
type Claims struct {
	jwt.RegisteredClaims
	Login string
}

// TokenService issues and validates HS256-signed tokens. The signing key is
// injected at construction; the caller generates it once per process lifetime
// and never persists it, so a restart invalidates all outstanding tokens.
type TokenService struct {
	secret   []byte
	validity time.Duration
}

// NewTokenService constructs a TokenService. validity == 0 means issued
// tokens carry no expiry claim.
func NewTokenService(secret []byte, validity time.Duration) *TokenService {
	return &TokenService{secret: secret, validity: validity}
}

// Issue signs a token whose payload is the given login.
func (s *TokenService) Issue(login string) (string, error) {
	claims := Claims{Login: login}
	if s.validity > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(s.validity))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Validate verifies the token signature and structure and returns the login
// it was issued for. Any parse or verification failure yields
// common.ErrInvalidToken; an expired token yields common.ErrTokenExpired.
func (s *TokenService) Validate(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Login == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Login, nil
}
