package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// csrfClaims binds a CSRF double-submit token to the user it was issued
// for, so a token lifted from one session can never validate another
// (E_CSRF_TOKEN_USER_MISMATCH, §4.1).
type csrfClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// ErrCSRFTokenInvalid covers any signature/expiry/shape failure; callers
// map it to E_CSRF_TOKEN_INVALID without distinguishing the sub-case, same
// as the source.
var ErrCSRFTokenInvalid = errors.New("auth: csrf token invalid or expired")

// NewCSRFToken signs a token bound to userID with the given lifetime, for
// use as both the CSRF_TOKEN cookie value and the X-CSRF-TOKEN header.
func NewCSRFToken(secret []byte, userID string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := csrfClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign csrf token: %w", err)
	}

	return signed, nil
}

// ParseCSRFToken validates the signature and expiry of a CSRF token and
// returns the user id it was bound to.
func ParseCSRFToken(secret []byte, raw string) (string, error) {
	var claims csrfClaims

	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("auth: unexpected signing method %v", t.Header["alg"])
		}

		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrCSRFTokenInvalid
	}

	return claims.UserID, nil
}
