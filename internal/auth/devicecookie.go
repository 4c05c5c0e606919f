package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DeviceCookie is the long-lived, signed {username, nonce} pair issued to a
// client after its first successful login, used to scope bruteforce
// accounting to a trusted device rather than to username alone (§4.1).
type DeviceCookie struct {
	Username string `json:"username"`
	Nonce    string `json:"nonce"`
}

// Key is the lockout/failed-login counter key for this device, "<username>:<nonce>".
func (d DeviceCookie) Key() string {
	return d.Username + ":" + d.Nonce
}

type deviceCookieClaims struct {
	Username string `json:"username"`
	Nonce    string `json:"nonce"`
	jwt.RegisteredClaims
}

// ErrDeviceCookieInvalid is returned by ParseDeviceCookie on any
// signature/shape failure. The caller treats the client as untrusted, not
// as an error response.
var ErrDeviceCookieInvalid = errors.New("auth: device cookie invalid")

// NewDeviceCookie signs a fresh {username, nonce} pair with no expiry
// (device cookies are long-lived by design; rotation happens by reissuing a
// new nonce, not by expiry).
func NewDeviceCookie(secret []byte, username, nonce string) (string, error) {
	claims := deviceCookieClaims{
		Username: username,
		Nonce:    nonce,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign device cookie: %w", err)
	}

	return signed, nil
}

// ParseDeviceCookie validates the signature of a device cookie and returns
// the {username, nonce} it carries.
func ParseDeviceCookie(secret []byte, raw string) (DeviceCookie, error) {
	var claims deviceCookieClaims

	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("auth: unexpected signing method %v", t.Header["alg"])
		}

		return secret, nil
	})
	if err != nil || !token.Valid {
		return DeviceCookie{}, ErrDeviceCookieInvalid
	}

	return DeviceCookie{Username: claims.Username, Nonce: claims.Nonce}, nil
}

// Lockout is the durable row inserted when a device (or untrusted client,
// keyed on username alone) exceeds the allowed failed-login count within
// the sliding window. Its presence alone rejects login attempts regardless
// of whether the password that follows is correct.
type Lockout struct {
	ID      string    `bson:"_id" json:"id"`
	ExpDate time.Time `bson:"exp_date" json:"exp_date"`
}

// NewLockout builds a lockout row for key, expiring ttl from now.
func NewLockout(key string, ttl time.Duration) Lockout {
	return Lockout{ID: key, ExpDate: time.Now().Add(ttl)}
}

// Expired reports whether the lockout row should be evicted by the
// periodic cleanup task.
func (l Lockout) Expired(now time.Time) bool {
	return now.After(l.ExpDate)
}
