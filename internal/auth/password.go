// Package auth implements the gateway's authentication and session
// machinery (§4.1): Argon2id password hashing, server-side session cookies,
// device-cookie bruteforce protection, and signed CSRF double-submit
// tokens.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters. These are the settings golang.org/x/crypto/argon2
// documents for IDKey (time=1, 64 MiB of memory); the gateway has no reason
// to diverge from them.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

// ErrInvalidHash names a malformed stored hash string, which should never
// happen outside of data corruption. VerifyPassword does not return it: it
// reports a malformed hash as a plain mismatch.
var ErrInvalidHash = errors.New("auth: invalid password hash format")

// HashPassword returns an encoded Argon2id hash string safe to store in
// User.PasswordHash. The format is the same self-describing
// $argon2id$v=...$m=...,t=...,p=...$salt$hash layout the reference Argon2
// implementations use, so the parameters travel with the hash and can be
// upgraded later without a migration.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("auth: generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads, b64Salt, b64Hash)

	return encoded, nil
}

// VerifyPassword reports whether password matches the encoded hash,
// comparing in constant time. Any parse failure is treated as a mismatch
// rather than propagated, so callers always collapse to the same
// E_LOGIN_FAILED response regardless of which half was wrong.
func VerifyPassword(encoded, password string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false
	}

	var memory uint32
	var time uint32
	var threads uint8

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}

	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false
	}

	got := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(want)))

	return subtle.ConstantTimeCompare(got, want) == 1
}
