package command

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bondifuzz/api-gateway/internal/apperr"
	"github.com/bondifuzz/api-gateway/internal/auth"
	"github.com/bondifuzz/api-gateway/internal/domain/user"
	"github.com/bondifuzz/api-gateway/internal/store/mongostore"
)

// LoginResult carries the session/CSRF/device cookies the handler writes
// onto the response, plus the authenticated user.
type LoginResult struct {
	User         *user.User
	Session      auth.Cookie
	CSRFToken    string
	DeviceCookie string
	DeviceKey    string
}

// Login validates credentials and device-cookie bruteforce state (§4.1),
// and on success issues a fresh session + CSRF token. deviceCookieRaw is
// the raw DEVICE_COOKIE cookie value, if present on the request.
func (uc *UseCase) Login(ctx context.Context, in user.LoginInput, deviceCookieRaw string) (*LoginResult, error) {
	device, trusted := uc.parseDeviceCookie(deviceCookieRaw)

	lockKey := uc.bruteforceKey(in.Username, device, trusted)

	locked, err := uc.Lockouts.Has(ctx, lockKey)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if locked {
		return nil, apperr.New(apperr.EDeviceCookieLockout)
	}

	u, err := uc.Users.GetByName(ctx, in.Username)
	if errors.Is(err, mongostore.ErrNotFound) {
		uc.recordFailedLogin(ctx, lockKey)
		return nil, apperr.New(apperr.ELoginFailed)
	}

	if err != nil {
		return nil, apperr.Internal(err)
	}

	if u.ErasureDate != nil || !auth.VerifyPassword(u.PasswordHash, in.Password) {
		uc.recordFailedLogin(ctx, lockKey)
		return nil, apperr.New(apperr.ELoginFailed)
	}

	if u.IsDisabled {
		return nil, apperr.New(apperr.EAccountDisabled)
	}

	if !u.IsConfirmed {
		return nil, apperr.New(apperr.EAccountNotConfirmed)
	}

	uc.FailedLogins.Reset(lockKey)

	session := auth.NewSession(u.ID, in.SessionMetadata, uc.SessionTTL)
	if err := uc.Sessions.Create(ctx, &session); err != nil {
		return nil, apperr.Internal(err)
	}

	csrfToken, err := auth.NewCSRFToken(uc.CSRFSecret, u.ID, uc.CSRFTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	result := &LoginResult{User: u, Session: session, CSRFToken: csrfToken}

	if trusted {
		result.DeviceCookie = deviceCookieRaw
	} else {
		nonce := uuid.NewString()

		signed, err := auth.NewDeviceCookie(uc.BFPSecret, in.Username, nonce)
		if err != nil {
			return nil, apperr.Internal(err)
		}

		result.DeviceCookie = signed
	}

	return result, nil
}

// parseDeviceCookie parses raw, returning the decoded cookie and whether
// the client is trusted (§4.1: an untrusted client has no valid device
// cookie at all).
func (uc *UseCase) parseDeviceCookie(raw string) (auth.DeviceCookie, bool) {
	if raw == "" {
		return auth.DeviceCookie{}, false
	}

	dc, err := auth.ParseDeviceCookie(uc.BFPSecret, raw)
	if err != nil {
		return auth.DeviceCookie{}, false
	}

	return dc, true
}

// bruteforceKey scopes the failure counter to (username, nonce) for a
// trusted device, or username alone for an untrusted one (§4.1).
func (uc *UseCase) bruteforceKey(username string, device auth.DeviceCookie, trusted bool) string {
	if trusted {
		return device.Key()
	}

	return username
}

// recordFailedLogin bumps the in-memory counter and, past the threshold,
// inserts a durable lockout row.
func (uc *UseCase) recordFailedLogin(ctx context.Context, key string) {
	count := uc.FailedLogins.RecordFailure(key)
	if count < uc.MaxFailedLogins {
		return
	}

	lockout := auth.NewLockout(key, uc.LockoutPeriod)
	if err := uc.Lockouts.Add(ctx, &lockout); err != nil {
		uc.Logger.Errorf("failed to persist lockout for %s: %v", key, err)
	}
}

// Logout deletes the session record identified by sessionID.
func (uc *UseCase) Logout(ctx context.Context, sessionID string) error {
	if err := uc.Sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, mongostore.ErrNotFound) {
		return apperr.Internal(err)
	}

	if uc.SessionCache != nil {
		uc.SessionCache.Invalidate(ctx, sessionID)
	}

	return nil
}

// RefreshCSRFToken issues a fresh CSRF token bound to userID (§4.1 explicit
// refresh endpoint).
func (uc *UseCase) RefreshCSRFToken(_ context.Context, userID string) (string, error) {
	token, err := auth.NewCSRFToken(uc.CSRFSecret, userID, uc.CSRFTokenTTL)
	if err != nil {
		return "", apperr.Internal(err)
	}

	return token, nil
}

// ResolveSession loads the session and its user for session/CSRF
// middleware (§4.1), failing with E_SESSION_NOT_FOUND on any mismatch.
func (uc *UseCase) ResolveSession(ctx context.Context, sessionID, userIDCookie string) (*user.User, error) {
	if uc.SessionCache != nil {
		if cached, ok := uc.SessionCache.Get(ctx, sessionID); ok && cached.ID == userIDCookie {
			if err := checkUserStatus(cached); err != nil {
				return nil, err
			}

			return cached, nil
		}
	}

	session, err := uc.Sessions.Get(ctx, sessionID)
	if errors.Is(err, mongostore.ErrNotFound) {
		return nil, apperr.New(apperr.ESessionNotFound)
	}

	if err != nil {
		return nil, apperr.Internal(err)
	}

	if session.UserID != userIDCookie {
		return nil, apperr.New(apperr.ESessionNotFound)
	}

	if session.Expired(time.Now()) {
		return nil, apperr.New(apperr.ESessionNotFound)
	}

	u, err := uc.Users.Get(ctx, session.UserID)
	if errors.Is(err, mongostore.ErrNotFound) {
		return nil, apperr.New(apperr.ESessionNotFound)
	}

	if err != nil {
		return nil, apperr.Internal(err)
	}

	if err := checkUserStatus(u); err != nil {
		return nil, err
	}

	if uc.SessionCache != nil {
		uc.SessionCache.Set(ctx, sessionID, u)
	}

	return u, nil
}

// checkUserStatus rejects a resolved session user that is erased, disabled
// or unconfirmed, whether the user record came from a fresh lookup or a
// cache hit — a cached entry can still have gone stale within its TTL if
// the account's status changed after it was cached.
func checkUserStatus(u *user.User) error {
	if u.ErasureDate != nil {
		return apperr.New(apperr.ESessionNotFound)
	}

	if u.IsDisabled {
		return apperr.New(apperr.EAccountDisabled)
	}

	if !u.IsConfirmed {
		return apperr.New(apperr.EAccountNotConfirmed)
	}

	return nil
}
