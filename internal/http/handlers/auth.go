// Package handlers implements the gateway's Fiber route handlers: one file
// per resource, each a thin adapter translating the HTTP request into a
// command/query use-case call and the result back into the response
// envelope. Grounded on the teacher's ledger handler shape
// (components/ledger/internal/ports/http/organization.go): a tracer span
// opened at entry, the use case invoked with the request context, and
// httpx's WithError/OK/Created/NoContent rendering the outcome.
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bondifuzz/api-gateway/internal/domain/user"
	"github.com/bondifuzz/api-gateway/internal/http/middleware"
	"github.com/bondifuzz/api-gateway/internal/httpx"
	"github.com/bondifuzz/api-gateway/internal/services/command"
)

// AuthHandler implements login/logout/CSRF-refresh, the only endpoints
// that write the gateway's own session cookies.
type AuthHandler struct {
	Commands        *command.UseCase
	CookieSecure    bool
	DeviceCookieTTL time.Duration
}

// NewAuthHandler builds an AuthHandler bound to uc.
func NewAuthHandler(uc *command.UseCase, cookieSecure bool, deviceCookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{Commands: uc, CookieSecure: cookieSecure, DeviceCookieTTL: deviceCookieTTL}
}

// Login validates credentials and, on success, sets the session/user/CSRF
// cookies and returns the authenticated user.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.Login")
	defer span.End()

	in, err := httpx.Decode[user.LoginInput](c)
	if err != nil {
		return httpx.WithError(c, err)
	}

	result, err := h.Commands.Login(ctx, *in, c.Cookies(middleware.CookieDeviceCookie))
	if err != nil {
		return httpx.WithError(c, err)
	}

	h.setAuthCookies(c, result)

	return httpx.OK(c, result.User)
}

func (h *AuthHandler) setAuthCookies(c *fiber.Ctx, r *command.LoginResult) {
	c.Cookie(&fiber.Cookie{Name: middleware.CookieSessionID, Value: r.Session.ID, Expires: r.Session.Expires, HTTPOnly: true, Secure: h.CookieSecure})
	c.Cookie(&fiber.Cookie{Name: middleware.CookieUserID, Value: r.User.ID, Expires: r.Session.Expires, HTTPOnly: true, Secure: h.CookieSecure})
	c.Cookie(&fiber.Cookie{Name: middleware.CookieCSRFToken, Value: r.CSRFToken, Expires: r.Session.Expires, Secure: h.CookieSecure})

	if r.DeviceCookie != "" {
		c.Cookie(&fiber.Cookie{
			Name:     middleware.CookieDeviceCookie,
			Value:    r.DeviceCookie,
			Expires:  time.Now().Add(h.DeviceCookieTTL),
			HTTPOnly: true,
			Secure:   h.CookieSecure,
		})
	}
}

// Logout deletes the current session and clears its cookies.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.Logout")
	defer span.End()

	if err := h.Commands.Logout(ctx, c.Cookies(middleware.CookieSessionID)); err != nil {
		return httpx.WithError(c, err)
	}

	c.ClearCookie(middleware.CookieSessionID, middleware.CookieUserID, middleware.CookieCSRFToken)

	return httpx.NoContent(c)
}

// RefreshCSRFToken issues a fresh CSRF token for the already-authenticated
// caller. Besides login, it is the only mutating endpoint exempt from CSRF
// enforcement.
func (h *AuthHandler) RefreshCSRFToken(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.RefreshCSRFToken")
	defer span.End()

	u := middleware.CurrentUser(c)

	token, err := h.Commands.RefreshCSRFToken(ctx, u.ID)
	if err != nil {
		return httpx.WithError(c, err)
	}

	c.Cookie(&fiber.Cookie{Name: middleware.CookieCSRFToken, Value: token, Secure: h.CookieSecure})

	return httpx.OK(c, fiber.Map{"csrf_token": token})
}
