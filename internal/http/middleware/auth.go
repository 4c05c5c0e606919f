package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bondifuzz/api-gateway/internal/apperr"
	"github.com/bondifuzz/api-gateway/internal/auth"
	"github.com/bondifuzz/api-gateway/internal/domain/user"
	"github.com/bondifuzz/api-gateway/internal/httpx"
	"github.com/bondifuzz/api-gateway/internal/services/command"
)

// Auth holds the dependencies every session/CSRF check needs.
type Auth struct {
	Commands    *command.UseCase
	CSRFEnabled bool
}

// NewAuth builds an Auth middleware set bound to uc.
func NewAuth(uc *command.UseCase, csrfEnabled bool) *Auth {
	return &Auth{Commands: uc, CSRFEnabled: csrfEnabled}
}

// RequireSession resolves SESSION_ID/USER_ID into the authenticated user
// and stores it for downstream handlers and role gates.
func (a *Auth) RequireSession(c *fiber.Ctx) error {
	sessionID := c.Cookies(CookieSessionID)
	userID := c.Cookies(CookieUserID)

	if sessionID == "" || userID == "" {
		return httpx.WithError(c, apperr.New(apperr.EAuthorizationRequired))
	}

	u, err := a.Commands.ResolveSession(c.UserContext(), sessionID, userID)
	if err != nil {
		return httpx.WithError(c, err)
	}

	c.Locals(localUser, u)

	return c.Next()
}

// CurrentUser returns the user RequireSession attached to c, or nil if no
// session middleware ran on this route.
func CurrentUser(c *fiber.Ctx) *user.User {
	u, _ := c.Locals(localUser).(*user.User)
	return u
}

// RequireAdmin gates current_admin routes (§4.2): the caller must be an
// administrator, system or otherwise.
func (a *Auth) RequireAdmin(c *fiber.Ctx) error {
	u := CurrentUser(c)
	if u == nil || !u.IsAdmin {
		return httpx.WithError(c, apperr.New(apperr.EAdminRequired))
	}

	return c.Next()
}

// RequireSystemAdmin gates current_system_admin routes (§4.2).
func (a *Auth) RequireSystemAdmin(c *fiber.Ctx) error {
	u := CurrentUser(c)
	if u == nil || !u.IsSystem {
		return httpx.WithError(c, apperr.New(apperr.ESystemAdminRequired))
	}

	return c.Next()
}

// RequireCSRF implements the double-submit check (§4.1), applied to every
// mutating request except login and the CSRF refresh endpoint themselves.
// When CSRF protection is disabled by configuration, it's a no-op.
func (a *Auth) RequireCSRF(c *fiber.Ctx) error {
	if !a.CSRFEnabled {
		return c.Next()
	}

	u := CurrentUser(c)
	if u == nil {
		return httpx.WithError(c, apperr.New(apperr.EAuthorizationRequired))
	}

	cookieToken := c.Cookies(CookieCSRFToken)
	headerToken := c.Get(HeaderCSRFToken)

	if cookieToken == "" || headerToken == "" {
		return httpx.WithError(c, apperr.New(apperr.ECSRFTokenMissing))
	}

	if cookieToken != headerToken {
		return httpx.WithError(c, apperr.New(apperr.ECSRFTokenMismatch))
	}

	boundUserID, err := auth.ParseCSRFToken(a.Commands.CSRFSecret, cookieToken)
	if err != nil {
		return httpx.WithError(c, apperr.New(apperr.ECSRFTokenInvalid))
	}

	if boundUserID != u.ID {
		return httpx.WithError(c, apperr.New(apperr.ECSRFTokenUserMismatch))
	}

	return c.Next()
}
