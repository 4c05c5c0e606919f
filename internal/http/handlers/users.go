package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bondifuzz/api-gateway/internal/apperr"
	"github.com/bondifuzz/api-gateway/internal/domain"
	"github.com/bondifuzz/api-gateway/internal/domain/user"
	"github.com/bondifuzz/api-gateway/internal/http/middleware"
	"github.com/bondifuzz/api-gateway/internal/httpx"
	"github.com/bondifuzz/api-gateway/internal/services/command"
)

// UserHandler implements the /users subtree: directory CRUD, self-service
// and the admin lookup/count endpoints.
type UserHandler struct {
	Commands *command.UseCase
}

// NewUserHandler builds a UserHandler bound to uc.
func NewUserHandler(uc *command.UseCase) *UserHandler {
	return &UserHandler{Commands: uc}
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.CreateUser")
	defer span.End()

	in, err := httpx.Decode[user.CreateInput](c)
	if err != nil {
		return httpx.WithError(c, err)
	}

	created, err := h.Commands.CreateUser(ctx, middleware.CurrentUser(c), *in)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.Created(c, created)
}

// Get returns the {user_id} path target, already resolved by the hierarchy
// middleware.
func (h *UserHandler) Get(c *fiber.Ctx) error {
	return httpx.OK(c, middleware.TargetUser(c))
}

// GetSelf returns the caller's own account.
func (h *UserHandler) GetSelf(c *fiber.Ctx) error {
	return httpx.OK(c, middleware.CurrentUser(c))
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.ListUsers")
	defer span.End()

	page := httpx.ParsePage(c)

	items, total, err := h.Commands.ListUsers(ctx, middleware.CurrentUser(c), httpx.ParseRemovalQuery(c), page)
	if err != nil {
		return httpx.WithError(c, err)
	}

	listing := domain.NewListing(items, page)
	listing.Total = int(total)

	return httpx.OK(c, listing)
}

// Lookup resolves a username for the admin-facing directory search.
func (h *UserHandler) Lookup(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.LookupUser")
	defer span.End()

	name := c.Query("name")
	if name == "" {
		return httpx.WithError(c, apperr.New(apperr.EWrongRequest, "missing name query parameter"))
	}

	found, err := h.Commands.LookupUser(ctx, middleware.CurrentUser(c), name)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, found)
}

// Count reports the directory size for the requested removal view.
func (h *UserHandler) Count(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.CountUsers")
	defer span.End()

	total, err := h.Commands.CountUsers(ctx, middleware.CurrentUser(c), httpx.ParseRemovalQuery(c))
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, fiber.Map{"count": total})
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.UpdateUser")
	defer span.End()

	in, err := httpx.Decode[user.UpdateInput](c)
	if err != nil {
		return httpx.WithError(c, err)
	}

	updated, err := h.Commands.UpdateUser(ctx, middleware.CurrentUser(c), c.Params("user_id"), *in)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, updated)
}

// UpdateSelf applies the self-service subset of UpdateInput to the caller's
// own account.
func (h *UserHandler) UpdateSelf(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.UpdateSelf")
	defer span.End()

	in, err := httpx.Decode[user.UpdateInput](c)
	if err != nil {
		return httpx.WithError(c, err)
	}

	actor := middleware.CurrentUser(c)

	updated, err := h.Commands.UpdateUser(ctx, actor, actor.ID, *in)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, updated)
}

func (h *UserHandler) Remove(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.RemoveUser")
	defer span.End()

	action, err := httpx.ParseRemovalAction(c)
	if err != nil {
		return httpx.WithError(c, err)
	}

	var body httpx.RemovalActionInput
	_ = c.BodyParser(&body)

	noBackup := body.NoBackup != nil && *body.NoBackup

	if err := h.Commands.RemoveUser(ctx, middleware.CurrentUser(c), c.Params("user_id"), action, noBackup, body.NewName); err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.NoContent(c)
}
