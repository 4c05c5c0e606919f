package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bondifuzz/api-gateway/internal/domain/pool"
	"github.com/bondifuzz/api-gateway/internal/http/middleware"
	"github.com/bondifuzz/api-gateway/internal/httpx"
	"github.com/bondifuzz/api-gateway/internal/services/command"
)

// PoolHandler implements the /users/{user_id}/pools subtree plus the
// project pool bind/unbind endpoints, both thin adapters over the external
// pool-manager client.
type PoolHandler struct {
	Commands *command.UseCase
}

// NewPoolHandler builds a PoolHandler bound to uc.
func NewPoolHandler(uc *command.UseCase) *PoolHandler {
	return &PoolHandler{Commands: uc}
}

func (h *PoolHandler) Create(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.CreatePool")
	defer span.End()

	in, err := httpx.Decode[pool.CreateInput](c)
	if err != nil {
		return httpx.WithError(c, err)
	}

	created, err := h.Commands.CreatePool(ctx, middleware.TargetUser(c).ID, *in)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.Created(c, created)
}

// CreateGlobal is the platform-admin route handler for /admin/pools: the
// owner is taken from the body instead of a resolved path target user.
func (h *PoolHandler) CreateGlobal(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.CreateGlobalPool")
	defer span.End()

	in, err := httpx.Decode[pool.CreateInput](c)
	if err != nil {
		return httpx.WithError(c, err)
	}

	created, err := h.Commands.CreatePool(ctx, in.OwnerID, *in)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.Created(c, created)
}

// ListGlobal is the platform-admin listing, scoped by the owner_id query
// parameter rather than a resolved path target user.
func (h *PoolHandler) ListGlobal(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.ListGlobalPools")
	defer span.End()

	pools, err := h.Commands.ListPools(ctx, c.Query("owner_id"))
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, pools)
}

func (h *PoolHandler) Get(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.GetPool")
	defer span.End()

	p, err := h.Commands.GetPool(ctx, c.Params("pool_id"))
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, p)
}

func (h *PoolHandler) List(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.ListPools")
	defer span.End()

	pools, err := h.Commands.ListPools(ctx, middleware.TargetUser(c).ID)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, pools)
}

func (h *PoolHandler) Remove(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.DeletePool")
	defer span.End()

	if err := h.Commands.DeletePool(ctx, c.Params("pool_id")); err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.NoContent(c)
}

// bindPoolInput is the body of PUT .../pool: the pool_id to attach.
type bindPoolInput struct {
	PoolID string `json:"pool_id" validate:"required"`
}

// Bind attaches a pool to the current project.
func (h *PoolHandler) Bind(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.BindPool")
	defer span.End()

	in, err := httpx.Decode[bindPoolInput](c)
	if err != nil {
		return httpx.WithError(c, err)
	}

	updated, err := h.Commands.BindPool(ctx, middleware.Project(c), in.PoolID)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, updated)
}

// Unbind clears the current project's pool binding.
func (h *PoolHandler) Unbind(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.UnbindPool")
	defer span.End()

	updated, err := h.Commands.UnbindPool(ctx, middleware.Project(c))
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, updated)
}
