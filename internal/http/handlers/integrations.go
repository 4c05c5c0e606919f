package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bondifuzz/api-gateway/internal/domain"
	"github.com/bondifuzz/api-gateway/internal/domain/integration"
	"github.com/bondifuzz/api-gateway/internal/http/middleware"
	"github.com/bondifuzz/api-gateway/internal/httpx"
	"github.com/bondifuzz/api-gateway/internal/services/command"
)

// IntegrationHandler implements the .../projects/{project_id}/integrations
// subtree: bug-tracker bindings, hard-deleted rather than soft-deleted.
type IntegrationHandler struct {
	Commands *command.UseCase
}

// NewIntegrationHandler builds an IntegrationHandler bound to uc.
func NewIntegrationHandler(uc *command.UseCase) *IntegrationHandler {
	return &IntegrationHandler{Commands: uc}
}

func (h *IntegrationHandler) Create(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.CreateIntegration")
	defer span.End()

	in, err := httpx.Decode[integration.CreateInput](c)
	if err != nil {
		return httpx.WithError(c, err)
	}

	created, err := h.Commands.CreateIntegration(ctx, middleware.Project(c), *in)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.Created(c, created)
}

func (h *IntegrationHandler) Get(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.GetIntegration")
	defer span.End()

	it, err := h.Commands.GetIntegration(ctx, middleware.Project(c), c.Params("integration_id"))
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, it)
}

func (h *IntegrationHandler) List(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.ListIntegrations")
	defer span.End()

	page := httpx.ParsePage(c)

	items, total, err := h.Commands.ListIntegrations(ctx, middleware.Project(c), page)
	if err != nil {
		return httpx.WithError(c, err)
	}

	listing := domain.NewListing(items, page)
	listing.Total = int(total)

	return httpx.OK(c, listing)
}

func (h *IntegrationHandler) Update(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.UpdateIntegration")
	defer span.End()

	in, err := httpx.Decode[integration.CreateInput](c)
	if err != nil {
		return httpx.WithError(c, err)
	}

	updated, err := h.Commands.UpdateIntegration(ctx, middleware.Project(c), c.Params("integration_id"), *in)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, updated)
}

func (h *IntegrationHandler) Remove(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.DeleteIntegration")
	defer span.End()

	if err := h.Commands.DeleteIntegration(ctx, middleware.Project(c), c.Params("integration_id")); err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.NoContent(c)
}
