package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bondifuzz/api-gateway/internal/domain"
	"github.com/bondifuzz/api-gateway/internal/domain/project"
	"github.com/bondifuzz/api-gateway/internal/http/middleware"
	"github.com/bondifuzz/api-gateway/internal/httpx"
	"github.com/bondifuzz/api-gateway/internal/services/command"
)

// ProjectHandler implements the /users/{user_id}/projects subtree.
type ProjectHandler struct {
	Commands *command.UseCase
}

// NewProjectHandler builds a ProjectHandler bound to uc.
func NewProjectHandler(uc *command.UseCase) *ProjectHandler {
	return &ProjectHandler{Commands: uc}
}

func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.CreateProject")
	defer span.End()

	in, err := httpx.Decode[project.CreateInput](c)
	if err != nil {
		return httpx.WithError(c, err)
	}

	created, err := h.Commands.CreateProject(ctx, middleware.CurrentUser(c), middleware.TargetUser(c), *in)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.Created(c, created)
}

// Get returns the {project_id} path target, already resolved by the
// hierarchy middleware.
func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	return httpx.OK(c, middleware.Project(c))
}

func (h *ProjectHandler) List(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.ListProjects")
	defer span.End()

	page := httpx.ParsePage(c)

	items, total, err := h.Commands.ListProjects(ctx, middleware.CurrentUser(c), middleware.TargetUser(c), httpx.ParseRemovalQuery(c), page)
	if err != nil {
		return httpx.WithError(c, err)
	}

	listing := domain.NewListing(items, page)
	listing.Total = int(total)

	return httpx.OK(c, listing)
}

func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.UpdateProject")
	defer span.End()

	in, err := httpx.Decode[project.UpdateInput](c)
	if err != nil {
		return httpx.WithError(c, err)
	}

	updated, err := h.Commands.UpdateProject(ctx, middleware.CurrentUser(c), middleware.TargetUser(c), c.Params("project_id"), *in)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, updated)
}

func (h *ProjectHandler) Remove(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.RemoveProject")
	defer span.End()

	action, err := httpx.ParseRemovalAction(c)
	if err != nil {
		return httpx.WithError(c, err)
	}

	var body httpx.RemovalActionInput
	_ = c.BodyParser(&body)

	noBackup := body.NoBackup != nil && *body.NoBackup

	err = h.Commands.RemoveProject(ctx, middleware.CurrentUser(c), middleware.TargetUser(c), c.Params("project_id"), action, noBackup, body.NewName)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.NoContent(c)
}
