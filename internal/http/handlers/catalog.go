package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bondifuzz/api-gateway/internal/domain/engine"
	"github.com/bondifuzz/api-gateway/internal/domain/image"
	"github.com/bondifuzz/api-gateway/internal/domain/integrationtype"
	"github.com/bondifuzz/api-gateway/internal/domain/lang"
	"github.com/bondifuzz/api-gateway/internal/httpx"
	"github.com/bondifuzz/api-gateway/internal/services/command"
)

// CatalogHandler implements the platform-wide catalogs: engines, languages,
// integration types and images. Engine/lang/integration-type mutation is
// admin-only; images are visible per-project, BuiltIn images are created only
// by admins and cannot be deleted through any route.
type CatalogHandler struct {
	Commands *command.UseCase
}

// NewCatalogHandler builds a CatalogHandler bound to uc.
func NewCatalogHandler(uc *command.UseCase) *CatalogHandler {
	return &CatalogHandler{Commands: uc}
}

func (h *CatalogHandler) CreateEngine(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.CreateEngine")
	defer span.End()

	in, err := httpx.Decode[engine.CreateInput](c)
	if err != nil {
		return httpx.WithError(c, err)
	}

	created, err := h.Commands.CreateEngine(ctx, *in)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.Created(c, created)
}

func (h *CatalogHandler) GetEngine(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.GetEngine")
	defer span.End()

	e, err := h.Commands.GetEngine(ctx, engine.ID(c.Params("engine_id")))
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, e)
}

func (h *CatalogHandler) ListEngines(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.ListEngines")
	defer span.End()

	items, err := h.Commands.ListEngines(ctx)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, items)
}

func (h *CatalogHandler) DeleteEngine(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.DeleteEngine")
	defer span.End()

	if err := h.Commands.DeleteEngine(ctx, engine.ID(c.Params("engine_id"))); err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.NoContent(c)
}

func (h *CatalogHandler) CreateLang(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.CreateLang")
	defer span.End()

	in, err := httpx.Decode[lang.CreateInput](c)
	if err != nil {
		return httpx.WithError(c, err)
	}

	created, err := h.Commands.CreateLang(ctx, *in)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.Created(c, created)
}

func (h *CatalogHandler) GetLang(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.GetLang")
	defer span.End()

	l, err := h.Commands.GetLang(ctx, lang.ID(c.Params("lang_id")))
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, l)
}

func (h *CatalogHandler) ListLangs(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.ListLangs")
	defer span.End()

	items, err := h.Commands.ListLangs(ctx)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, items)
}

func (h *CatalogHandler) DeleteLang(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.DeleteLang")
	defer span.End()

	if err := h.Commands.DeleteLang(ctx, lang.ID(c.Params("lang_id"))); err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.NoContent(c)
}

func (h *CatalogHandler) GetIntegrationType(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.GetIntegrationType")
	defer span.End()

	it, err := h.Commands.GetIntegrationType(ctx, integrationtype.ID(c.Params("integration_type_id")))
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, it)
}

func (h *CatalogHandler) ListIntegrationTypes(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.ListIntegrationTypes")
	defer span.End()

	items, err := h.Commands.ListIntegrationTypes(ctx)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, items)
}

// CreateImage registers a Custom image under the current project, or a
// platform-wide BuiltIn image when called from the admin-only top-level
// route (project_id left empty).
func (h *CatalogHandler) CreateImage(c *fiber.Ctx, projectID string) error {
	ctx, span := httpx.StartSpan(c, "handler.CreateImage")
	defer span.End()

	in, err := httpx.Decode[image.CreateInput](c)
	if err != nil {
		return httpx.WithError(c, err)
	}

	created, err := h.Commands.CreateImage(ctx, projectID, *in)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.Created(c, created)
}

// CreateBuiltInImage is the admin-only route handler for platform-wide
// images (no owning project).
func (h *CatalogHandler) CreateBuiltInImage(c *fiber.Ctx) error {
	return h.CreateImage(c, "")
}

// CreateProjectImage is the project-scoped route handler for Custom images.
func (h *CatalogHandler) CreateProjectImage(c *fiber.Ctx) error {
	return h.CreateImage(c, c.Params("project_id"))
}

func (h *CatalogHandler) GetImage(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.GetImage")
	defer span.End()

	img, err := h.Commands.GetImage(ctx, c.Params("project_id"), c.Params("image_id"))
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, img)
}

func (h *CatalogHandler) ListImages(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.ListImages")
	defer span.End()

	items, err := h.Commands.ListImages(ctx, c.Params("project_id"))
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, items)
}

func (h *CatalogHandler) DeleteImage(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.DeleteImage")
	defer span.End()

	if err := h.Commands.DeleteImage(ctx, c.Params("project_id"), c.Params("image_id")); err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.NoContent(c)
}
