package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bondifuzz/api-gateway/internal/domain"
	"github.com/bondifuzz/api-gateway/internal/domain/revision"
	"github.com/bondifuzz/api-gateway/internal/http/middleware"
	"github.com/bondifuzz/api-gateway/internal/httpx"
	"github.com/bondifuzz/api-gateway/internal/services/command"
)

// RevisionHandler implements the .../fuzzers/{fuzzer_id}/revisions subtree:
// CRUD plus the start/stop/restart lifecycle actions and corpus copy.
type RevisionHandler struct {
	Commands *command.UseCase
}

// NewRevisionHandler builds a RevisionHandler bound to uc.
func NewRevisionHandler(uc *command.UseCase) *RevisionHandler {
	return &RevisionHandler{Commands: uc}
}

func (h *RevisionHandler) Create(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.CreateRevision")
	defer span.End()

	in, err := httpx.Decode[revision.CreateInput](c)
	if err != nil {
		return httpx.WithError(c, err)
	}

	created, err := h.Commands.CreateRevision(ctx, middleware.Fuzzer(c), *in)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.Created(c, created)
}

// Get returns the {revision_id} path target, already resolved by the
// hierarchy middleware.
func (h *RevisionHandler) Get(c *fiber.Ctx) error {
	return httpx.OK(c, middleware.Revision(c))
}

func (h *RevisionHandler) List(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.ListRevisions")
	defer span.End()

	page := httpx.ParsePage(c)

	items, total, err := h.Commands.ListRevisions(ctx, middleware.Fuzzer(c), httpx.ParseRemovalQuery(c), page)
	if err != nil {
		return httpx.WithError(c, err)
	}

	listing := domain.NewListing(items, page)
	listing.Total = int(total)

	return httpx.OK(c, listing)
}

func (h *RevisionHandler) Update(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.UpdateRevision")
	defer span.End()

	in, err := httpx.Decode[revision.ResourcesInput](c)
	if err != nil {
		return httpx.WithError(c, err)
	}

	updated, err := h.Commands.PatchResources(ctx, middleware.Fuzzer(c), middleware.Revision(c), *in)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, updated)
}

func (h *RevisionHandler) Remove(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.RemoveRevision")
	defer span.End()

	action, err := httpx.ParseRemovalAction(c)
	if err != nil {
		return httpx.WithError(c, err)
	}

	var body httpx.RemovalActionInput
	_ = c.BodyParser(&body)

	noBackup := body.NoBackup != nil && *body.NoBackup

	if err := h.Commands.RemoveRevision(ctx, middleware.Fuzzer(c), c.Params("revision_id"), action, noBackup); err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.NoContent(c)
}

func (h *RevisionHandler) Start(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.StartRevision")
	defer span.End()

	started, err := h.Commands.StartRevision(ctx, middleware.Project(c), middleware.Fuzzer(c), middleware.Revision(c))
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, started)
}

func (h *RevisionHandler) Restart(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.RestartRevision")
	defer span.End()

	restarted, err := h.Commands.RestartRevision(ctx, middleware.Project(c), middleware.Fuzzer(c), middleware.Revision(c))
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, restarted)
}

func (h *RevisionHandler) Stop(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.StopRevision")
	defer span.End()

	stopped, err := h.Commands.StopRevision(ctx, middleware.Project(c), middleware.Fuzzer(c), middleware.Revision(c))
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, stopped)
}

// CopyCorpus copies another revision's corpus into this one.
func (h *RevisionHandler) CopyCorpus(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.CopyCorpus")
	defer span.End()

	in, err := httpx.Decode[revision.CopyCorpusInput](c)
	if err != nil {
		return httpx.WithError(c, err)
	}

	if err := h.Commands.CopyCorpus(ctx, middleware.Fuzzer(c), middleware.Revision(c), in.SrcRevID); err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.NoContent(c)
}
