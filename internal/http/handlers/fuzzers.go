package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bondifuzz/api-gateway/internal/apperr"
	"github.com/bondifuzz/api-gateway/internal/domain"
	"github.com/bondifuzz/api-gateway/internal/domain/fuzzer"
	"github.com/bondifuzz/api-gateway/internal/domain/removal"
	"github.com/bondifuzz/api-gateway/internal/domain/revision"
	"github.com/bondifuzz/api-gateway/internal/http/middleware"
	"github.com/bondifuzz/api-gateway/internal/httpx"
	"github.com/bondifuzz/api-gateway/internal/services/command"
)

// FuzzerHandler implements the .../projects/{project_id}/fuzzers subtree,
// including the active-revision convenience endpoint.
type FuzzerHandler struct {
	Commands *command.UseCase
}

// NewFuzzerHandler builds a FuzzerHandler bound to uc.
func NewFuzzerHandler(uc *command.UseCase) *FuzzerHandler {
	return &FuzzerHandler{Commands: uc}
}

func (h *FuzzerHandler) Create(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.CreateFuzzer")
	defer span.End()

	in, err := httpx.Decode[fuzzer.CreateInput](c)
	if err != nil {
		return httpx.WithError(c, err)
	}

	created, err := h.Commands.CreateFuzzer(ctx, middleware.Project(c), *in)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.Created(c, created)
}

// Get returns the {fuzzer_id} path target, already resolved by the
// hierarchy middleware.
func (h *FuzzerHandler) Get(c *fiber.Ctx) error {
	return httpx.OK(c, middleware.Fuzzer(c))
}

func (h *FuzzerHandler) List(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.ListFuzzers")
	defer span.End()

	page := httpx.ParsePage(c)

	items, total, err := h.Commands.ListFuzzers(ctx, middleware.Project(c), httpx.ParseRemovalQuery(c), page)
	if err != nil {
		return httpx.WithError(c, err)
	}

	listing := domain.NewListing(items, page)
	listing.Total = int(total)

	return httpx.OK(c, listing)
}

func (h *FuzzerHandler) Update(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.UpdateFuzzer")
	defer span.End()

	in, err := httpx.Decode[fuzzer.UpdateInput](c)
	if err != nil {
		return httpx.WithError(c, err)
	}

	updated, err := h.Commands.UpdateFuzzer(ctx, middleware.Project(c), c.Params("fuzzer_id"), *in)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, updated)
}

func (h *FuzzerHandler) Remove(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.RemoveFuzzer")
	defer span.End()

	action, err := httpx.ParseRemovalAction(c)
	if err != nil {
		return httpx.WithError(c, err)
	}

	var body httpx.RemovalActionInput
	_ = c.BodyParser(&body)

	noBackup := body.NoBackup != nil && *body.NoBackup

	err = h.Commands.RemoveFuzzer(ctx, middleware.Project(c), c.Params("fuzzer_id"), action, noBackup, body.NewName)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.NoContent(c)
}

// ListTrashbin is the convenience route listing only soft-deleted fuzzers,
// equivalent to List with removal_state=TrashBin.
func (h *FuzzerHandler) ListTrashbin(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.ListFuzzerTrashbin")
	defer span.End()

	page := httpx.ParsePage(c)

	items, total, err := h.Commands.ListFuzzers(ctx, middleware.Project(c), removal.ViewTrashBin, page)
	if err != nil {
		return httpx.WithError(c, err)
	}

	listing := domain.NewListing(items, page)
	listing.Total = int(total)

	return httpx.OK(c, listing)
}

// CountTrashbin reports the number of soft-deleted fuzzers under the
// current project.
func (h *FuzzerHandler) CountTrashbin(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.CountFuzzerTrashbin")
	defer span.End()

	_, total, err := h.Commands.ListFuzzers(ctx, middleware.Project(c), removal.ViewTrashBin, httpx.ParsePage(c))
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, fiber.Map{"count": total})
}

// EraseTrashbin permanently erases a single soft-deleted fuzzer, the
// /trashbin/{fuzzer_id} convenience route equivalent to
// DELETE .../fuzzers/{fuzzer_id}?action=Erase.
func (h *FuzzerHandler) EraseTrashbin(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.EraseFuzzerTrashbin")
	defer span.End()

	err := h.Commands.RemoveFuzzer(ctx, middleware.Project(c), c.Params("fuzzer_id"), removal.ActionErase, false, nil)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.NoContent(c)
}

// GetActiveRevision resolves the fuzzer's currently active revision, if any.
func (h *FuzzerHandler) GetActiveRevision(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.GetActiveRevision")
	defer span.End()

	f := middleware.Fuzzer(c)

	if f.ActiveRevisionID == nil {
		return httpx.WithError(c, apperr.New(apperr.ERevisionNotFound))
	}

	r, err := h.Commands.GetRevision(ctx, f, *f.ActiveRevisionID)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, r)
}

// setActiveRevisionInput is the body of PUT .../revisions/active: the
// revision to make active, started the same way a direct start would.
type setActiveRevisionInput struct {
	RevisionID string `json:"revision_id" validate:"required"`
}

// SetActiveRevision starts revision_id, which the transition atomically
// makes the fuzzer's active revision (§4.3 "Setting an active revision").
func (h *FuzzerHandler) SetActiveRevision(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.SetActiveRevision")
	defer span.End()

	in, err := httpx.Decode[setActiveRevisionInput](c)
	if err != nil {
		return httpx.WithError(c, err)
	}

	f := middleware.Fuzzer(c)

	r, err := h.Commands.GetRevision(ctx, f, in.RevisionID)
	if err != nil {
		return httpx.WithError(c, err)
	}

	started, err := h.Commands.StartRevision(ctx, middleware.Project(c), f, r)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, started)
}

// activeRevision resolves the fuzzer's active revision or fails with the
// same not-found error a direct revision lookup would give.
func (h *FuzzerHandler) activeRevision(c *fiber.Ctx) (*revision.Revision, error) {
	f := middleware.Fuzzer(c)

	if f.ActiveRevisionID == nil {
		return nil, apperr.New(apperr.ERevisionNotFound)
	}

	return h.Commands.GetRevision(c.UserContext(), f, *f.ActiveRevisionID)
}

// StartActive starts the fuzzer's active revision, the
// .../fuzzers/{fuzzer_id}/actions/start convenience route.
func (h *FuzzerHandler) StartActive(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.StartActiveRevision")
	defer span.End()

	r, err := h.activeRevision(c)
	if err != nil {
		return httpx.WithError(c, err)
	}

	started, err := h.Commands.StartRevision(ctx, middleware.Project(c), middleware.Fuzzer(c), r)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, started)
}

// RestartActive restarts the fuzzer's active revision.
func (h *FuzzerHandler) RestartActive(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.RestartActiveRevision")
	defer span.End()

	r, err := h.activeRevision(c)
	if err != nil {
		return httpx.WithError(c, err)
	}

	restarted, err := h.Commands.RestartRevision(ctx, middleware.Project(c), middleware.Fuzzer(c), r)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, restarted)
}

// StopActive stops the fuzzer's active revision.
func (h *FuzzerHandler) StopActive(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.StopActiveRevision")
	defer span.End()

	r, err := h.activeRevision(c)
	if err != nil {
		return httpx.WithError(c, err)
	}

	stopped, err := h.Commands.StopRevision(ctx, middleware.Project(c), middleware.Fuzzer(c), r)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, stopped)
}
