package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bondifuzz/api-gateway/internal/apperr"
	"github.com/bondifuzz/api-gateway/internal/domain/fuzzer"
	"github.com/bondifuzz/api-gateway/internal/domain/project"
	"github.com/bondifuzz/api-gateway/internal/domain/revision"
	"github.com/bondifuzz/api-gateway/internal/domain/user"
	"github.com/bondifuzz/api-gateway/internal/httpx"
	"github.com/bondifuzz/api-gateway/internal/services/command"
)

// mutatingMethod reports whether method is one a trashed/erasing entity
// must reject: every method except GET (inspection) and DELETE (restore/
// erase must still reach an already-locked entity).
func mutatingMethod(method string) bool {
	return method != fiber.MethodGet && method != fiber.MethodDelete
}

// Hierarchy resolves the nested {user_id}/{project_id}/{fuzzer_id}/
// {revision_id} path segments (§4.2) in order, each step scoped under the
// one resolved before it, failing the request at the first segment that
// doesn't exist or isn't visible to the caller. Each resolver also enforces
// the mutation lock on its own entity: a trashed or erasing entity rejects
// every method but GET/DELETE with 409 *_DELETED, so a deleted project or
// fuzzer locks every route nested under it (§3 "children inherit the
// mutation lockout") without every handler re-checking its ancestors.
type Hierarchy struct {
	Commands *command.UseCase
}

// NewHierarchy builds a Hierarchy resolver bound to uc.
func NewHierarchy(uc *command.UseCase) *Hierarchy {
	return &Hierarchy{Commands: uc}
}

// ResolveTargetUser resolves the {user_id} path segment, applying
// check_user_access_permissions via command.UseCase.GetUser.
func (h *Hierarchy) ResolveTargetUser(c *fiber.Ctx) error {
	actor := CurrentUser(c)

	target, err := h.Commands.GetUser(c.UserContext(), actor, c.Params("user_id"))
	if err != nil {
		return httpx.WithError(c, err)
	}

	if target.ErasureDate != nil && mutatingMethod(c.Method()) {
		return httpx.WithError(c, apperr.New(apperr.EUserDeleted))
	}

	c.Locals(localTargetUser, target)

	return c.Next()
}

// TargetUser returns the user ResolveTargetUser attached to c.
func TargetUser(c *fiber.Ctx) *user.User {
	u, _ := c.Locals(localTargetUser).(*user.User)
	return u
}

// ResolveProject resolves {project_id} under the already-resolved target
// user, applying check_client_is_not_admin via command.UseCase.GetProject.
func (h *Hierarchy) ResolveProject(c *fiber.Ctx) error {
	actor, owner := CurrentUser(c), TargetUser(c)

	p, err := h.Commands.GetProject(c.UserContext(), actor, owner, c.Params("project_id"))
	if err != nil {
		return httpx.WithError(c, err)
	}

	if p.ErasureDate != nil && mutatingMethod(c.Method()) {
		return httpx.WithError(c, apperr.New(apperr.EProjectDeleted))
	}

	c.Locals(localProject, p)

	return c.Next()
}

// Project returns the project ResolveProject attached to c.
func Project(c *fiber.Ctx) *project.Project {
	p, _ := c.Locals(localProject).(*project.Project)
	return p
}

// ResolveFuzzer resolves {fuzzer_id} under the already-resolved project.
func (h *Hierarchy) ResolveFuzzer(c *fiber.Ctx) error {
	f, err := h.Commands.GetFuzzer(c.UserContext(), Project(c), c.Params("fuzzer_id"))
	if err != nil {
		return httpx.WithError(c, err)
	}

	if f.ErasureDate != nil && mutatingMethod(c.Method()) {
		return httpx.WithError(c, apperr.New(apperr.EFuzzerDeleted))
	}

	c.Locals(localFuzzer, f)

	return c.Next()
}

// Fuzzer returns the fuzzer ResolveFuzzer attached to c.
func Fuzzer(c *fiber.Ctx) *fuzzer.Fuzzer {
	f, _ := c.Locals(localFuzzer).(*fuzzer.Fuzzer)
	return f
}

// ResolveRevision resolves {revision_id} under the already-resolved fuzzer.
func (h *Hierarchy) ResolveRevision(c *fiber.Ctx) error {
	r, err := h.Commands.GetRevision(c.UserContext(), Fuzzer(c), c.Params("revision_id"))
	if err != nil {
		return httpx.WithError(c, err)
	}

	if r.ErasureDate != nil && mutatingMethod(c.Method()) {
		return httpx.WithError(c, apperr.New(apperr.ERevisionDeleted))
	}

	c.Locals(localRevision, r)

	return c.Next()
}

// Revision returns the revision ResolveRevision attached to c.
func Revision(c *fiber.Ctx) *revision.Revision {
	r, _ := c.Locals(localRevision).(*revision.Revision)
	return r
}
