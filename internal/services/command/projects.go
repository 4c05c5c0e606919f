package command

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bondifuzz/api-gateway/internal/apperr"
	"github.com/bondifuzz/api-gateway/internal/domain/project"
	"github.com/bondifuzz/api-gateway/internal/domain/removal"
	"github.com/bondifuzz/api-gateway/internal/domain/user"
	"github.com/bondifuzz/api-gateway/internal/store/mongostore"
)

// checkOwnerAccess enforces check_user_access_permissions (§4.2): a
// non-admin may only act on their own user_id path segment, and
// check_client_is_not_admin: the owning user must be a client account.
func (uc *UseCase) checkOwnerAccess(actor *user.User, owner *user.User) error {
	if !actor.IsAdmin && actor.ID != owner.ID {
		return apperr.New(apperr.EAccessDenied)
	}

	if owner.IsAdmin {
		return apperr.New(apperr.EClientAccountRequired)
	}

	return nil
}

// CreateProject creates a project owned by ownerID (§4.2: owner-only, and
// the owner path segment must itself be a client account).
func (uc *UseCase) CreateProject(ctx context.Context, actor, owner *user.User, in project.CreateInput) (*project.Project, error) {
	if err := uc.checkOwnerAccess(actor, owner); err != nil {
		return nil, err
	}

	p := &project.Project{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		OwnerID:     owner.ID,
		Created:     now(),
	}

	if err := uc.Projects.Create(ctx, p); err != nil {
		if errors.Is(err, mongostore.ErrDuplicateKey) {
			return nil, apperr.New(apperr.EProjectExists)
		}

		return nil, apperr.Internal(err)
	}

	return p, nil
}

// GetProject loads id, scoped under owner (§4.2 hierarchy resolution).
func (uc *UseCase) GetProject(ctx context.Context, actor, owner *user.User, id string) (*project.Project, error) {
	if err := uc.checkOwnerAccess(actor, owner); err != nil {
		return nil, err
	}

	p, err := uc.Projects.Get(ctx, id)
	if errors.Is(err, mongostore.ErrNotFound) {
		return nil, apperr.New(apperr.EProjectNotFound)
	}

	if err != nil {
		return nil, apperr.Internal(err)
	}

	if p.OwnerID != owner.ID {
		return nil, apperr.New(apperr.EProjectNotFound)
	}

	return p, nil
}

// ListProjects lists every project owned by owner.
func (uc *UseCase) ListProjects(ctx context.Context, actor, owner *user.User, view removal.View, page Pagination) ([]project.Project, int64, error) {
	if err := uc.checkOwnerAccess(actor, owner); err != nil {
		return nil, 0, err
	}

	items, err := uc.Projects.ListByOwner(ctx, owner.ID, view, page)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	total, err := uc.Projects.CountByOwner(ctx, owner.ID, view)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	return items, total, nil
}

// UpdateProject applies in to an existing, non-deleted project.
func (uc *UseCase) UpdateProject(ctx context.Context, actor, owner *user.User, id string, in project.UpdateInput) (*project.Project, error) {
	p, err := uc.GetProject(ctx, actor, owner, id)
	if err != nil {
		return nil, err
	}

	if removal.MutationLocked(projectState(p)) {
		return nil, apperr.New(apperr.EProjectDeleted)
	}

	if in.Name != nil {
		p.Name = *in.Name
	}

	if in.Description != nil {
		p.Description = *in.Description
	}

	if in.PoolID != nil {
		p.PoolID = in.PoolID
	}

	if err := uc.Projects.Update(ctx, p); err != nil {
		if errors.Is(err, mongostore.ErrDuplicateKey) {
			return nil, apperr.New(apperr.EProjectExists)
		}

		return nil, apperr.Internal(err)
	}

	return p, nil
}

// RemoveProject applies action to project id, cascading a scheduler stop to
// every running revision under its fuzzers (§3 Ownership & cascade) without
// erasing the fuzzers themselves.
func (uc *UseCase) RemoveProject(ctx context.Context, actor, owner *user.User, id string, action removal.Action, noBackup bool, newName *string) error {
	p, err := uc.GetProject(ctx, actor, owner, id)
	if err != nil {
		return err
	}

	switch action {
	case removal.ActionDelete:
		if p.ErasureDate != nil {
			return apperr.New(apperr.EProjectDeleted)
		}

		future := time.Now().Add(uc.TrashBinRetention).UTC().Format(time.RFC3339)
		p.ErasureDate = &future
		p.NoBackup = noBackup

		uc.cascadeStopProjectRevisions(ctx, p.ID)
	case removal.ActionRestore:
		if p.ErasureDate == nil {
			return apperr.New(apperr.EProjectNotDeleted)
		}

		if newName != nil {
			p.Name = *newName
		}

		p.ErasureDate = nil
	case removal.ActionErase:
		if p.ErasureDate == nil {
			return apperr.New(apperr.EProjectNotDeleted)
		}

		erased := time.Now().UTC().Format(time.RFC3339)
		p.ErasureDate = &erased
	}

	if err := uc.Projects.Update(ctx, p); err != nil {
		if errors.Is(err, mongostore.ErrDuplicateKey) {
			return apperr.New(apperr.EProjectExists)
		}

		return apperr.Internal(err)
	}

	return nil
}

// cascadeStopProjectRevisions stops every running revision among
// projectID's fuzzers.
func (uc *UseCase) cascadeStopProjectRevisions(ctx context.Context, projectID string) {
	var ids []string
	for num := 0; ; num++ {
		fuzzers, err := uc.Fuzzers.ListByProject(ctx, projectID, removal.ViewVisible, Pagination{Num: num, Size: 200})
		if err != nil {
			uc.Logger.Errorf("cascade stop: list fuzzers for project %s failed: %v", projectID, err)
			return
		}

		for _, f := range fuzzers {
			ids = append(ids, f.ID)
		}

		if len(fuzzers) < 200 {
			break
		}
	}

	uc.stopRunningRevisions(ctx, ids)
}

// projectState derives the removal.State of a project from its erasure
// date, needed for the mutation-lockout check on PATCH.
func projectState(p *project.Project) removal.State {
	if p.ErasureDate == nil {
		return removal.Present
	}

	erasure, err := time.Parse(time.RFC3339, *p.ErasureDate)
	if err != nil {
		return removal.Erasing
	}

	return removal.StateOf(&erasure, time.Now())
}
