package command

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bondifuzz/api-gateway/internal/apperr"
	"github.com/bondifuzz/api-gateway/internal/domain/integration"
	"github.com/bondifuzz/api-gateway/internal/domain/project"
	"github.com/bondifuzz/api-gateway/internal/domain/removal"
	"github.com/bondifuzz/api-gateway/internal/store/mongostore"
)

// CreateIntegration registers a bug-tracker binding under proj, validating
// that in.Config carries exactly the variant named by in.Type (the closed
// Config sum's own invariant).
func (uc *UseCase) CreateIntegration(ctx context.Context, proj *project.Project, in integration.CreateInput) (*integration.Integration, error) {
	if removal.MutationLocked(projectState(proj)) {
		return nil, apperr.New(apperr.EProjectDeleted)
	}

	if _, err := uc.IntegrationTypes.Get(ctx, in.Type); err != nil {
		if errors.Is(err, mongostore.ErrNotFound) {
			return nil, apperr.New(apperr.EIntegrationTypeNotFound)
		}

		return nil, apperr.Internal(err)
	}

	if in.Config.Type != in.Type || !in.Config.Valid() {
		return nil, apperr.New(apperr.EIntegrationTypeMismatch)
	}

	it := &integration.Integration{
		ID:        uuid.NewString(),
		Name:      in.Name,
		ProjectID: proj.ID,
		ConfigID:  uuid.NewString(),
		Type:      in.Type,
		Config:    in.Config,
		Enabled:   in.Enabled,
		Status:    integration.StatusInProgress,
		UpdateRev: uuid.NewString(),
	}

	if err := uc.Integrations.Create(ctx, it); err != nil {
		if errors.Is(err, mongostore.ErrDuplicateKey) {
			return nil, apperr.New(apperr.EIntegrationExists)
		}

		return nil, apperr.Internal(err)
	}

	return it, nil
}

// GetIntegration loads id, scoped under proj.
func (uc *UseCase) GetIntegration(ctx context.Context, proj *project.Project, id string) (*integration.Integration, error) {
	it, err := uc.Integrations.Get(ctx, id)
	if errors.Is(err, mongostore.ErrNotFound) {
		return nil, apperr.New(apperr.EIntegrationNotFound)
	}

	if err != nil {
		return nil, apperr.Internal(err)
	}

	if it.ProjectID != proj.ID {
		return nil, apperr.New(apperr.EIntegrationNotFound)
	}

	return it, nil
}

// ListIntegrations lists every integration bound to proj.
func (uc *UseCase) ListIntegrations(ctx context.Context, proj *project.Project, page Pagination) ([]integration.Integration, int64, error) {
	items, err := uc.Integrations.ListByProject(ctx, proj.ID, page)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	total, err := uc.Integrations.CountByProject(ctx, proj.ID)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	return items, total, nil
}

// UpdateIntegration replaces an integration's config, resetting it to
// InProgress and rolling UpdateRev so any in-flight reporter callback bound
// to the previous credentials is discarded on arrival (§4.5
// IntegrationResult reconciliation).
func (uc *UseCase) UpdateIntegration(ctx context.Context, proj *project.Project, id string, in integration.CreateInput) (*integration.Integration, error) {
	it, err := uc.GetIntegration(ctx, proj, id)
	if err != nil {
		return nil, err
	}

	if in.Config.Type != in.Type || !in.Config.Valid() {
		return nil, apperr.New(apperr.EIntegrationTypeMismatch)
	}

	it.Name = in.Name
	it.Type = in.Type
	it.Config = in.Config
	it.Enabled = in.Enabled
	it.Status = integration.StatusInProgress
	it.LastError = ""
	it.UpdateRev = uuid.NewString()
	it.NumUndelivered = 0

	if err := uc.Integrations.Update(ctx, it); err != nil {
		return nil, apperr.Internal(err)
	}

	return it, nil
}

// DeleteIntegration removes the binding outright; integrations have no
// soft-delete state machine (§3 scope is limited to User/Project/
// Fuzzer/Revision).
func (uc *UseCase) DeleteIntegration(ctx context.Context, proj *project.Project, id string) error {
	if _, err := uc.GetIntegration(ctx, proj, id); err != nil {
		return err
	}

	if err := uc.Integrations.Delete(ctx, id); err != nil {
		return apperr.Internal(err)
	}

	return nil
}
