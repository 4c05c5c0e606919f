package command

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bondifuzz/api-gateway/internal/apperr"
	"github.com/bondifuzz/api-gateway/internal/domain/fuzzer"
	"github.com/bondifuzz/api-gateway/internal/domain/removal"
	"github.com/bondifuzz/api-gateway/internal/domain/revision"
	"github.com/bondifuzz/api-gateway/internal/store/mongostore"
)

// CreateRevision creates a Revision under f, in Unverified state, with no
// files uploaded yet.
func (uc *UseCase) CreateRevision(ctx context.Context, f *fuzzer.Fuzzer, in revision.CreateInput) (*revision.Revision, error) {
	if removal.MutationLocked(fuzzerState(f)) {
		return nil, apperr.New(apperr.EFuzzerDeleted)
	}

	img, err := uc.Images.Get(ctx, in.ImageID)
	if errors.Is(err, mongostore.ErrNotFound) {
		return nil, apperr.New(apperr.EImageNotFound)
	}

	if err != nil {
		return nil, apperr.Internal(err)
	}

	if !img.SupportsEngine(f.Engine) {
		return nil, apperr.New(apperr.EFuzzerEngineMismatch)
	}

	r := &revision.Revision{
		ID:          uuid.NewString(),
		Description: in.Description,
		Status:      revision.Unverified,
		Health:      revision.HealthOk,
		FuzzerID:    f.ID,
		ImageID:     in.ImageID,
		Created:     now(),
		CPUUsage:    in.CPUUsage,
		RAMUsage:    in.RAMUsage,
		TmpfsSize:   in.TmpfsSize,
	}

	if err := uc.Revisions.Create(ctx, r); err != nil {
		if errors.Is(err, mongostore.ErrDuplicateKey) {
			return nil, apperr.New(apperr.ERevisionExists)
		}

		return nil, apperr.Internal(err)
	}

	return r, nil
}

// GetRevision loads id, scoped under f.
func (uc *UseCase) GetRevision(ctx context.Context, f *fuzzer.Fuzzer, id string) (*revision.Revision, error) {
	r, err := uc.Revisions.Get(ctx, id)
	if errors.Is(err, mongostore.ErrNotFound) {
		return nil, apperr.New(apperr.ERevisionNotFound)
	}

	if err != nil {
		return nil, apperr.Internal(err)
	}

	if r.FuzzerID != f.ID {
		return nil, apperr.New(apperr.ERevisionNotFound)
	}

	return r, nil
}

// ListRevisions lists every revision under f.
func (uc *UseCase) ListRevisions(ctx context.Context, f *fuzzer.Fuzzer, view removal.View, page Pagination) ([]revision.Revision, int64, error) {
	items, err := uc.Revisions.ListByFuzzer(ctx, f.ID, view, page)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	total, err := uc.Revisions.CountByFuzzer(ctx, f.ID, view)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	return items, total, nil
}

// UpdateRevision applies in to a non-deleted revision's resource limits;
// editing binaries/seeds/config metadata happens through the upload
// endpoints, not here. It does not notify the scheduler; PatchResources does.
func (uc *UseCase) UpdateRevision(ctx context.Context, f *fuzzer.Fuzzer, id string, in revision.ResourcesInput) (*revision.Revision, error) {
	r, err := uc.GetRevision(ctx, f, id)
	if err != nil {
		return nil, err
	}

	if removal.MutationLocked(revisionState(r)) {
		return nil, apperr.New(apperr.ERevisionDeleted)
	}

	if in.CPUUsage != nil {
		r.CPUUsage = *in.CPUUsage
	}

	if in.RAMUsage != nil {
		r.RAMUsage = *in.RAMUsage
	}

	if in.TmpfsSize != nil {
		r.TmpfsSize = *in.TmpfsSize
	}

	if err := uc.Revisions.Update(ctx, r); err != nil {
		return nil, apperr.Internal(err)
	}

	return r, nil
}

// RemoveRevision applies action to revision id, stopping it first if it is
// the fuzzer's active revision and currently running.
func (uc *UseCase) RemoveRevision(ctx context.Context, f *fuzzer.Fuzzer, id string, action removal.Action, noBackup bool) error {
	r, err := uc.GetRevision(ctx, f, id)
	if err != nil {
		return err
	}

	switch action {
	case removal.ActionDelete:
		if r.ErasureDate != nil {
			return apperr.New(apperr.ERevisionDeleted)
		}

		if r.CanStop() {
			uc.stopRunningRevisions(ctx, []string{f.ID})

			r, err = uc.Revisions.Get(ctx, id)
			if err != nil {
				return apperr.Internal(err)
			}
		}

		future := time.Now().Add(uc.TrashBinRetention).UTC().Format(time.RFC3339)
		r.ErasureDate = &future
		r.NoBackup = noBackup
	case removal.ActionRestore:
		if r.ErasureDate == nil {
			return apperr.New(apperr.ERevisionNotDeleted)
		}

		r.ErasureDate = nil
	case removal.ActionErase:
		if r.ErasureDate == nil {
			return apperr.New(apperr.ERevisionNotDeleted)
		}

		erased := time.Now().UTC().Format(time.RFC3339)
		r.ErasureDate = &erased
	}

	if err := uc.Revisions.Update(ctx, r); err != nil {
		return apperr.Internal(err)
	}

	return nil
}

func revisionState(r *revision.Revision) removal.State {
	if r.ErasureDate == nil {
		return removal.Present
	}

	erasure, err := time.Parse(time.RFC3339, *r.ErasureDate)
	if err != nil {
		return removal.Erasing
	}

	return removal.StateOf(&erasure, time.Now())
}
