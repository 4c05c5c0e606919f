package command

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bondifuzz/api-gateway/internal/apperr"
	"github.com/bondifuzz/api-gateway/internal/domain/fuzzer"
	"github.com/bondifuzz/api-gateway/internal/domain/project"
	"github.com/bondifuzz/api-gateway/internal/domain/removal"
	"github.com/bondifuzz/api-gateway/internal/store/mongostore"
)

// CreateFuzzer creates a fuzzer under proj, failing 409 if proj itself is
// under mutation lockout (§4.2 hierarchy resolution: a TrashBin/Erasing
// parent rejects any mutating child operation, which creating a child is).
func (uc *UseCase) CreateFuzzer(ctx context.Context, proj *project.Project, in fuzzer.CreateInput) (*fuzzer.Fuzzer, error) {
	if removal.MutationLocked(projectState(proj)) {
		return nil, apperr.New(apperr.EProjectDeleted)
	}

	eng, err := uc.Engines.Get(ctx, in.Engine)
	if errors.Is(err, mongostore.ErrNotFound) {
		return nil, apperr.New(apperr.EEngineNotFound)
	}

	if err != nil {
		return nil, apperr.Internal(err)
	}

	if _, err := uc.Langs.Get(ctx, in.Lang); errors.Is(err, mongostore.ErrNotFound) {
		return nil, apperr.New(apperr.ELangNotFound)
	} else if err != nil {
		return nil, apperr.Internal(err)
	}

	if !eng.SupportsLang(in.Lang) {
		return nil, apperr.New(apperr.EEngineLangIncompatible)
	}

	f := &fuzzer.Fuzzer{
		ID:            uuid.NewString(),
		Name:          in.Name,
		Description:   in.Description,
		ProjectID:     proj.ID,
		Engine:        in.Engine,
		Lang:          in.Lang,
		CIIntegration: in.CIIntegration,
		Created:       now(),
	}

	if err := uc.Fuzzers.Create(ctx, f); err != nil {
		if errors.Is(err, mongostore.ErrDuplicateKey) {
			return nil, apperr.New(apperr.EFuzzerExists)
		}

		return nil, apperr.Internal(err)
	}

	return f, nil
}

// GetFuzzer loads id, scoped under proj.
func (uc *UseCase) GetFuzzer(ctx context.Context, proj *project.Project, id string) (*fuzzer.Fuzzer, error) {
	f, err := uc.Fuzzers.Get(ctx, id)
	if errors.Is(err, mongostore.ErrNotFound) {
		return nil, apperr.New(apperr.EFuzzerNotFound)
	}

	if err != nil {
		return nil, apperr.Internal(err)
	}

	if f.ProjectID != proj.ID {
		return nil, apperr.New(apperr.EFuzzerNotFound)
	}

	return f, nil
}

// ListFuzzers lists every fuzzer under proj.
func (uc *UseCase) ListFuzzers(ctx context.Context, proj *project.Project, view removal.View, page Pagination) ([]fuzzer.Fuzzer, int64, error) {
	items, err := uc.Fuzzers.ListByProject(ctx, proj.ID, view, page)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	total, err := uc.Fuzzers.CountByProject(ctx, proj.ID, view)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	return items, total, nil
}

// UpdateFuzzer applies in to an existing, non-deleted fuzzer under proj.
func (uc *UseCase) UpdateFuzzer(ctx context.Context, proj *project.Project, id string, in fuzzer.UpdateInput) (*fuzzer.Fuzzer, error) {
	f, err := uc.GetFuzzer(ctx, proj, id)
	if err != nil {
		return nil, err
	}

	if removal.MutationLocked(fuzzerState(f)) {
		return nil, apperr.New(apperr.EFuzzerDeleted)
	}

	if in.Name != nil {
		f.Name = *in.Name
	}

	if in.Description != nil {
		f.Description = *in.Description
	}

	if err := uc.Fuzzers.Update(ctx, f); err != nil {
		if errors.Is(err, mongostore.ErrDuplicateKey) {
			return nil, apperr.New(apperr.EFuzzerExists)
		}

		return nil, apperr.Internal(err)
	}

	return f, nil
}

// RemoveFuzzer applies action to fuzzer id, cascading a scheduler stop to
// any running revision under it (§3 Ownership & cascade).
func (uc *UseCase) RemoveFuzzer(ctx context.Context, proj *project.Project, id string, action removal.Action, noBackup bool, newName *string) error {
	f, err := uc.GetFuzzer(ctx, proj, id)
	if err != nil {
		return err
	}

	switch action {
	case removal.ActionDelete:
		if f.ErasureDate != nil {
			return apperr.New(apperr.EFuzzerDeleted)
		}

		future := time.Now().Add(uc.TrashBinRetention).UTC().Format(time.RFC3339)
		f.ErasureDate = &future
		f.NoBackup = noBackup

		uc.stopRunningRevisions(ctx, []string{f.ID})
	case removal.ActionRestore:
		if f.ErasureDate == nil {
			return apperr.New(apperr.EFuzzerNotDeleted)
		}

		if newName != nil {
			f.Name = *newName
		}

		f.ErasureDate = nil
	case removal.ActionErase:
		if f.ErasureDate == nil {
			return apperr.New(apperr.EFuzzerNotDeleted)
		}

		erased := time.Now().UTC().Format(time.RFC3339)
		f.ErasureDate = &erased
	}

	if err := uc.Fuzzers.Update(ctx, f); err != nil {
		if errors.Is(err, mongostore.ErrDuplicateKey) {
			return apperr.New(apperr.EFuzzerExists)
		}

		return apperr.Internal(err)
	}

	return nil
}

func fuzzerState(f *fuzzer.Fuzzer) removal.State {
	if f.ErasureDate == nil {
		return removal.Present
	}

	erasure, err := time.Parse(time.RFC3339, *f.ErasureDate)
	if err != nil {
		return removal.Erasing
	}

	return removal.StateOf(&erasure, time.Now())
}
