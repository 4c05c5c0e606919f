package command

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bondifuzz/api-gateway/internal/apperr"
	"github.com/bondifuzz/api-gateway/internal/domain/fuzzer"
	"github.com/bondifuzz/api-gateway/internal/domain/image"
	"github.com/bondifuzz/api-gateway/internal/domain/pool"
	"github.com/bondifuzz/api-gateway/internal/domain/project"
	"github.com/bondifuzz/api-gateway/internal/domain/revision"
	"github.com/bondifuzz/api-gateway/internal/mq"
	"github.com/bondifuzz/api-gateway/internal/objectstorage"
	"github.com/bondifuzz/api-gateway/internal/poolmanager"
	"github.com/bondifuzz/api-gateway/internal/store/mongostore"
)

// resolveStartPool runs preconditions 1-2 of §4.3: the parent project must
// have a bound pool, and the external pool-manager lookup must succeed.
func (uc *UseCase) resolveStartPool(ctx context.Context, proj *project.Project) (*pool.Pool, error) {
	if !proj.HasPool() {
		return nil, apperr.New(apperr.ENoPoolToUse)
	}

	p, err := uc.PoolManager.GetPool(ctx, *proj.PoolID)
	if err != nil {
		var se *poolmanager.ServerError
		if errors.As(err, &se) {
			return nil, apperr.Passthrough(se.StatusCode, se.ErrorCode, se.Message)
		}

		return nil, apperr.Internal(err)
	}

	return p, nil
}

// checkStartPreconditions runs preconditions 3-6 of §4.3 against an
// already-resolved pool.
func (uc *UseCase) checkStartPreconditions(ctx context.Context, f *fuzzer.Fuzzer, r *revision.Revision, p *pool.Pool) error {
	if r.ErasureDate != nil {
		return apperr.New(apperr.ERevisionDeleted)
	}

	if !r.Binaries.Uploaded {
		return apperr.New(apperr.ERevisionCanNotBeChanged)
	}

	minCPU, minRAM, minTmpfs := uc.Limits.FuzzerMinCPU, uc.Limits.FuzzerMinRAM, uc.Limits.FuzzerMinTmpfs

	if r.CPUUsage < minCPU || r.RAMUsage < minRAM || r.TmpfsSize < minTmpfs {
		return apperr.New(apperr.EWrongRequest, "resource limits below platform minimum")
	}

	if !p.FitsRevision(r.CPUUsage, r.RAMUsage, r.TmpfsSize) {
		return apperr.New(apperr.EWrongRequest, "resource limits exceed pool maximum")
	}

	img, err := uc.Images.Get(ctx, r.ImageID)
	if errors.Is(err, mongostore.ErrNotFound) {
		return apperr.New(apperr.EImageNotFound)
	}

	if err != nil {
		return apperr.Internal(err)
	}

	if img.Status != image.Ready {
		return apperr.New(apperr.EImageNotReady)
	}

	if !img.SupportsEngine(f.Engine) {
		return apperr.New(apperr.EFuzzerEngineMismatch)
	}

	return nil
}

// StartRevision runs the *start* action (§4.3 transition table):
// Unverified -> Verifying, producing StartFuzzer.
func (uc *UseCase) StartRevision(ctx context.Context, proj *project.Project, f *fuzzer.Fuzzer, r *revision.Revision) (*revision.Revision, error) {
	if r.AlreadyRunning() {
		return nil, apperr.New(apperr.ERevisionAlreadyRunning)
	}

	if r.OnlyRestartable() {
		return nil, apperr.New(apperr.ERevisionCanOnlyRestart)
	}

	if !r.CanStart() {
		return nil, apperr.New(apperr.ERevisionCanNotBeChanged)
	}

	p, err := uc.resolveStartPool(ctx, proj)
	if err != nil {
		return nil, err
	}

	if err := uc.checkStartPreconditions(ctx, f, r, p); err != nil {
		return nil, err
	}

	return uc.setActiveRevision(ctx, proj, f, r, true, false)
}

// RestartRevision runs the *restart* action, admissible from Stopped,
// Verifying or Running (§4.3).
func (uc *UseCase) RestartRevision(ctx context.Context, proj *project.Project, f *fuzzer.Fuzzer, r *revision.Revision) (*revision.Revision, error) {
	if r.Status != revision.Stopped && r.Status != revision.Verifying && r.Status != revision.Running {
		return nil, apperr.New(apperr.ERevisionCanNotBeChanged)
	}

	p, err := uc.resolveStartPool(ctx, proj)
	if err != nil {
		return nil, err
	}

	if err := uc.checkStartPreconditions(ctx, f, r, p); err != nil {
		return nil, err
	}

	return uc.setActiveRevision(ctx, proj, f, r, true, true)
}

// StopRevision runs the *stop* action, admissible from Verifying or Running.
func (uc *UseCase) StopRevision(ctx context.Context, proj *project.Project, f *fuzzer.Fuzzer, r *revision.Revision) (*revision.Revision, error) {
	if !r.CanStop() {
		return nil, apperr.New(apperr.ERevisionIsNotRunning)
	}

	return uc.setActiveRevision(ctx, proj, f, r, false, false)
}

// setActiveRevision is the transactional core of §4.3 "Setting an active
// revision": stop any previously active revision, bind fuzzer.active_revision
// to r, and if starting, flip r into its next state and produce StartFuzzer;
// if stopping, flip r to its stop target and produce StopFuzzer. All
// document updates commit atomically via a multi-document transaction.
func (uc *UseCase) setActiveRevision(ctx context.Context, proj *project.Project, f *fuzzer.Fuzzer, r *revision.Revision, starting, restarting bool) (*revision.Revision, error) {
	var result *revision.Revision

	err := uc.Mongo.WithTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if f.ActiveRevisionID != nil && *f.ActiveRevisionID != r.ID {
			prev, err := uc.Revisions.Get(sessCtx, *f.ActiveRevisionID)
			if err == nil && prev.CanStop() {
				stopped := now()
				prev.Status = prev.StopTarget()
				prev.LastStopDate = &stopped

				if err := uc.Revisions.Update(sessCtx, prev); err != nil {
					return err
				}
			}
		}

		if starting {
			r.Status = r.RestartTarget()
			r.Feedback = nil
			started := now()
			r.LastStartDate = &started

			if restarting {
				r.Health = revision.HealthOk
			}
		} else {
			r.Status = r.StopTarget()
			stopped := now()
			r.LastStopDate = &stopped
		}

		if err := uc.Revisions.Update(sessCtx, r); err != nil {
			return err
		}

		f.ActiveRevisionID = &r.ID

		if err := uc.Fuzzers.Update(sessCtx, f); err != nil {
			return err
		}

		result = r

		return nil
	})

	if err != nil {
		return nil, apperr.Internal(err)
	}

	if starting {
		poolID := ""
		if proj.PoolID != nil {
			poolID = *proj.PoolID
		}

		msg := mq.StartFuzzer{
			FuzzerID:   f.ID,
			RevisionID: result.ID,
			ImageID:    result.ImageID,
			Engine:     string(f.Engine),
			Lang:       string(f.Lang),
			CPUUsage:   result.CPUUsage,
			RAMUsage:   result.RAMUsage,
			TmpfsSize:  result.TmpfsSize,
			PoolID:     poolID,
			ResetState: true,
			IsVerified: false,
		}

		if err := uc.Scheduler.StartFuzzer(ctx, msg); err != nil {
			uc.Logger.Errorf("publish start_fuzzer failed for revision %s: %v", result.ID, err)
			uc.recordUnsent(ctx, "scheduler", msg)
		}
	} else {
		msg := mq.StopFuzzer{FuzzerID: f.ID, RevisionID: result.ID}

		if err := uc.Scheduler.StopFuzzer(ctx, msg); err != nil {
			uc.Logger.Errorf("publish stop_fuzzer failed for revision %s: %v", result.ID, err)
			uc.recordUnsent(ctx, "scheduler", msg)
		}
	}

	return result, nil
}

// PatchResources applies a live CPU/RAM/tmpfs update to a running revision
// and notifies the scheduler (§4.3 doesn't forbid resizing while running;
// the scheduler applies it on its next reconciliation pass).
func (uc *UseCase) PatchResources(ctx context.Context, f *fuzzer.Fuzzer, r *revision.Revision, in revision.ResourcesInput) (*revision.Revision, error) {
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

	if r.Status == revision.Running {
		msg := mq.UpdateFuzzer{
			FuzzerID:   f.ID,
			RevisionID: r.ID,
			CPUUsage:   r.CPUUsage,
			RAMUsage:   r.RAMUsage,
			TmpfsSize:  r.TmpfsSize,
		}

		if err := uc.Scheduler.UpdateFuzzer(ctx, msg); err != nil {
			uc.Logger.Errorf("publish update_fuzzer failed for revision %s: %v", r.ID, err)
			uc.recordUnsent(ctx, "scheduler", msg)
		}
	}

	return r, nil
}

// CopyCorpus implements the §4.3 corpus-copy endpoint semantics.
func (uc *UseCase) CopyCorpus(ctx context.Context, f *fuzzer.Fuzzer, dst *revision.Revision, srcRevID string) error {
	if srcRevID == dst.ID {
		return apperr.New(apperr.ECopySourceTargetSame)
	}

	if dst.Status != revision.Unverified {
		return apperr.New(apperr.ECorpusOverwriteForbidden)
	}

	if _, err := uc.Revisions.Get(ctx, srcRevID); errors.Is(err, mongostore.ErrNotFound) {
		return apperr.New(apperr.ESourceRevisionNotFound)
	} else if err != nil {
		return apperr.Internal(err)
	}

	err := uc.Objects.CopyCorpusFiles(ctx, f.ID, srcRevID, dst.ID)
	if errors.Is(err, objectstorage.ErrObjectNotFound) {
		return apperr.New(apperr.ENoCorpusFound)
	}

	if err != nil {
		return apperr.Internal(err)
	}

	return nil
}
