package command

import (
	"context"
	"errors"

	"github.com/bondifuzz/api-gateway/internal/apperr"
	"github.com/bondifuzz/api-gateway/internal/domain/pool"
	"github.com/bondifuzz/api-gateway/internal/domain/project"
	"github.com/bondifuzz/api-gateway/internal/poolmanager"
)

// validateNodeGroups enforces §6 PLATFORM_TYPE: a cloud deployment only
// accepts Cloud node groups (the autoscaler provisions per-node sizing); an
// on-prem or demo deployment only accepts the fixed-size Local group.
func (uc *UseCase) validateNodeGroups(groups []pool.NodeGroup) error {
	if len(groups) == 0 {
		return apperr.New(apperr.EInvalidNodeGroup)
	}

	want := pool.KindLocal
	if uc.PlatformType == "cloud" {
		want = pool.KindCloud
	}

	for _, g := range groups {
		if !g.Valid() || g.Kind != want {
			return apperr.New(apperr.EInvalidNodeGroup)
		}
	}

	return nil
}

// passthroughPoolErr maps a poolmanager server error to its opaque
// passthrough AppError (§7), or wraps anything else as internal.
func passthroughPoolErr(err error) error {
	var se *poolmanager.ServerError
	if errors.As(err, &se) {
		return apperr.Passthrough(se.StatusCode, se.ErrorCode, se.Message)
	}

	return apperr.Internal(err)
}

// CreatePool registers a pool with the external pool-manager on behalf of
// ownerID (the client account the pool is scoped to).
func (uc *UseCase) CreatePool(ctx context.Context, ownerID string, in pool.CreateInput) (*pool.Pool, error) {
	if err := uc.validateNodeGroups(in.NodeGroups); err != nil {
		return nil, err
	}

	in.OwnerID = ownerID

	p, err := uc.PoolManager.CreatePool(ctx, in)
	if err != nil {
		return nil, passthroughPoolErr(err)
	}

	return p, nil
}

// GetPool looks up a single pool by id.
func (uc *UseCase) GetPool(ctx context.Context, poolID string) (*pool.Pool, error) {
	p, err := uc.PoolManager.GetPool(ctx, poolID)
	if err != nil {
		return nil, passthroughPoolErr(err)
	}

	return p, nil
}

// ListPools returns every pool owned by ownerID.
func (uc *UseCase) ListPools(ctx context.Context, ownerID string) ([]pool.Pool, error) {
	pools, err := uc.PoolManager.ListPools(ctx, ownerID)
	if err != nil {
		return nil, passthroughPoolErr(err)
	}

	return pools, nil
}

// DeletePool tears down a pool at the pool-manager. Projects still bound to
// it keep their stale pool_id until the PoolDeleted reconciliation message
// arrives and stops their running revisions (§4.5); this call only performs
// the synchronous half of the operation.
func (uc *UseCase) DeletePool(ctx context.Context, poolID string) error {
	if err := uc.PoolManager.DeletePool(ctx, poolID); err != nil {
		return passthroughPoolErr(err)
	}

	return nil
}

// BindPool attaches poolID to proj after confirming it resolves at the
// pool-manager, the precondition §4.3 "start" later assumes (E_NO_POOL_TO_USE
// guards the unbound case; this guards against binding a pool that doesn't
// exist).
func (uc *UseCase) BindPool(ctx context.Context, proj *project.Project, poolID string) (*project.Project, error) {
	if _, err := uc.PoolManager.GetPool(ctx, poolID); err != nil {
		return nil, passthroughPoolErr(err)
	}

	proj.PoolID = &poolID

	if err := uc.Projects.Update(ctx, proj); err != nil {
		return nil, apperr.Internal(err)
	}

	return proj, nil
}

// UnbindPool clears proj's pool binding, stopping any revision currently
// running under it first (it can no longer be scheduled without a pool).
func (uc *UseCase) UnbindPool(ctx context.Context, proj *project.Project) (*project.Project, error) {
	uc.cascadeStopProjectRevisions(ctx, proj.ID)

	proj.PoolID = nil

	if err := uc.Projects.Update(ctx, proj); err != nil {
		return nil, apperr.Internal(err)
	}

	return proj, nil
}
