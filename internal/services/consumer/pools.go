package consumer

import (
	"context"

	"github.com/bondifuzz/api-gateway/internal/domain"
	"github.com/bondifuzz/api-gateway/internal/domain/removal"
	"github.com/bondifuzz/api-gateway/internal/mq"
)

// onPoolDeleted clears PoolID on every project bound to the removed pool
// and stops every revision still running under those projects, mirroring
// the ownership-cascade rule a project/fuzzer/user deletion applies (§4.5,
// §3). Never an error condition: a pool the gateway has no projects bound
// to is a no-op, not a stale delivery.
func (uc *UseCase) onPoolDeleted(ctx context.Context, m mq.PoolDeleted) error {
	projects, err := uc.Projects.ListBoundToPool(ctx, m.PoolID)
	if err != nil {
		return &mq.ConsumeMessageError{Reason: "list projects bound to pool " + m.PoolID + ": " + err.Error()}
	}

	for i := range projects {
		p := &projects[i]
		p.PoolID = nil

		if err := uc.Projects.Update(ctx, p); err != nil {
			uc.Logger.Errorf("pool_deleted: clear pool_id for project %s failed: %v", p.ID, err)
			continue
		}

		uc.stopRunningRevisions(ctx, p.ID)
	}

	return nil
}

// stopRunningRevisions stops every Running/Verifying revision among
// projectID's fuzzers, the same cascade the command package applies on
// project/fuzzer/user deletion.
func (uc *UseCase) stopRunningRevisions(ctx context.Context, projectID string) {
	var ids []string
	for num := 0; ; num++ {
		fuzzers, err := uc.Fuzzers.ListByProject(ctx, projectID, removal.ViewVisible, domain.Page{Num: num, Size: 200})
		if err != nil {
			uc.Logger.Errorf("pool_deleted: list fuzzers for project %s failed: %v", projectID, err)
			return
		}

		for _, f := range fuzzers {
			ids = append(ids, f.ID)
		}

		if len(fuzzers) < 200 {
			break
		}
	}

	if len(ids) == 0 {
		return
	}

	running, err := uc.Revisions.ListRunningByFuzzerIDs(ctx, ids)
	if err != nil {
		uc.Logger.Errorf("pool_deleted: list running revisions for project %s failed: %v", projectID, err)
		return
	}

	for i := range running {
		rev := &running[i]

		if err := uc.Scheduler.StopFuzzer(ctx, mq.StopFuzzer{FuzzerID: rev.FuzzerID, RevisionID: rev.ID}); err != nil {
			uc.Logger.Errorf("pool_deleted: publish stop_fuzzer failed for revision %s: %v", rev.ID, err)
			continue
		}

		stopped := now()
		rev.Status = rev.StopTarget()
		rev.LastStopDate = &stopped

		if err := uc.Revisions.Update(ctx, rev); err != nil {
			uc.Logger.Errorf("pool_deleted: persist revision %s failed: %v", rev.ID, err)
		}
	}
}
