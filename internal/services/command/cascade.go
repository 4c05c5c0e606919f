package command

import (
	"context"

	"github.com/bondifuzz/api-gateway/internal/domain/removal"
	"github.com/bondifuzz/api-gateway/internal/mq"
)

// stopRunningRevisions implements the cascade rule common to every parent
// deletion (§3 "Ownership & cascade"): deleting a project, fuzzer or user
// never erases descendants but must stop any revision still Running or
// Verifying under the affected fuzzers. Failures to notify the scheduler
// are logged, not propagated — the deletion itself must still succeed.
func (uc *UseCase) stopRunningRevisions(ctx context.Context, fuzzerIDs []string) {
	if len(fuzzerIDs) == 0 {
		return
	}

	running, err := uc.Revisions.ListRunningByFuzzerIDs(ctx, fuzzerIDs)
	if err != nil {
		uc.Logger.Errorf("cascade stop: list running revisions failed: %v", err)
		return
	}

	for i := range running {
		rev := &running[i]

		msg := mq.StopFuzzer{FuzzerID: rev.FuzzerID, RevisionID: rev.ID}

		if err := uc.Scheduler.StopFuzzer(ctx, msg); err != nil {
			uc.Logger.Errorf("cascade stop: publish stop_fuzzer failed for revision %s: %v", rev.ID, err)
			uc.recordUnsent(ctx, "scheduler", msg)
			continue
		}

		stopped := now()
		rev.Status = rev.StopTarget()
		rev.LastStopDate = &stopped

		if err := uc.Revisions.Update(ctx, rev); err != nil {
			uc.Logger.Errorf("cascade stop: persist revision %s failed: %v", rev.ID, err)
		}
	}
}

// cascadeStopUserRevisions stops every running revision across every
// project userID owns, the transitive half of the §3 cascade rule invoked
// when a user account is deleted.
func (uc *UseCase) cascadeStopUserRevisions(ctx context.Context, userID string) {
	for num := 0; ; num++ {
		projects, err := uc.Projects.ListByOwner(ctx, userID, removal.ViewVisible, Pagination{Num: num, Size: 200})
		if err != nil {
			uc.Logger.Errorf("cascade stop: list projects for user %s failed: %v", userID, err)
			return
		}

		for _, p := range projects {
			uc.cascadeStopProjectRevisions(ctx, p.ID)
		}

		if len(projects) < 200 {
			return
		}
	}
}
