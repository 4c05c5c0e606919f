package consumer

import (
	"context"
	"fmt"

	"github.com/bondifuzz/api-gateway/internal/domain/engine"
	"github.com/bondifuzz/api-gateway/internal/domain/revision"
	"github.com/bondifuzz/api-gateway/internal/domain/statistics"
	"github.com/bondifuzz/api-gateway/internal/mq"
)

// onFuzzerVerified applies the scheduler's confirmation that a Verifying
// revision's image passed its startup health check (§4.3). Any other
// current state is stale or duplicate delivery and is discarded, not
// treated as an error — the scheduler may redeliver after a restart.
func (uc *UseCase) onFuzzerVerified(ctx context.Context, m mq.FuzzerVerified) error {
	rev, err := uc.Revisions.Get(ctx, m.RevisionID)
	if err != nil {
		return &mq.ConsumeMessageError{Reason: fmt.Sprintf("revision %s not found: %v", m.RevisionID, err)}
	}

	if rev.Status != revision.Verifying {
		uc.Logger.Infof("fuzzer_verified: revision %s not Verifying (status=%s), discarding", rev.ID, rev.Status)
		return nil
	}

	rev.Status = revision.Running
	rev.IsVerified = true

	if err := uc.Revisions.Update(ctx, rev); err != nil {
		return &mq.ConsumeMessageError{Reason: fmt.Sprintf("persist revision %s: %v", rev.ID, err)}
	}

	return nil
}

// onFuzzerStopped applies the scheduler's report that a revision's pod has
// exited, voluntarily or on failure (§4.3). Applies from either Verifying
// or Running — anything else is a stale delivery.
func (uc *UseCase) onFuzzerStopped(ctx context.Context, m mq.FuzzerStopped) error {
	rev, err := uc.Revisions.Get(ctx, m.RevisionID)
	if err != nil {
		return &mq.ConsumeMessageError{Reason: fmt.Sprintf("revision %s not found: %v", m.RevisionID, err)}
	}

	if !rev.CanStop() {
		uc.Logger.Infof("fuzzer_stopped: revision %s not stoppable (status=%s), discarding", rev.ID, rev.Status)
		return nil
	}

	rev.Status = rev.StopTarget()
	rev.Health = revision.Health(m.Health)
	rev.Feedback = toFeedback(m.Scheduler, m.Agent)

	stopped := now()
	rev.LastStopDate = &stopped

	if err := uc.Revisions.Update(ctx, rev); err != nil {
		return &mq.ConsumeMessageError{Reason: fmt.Sprintf("persist revision %s: %v", rev.ID, err)}
	}

	return nil
}

// onFuzzerStatusChanged applies a Running revision's periodic health
// heartbeat (§4.3); only meaningful while the revision is actually Running.
func (uc *UseCase) onFuzzerStatusChanged(ctx context.Context, m mq.FuzzerStatusChanged) error {
	rev, err := uc.Revisions.Get(ctx, m.RevisionID)
	if err != nil {
		return &mq.ConsumeMessageError{Reason: fmt.Sprintf("revision %s not found: %v", m.RevisionID, err)}
	}

	if rev.Status != revision.Running {
		uc.Logger.Infof("fuzzer_status_changed: revision %s not Running (status=%s), discarding", rev.ID, rev.Status)
		return nil
	}

	rev.Health = revision.Health(m.Health)
	rev.Feedback = toFeedback(m.Scheduler, m.Agent)

	if err := uc.Revisions.Update(ctx, rev); err != nil {
		return &mq.ConsumeMessageError{Reason: fmt.Sprintf("persist revision %s: %v", rev.ID, err)}
	}

	return nil
}

func toFeedback(scheduler mq.FeedbackEvent, agent *mq.FeedbackEvent) *revision.Feedback {
	fb := &revision.Feedback{
		Scheduler: revision.Event{Code: scheduler.Code, Message: scheduler.Message, Details: scheduler.Details},
	}

	if agent != nil {
		fb.Agent = &revision.Event{Code: agent.Code, Message: agent.Message, Details: agent.Details}
	}

	return fb
}

// onFuzzerRunResult ingests one day's statistics and crash counter for a
// revision, discriminated by engine family (§4.5, §9 closed-switch rule).
// Statistics rows are upserted rather than accumulated: a redelivered
// message for a (revision, date) pair already recorded simply overwrites
// it. The crash counter is added to the day's existing count, so a
// redelivered message adds its CrashesFound again.
func (uc *UseCase) onFuzzerRunResult(ctx context.Context, m mq.FuzzerRunResult) error {
	rev, err := uc.Revisions.Get(ctx, m.RevisionID)
	if err != nil {
		return &mq.ConsumeMessageError{Reason: fmt.Sprintf("revision %s not found: %v", m.RevisionID, err)}
	}

	rowID := rev.ID + ":" + m.Date

	if engine.IsAFL(engine.ID(m.Engine)) {
		row := &statistics.AFL{
			Base: statistics.Base{
				ID:         rowID,
				FuzzerID:   rev.FuzzerID,
				RevisionID: rev.ID,
				Date:       m.Date,
			},
			Edges:       m.EdgeCov,
			PathsTotal:  m.PathsTotal,
			ExecSpeed:   m.ExecsPerSec,
			CyclesDone:  m.CyclesDone,
			WorkTime:    m.WorkTime,
		}

		if err := uc.Statistics.UpsertAFL(ctx, row); err != nil {
			return &mq.ConsumeMessageError{Reason: fmt.Sprintf("upsert afl stats for revision %s: %v", rev.ID, err)}
		}
	} else {
		row := &statistics.LibFuzzer{
			Base: statistics.Base{
				ID:         rowID,
				FuzzerID:   rev.FuzzerID,
				RevisionID: rev.ID,
				Date:       m.Date,
			},
			Edges:     m.EdgeCov,
			Features:  m.FeatureCov,
			Corpus:    m.CorpusEntries,
			ExecSpeed: m.ExecsPerSec,
			WorkTime:  m.WorkTime,
		}

		if err := uc.Statistics.UpsertLibFuzzer(ctx, row); err != nil {
			return &mq.ConsumeMessageError{Reason: fmt.Sprintf("upsert libfuzzer stats for revision %s: %v", rev.ID, err)}
		}
	}

	if m.CrashesFound > 0 {
		if err := uc.addCrashCount(ctx, rev.ID, rev.FuzzerID, m.Date, m.CrashesFound, 0); err != nil {
			return &mq.ConsumeMessageError{Reason: fmt.Sprintf("upsert crash counters for revision %s: %v", rev.ID, err)}
		}
	}

	return nil
}
