package consumer

import (
	"context"
	"fmt"

	"github.com/bondifuzz/api-gateway/internal/domain"
	"github.com/bondifuzz/api-gateway/internal/domain/crash"
	"github.com/bondifuzz/api-gateway/internal/domain/integration"
	"github.com/bondifuzz/api-gateway/internal/domain/integrationtype"
	"github.com/bondifuzz/api-gateway/internal/domain/revision"
	"github.com/bondifuzz/api-gateway/internal/domain/statistics"
	"github.com/bondifuzz/api-gateway/internal/mq"
)

// addCrashCount adds uniqueDelta/duplicateDelta to a revision's per-day
// crash counters, read-modify-write since FuzzerRunResult and the
// crash-analyzer events both contribute to the same row (§4.5).
func (uc *UseCase) addCrashCount(ctx context.Context, revisionID, fuzzerID, date string, uniqueDelta, duplicateDelta int) error {
	existing, err := uc.Statistics.ListCrashesRange(ctx, revisionID, date, date)
	if err != nil {
		return err
	}

	row := statistics.Crashes{
		Base: statistics.Base{
			ID:         revisionID + ":" + date,
			FuzzerID:   fuzzerID,
			RevisionID: revisionID,
			Date:       date,
		},
	}

	if len(existing) > 0 {
		row = existing[0]
	}

	row.Unique += uniqueDelta
	row.Duplicate += duplicateDelta

	return uc.Statistics.UpsertCrashes(ctx, &row)
}

// onUniqueCrashFound persists a never-before-seen crash, bumps the day's
// unique counter, and fans the notification out to every reportable
// integration on the fuzzer's project (§4.5).
func (uc *UseCase) onUniqueCrashFound(ctx context.Context, m mq.UniqueCrashFound) error {
	rev, err := uc.Revisions.Get(ctx, m.RevisionID)
	if err != nil {
		return &mq.ConsumeMessageError{Reason: fmt.Sprintf("revision %s not found: %v", m.RevisionID, err)}
	}

	c := &crash.Crash{
		ID:         m.RevisionID + ":" + m.InputHash,
		Created:    m.Created,
		FuzzerID:   m.FuzzerID,
		RevisionID: m.RevisionID,
		Preview:    m.Preview,
		InputID:    m.InputID,
		InputHash:  m.InputHash,
		Output:     m.Output,
		Brief:      m.Brief,
		Reproduced: m.Reproduced,
		Type:       crash.Type(m.Type),
	}

	if err := uc.Crashes.Create(ctx, c); err != nil {
		return &mq.ConsumeMessageError{Reason: fmt.Sprintf("persist crash for revision %s: %v", rev.ID, err)}
	}

	if err := uc.addCrashCount(ctx, rev.ID, rev.FuzzerID, dateOf(m.Created), 1, 0); err != nil {
		uc.Logger.Errorf("unique_crash_found: increment counter for revision %s failed: %v", rev.ID, err)
	}

	uc.fanOutCrash(ctx, rev, c, mq.CrashNotification{
		CrashID:    c.ID,
		FuzzerID:   c.FuzzerID,
		RevisionID: c.RevisionID,
		Brief:      c.Brief,
		Output:     c.Output,
		Preview:    c.Preview,
		InputHash:  c.InputHash,
		Type:       string(c.Type),
		Link:       uc.crashLink(c.FuzzerID, c.RevisionID, c.ID),
	}, true)

	return nil
}

// onDuplicateCrashFound bumps an already-known crash's duplicate count and
// notifies downstream only at the rate crash.NotifyOnDuplicate allows
// (first repeat, then every tenth).
func (uc *UseCase) onDuplicateCrashFound(ctx context.Context, m mq.DuplicateCrashFound) error {
	rev, err := uc.Revisions.Get(ctx, m.RevisionID)
	if err != nil {
		return &mq.ConsumeMessageError{Reason: fmt.Sprintf("revision %s not found: %v", m.RevisionID, err)}
	}

	c, err := uc.Crashes.GetByInputHash(ctx, m.RevisionID, m.InputHash)
	if err != nil {
		return &mq.ConsumeMessageError{Reason: fmt.Sprintf("crash %s/%s not found: %v", m.RevisionID, m.InputHash, err)}
	}

	c.DuplicateCount++

	if err := uc.Crashes.Update(ctx, c); err != nil {
		return &mq.ConsumeMessageError{Reason: fmt.Sprintf("persist crash %s: %v", c.ID, err)}
	}

	if err := uc.addCrashCount(ctx, rev.ID, rev.FuzzerID, dateOf(now()), 0, 1); err != nil {
		uc.Logger.Errorf("duplicate_crash_found: increment counter for revision %s failed: %v", rev.ID, err)
	}

	if !crash.NotifyOnDuplicate(c.DuplicateCount) {
		return nil
	}

	uc.fanOutCrash(ctx, rev, c, mq.CrashNotification{
		CrashID:    c.ID,
		FuzzerID:   c.FuzzerID,
		RevisionID: c.RevisionID,
		Brief:      c.Brief,
		Output:     c.Output,
		Preview:    c.Preview,
		InputHash:  c.InputHash,
		Type:       string(c.Type),
		Link:       uc.crashLink(c.FuzzerID, c.RevisionID, c.ID),
	}, false)

	return nil
}

// fanOutCrash notifies every reportable integration on rev's project with
// notif (ConfigID filled in per integration), and bumps NumUndelivered on
// every other enabled integration instead (§4.5). unique selects which
// reporter verb to call.
func (uc *UseCase) fanOutCrash(ctx context.Context, rev *revision.Revision, c *crash.Crash, notif mq.CrashNotification, unique bool) {
	fz, err := uc.Fuzzers.Get(ctx, rev.FuzzerID)
	if err != nil {
		uc.Logger.Errorf("crash fan-out: load fuzzer %s failed: %v", rev.FuzzerID, err)
		return
	}

	var integrations []integration.Integration
	for num := 0; ; num++ {
		batch, err := uc.Integrations.ListByProject(ctx, fz.ProjectID, domain.Page{Num: num, Size: 200})
		if err != nil {
			uc.Logger.Errorf("crash fan-out: list integrations for project %s failed: %v", fz.ProjectID, err)
			return
		}

		integrations = append(integrations, batch...)

		if len(batch) < 200 {
			break
		}
	}

	for i := range integrations {
		in := &integrations[i]

		if !in.Enabled {
			continue
		}

		if !in.Reportable() {
			in.NumUndelivered++

			if err := uc.Integrations.Update(ctx, in); err != nil {
				uc.Logger.Errorf("crash fan-out: persist undelivered count for integration %s failed: %v", in.ID, err)
			}

			continue
		}

		notif.ConfigID = in.ConfigID

		reporter := uc.reporterFor(in.Type)
		if reporter == nil {
			continue
		}

		var sendErr error
		if unique {
			sendErr = reporter.UniqueCrashFound(ctx, notif)
		} else {
			sendErr = reporter.DuplicateCrashFound(ctx, notif)
		}

		if sendErr != nil {
			uc.Logger.Errorf("crash fan-out: publish to integration %s failed: %v", in.ID, sendErr)
		}
	}
}

// crashLink builds a deep link to a crash's fuzzer/revision for the reporter
// to embed in the ticket body; returns "" when no public URL is configured.
func (uc *UseCase) crashLink(fuzzerID, revisionID, crashID string) string {
	if uc.PublicSelfURL == "" {
		return ""
	}

	return fmt.Sprintf("%s/fuzzers/%s/revisions/%s/crashes/%s", uc.PublicSelfURL, fuzzerID, revisionID, crashID)
}

func (uc *UseCase) reporterFor(t integrationtype.ID) *mq.ReporterProducer {
	switch t {
	case integrationtype.Jira:
		return uc.JiraReporter
	case integrationtype.Youtrack:
		return uc.YoutrackReporter
	default:
		return nil
	}
}

func dateOf(rfc3339 string) string {
	if len(rfc3339) >= 10 {
		return rfc3339[:10] + "T00:00:00Z"
	}

	return rfc3339
}
