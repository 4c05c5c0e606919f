// Package consumer implements the reconcilers behind the gateway's single
// "own" queue (§4.5): one handler per inbound message kind, each loading
// its target entity by id first and never creating one from an MQ message.
// Grounded on the teacher's services/command package shape: one UseCase
// struct aggregating dependencies, one file per concern.
package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bondifuzz/api-gateway/internal/mq"
	"github.com/bondifuzz/api-gateway/internal/store/mongostore"
	"github.com/bondifuzz/api-gateway/pkg/mlog"
)

// UseCase aggregates every dependency the reconcilers need.
type UseCase struct {
	Logger mlog.Logger

	Projects     *mongostore.ProjectRepository
	Fuzzers      *mongostore.FuzzerRepository
	Revisions    *mongostore.RevisionRepository
	Crashes      *mongostore.CrashRepository
	Integrations *mongostore.IntegrationRepository
	Statistics   *mongostore.StatisticsRepository

	Scheduler        *mq.SchedulerProducer
	JiraReporter     *mq.ReporterProducer
	YoutrackReporter *mq.ReporterProducer

	// PublicSelfURL, when set, is used to build a deep link back to the
	// fuzzer a reported crash belongs to, carried on CrashNotification for
	// the reporter to embed in the ticket it files. Empty disables the link.
	PublicSelfURL string
}

// routingKey names the single own queue's message discriminator (§4.5).
const (
	keyFuzzerVerified       = "fuzzer_verified"
	keyFuzzerStopped        = "fuzzer_stopped"
	keyFuzzerStatusChanged  = "fuzzer_status_changed"
	keyFuzzerRunResult      = "fuzzer_run_result"
	keyUniqueCrashFound     = "unique_crash_found"
	keyDuplicateCrashFound  = "duplicate_crash_found"
	keyIntegrationResult    = "integration_result"
	keyReportUndelivered    = "report_undelivered"
	keyPoolDeleted          = "pool_deleted"
)

// Dispatch unmarshals body per routingKey and delegates to the matching
// reconciler. An unrecognised routing key is a *mq.ConsumeMessageError so
// the delivery lands on the dead-letter queue rather than being acked.
func (uc *UseCase) Dispatch(ctx context.Context, routingKey string, body []byte) error {
	switch routingKey {
	case keyFuzzerVerified:
		var m mq.FuzzerVerified
		if err := unmarshal(body, &m); err != nil {
			return err
		}
		return uc.onFuzzerVerified(ctx, m)

	case keyFuzzerStopped:
		var m mq.FuzzerStopped
		if err := unmarshal(body, &m); err != nil {
			return err
		}
		return uc.onFuzzerStopped(ctx, m)

	case keyFuzzerStatusChanged:
		var m mq.FuzzerStatusChanged
		if err := unmarshal(body, &m); err != nil {
			return err
		}
		return uc.onFuzzerStatusChanged(ctx, m)

	case keyFuzzerRunResult:
		var m mq.FuzzerRunResult
		if err := unmarshal(body, &m); err != nil {
			return err
		}
		return uc.onFuzzerRunResult(ctx, m)

	case keyUniqueCrashFound:
		var m mq.UniqueCrashFound
		if err := unmarshal(body, &m); err != nil {
			return err
		}
		return uc.onUniqueCrashFound(ctx, m)

	case keyDuplicateCrashFound:
		var m mq.DuplicateCrashFound
		if err := unmarshal(body, &m); err != nil {
			return err
		}
		return uc.onDuplicateCrashFound(ctx, m)

	case keyIntegrationResult:
		var m mq.IntegrationResult
		if err := unmarshal(body, &m); err != nil {
			return err
		}
		return uc.onIntegrationResult(ctx, m)

	case keyReportUndelivered:
		var m mq.ReportUndelivered
		if err := unmarshal(body, &m); err != nil {
			return err
		}
		return uc.onReportUndelivered(ctx, m)

	case keyPoolDeleted:
		var m mq.PoolDeleted
		if err := unmarshal(body, &m); err != nil {
			return err
		}
		return uc.onPoolDeleted(ctx, m)

	default:
		return &mq.ConsumeMessageError{Reason: fmt.Sprintf("unknown routing key %q", routingKey)}
	}
}

func unmarshal(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return &mq.ConsumeMessageError{Reason: "malformed body: " + err.Error()}
	}

	return nil
}

func now() string { return time.Now().UTC().Format(time.RFC3339) }
