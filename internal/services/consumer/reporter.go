package consumer

import (
	"context"

	"github.com/bondifuzz/api-gateway/internal/domain/integration"
	"github.com/bondifuzz/api-gateway/internal/mq"
)

// onIntegrationResult applies a reporter's delivery acknowledgement to the
// integration it targets. UpdateRev guards against a callback that targets
// credentials the user has since overwritten: a mismatch is a stale
// delivery, logged and discarded rather than sent to the dead-letter queue
// (§4.5).
func (uc *UseCase) onIntegrationResult(ctx context.Context, m mq.IntegrationResult) error {
	in, err := uc.Integrations.GetByConfigID(ctx, m.ConfigID)
	if err != nil {
		return &mq.ConsumeMessageError{Reason: "integration for config " + m.ConfigID + " not found: " + err.Error()}
	}

	if in.UpdateRev != m.UpdateRev {
		uc.Logger.Infof("integration_result: stale update_rev for integration %s, discarding", in.ID)
		return nil
	}

	if m.Success {
		in.Status = integration.StatusSucceeded
		in.LastError = ""
	} else {
		in.Status = integration.StatusFailed
		in.LastError = m.Error
	}

	if err := uc.Integrations.Update(ctx, in); err != nil {
		return &mq.ConsumeMessageError{Reason: "persist integration " + in.ID + ": " + err.Error()}
	}

	return nil
}

// onReportUndelivered records that a previously-queued crash notification
// could not be delivered past the reporter's own retry budget, bumping the
// integration's undelivered counter for operator follow-up.
func (uc *UseCase) onReportUndelivered(ctx context.Context, m mq.ReportUndelivered) error {
	in, err := uc.Integrations.GetByConfigID(ctx, m.ConfigID)
	if err != nil {
		return &mq.ConsumeMessageError{Reason: "integration for config " + m.ConfigID + " not found: " + err.Error()}
	}

	in.NumUndelivered++

	if err := uc.Integrations.Update(ctx, in); err != nil {
		return &mq.ConsumeMessageError{Reason: "persist integration " + in.ID + ": " + err.Error()}
	}

	return nil
}
