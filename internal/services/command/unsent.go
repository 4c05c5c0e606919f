package command

import (
	"context"

	"github.com/bondifuzz/api-gateway/internal/apperr"
	"github.com/bondifuzz/api-gateway/internal/domain/unsentmessage"
	"github.com/bondifuzz/api-gateway/internal/domain/user"
)

// ListUnsentMessages is the admin-only operator view over
// recordUnsent's log: every outbound message a producer could not deliver,
// optionally narrowed to one queue (SPEC_FULL.md §3 supplement).
func (uc *UseCase) ListUnsentMessages(ctx context.Context, actor *user.User, queue string, page Pagination) ([]unsentmessage.UnsentMessage, int64, error) {
	if !actor.IsAdmin {
		return nil, 0, apperr.New(apperr.EAccessDenied)
	}

	items, err := uc.UnsentMessages.List(ctx, queue, page)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	total, err := uc.UnsentMessages.Count(ctx, queue)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	return items, total, nil
}
