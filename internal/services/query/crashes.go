package query

import (
	"context"

	"github.com/bondifuzz/api-gateway/internal/apperr"
	"github.com/bondifuzz/api-gateway/internal/domain/crash"
	"github.com/bondifuzz/api-gateway/internal/domain/fuzzer"
	"github.com/bondifuzz/api-gateway/internal/domain/revision"
)

// ListFuzzerCrashes returns every non-archived crash across all of f's
// revisions (§6 "/fuzzers/{fuzzer_id}/crashes").
func (uc *UseCase) ListFuzzerCrashes(ctx context.Context, f *fuzzer.Fuzzer, page Pagination) ([]crash.Crash, int64, error) {
	items, err := uc.Crashes.ListByFuzzer(ctx, f.ID, page)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	total, err := uc.Crashes.CountByFuzzer(ctx, f.ID)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	return items, total, nil
}

// ListRevisionCrashes returns every non-archived crash reported against r.
func (uc *UseCase) ListRevisionCrashes(ctx context.Context, r *revision.Revision, page Pagination) ([]crash.Crash, int64, error) {
	items, err := uc.Crashes.ListByRevision(ctx, r.ID, page)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	total, err := uc.Crashes.CountByRevision(ctx, r.ID)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	return items, total, nil
}
