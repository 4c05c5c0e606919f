package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bondifuzz/api-gateway/internal/domain/statistics"
)

// StatisticsRepository holds the three per-revision reporting collections:
// one row per revision per day for each of libFuzzer stats, AFL stats and
// crash counters. Grouping into week/month buckets (§4.6) is done by the
// query service over the raw per-day rows this repository returns, since
// Mongo's $dateTrunc operates on a Date type and these rows key on the
// same RFC 3339 date string every other collection uses for erasure_date.
type StatisticsRepository struct {
	libFuzzer *Collection[statistics.LibFuzzer]
	afl       *Collection[statistics.AFL]
	crashes   *Collection[statistics.Crashes]
}

// NewStatisticsRepository opens the three statistics collections.
func NewStatisticsRepository(db *mongo.Database) *StatisticsRepository {
	return &StatisticsRepository{
		libFuzzer: NewCollection[statistics.LibFuzzer](db, "statistics_libfuzzer"),
		afl:       NewCollection[statistics.AFL](db, "statistics_afl"),
		crashes:   NewCollection[statistics.Crashes](db, "statistics_crashes"),
	}
}

// UpsertLibFuzzer replaces-or-inserts a single day's libFuzzer row, since a
// FuzzerRunResult message for a (revision, date) pair that already has a
// row updates it in place rather than accumulating duplicates (§4.5).
func (r *StatisticsRepository) UpsertLibFuzzer(ctx context.Context, s *statistics.LibFuzzer) error {
	return r.libFuzzer.Upsert(ctx, s.ID, s)
}

// UpsertAFL replaces-or-inserts a single day's AFL row.
func (r *StatisticsRepository) UpsertAFL(ctx context.Context, s *statistics.AFL) error {
	return r.afl.Upsert(ctx, s.ID, s)
}

// UpsertCrashes replaces-or-inserts a single day's crash-counter row.
func (r *StatisticsRepository) UpsertCrashes(ctx context.Context, s *statistics.Crashes) error {
	return r.crashes.Upsert(ctx, s.ID, s)
}

// ListLibFuzzerRange returns a revision's libFuzzer rows between from and
// to (inclusive RFC 3339 date strings), ordered by date.
func (r *StatisticsRepository) ListLibFuzzerRange(ctx context.Context, revisionID, from, to string) ([]statistics.LibFuzzer, error) {
	return r.libFuzzer.Find(ctx, dateRangeFilter(revisionID, from, to), 0, 0)
}

// ListAFLRange returns a revision's AFL rows between from and to.
func (r *StatisticsRepository) ListAFLRange(ctx context.Context, revisionID, from, to string) ([]statistics.AFL, error) {
	return r.afl.Find(ctx, dateRangeFilter(revisionID, from, to), 0, 0)
}

// ListCrashesRange returns a revision's crash-counter rows between from and to.
func (r *StatisticsRepository) ListCrashesRange(ctx context.Context, revisionID, from, to string) ([]statistics.Crashes, error) {
	return r.crashes.Find(ctx, dateRangeFilter(revisionID, from, to), 0, 0)
}

func dateRangeFilter(revisionID, from, to string) bson.M {
	return bson.M{
		"revision_id": revisionID,
		"date":        bson.M{"$gte": from, "$lte": to},
	}
}
