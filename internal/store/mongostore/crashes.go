package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bondifuzz/api-gateway/internal/domain"
	"github.com/bondifuzz/api-gateway/internal/domain/crash"
)

// CrashRepository is the crashes collection, populated only by MQ
// reconciliation (§4.5), never created directly from an HTTP request.
type CrashRepository struct {
	coll *Collection[crash.Crash]
}

// NewCrashRepository opens the crashes collection.
func NewCrashRepository(db *mongo.Database) *CrashRepository {
	return &CrashRepository{coll: NewCollection[crash.Crash](db, "crashes")}
}

func (r *CrashRepository) Create(ctx context.Context, c *crash.Crash) error {
	return r.coll.Insert(ctx, c)
}

func (r *CrashRepository) Get(ctx context.Context, id string) (*crash.Crash, error) {
	return r.coll.FindByID(ctx, id)
}

// GetByInputHash looks up a crash by its revision-scoped dedup key, the
// UniqueCrashFound/DuplicateCrashFound reconciliation join (§4.5).
func (r *CrashRepository) GetByInputHash(ctx context.Context, revisionID, inputHash string) (*crash.Crash, error) {
	return r.coll.FindOne(ctx, bson.M{"revision_id": revisionID, "input_hash": inputHash})
}

func (r *CrashRepository) Update(ctx context.Context, c *crash.Crash) error {
	return r.coll.ReplaceByID(ctx, c.ID, c)
}

// ListByRevision returns a revision's crashes ordered by id, paginated.
func (r *CrashRepository) ListByRevision(ctx context.Context, revisionID string, page domain.Page) ([]crash.Crash, error) {
	filter := bson.M{"revision_id": revisionID, "archived": false}
	return r.coll.Find(ctx, filter, int64(page.Offset()), int64(page.Limit()))
}

func (r *CrashRepository) CountByRevision(ctx context.Context, revisionID string) (int64, error) {
	return r.coll.Count(ctx, bson.M{"revision_id": revisionID, "archived": false})
}

// ListByFuzzer returns every non-archived crash across a fuzzer's
// revisions, the fuzzer-level crash listing (§6 "/fuzzers/{fuzzer_id}/crashes").
func (r *CrashRepository) ListByFuzzer(ctx context.Context, fuzzerID string, page domain.Page) ([]crash.Crash, error) {
	filter := bson.M{"fuzzer_id": fuzzerID, "archived": false}
	return r.coll.Find(ctx, filter, int64(page.Offset()), int64(page.Limit()))
}

func (r *CrashRepository) CountByFuzzer(ctx context.Context, fuzzerID string) (int64, error) {
	return r.coll.Count(ctx, bson.M{"fuzzer_id": fuzzerID, "archived": false})
}

// ArchiveByFuzzer marks every crash under fuzzerID archived, called when a
// fuzzer is permanently erased so historical crash rows survive for audit
// without appearing in active listings (§3 Erasing cascade).
func (r *CrashRepository) ArchiveByFuzzer(ctx context.Context, fuzzerID string) error {
	_, err := r.coll.Raw().UpdateMany(ctx,
		bson.M{"fuzzer_id": fuzzerID},
		bson.M{"$set": bson.M{"archived": true}},
	)
	return err
}
