package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bondifuzz/api-gateway/internal/domain"
	"github.com/bondifuzz/api-gateway/internal/domain/removal"
	"github.com/bondifuzz/api-gateway/internal/domain/revision"
)

// RevisionRepository is the revisions collection: name unique per fuzzer (§3).
type RevisionRepository struct {
	coll *Collection[revision.Revision]
}

// NewRevisionRepository opens the revisions collection.
func NewRevisionRepository(db *mongo.Database) *RevisionRepository {
	return &RevisionRepository{coll: NewCollection[revision.Revision](db, "revisions")}
}

// Create inserts a new revision.
func (r *RevisionRepository) Create(ctx context.Context, rev *revision.Revision) error {
	return r.coll.Insert(ctx, rev)
}

// Get returns a revision by id.
func (r *RevisionRepository) Get(ctx context.Context, id string) (*revision.Revision, error) {
	return r.coll.FindByID(ctx, id)
}

// GetByName looks up a revision by name scoped to its fuzzer.
func (r *RevisionRepository) GetByName(ctx context.Context, fuzzerID, name string) (*revision.Revision, error) {
	return r.coll.FindOne(ctx, bson.M{"fuzzer_id": fuzzerID, "name": name})
}

// Update replaces the stored document for rev.ID wholesale. Every mutation
// in §4.3 (lifecycle transitions, resource patches, upload-status updates)
// goes through a read-modify-Update cycle at the service layer; this
// repository does not offer partial field updates.
func (r *RevisionRepository) Update(ctx context.Context, rev *revision.Revision) error {
	return r.coll.ReplaceByID(ctx, rev.ID, rev)
}

// Delete hard-deletes a revision row once it is fully erased.
func (r *RevisionRepository) Delete(ctx context.Context, id string) error {
	return r.coll.DeleteByID(ctx, id)
}

// ListByFuzzer returns a fuzzer's revisions matching the removal-state view, paginated.
func (r *RevisionRepository) ListByFuzzer(ctx context.Context, fuzzerID string, view removal.View, page domain.Page) ([]revision.Revision, error) {
	filter := mergeFilter(removalFilter(view, time.Now()), bson.M{"fuzzer_id": fuzzerID})
	return r.coll.Find(ctx, filter, int64(page.Offset()), int64(page.Limit()))
}

// CountByFuzzer returns the number of a fuzzer's revisions matching the removal-state view.
func (r *RevisionRepository) CountByFuzzer(ctx context.Context, fuzzerID string, view removal.View) (int64, error) {
	filter := mergeFilter(removalFilter(view, time.Now()), bson.M{"fuzzer_id": fuzzerID})
	return r.coll.Count(ctx, filter)
}

// CountByImage returns the number of present revisions built from imageID,
// the in-use check an image deletion must pass.
func (r *RevisionRepository) CountByImage(ctx context.Context, imageID string) (int64, error) {
	filter := mergeFilter(removalFilter(removal.ViewPresent, time.Now()), bson.M{"image_id": imageID})
	return r.coll.Count(ctx, filter)
}

// ListRunningByFuzzerIDs returns every revision currently Running or
// Verifying among fuzzerIDs, the source of the per-revision StopFuzzer
// fan-out on cascade deletion and on pool deletion (§4.5 PoolDeleted). On
// pool deletion fuzzerIDs is the precomputed set of fuzzer ids under that
// pool's projects, since revisions carry no pool reference of their own.
func (r *RevisionRepository) ListRunningByFuzzerIDs(ctx context.Context, fuzzerIDs []string) ([]revision.Revision, error) {
	filter := bson.M{
		"fuzzer_id": bson.M{"$in": fuzzerIDs},
		"status":    bson.M{"$in": bson.A{revision.Verifying, revision.Running}},
	}
	return r.coll.Find(ctx, filter, 0, 0)
}

// ListErasing returns every revision whose erasure_date has passed.
func (r *RevisionRepository) ListErasing(ctx context.Context, now time.Time) ([]revision.Revision, error) {
	return r.coll.Find(ctx, erasingFilter(now), 0, 0)
}
