package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bondifuzz/api-gateway/internal/domain"
	"github.com/bondifuzz/api-gateway/internal/domain/engine"
	"github.com/bondifuzz/api-gateway/internal/domain/fuzzer"
	"github.com/bondifuzz/api-gateway/internal/domain/lang"
	"github.com/bondifuzz/api-gateway/internal/domain/removal"
)

// FuzzerRepository is the fuzzers collection: name unique per project (§3).
type FuzzerRepository struct {
	coll *Collection[fuzzer.Fuzzer]
}

// NewFuzzerRepository opens the fuzzers collection.
func NewFuzzerRepository(db *mongo.Database) *FuzzerRepository {
	return &FuzzerRepository{coll: NewCollection[fuzzer.Fuzzer](db, "fuzzers")}
}

// Create inserts a new fuzzer.
func (r *FuzzerRepository) Create(ctx context.Context, f *fuzzer.Fuzzer) error {
	return r.coll.Insert(ctx, f)
}

// Get returns a fuzzer by id.
func (r *FuzzerRepository) Get(ctx context.Context, id string) (*fuzzer.Fuzzer, error) {
	return r.coll.FindByID(ctx, id)
}

// GetByName looks up a fuzzer by name scoped to its project.
func (r *FuzzerRepository) GetByName(ctx context.Context, projectID, name string) (*fuzzer.Fuzzer, error) {
	return r.coll.FindOne(ctx, bson.M{"project_id": projectID, "name": name})
}

// Update replaces the stored document for f.ID wholesale.
func (r *FuzzerRepository) Update(ctx context.Context, f *fuzzer.Fuzzer) error {
	return r.coll.ReplaceByID(ctx, f.ID, f)
}

// Delete hard-deletes a fuzzer row once its revision subtree is erased.
func (r *FuzzerRepository) Delete(ctx context.Context, id string) error {
	return r.coll.DeleteByID(ctx, id)
}

// ListByProject returns a project's fuzzers matching the removal-state view, paginated.
func (r *FuzzerRepository) ListByProject(ctx context.Context, projectID string, view removal.View, page domain.Page) ([]fuzzer.Fuzzer, error) {
	filter := mergeFilter(removalFilter(view, time.Now()), bson.M{"project_id": projectID})
	return r.coll.Find(ctx, filter, int64(page.Offset()), int64(page.Limit()))
}

// CountByProject returns the number of a project's fuzzers matching the removal-state view.
func (r *FuzzerRepository) CountByProject(ctx context.Context, projectID string, view removal.View) (int64, error) {
	filter := mergeFilter(removalFilter(view, time.Now()), bson.M{"project_id": projectID})
	return r.coll.Count(ctx, filter)
}

// CountByProjectIDs returns the number of fuzzers across several projects
// matching the removal-state view, the quota check that counts a user's
// fuzzers across their whole project hierarchy rather than per project.
func (r *FuzzerRepository) CountByProjectIDs(ctx context.Context, projectIDs []string, view removal.View) (int64, error) {
	filter := mergeFilter(removalFilter(view, time.Now()), bson.M{"project_id": bson.M{"$in": projectIDs}})
	return r.coll.Count(ctx, filter)
}

// ListErasing returns every fuzzer whose erasure_date has passed.
func (r *FuzzerRepository) ListErasing(ctx context.Context, now time.Time) ([]fuzzer.Fuzzer, error) {
	return r.coll.Find(ctx, erasingFilter(now), 0, 0)
}

// CountByEngine returns the number of present fuzzers targeting engineID,
// the in-use check an engine deletion must pass (E_ENGINE_IN_USE_BY).
func (r *FuzzerRepository) CountByEngine(ctx context.Context, engineID engine.ID) (int64, error) {
	filter := mergeFilter(removalFilter(removal.ViewPresent, time.Now()), bson.M{"engine": engineID})
	return r.coll.Count(ctx, filter)
}

// CountByLang returns the number of present fuzzers targeting langID, the
// in-use check a lang deletion must pass (E_LANG_IN_USE_BY).
func (r *FuzzerRepository) CountByLang(ctx context.Context, langID lang.ID) (int64, error) {
	filter := mergeFilter(removalFilter(removal.ViewPresent, time.Now()), bson.M{"lang": langID})
	return r.coll.Count(ctx, filter)
}
