package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bondifuzz/api-gateway/internal/domain"
	"github.com/bondifuzz/api-gateway/internal/domain/project"
	"github.com/bondifuzz/api-gateway/internal/domain/removal"
)

// ProjectRepository is the projects collection: name unique per owner (§3).
type ProjectRepository struct {
	coll *Collection[project.Project]
}

// NewProjectRepository opens the projects collection.
func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{coll: NewCollection[project.Project](db, "projects")}
}

// Create inserts a new project.
func (r *ProjectRepository) Create(ctx context.Context, p *project.Project) error {
	return r.coll.Insert(ctx, p)
}

// Get returns a project by id.
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	return r.coll.FindByID(ctx, id)
}

// GetByName looks up a project by name scoped to its owner.
func (r *ProjectRepository) GetByName(ctx context.Context, ownerID, name string) (*project.Project, error) {
	return r.coll.FindOne(ctx, bson.M{"owner_id": ownerID, "name": name})
}

// Update replaces the stored document for p.ID wholesale.
func (r *ProjectRepository) Update(ctx context.Context, p *project.Project) error {
	return r.coll.ReplaceByID(ctx, p.ID, p)
}

// Delete hard-deletes a project row (used only by the eraser once the
// fuzzer subtree beneath it has been erased; the user-facing "delete"
// action moves it to the trash bin via Update, not this method).
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	return r.coll.DeleteByID(ctx, id)
}

// ListByOwner returns an owner's projects matching the removal-state view, paginated.
func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID string, view removal.View, page domain.Page) ([]project.Project, error) {
	filter := mergeFilter(removalFilter(view, time.Now()), bson.M{"owner_id": ownerID})
	return r.coll.Find(ctx, filter, int64(page.Offset()), int64(page.Limit()))
}

// CountByOwner returns the number of an owner's projects matching the removal-state view.
func (r *ProjectRepository) CountByOwner(ctx context.Context, ownerID string, view removal.View) (int64, error) {
	filter := mergeFilter(removalFilter(view, time.Now()), bson.M{"owner_id": ownerID})
	return r.coll.Count(ctx, filter)
}

// ListBoundToPool returns every project bound to poolID, used by the
// pool-deletion reconciler to cascade-clear pool_id (§4.5 PoolDeleted).
func (r *ProjectRepository) ListBoundToPool(ctx context.Context, poolID string) ([]project.Project, error) {
	return r.coll.Find(ctx, bson.M{"pool_id": poolID}, 0, 0)
}

// ListErasing returns every project whose erasure_date has passed, the
// sweeper's work queue for cascading hard-deletes (§3 Erasing).
func (r *ProjectRepository) ListErasing(ctx context.Context, now time.Time) ([]project.Project, error) {
	return r.coll.Find(ctx, erasingFilter(now), 0, 0)
}
