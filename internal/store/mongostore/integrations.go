package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bondifuzz/api-gateway/internal/domain"
	"github.com/bondifuzz/api-gateway/internal/domain/integration"
	"github.com/bondifuzz/api-gateway/internal/domain/integrationtype"
)

// IntegrationRepository is the integrations collection: name unique per project.
type IntegrationRepository struct {
	coll *Collection[integration.Integration]
}

// NewIntegrationRepository opens the integrations collection.
func NewIntegrationRepository(db *mongo.Database) *IntegrationRepository {
	return &IntegrationRepository{coll: NewCollection[integration.Integration](db, "integrations")}
}

func (r *IntegrationRepository) Create(ctx context.Context, in *integration.Integration) error {
	return r.coll.Insert(ctx, in)
}

func (r *IntegrationRepository) Get(ctx context.Context, id string) (*integration.Integration, error) {
	return r.coll.FindByID(ctx, id)
}

// GetByConfigID looks up the integration a reporter callback refers to by
// its reporter-side ConfigID, the join key IntegrationResult reconciliation
// uses since the wire message never carries the gateway's own id (§4.5).
func (r *IntegrationRepository) GetByConfigID(ctx context.Context, configID string) (*integration.Integration, error) {
	return r.coll.FindOne(ctx, bson.M{"config_id": configID})
}

func (r *IntegrationRepository) Update(ctx context.Context, in *integration.Integration) error {
	return r.coll.ReplaceByID(ctx, in.ID, in)
}

func (r *IntegrationRepository) Delete(ctx context.Context, id string) error {
	return r.coll.DeleteByID(ctx, id)
}

// ListByProject returns every integration registered to a project, paginated.
func (r *IntegrationRepository) ListByProject(ctx context.Context, projectID string, page domain.Page) ([]integration.Integration, error) {
	return r.coll.Find(ctx, bson.M{"project_id": projectID}, int64(page.Offset()), int64(page.Limit()))
}

func (r *IntegrationRepository) CountByProject(ctx context.Context, projectID string) (int64, error) {
	return r.coll.Count(ctx, bson.M{"project_id": projectID})
}

// CountByType returns the number of integrations bound to typeID, the
// in-use check an integration-type deletion must pass
// (E_INTEGRATION_TYPE_IN_USE_BY).
func (r *IntegrationRepository) CountByType(ctx context.Context, typeID integrationtype.ID) (int64, error) {
	return r.coll.Count(ctx, bson.M{"type": typeID})
}

// ListReportableByProject returns every enabled, successfully-configured
// integration for a project — the fan-out set a crash-found event reports to.
func (r *IntegrationRepository) ListReportableByProject(ctx context.Context, projectID string) ([]integration.Integration, error) {
	filter := bson.M{
		"project_id": projectID,
		"enabled":    true,
		"status":     integration.StatusSucceeded,
	}
	return r.coll.Find(ctx, filter, 0, 0)
}
