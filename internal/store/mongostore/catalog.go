package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bondifuzz/api-gateway/internal/domain/engine"
	"github.com/bondifuzz/api-gateway/internal/domain/image"
	"github.com/bondifuzz/api-gateway/internal/domain/integrationtype"
	"github.com/bondifuzz/api-gateway/internal/domain/lang"
)

// EngineRepository is the admin-managed engines catalog collection.
type EngineRepository struct {
	coll *Collection[engine.Engine]
}

// NewEngineRepository opens the engines collection.
func NewEngineRepository(db *mongo.Database) *EngineRepository {
	return &EngineRepository{coll: NewCollection[engine.Engine](db, "engines")}
}

func (r *EngineRepository) Create(ctx context.Context, e *engine.Engine) error {
	return r.coll.Insert(ctx, e)
}

func (r *EngineRepository) Get(ctx context.Context, id engine.ID) (*engine.Engine, error) {
	return r.coll.FindByID(ctx, string(id))
}

func (r *EngineRepository) Delete(ctx context.Context, id engine.ID) error {
	return r.coll.DeleteByID(ctx, string(id))
}

func (r *EngineRepository) List(ctx context.Context) ([]engine.Engine, error) {
	return r.coll.Find(ctx, bson.M{}, 0, 0)
}

// LangRepository is the admin-managed languages catalog collection.
type LangRepository struct {
	coll *Collection[lang.Lang]
}

// NewLangRepository opens the langs collection.
func NewLangRepository(db *mongo.Database) *LangRepository {
	return &LangRepository{coll: NewCollection[lang.Lang](db, "langs")}
}

func (r *LangRepository) Create(ctx context.Context, l *lang.Lang) error {
	return r.coll.Insert(ctx, l)
}

func (r *LangRepository) Get(ctx context.Context, id lang.ID) (*lang.Lang, error) {
	return r.coll.FindByID(ctx, string(id))
}

func (r *LangRepository) Delete(ctx context.Context, id lang.ID) error {
	return r.coll.DeleteByID(ctx, string(id))
}

func (r *LangRepository) List(ctx context.Context) ([]lang.Lang, error) {
	return r.coll.Find(ctx, bson.M{}, 0, 0)
}

// IntegrationTypeRepository is the admin-managed bug-tracker-kind catalog collection.
type IntegrationTypeRepository struct {
	coll *Collection[integrationtype.IntegrationType]
}

// NewIntegrationTypeRepository opens the integration_types collection.
func NewIntegrationTypeRepository(db *mongo.Database) *IntegrationTypeRepository {
	return &IntegrationTypeRepository{coll: NewCollection[integrationtype.IntegrationType](db, "integration_types")}
}

func (r *IntegrationTypeRepository) Get(ctx context.Context, id integrationtype.ID) (*integrationtype.IntegrationType, error) {
	return r.coll.FindByID(ctx, string(id))
}

func (r *IntegrationTypeRepository) List(ctx context.Context) ([]integrationtype.IntegrationType, error) {
	return r.coll.Find(ctx, bson.M{}, 0, 0)
}

// ImageRepository is the images collection: BuiltIn images are global,
// Custom images are scoped to the project that registered them (§3).
type ImageRepository struct {
	coll *Collection[image.Image]
}

// NewImageRepository opens the images collection.
func NewImageRepository(db *mongo.Database) *ImageRepository {
	return &ImageRepository{coll: NewCollection[image.Image](db, "images")}
}

func (r *ImageRepository) Create(ctx context.Context, img *image.Image) error {
	return r.coll.Insert(ctx, img)
}

func (r *ImageRepository) Get(ctx context.Context, id string) (*image.Image, error) {
	return r.coll.FindByID(ctx, id)
}

func (r *ImageRepository) Update(ctx context.Context, img *image.Image) error {
	return r.coll.ReplaceByID(ctx, img.ID, img)
}

func (r *ImageRepository) Delete(ctx context.Context, id string) error {
	return r.coll.DeleteByID(ctx, id)
}

// ListVisibleToProject returns every BuiltIn image plus the Custom images
// registered to projectID — the full set a revision may reference.
func (r *ImageRepository) ListVisibleToProject(ctx context.Context, projectID string) ([]image.Image, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"project_id": bson.M{"$in": bson.A{nil, ""}}},
		bson.M{"project_id": projectID},
	}}
	return r.coll.Find(ctx, filter, 0, 0)
}

func (r *ImageRepository) ListBuiltIn(ctx context.Context) ([]image.Image, error) {
	return r.coll.Find(ctx, bson.M{"project_id": bson.M{"$in": bson.A{nil, ""}}}, 0, 0)
}

// CountByEngine returns the number of images that accept engineID, the
// in-use check an engine deletion must pass (E_ENGINE_IN_USE_BY).
func (r *ImageRepository) CountByEngine(ctx context.Context, engineID engine.ID) (int64, error) {
	return r.coll.Count(ctx, bson.M{"engines": engineID})
}
