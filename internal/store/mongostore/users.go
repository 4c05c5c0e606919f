package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bondifuzz/api-gateway/internal/domain"
	"github.com/bondifuzz/api-gateway/internal/domain/removal"
	"github.com/bondifuzz/api-gateway/internal/domain/user"
)

// UserRepository is the users collection: one document per account, name
// unique across the whole collection regardless of removal state (§3).
type UserRepository struct {
	coll *Collection[user.User]
}

// NewUserRepository opens the users collection.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: NewCollection[user.User](db, "users")}
}

// Create inserts a new user, returning ErrDuplicateKey if the name is taken.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	return r.coll.Insert(ctx, u)
}

// Get returns a user by id regardless of removal state; callers enforcing
// visibility check the returned erasure_date themselves (§4.2 admins may
// view trashed accounts).
func (r *UserRepository) Get(ctx context.Context, id string) (*user.User, error) {
	return r.coll.FindByID(ctx, id)
}

// GetByName looks up a user by its unique login name.
func (r *UserRepository) GetByName(ctx context.Context, name string) (*user.User, error) {
	return r.coll.FindOne(ctx, bson.M{"name": name})
}

// Update replaces the stored document for u.ID wholesale.
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	return r.coll.ReplaceByID(ctx, u.ID, u)
}

// List returns users matching the removal-state view, paginated.
func (r *UserRepository) List(ctx context.Context, view removal.View, page domain.Page) ([]user.User, error) {
	return r.coll.Find(ctx, removalFilter(view, time.Now()), int64(page.Offset()), int64(page.Limit()))
}

// Count returns the number of users matching the removal-state view.
func (r *UserRepository) Count(ctx context.Context, view removal.View) (int64, error) {
	return r.coll.Count(ctx, removalFilter(view, time.Now()))
}
