package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bondifuzz/api-gateway/internal/auth"
)

// SessionRepository is the cookies collection backing server-side session
// lookup (§4.1): one row per logged-in session, keyed on the session id.
type SessionRepository struct {
	coll *Collection[auth.Cookie]
}

// NewSessionRepository opens the cookies collection.
func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{coll: NewCollection[auth.Cookie](db, "cookies")}
}

func (r *SessionRepository) Create(ctx context.Context, c *auth.Cookie) error {
	return r.coll.Insert(ctx, c)
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*auth.Cookie, error) {
	return r.coll.FindByID(ctx, id)
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	return r.coll.DeleteByID(ctx, id)
}

// DeleteExpired purges every session past its expiry, the periodic sweep
// task's job over this collection.
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.coll.Raw().DeleteMany(ctx, bson.M{"expires": bson.M{"$lte": now}})
	if err != nil {
		return 0, err
	}

	return res.DeletedCount, nil
}

// LockoutRepository is the lockouts collection: a durable record of
// bruteforce lockouts, backing cross-replica correctness alongside the
// in-process FailedLoginCounter (Design Notes §9).
type LockoutRepository struct {
	coll *Collection[auth.Lockout]
}

// NewLockoutRepository opens the lockouts collection.
func NewLockoutRepository(db *mongo.Database) *LockoutRepository {
	return &LockoutRepository{coll: NewCollection[auth.Lockout](db, "lockouts")}
}

// Add inserts or refreshes a lockout row for key.
func (r *LockoutRepository) Add(ctx context.Context, l *auth.Lockout) error {
	return r.coll.Upsert(ctx, l.ID, l)
}

// Has reports whether key is currently locked out.
func (r *LockoutRepository) Has(ctx context.Context, key string) (bool, error) {
	_, err := r.coll.FindByID(ctx, key)
	switch {
	case errors.Is(err, ErrNotFound):
		return false, nil
	case err != nil:
		return false, err
	default:
		return true, nil
	}
}

// RemoveExpired purges every lockout row past its expiry.
func (r *LockoutRepository) RemoveExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.coll.Raw().DeleteMany(ctx, bson.M{"exp_date": bson.M{"$lte": now}})
	if err != nil {
		return 0, err
	}

	return res.DeletedCount, nil
}
