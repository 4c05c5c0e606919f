// Package mongostore implements the document-database layer (§3 data
// model) as one repository per collection, each built over a small generic
// Collection[T] helper handling the CRUD/list/count shape every entity
// shares, adapted from the teacher's repository structure
// (components/ledger_two/.../portfolio.postgresql.go) onto Mongo filter
// documents instead of SQL.
package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bondifuzz/api-gateway/internal/domain/removal"
)

// ErrNotFound is returned by every Get/Update/Delete when the id does not
// resolve to a document, translated by the service layer into the
// resource-specific E_*_NOT_FOUND code.
var ErrNotFound = errors.New("mongostore: document not found")

// ErrDuplicateKey is returned on a unique-index violation (name collisions
// scoped per §3: user.name globally, project.name per owner, fuzzer.name
// per project, revision.name per fuzzer).
var ErrDuplicateKey = errors.New("mongostore: duplicate key")

// Collection wraps a *mongo.Collection with the Insert/FindByID/
// ReplaceByID/DeleteByID/Find/Count shape every repository in this package
// builds on. T must have a `bson:"_id"` string field.
type Collection[T any] struct {
	coll *mongo.Collection
}

// NewCollection opens the named collection in db.
func NewCollection[T any](db *mongo.Database, name string) *Collection[T] {
	return &Collection[T]{coll: db.Collection(name)}
}

// Raw exposes the underlying *mongo.Collection for repository methods that
// need an aggregation pipeline or an index-creation call this helper
// doesn't cover.
func (c *Collection[T]) Raw() *mongo.Collection { return c.coll }

// Insert stores a new document, translating a unique-index violation into
// ErrDuplicateKey.
func (c *Collection[T]) Insert(ctx context.Context, doc *T) error {
	_, err := c.coll.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}

	return err
}

// FindByID loads a single document by its _id.
func (c *Collection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	var doc T

	err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return &doc, nil
}

// FindOne loads a single document matching filter.
func (c *Collection[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T

	err := c.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return &doc, nil
}

// ReplaceByID overwrites a document wholesale; used by Update since every
// entity in §3 is small enough that partial-field patching brings no real
// benefit over read-modify-replace at the service layer.
func (c *Collection[T]) ReplaceByID(ctx context.Context, id string, doc *T) error {
	res, err := c.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}

	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// Upsert inserts doc, replacing any existing document with the same _id.
func (c *Collection[T]) Upsert(ctx context.Context, id string, doc *T) error {
	opts := options.Replace().SetUpsert(true)
	_, err := c.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc, opts)

	return err
}

// DeleteByID hard-deletes a document. Soft-delete (trash bin/erasing) is a
// field update via ReplaceByID, not a call to this method; it exists for
// the sweeper-style admin operations that truly remove a row (e.g. engine
// catalog entries have no soft-delete state machine).
func (c *Collection[T]) DeleteByID(ctx context.Context, id string) error {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// Find returns every document matching filter, paginated and ordered by
// _id for stable results across pages.
func (c *Collection[T]) Find(ctx context.Context, filter bson.M, skip, limit int64) ([]T, error) {
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "_id", Value: 1}})

	cur, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []T
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	return docs, nil
}

// Count returns the number of documents matching filter.
func (c *Collection[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	return c.coll.CountDocuments(ctx, filter)
}

// removalFilter builds the bson fragment selecting documents whose
// erasure_date (an RFC 3339 "Z"-suffixed string, so lexical ordering
// matches chronological ordering) satisfies the requested removal.View,
// evaluated against now. §3: Present = null, TrashBin = future, Erasing =
// <= now; Visible = Present ∪ TrashBin; All = no filter.
func removalFilter(view removal.View, now time.Time) bson.M {
	nowStr := now.UTC().Format(time.RFC3339)

	switch view {
	case removal.ViewPresent:
		return bson.M{"erasure_date": bson.M{"$in": bson.A{nil, ""}}}
	case removal.ViewTrashBin:
		return bson.M{"erasure_date": bson.M{"$gt": nowStr}}
	case removal.ViewAll:
		return bson.M{}
	default: // Visible
		return bson.M{"$or": bson.A{
			bson.M{"erasure_date": bson.M{"$in": bson.A{nil, ""}}},
			bson.M{"erasure_date": bson.M{"$gt": nowStr}},
		}}
	}
}

// erasingFilter selects documents whose erasure_date has passed — the
// removal.Erasing state, which removal.View has no constant for since no
// list/count endpoint exposes it; only the sweeper queries it directly.
func erasingFilter(now time.Time) bson.M {
	nowStr := now.UTC().Format(time.RFC3339)
	return bson.M{"erasure_date": bson.M{"$lte": nowStr, "$ne": ""}}
}

// mergeFilter shallow-merges extra keys into base, used to AND a
// removal-state fragment with a parent-scoping fragment (e.g. project_id).
func mergeFilter(base bson.M, extra bson.M) bson.M {
	out := bson.M{}
	for k, v := range base {
		out[k] = v
	}

	for k, v := range extra {
		out[k] = v
	}

	return out
}
