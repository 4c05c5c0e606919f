package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bondifuzz/api-gateway/internal/domain"
	"github.com/bondifuzz/api-gateway/internal/domain/unsentmessage"
)

// UnsentMessageRepository is the unsent_messages collection: an operator
// visibility log for scheduler-bound messages whose publish to the broker
// failed.
type UnsentMessageRepository struct {
	coll *Collection[unsentmessage.UnsentMessage]
}

// NewUnsentMessageRepository opens the unsent_messages collection.
func NewUnsentMessageRepository(db *mongo.Database) *UnsentMessageRepository {
	return &UnsentMessageRepository{coll: NewCollection[unsentmessage.UnsentMessage](db, "unsent_messages")}
}

func (r *UnsentMessageRepository) Create(ctx context.Context, m *unsentmessage.UnsentMessage) error {
	return r.coll.Insert(ctx, m)
}

func (r *UnsentMessageRepository) Delete(ctx context.Context, id string) error {
	return r.coll.DeleteByID(ctx, id)
}

// ListByQueue returns every unsent message recorded for a given queue,
// ordered by id, for the admin-facing undelivered-message listing.
func (r *UnsentMessageRepository) ListByQueue(ctx context.Context, queue string) ([]unsentmessage.UnsentMessage, error) {
	return r.coll.Find(ctx, bson.M{"queue": queue}, 0, 0)
}

// filterByQueue builds the list/count filter for List/Count: every message
// when queue is empty, otherwise just that queue's.
func filterByQueue(queue string) bson.M {
	if queue == "" {
		return bson.M{}
	}

	return bson.M{"queue": queue}
}

// List returns the admin-facing undelivered-message listing, optionally
// narrowed to a single queue, paginated.
func (r *UnsentMessageRepository) List(ctx context.Context, queue string, page domain.Page) ([]unsentmessage.UnsentMessage, error) {
	return r.coll.Find(ctx, filterByQueue(queue), int64(page.Offset()), int64(page.Limit()))
}

// Count reports the total rows List would page over.
func (r *UnsentMessageRepository) Count(ctx context.Context, queue string) (int64, error) {
	return r.coll.Count(ctx, filterByQueue(queue))
}
