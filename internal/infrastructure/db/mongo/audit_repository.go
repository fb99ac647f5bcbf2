package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quickblog/blog-api/internal/core/ports"
)

const authEventsCollection = "auth_events"

// AuditRepository persists auth outcomes for the audit trail. Writes come
// from the async dispatcher, never from the request path.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(authEventsCollection)}
}

type mongoAuthEvent struct {
	Email     string `bson:"email"`
	Kind      string `bson:"kind"`
	Reason    string `bson:"reason,omitempty"`
	Timestamp int64  `bson:"timestamp"`
}

func (r *AuditRepository) Record(ctx context.Context, event ports.AuthEventInput) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAuthEvent{
		Email:     event.Email,
		Kind:      string(event.Kind),
		Reason:    event.Reason,
		Timestamp: event.Timestamp.Unix(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return mapStoreError("insert auth event", err)
	}
	return nil
}
