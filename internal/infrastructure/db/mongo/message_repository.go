package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devlance/marketplace-api/internal/core/domain"
)

const collectionMessages = "messages"

// MessageRepository persists the append-only message log.
type MessageRepository struct {
	col *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{col: db.Collection(collectionMessages)}
}

func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, m)
	return err
}

// ListConversation returns messages between the two users in ascending
// creation order. A non-zero since limits the result to newer messages so
// pollers only pull the delta.
func (r *MessageRepository) ListConversation(ctx context.Context, userA, userB string, since time.Time) ([]*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"$or": []bson.M{
		{"sender_id": userA, "receiver_id": userB},
		{"sender_id": userB, "receiver_id": userA},
	}}
	if !since.IsZero() {
		query["created_at"] = bson.M{"$gt": since}
	}

	cursor, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []*domain.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
