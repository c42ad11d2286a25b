package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devlance/marketplace-api/internal/core/domain"
	"github.com/devlance/marketplace-api/internal/core/ports"
)

const collectionPayments = "payments"

// PaymentRepository persists ledger entries. There is no update or delete:
// payments are immutable financial records.
type PaymentRepository struct {
	col *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{col: db.Collection(collectionPayments)}
}

// EnsureIndexes guards incoming entries against webhook replays: at most one
// ledger entry per billing event id, even if the Redis dedup marker is lost.
func (r *PaymentRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "external_ref", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"external_ref": bson.M{"$gt": ""}}),
	})
	return err
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, p)
	return err
}

func (r *PaymentRepository) List(ctx context.Context, filter ports.PaymentFilter) ([]*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.ParticipantID != "" {
		query["$or"] = []bson.M{
			{"payer_id": filter.ParticipantID},
			{"payee_id": filter.ParticipantID},
		}
	}

	cursor, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var payments []*domain.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// SumPaidByType aggregates Paid entries grouped by payment type. Computed
// against the rows on every call, with no cached running balance to drift.
func (r *PaymentRepository) SumPaidByType(ctx context.Context) (incoming, outgoing float64, err error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": string(domain.PaymentPaid)}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$payment_type",
			"total": bson.M{"$sum": "$amount"},
		}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Type  string  `bson:"_id"`
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, 0, err
	}

	for _, row := range rows {
		switch domain.PaymentType(row.Type) {
		case domain.PaymentIncoming:
			incoming = row.Total
		case domain.PaymentPayout:
			outgoing = row.Total
		}
	}
	return incoming, outgoing, nil
}
