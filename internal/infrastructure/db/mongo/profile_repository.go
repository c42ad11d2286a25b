package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devlance/marketplace-api/internal/core/domain"
)

const collectionProfiles = "profiles"

// ProfileRepository persists user profiles.
type ProfileRepository struct {
	col *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{col: db.Collection(collectionProfiles)}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, profile)
	return err
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Profile
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns non-removed profiles, optionally filtered by role and
// approval.
func (r *ProfileRepository) List(ctx context.Context, role domain.Role, approvedOnly bool) ([]*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"removed": bson.M{"$ne": true}}
	if role != "" {
		filter["role"] = string(role)
	}
	if approvedOnly {
		filter["is_approved"] = true
	}

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []*domain.Profile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *ProfileRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M(fields)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepository) SetApproval(ctx context.Context, id string, approved bool) error {
	return r.UpdateFields(ctx, id, map[string]any{"is_approved": approved})
}

// SoftRemove marks the profile removed. The row is retained because projects,
// tasks, and ledger entries keep referencing it.
func (r *ProfileRepository) SoftRemove(ctx context.Context, id string) error {
	return r.UpdateFields(ctx, id, map[string]any{"removed": true})
}
