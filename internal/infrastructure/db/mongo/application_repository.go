package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devlance/marketplace-api/internal/core/domain"
)

const collectionApplications = "project_applications"

// ApplicationRepository persists project applications.
type ApplicationRepository struct {
	col *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{col: db.Collection(collectionApplications)}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *domain.Application) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, a)
	if mongo.IsDuplicateKeyError(err) {
		// Unique (project_id, developer_id) index: a concurrent apply won the
		// race.
		return domain.ErrDuplicateApplication
	}
	return err
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Application
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationRepository) FindByProjectAndDeveloper(ctx context.Context, projectID, developerID string) (*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Application
	err := r.col.FindOne(ctx, bson.M{"project_id": projectID, "developer_id": developerID}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationRepository) ListByProject(ctx context.Context, projectID string) ([]*domain.Application, error) {
	return r.list(ctx, bson.M{"project_id": projectID})
}

func (r *ApplicationRepository) ListByDeveloper(ctx context.Context, developerID string) ([]*domain.Application, error) {
	return r.list(ctx, bson.M{"developer_id": developerID})
}

func (r *ApplicationRepository) list(ctx context.Context, filter bson.M) ([]*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var applications []*domain.Application
	if err := cursor.All(ctx, &applications); err != nil {
		return nil, err
	}
	return applications, nil
}

// UpdateStatus resolves the application only when it is still in the expected
// state; a lost race maps to ErrConflict so a second concurrent decision can
// never apply.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, expected, target domain.ApplicationStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": expected},
		bson.M{"$set": bson.M{"status": target}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrConflict
	}
	return nil
}

// EnsureIndexes creates the unique pair index enforcing one application per
// (project, developer).
func (r *ApplicationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "project_id", Value: 1}, {Key: "developer_id", Value: 1}},
		Options: uniqueIndex(),
	})
	return err
}
