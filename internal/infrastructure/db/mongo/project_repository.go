package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devlance/marketplace-api/internal/core/domain"
	"github.com/devlance/marketplace-api/internal/core/ports"
)

const collectionProjects = "projects"

// ProjectRepository persists projects.
type ProjectRepository struct {
	col *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{col: db.Collection(collectionProjects)}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, p)
	return err
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Project
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns a page of projects matching filter and the total count. When
// both StatusIn and IDs are set they are combined with $or (developer
// marketplace view).
func (r *ProjectRepository) List(ctx context.Context, filter ports.ProjectFilter) ([]*domain.Project, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.ClientID != "" {
		query["client_id"] = filter.ClientID
	}
	switch {
	case len(filter.StatusIn) > 0 && len(filter.IDs) > 0:
		query["$or"] = []bson.M{
			{"status": bson.M{"$in": filter.StatusIn}},
			{"_id": bson.M{"$in": filter.IDs}},
		}
	case len(filter.StatusIn) > 0:
		query["status"] = bson.M{"$in": filter.StatusIn}
	case len(filter.IDs) > 0:
		query["_id"] = bson.M{"$in": filter.IDs}
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		opts.SetSkip(int64((page - 1) * filter.Limit)).SetLimit(int64(filter.Limit))
	}

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var projects []*domain.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// UpdateStatus applies the transition only when the stored status still
// equals expected. A MatchedCount of zero means the row moved underneath the
// caller and maps to ErrConflict.
func (r *ProjectRepository) UpdateStatus(ctx context.Context, id string, expected, target domain.ProjectStatus) error {
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

// EnsureIndexes creates the indexes backing the listing filters.
func (r *ProjectRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
