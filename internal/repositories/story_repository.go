package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/ossiecodes/mingle/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StoryRepository defines the interface for story operations
type StoryRepository interface {
	Create(ctx context.Context, story *models.Story) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Story, error)
	ListActiveByAuthors(ctx context.Context, authorIDs []primitive.ObjectID, now time.Time) ([]models.Story, error)
	AddViewer(ctx context.Context, storyID, userID primitive.ObjectID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// MongoStoryRepository implements StoryRepository for MongoDB
type MongoStoryRepository struct {
	collection *mongo.Collection
}

// NewMongoStoryRepository creates a new MongoStoryRepository
func NewMongoStoryRepository(db *mongo.Database) *MongoStoryRepository {
	return &MongoStoryRepository{collection: db.Collection("stories")}
}

func (r *MongoStoryRepository) Create(ctx context.Context, story *models.Story) error {
	story.ID = primitive.NewObjectID()
	if story.Viewers == nil {
		story.Viewers = []primitive.ObjectID{}
	}
	_, err := r.collection.InsertOne(ctx, story)
	return err
}

func (r *MongoStoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Story, error) {
	var story models.Story
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&story)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &story, nil
}

// ListActiveByAuthors returns non-expired stories by the given authors,
// newest first. Expiry is expiresAt > now.
func (r *MongoStoryRepository) ListActiveByAuthors(ctx context.Context, authorIDs []primitive.ObjectID, now time.Time) ([]models.Story, error) {
	filter := bson.M{
		"author._id": bson.M{"$in": authorIDs},
		"expiresAt":  bson.M{"$gt": now},
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stories []models.Story
	if err = cursor.All(ctx, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

// AddViewer records a view at most once per user via $addToSet.
func (r *MongoStoryRepository) AddViewer(ctx context.Context, storyID, userID primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": storyID},
		bson.M{"$addToSet": bson.M{"viewers": userID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteExpired hard-deletes every story past its expiry in one batch and
// returns the number removed.
func (r *MongoStoryRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"expiresAt": bson.M{"$lte": now}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
