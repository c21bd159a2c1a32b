package repositories

import (
	"context"
	"errors"

	"github.com/ossiecodes/mingle/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FollowRequestRepository defines the interface for follow-request data operations
type FollowRequestRepository interface {
	Create(ctx context.Context, req *models.FollowRequest) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.FollowRequest, error)
	HasPending(ctx context.Context, fromID, toID primitive.ObjectID) (bool, error)
	ListPendingFor(ctx context.Context, toID primitive.ObjectID) ([]models.FollowRequest, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
}

// MongoFollowRequestRepository implements FollowRequestRepository for MongoDB
type MongoFollowRequestRepository struct {
	collection *mongo.Collection
}

// NewMongoFollowRequestRepository creates a new MongoFollowRequestRepository
func NewMongoFollowRequestRepository(db *mongo.Database) *MongoFollowRequestRepository {
	return &MongoFollowRequestRepository{collection: db.Collection("followrequests")}
}

func (r *MongoFollowRequestRepository) Create(ctx context.Context, req *models.FollowRequest) error {
	req.ID = primitive.NewObjectID()
	_, err := r.collection.InsertOne(ctx, req)
	return err
}

func (r *MongoFollowRequestRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.FollowRequest, error) {
	var req models.FollowRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// HasPending reports whether a pending request from fromID to toID exists.
// This is a check, not a constraint: two concurrent sends can still race.
func (r *MongoFollowRequestRepository) HasPending(ctx context.Context, fromID, toID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"from._id": fromID,
		"to._id":   toID,
		"status":   models.RequestPending,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListPendingFor returns pending requests targeting toID, newest first.
func (r *MongoFollowRequestRepository) ListPendingFor(ctx context.Context, toID primitive.ObjectID) ([]models.FollowRequest, error) {
	filter := bson.M{"to._id": toID, "status": models.RequestPending}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []models.FollowRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *MongoFollowRequestRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
