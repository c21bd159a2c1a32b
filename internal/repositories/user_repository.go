package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/ossiecodes/mingle/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, exclude primitive.ObjectID, limit int64) ([]models.User, error)
	UpdateBio(ctx context.Context, id primitive.ObjectID, bio string) error
	UpdateProfilePicture(ctx context.Context, id primitive.ObjectID, reference string) error
	AddPostRef(ctx context.Context, userID, postID primitive.ObjectID) error
	RemovePostRef(ctx context.Context, userID, postID primitive.ObjectID) error
	AddStoryRef(ctx context.Context, userID, storyID primitive.ObjectID) error
	AddFollower(ctx context.Context, userID, followerID primitive.ObjectID) error
	AddFollowing(ctx context.Context, userID, followingID primitive.ObjectID) error
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

// Create inserts a new user. Emails are stored lowercased so uniqueness is
// case-insensitive.
func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	_, err := r.collection.InsertOne(ctx, user)
	return err
}

func (r *MongoUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// List returns up to limit users, optionally excluding one id (the caller
// asking for the discover list).
func (r *MongoUserRepository) List(ctx context.Context, exclude primitive.ObjectID, limit int64) ([]models.User, error) {
	filter := bson.M{}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *MongoUserRepository) UpdateBio(ctx context.Context, id primitive.ObjectID, bio string) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"bio": bio}})
}

func (r *MongoUserRepository) UpdateProfilePicture(ctx context.Context, id primitive.ObjectID, reference string) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"profilePicture": reference}})
}

func (r *MongoUserRepository) AddPostRef(ctx context.Context, userID, postID primitive.ObjectID) error {
	return r.updateOne(ctx, userID, bson.M{"$push": bson.M{"posts": postID}})
}

func (r *MongoUserRepository) RemovePostRef(ctx context.Context, userID, postID primitive.ObjectID) error {
	return r.updateOne(ctx, userID, bson.M{"$pull": bson.M{"posts": postID}})
}

func (r *MongoUserRepository) AddStoryRef(ctx context.Context, userID, storyID primitive.ObjectID) error {
	return r.updateOne(ctx, userID, bson.M{"$push": bson.M{"stories": storyID}})
}

// AddFollower adds followerID to the user's followers set. $addToSet keeps
// the operation idempotent at the document level.
func (r *MongoUserRepository) AddFollower(ctx context.Context, userID, followerID primitive.ObjectID) error {
	return r.updateOne(ctx, userID, bson.M{"$addToSet": bson.M{"followers": followerID}})
}

// AddFollowing adds followingID to the user's following set.
func (r *MongoUserRepository) AddFollowing(ctx context.Context, userID, followingID primitive.ObjectID) error {
	return r.updateOne(ctx, userID, bson.M{"$addToSet": bson.M{"following": followingID}})
}

func (r *MongoUserRepository) updateOne(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
