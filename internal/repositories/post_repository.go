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

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	ListByAuthors(ctx context.Context, authorIDs []primitive.ObjectID, limit int64) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Post, error)
	PushComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) error
	ReplaceReaction(ctx context.Context, postID, userID primitive.ObjectID, reaction models.Reaction) (*models.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

func (r *MongoPostRepository) Create(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	if post.Reactions == nil {
		post.Reactions = []models.Reaction{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

func (r *MongoPostRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// ListByAuthors returns posts authored by any of the given users, newest
// first, capped at limit. This backs the feed query.
func (r *MongoPostRepository) ListByAuthors(ctx context.Context, authorIDs []primitive.ObjectID, limit int64) ([]models.Post, error) {
	filter := bson.M{"author._id": bson.M{"$in": authorIDs}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	return r.find(ctx, filter, opts)
}

// ListByAuthor returns all posts by one author, newest first.
func (r *MongoPostRepository) ListByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Post, error) {
	filter := bson.M{"author._id": authorID}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, filter, opts)
}

// PushComment appends a comment; comments are append-only.
func (r *MongoPostRepository) PushComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$push": bson.M{"comments": comment}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceReaction removes any prior reaction by the user and appends the
// new one, leaving exactly one reaction per user on the post. $pull and
// $push cannot target the same array in a single update, so this is two
// document-level atomic steps.
func (r *MongoPostRepository) ReplaceReaction(ctx context.Context, postID, userID primitive.ObjectID, reaction models.Reaction) (*models.Post, error) {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$pull": bson.M{"reactions": bson.M{"user._id": userID}}},
	)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post models.Post
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": postID},
		bson.M{"$push": bson.M{"reactions": reaction}},
		opts,
	).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *MongoPostRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoPostRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Post, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
