package repositories

import (
	"context"

	"github.com/ossiecodes/mingle/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageRepository defines the interface for direct-message operations
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	ListBetween(ctx context.Context, userID, otherID primitive.ObjectID) ([]models.Message, error)
	MarkThreadRead(ctx context.Context, receiverID, senderID primitive.ObjectID) error
	Conversations(ctx context.Context, userID primitive.ObjectID) ([]models.Conversation, error)
}

// MongoMessageRepository implements MessageRepository for MongoDB
type MongoMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoMessageRepository creates a new MongoMessageRepository
func NewMongoMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{collection: db.Collection("messages")}
}

func (r *MongoMessageRepository) Create(ctx context.Context, message *models.Message) error {
	message.ID = primitive.NewObjectID()
	_, err := r.collection.InsertOne(ctx, message)
	return err
}

// ListBetween returns every message exchanged between the two users,
// oldest first.
func (r *MongoMessageRepository) ListBetween(ctx context.Context, userID, otherID primitive.ObjectID) ([]models.Message, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"sender._id": userID, "receiver._id": otherID},
		bson.M{"sender._id": otherID, "receiver._id": userID},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkThreadRead flips the read flag on every unread message the receiver
// has from the sender. One bulk update, not reversible.
func (r *MongoMessageRepository) MarkThreadRead(ctx context.Context, receiverID, senderID primitive.ObjectID) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"receiver._id": receiverID, "sender._id": senderID, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	return err
}

// Conversations groups the user's messages by counterpart. For each group
// the most recent message supplies the counterpart snapshot, text and
// timestamp; unreadCount counts unread messages the user received from
// that counterpart. Groups come back ordered by last message, newest first.
func (r *MongoMessageRepository) Conversations(ctx context.Context, userID primitive.ObjectID) ([]models.Conversation, error) {
	counterpartID := bson.D{{Key: "$cond", Value: bson.D{
		{Key: "if", Value: bson.D{{Key: "$eq", Value: bson.A{"$sender._id", userID}}}},
		{Key: "then", Value: "$receiver._id"},
		{Key: "else", Value: "$sender._id"},
	}}}
	counterpartField := func(field string) bson.D {
		return bson.D{{Key: "$first", Value: bson.D{{Key: "$cond", Value: bson.D{
			{Key: "if", Value: bson.D{{Key: "$eq", Value: bson.A{"$sender._id", userID}}}},
			{Key: "then", Value: "$receiver." + field},
			{Key: "else", Value: "$sender." + field},
		}}}}}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: "sender._id", Value: userID}},
			bson.D{{Key: "receiver._id", Value: userID}},
		}}}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: counterpartID},
			{Key: "name", Value: counterpartField("name")},
			{Key: "profilePicture", Value: counterpartField("profilePicture")},
			{Key: "lastMessage", Value: bson.D{{Key: "$first", Value: "$text"}}},
			{Key: "lastMessageAt", Value: bson.D{{Key: "$first", Value: "$createdAt"}}},
			{Key: "unreadCount", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$and", Value: bson.A{
					bson.D{{Key: "$eq", Value: bson.A{"$receiver._id", userID}}},
					bson.D{{Key: "$eq", Value: bson.A{"$read", false}}},
				}}},
				1,
				0,
			}}}}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "lastMessageAt", Value: -1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var conversations []models.Conversation
	if err = cursor.All(ctx, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}
