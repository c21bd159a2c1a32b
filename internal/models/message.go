package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a direct message document. The read flag flips to true in
// bulk when the receiver opens the thread with the sender; messages are
// never deleted.
type Message struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Text      string             `json:"text" bson:"text"`
	Sender    UserSnapshot       `json:"sender" bson:"sender"`
	Receiver  UserSnapshot       `json:"receiver" bson:"receiver"`
	Read      bool               `json:"read" bson:"read"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// Conversation is one row of the conversation list: the counterpart's
// snapshot, the most recent message, and the caller's unread count.
// Field names match the aggregation pipeline's $group output.
type Conversation struct {
	CounterpartID  primitive.ObjectID `json:"_id" bson:"_id"`
	Name           string             `json:"name" bson:"name"`
	ProfilePicture string             `json:"profilePicture,omitempty" bson:"profilePicture,omitempty"`
	LastMessage    string             `json:"lastMessage" bson:"lastMessage"`
	LastMessageAt  time.Time          `json:"lastMessageAt" bson:"lastMessageAt"`
	UnreadCount    int                `json:"unreadCount" bson:"unreadCount"`
}

// SendMessageRequest is the payload for sending a direct message.
type SendMessageRequest struct {
	SenderID   string `json:"senderId" validate:"required"`
	ReceiverID string `json:"receiverId" validate:"required"`
	Text       string `json:"text" validate:"required"`
}
