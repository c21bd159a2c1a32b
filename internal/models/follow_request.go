package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FollowRequest statuses. A request is created pending and transitions
// exactly once to accepted or rejected.
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

// FollowRequest records a pending or handled follow request between two
// users, embedding snapshots of both sides.
type FollowRequest struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	From      UserSnapshot       `json:"from" bson:"from"`
	To        UserSnapshot       `json:"to" bson:"to"`
	Status    string             `json:"status" bson:"status"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// SendFollowRequestRequest is the payload for sending a follow request.
type SendFollowRequestRequest struct {
	FromUserID string `json:"fromUserId" validate:"required"`
	ToUserID   string `json:"toUserId" validate:"required"`
}

// HandleFollowRequestRequest is the payload for accepting or rejecting one.
type HandleFollowRequestRequest struct {
	Action string `json:"action" validate:"required,oneof=accept reject"`
}
