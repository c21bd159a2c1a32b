package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// UserSnapshot is a denormalized copy of a user's display fields taken at
// write time. Embedded snapshots are never refreshed: a later rename does
// not propagate to historical documents.
type UserSnapshot struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id"`
	Name           string             `json:"name" bson:"name"`
	ProfilePicture string             `json:"profilePicture,omitempty" bson:"profilePicture,omitempty"`
}
