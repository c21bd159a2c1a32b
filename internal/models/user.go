package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultBio = "This is my bio..."

// User is the account document stored in MongoDB. Followers and following
// are sets of user ids mutated only through the follow-request workflow.
type User struct {
	ID             primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	Name           string               `json:"name" bson:"name"`
	Email          string               `json:"email" bson:"email"`
	PasswordHash   string               `json:"-" bson:"passwordHash"`
	ProfilePicture string               `json:"profilePicture,omitempty" bson:"profilePicture,omitempty"`
	Bio            string               `json:"bio" bson:"bio"`
	Followers      []primitive.ObjectID `json:"followers" bson:"followers"`
	Following      []primitive.ObjectID `json:"following" bson:"following"`
	Posts          []primitive.ObjectID `json:"posts" bson:"posts"`
	Stories        []primitive.ObjectID `json:"stories" bson:"stories"`
}

// Snapshot captures the user's display fields for embedding in other documents.
func (u *User) Snapshot() UserSnapshot {
	return UserSnapshot{
		ID:             u.ID,
		Name:           u.Name,
		ProfilePicture: u.ProfilePicture,
	}
}

// IsFollowing reports whether id is in the user's following set.
func (u *User) IsFollowing(id primitive.ObjectID) bool {
	for _, f := range u.Following {
		if f == id {
			return true
		}
	}
	return false
}

// PublicUser is the client-facing account view; the password hash never
// leaves the server.
type PublicUser struct {
	ID             primitive.ObjectID   `json:"_id"`
	Name           string               `json:"name"`
	Email          string               `json:"email"`
	ProfilePicture string               `json:"profilePicture,omitempty"`
	Bio            string               `json:"bio"`
	Followers      []primitive.ObjectID `json:"followers"`
	Following      []primitive.ObjectID `json:"following"`
	Posts          int                  `json:"posts"`
}

// Public shapes the user for API responses.
func (u *User) Public() PublicUser {
	followers := u.Followers
	if followers == nil {
		followers = []primitive.ObjectID{}
	}
	following := u.Following
	if following == nil {
		following = []primitive.ObjectID{}
	}
	return PublicUser{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
		Bio:            u.Bio,
		Followers:      followers,
		Following:      following,
		Posts:          len(u.Posts),
	}
}

// Follow status values shown on the discover list.
const (
	FollowStatusFollowing = "following"
	FollowStatusPending   = "pending"
	FollowStatusNone      = "none"
)

// UserListItem is the discover-list view: counts instead of id sets, plus
// the viewer's follow status toward this user.
type UserListItem struct {
	ID             primitive.ObjectID `json:"_id"`
	Name           string             `json:"name"`
	Email          string             `json:"email"`
	ProfilePicture string             `json:"profilePicture,omitempty"`
	Bio            string             `json:"bio"`
	Followers      int                `json:"followers"`
	Following      int                `json:"following"`
	Posts          int                `json:"posts"`
	FollowStatus   string             `json:"followStatus,omitempty"`
}

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Name            string `json:"name" form:"name" validate:"required"`
	Email           string `json:"email" form:"email" validate:"required,email"`
	Password        string `json:"password" form:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" validate:"required"`
}

// LoginRequest is the payload for credential login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateBioRequest is the payload for bio updates.
type UpdateBioRequest struct {
	Bio string `json:"bio"`
}
