package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The six reaction types a post accepts.
var ReactionTypes = []string{"like", "love", "laugh", "wow", "sad", "angry"}

// IsValidReaction reports whether t is one of the six reaction types.
func IsValidReaction(t string) bool {
	for _, r := range ReactionTypes {
		if r == t {
			return true
		}
	}
	return false
}

// Reaction is embedded in a post. A user holds at most one reaction per
// post; adding a new one replaces the old.
type Reaction struct {
	Type      string       `json:"type" bson:"type"`
	User      UserSnapshot `json:"user" bson:"user"`
	CreatedAt time.Time    `json:"createdAt" bson:"createdAt"`
}

// Comment is embedded in a post, append-only.
type Comment struct {
	Text      string       `json:"text" bson:"text"`
	Author    UserSnapshot `json:"author" bson:"author"`
	Reactions []Reaction   `json:"reactions" bson:"reactions"`
	CreatedAt time.Time    `json:"createdAt" bson:"createdAt"`
}

// Post is the content document stored in MongoDB.
type Post struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Text      string             `json:"text" bson:"text"`
	Image     string             `json:"image,omitempty" bson:"image,omitempty"`
	Author    UserSnapshot       `json:"author" bson:"author"`
	Reactions []Reaction         `json:"reactions" bson:"reactions"`
	Comments  []Comment          `json:"comments" bson:"comments"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// PostView is the read-time projection of a post: derived per-type reaction
// counts plus the viewer's own reaction. None of this is stored.
type PostView struct {
	ID             primitive.ObjectID `json:"_id"`
	Text           string             `json:"text"`
	Image          string             `json:"image,omitempty"`
	Author         UserSnapshot       `json:"author"`
	Reactions      []Reaction         `json:"reactions"`
	ReactionCounts map[string]int     `json:"reactionCounts"`
	UserReaction   *string            `json:"userReaction"`
	Comments       []Comment          `json:"comments"`
	CommentCount   int                `json:"commentCount"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// View shapes the post for a given viewer. A zero viewer id yields a nil
// userReaction.
func (p *Post) View(viewerID primitive.ObjectID) PostView {
	reactions := p.Reactions
	if reactions == nil {
		reactions = []Reaction{}
	}
	comments := p.Comments
	if comments == nil {
		comments = []Comment{}
	}

	counts := make(map[string]int)
	var userReaction *string
	for _, r := range reactions {
		counts[r.Type]++
		if !viewerID.IsZero() && r.User.ID == viewerID {
			t := r.Type
			userReaction = &t
		}
	}

	return PostView{
		ID:             p.ID,
		Text:           p.Text,
		Image:          p.Image,
		Author:         p.Author,
		Reactions:      reactions,
		ReactionCounts: counts,
		UserReaction:   userReaction,
		Comments:       comments,
		CommentCount:   len(comments),
		CreatedAt:      p.CreatedAt,
	}
}

// CreatePostRequest defines the form fields for creating a post; the image
// arrives as a multipart file.
type CreatePostRequest struct {
	UserID  string `json:"userId" form:"userId" validate:"required"`
	Content string `json:"content" form:"content" validate:"required"`
}

// AddCommentRequest is the payload for commenting on a post.
type AddCommentRequest struct {
	UserID string `json:"userId" validate:"required"`
	Text   string `json:"text" validate:"required"`
}

// AddReactionRequest is the payload for reacting to a post.
type AddReactionRequest struct {
	UserID string `json:"userId" validate:"required"`
	Type   string `json:"type" validate:"required,oneof=like love laugh wow sad angry"`
}

// DeletePostRequest carries the requesting user for author checks.
type DeletePostRequest struct {
	UserID string `json:"userId" validate:"required"`
}
