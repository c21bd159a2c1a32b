package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Story media kinds.
const (
	MediaImage = "image"
	MediaVideo = "video"
)

// StoryTTL is the window a story stays visible after creation.
const StoryTTL = 24 * time.Hour

// Story is a time-boxed media post stored in MongoDB. The viewer set grows
// monotonically until the expiry sweep hard-deletes the document.
type Story struct {
	ID        primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	Media     string               `json:"media" bson:"media"`
	MediaType string               `json:"mediaType" bson:"mediaType"`
	Author    UserSnapshot         `json:"author" bson:"author"`
	Viewers   []primitive.ObjectID `json:"viewers" bson:"viewers"`
	CreatedAt time.Time            `json:"createdAt" bson:"createdAt"`
	ExpiresAt time.Time            `json:"expiresAt" bson:"expiresAt"`
}

// StoryView is the client-facing shape: view count plus whether the
// current user has already seen it.
type StoryView struct {
	ID        primitive.ObjectID `json:"_id"`
	Media     string             `json:"media"`
	MediaType string             `json:"mediaType"`
	Author    UserSnapshot       `json:"author"`
	ViewCount int                `json:"viewCount"`
	Viewed    bool               `json:"viewed"`
	CreatedAt time.Time          `json:"createdAt"`
	ExpiresAt time.Time          `json:"expiresAt"`
}

// View shapes the story for a given viewer.
func (s *Story) View(viewerID primitive.ObjectID) StoryView {
	viewed := false
	if !viewerID.IsZero() {
		for _, v := range s.Viewers {
			if v == viewerID {
				viewed = true
				break
			}
		}
	}
	return StoryView{
		ID:        s.ID,
		Media:     s.Media,
		MediaType: s.MediaType,
		Author:    s.Author,
		ViewCount: len(s.Viewers),
		Viewed:    viewed,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	}
}

// ViewStoryRequest is the payload for recording a story view; the story id
// comes from the URL.
type ViewStoryRequest struct {
	UserID string `json:"userId" validate:"required"`
}
