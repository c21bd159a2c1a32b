package models

import "time"

// Notification types.
const (
	NotifFollowRequest  = "follow_request"
	NotifFollowAccepted = "follow_accepted"
	NotifNewFollower    = "new_follower"
	NotifPostReaction   = "post_reaction"
	NotifPostComment    = "post_comment"
	NotifNewMessage     = "new_message"
)

// Notification is a fire-and-forget event record (PostgreSQL). It is
// write-only from the system's perspective: nothing exposed ever flips
// IsRead back to true.
type Notification struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	RecipientID   string    `json:"recipient" gorm:"size:24;index"`
	Type          string    `json:"type" gorm:"size:30;index"`
	Message       string    `json:"message"`
	ActorID       string    `json:"-" gorm:"size:24"`
	ActorName     string    `json:"-"`
	ActorPicture  string    `json:"-"`
	RelatedPostID string    `json:"relatedPost,omitempty" gorm:"size:24"`
	IsRead        bool      `json:"read" gorm:"default:false;index"`
	CreatedAt     time.Time `json:"createdAt" gorm:"index"`
}

// NotificationActor is the actor snapshot rendered into responses.
type NotificationActor struct {
	ID             string `json:"_id"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// NotificationView nests the actor snapshot the way clients expect it.
type NotificationView struct {
	Notification
	From *NotificationActor `json:"from,omitempty"`
}

// View shapes the notification for API responses.
func (n Notification) View() NotificationView {
	view := NotificationView{Notification: n}
	if n.ActorID != "" {
		view.From = &NotificationActor{
			ID:             n.ActorID,
			Name:           n.ActorName,
			ProfilePicture: n.ActorPicture,
		}
	}
	return view
}
