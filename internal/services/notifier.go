package services

import (
	"github.com/ossiecodes/mingle/internal/models"
	"github.com/ossiecodes/mingle/internal/repositories"
	"github.com/ossiecodes/mingle/pkg/clock"
	"github.com/ossiecodes/mingle/pkg/metrics"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Notifier records fire-and-forget event notifications. Delivery is
// advisory: a failed enqueue is logged and counted but never surfaces to
// the operation that triggered it.
type Notifier struct {
	notifications repositories.NotificationRepository
	clock         clock.Clock
	logger        *zap.Logger
}

// NewNotifier creates a Notifier.
func NewNotifier(notifications repositories.NotificationRepository, clk clock.Clock, logger *zap.Logger) *Notifier {
	return &Notifier{notifications: notifications, clock: clk, logger: logger}
}

// Enqueue persists a notification record. Errors are swallowed.
func (n *Notifier) Enqueue(recipientID primitive.ObjectID, notifType, message string, actor *models.UserSnapshot, relatedPost primitive.ObjectID) {
	notification := &models.Notification{
		RecipientID: recipientID.Hex(),
		Type:        notifType,
		Message:     message,
		CreatedAt:   n.clock.Now(),
	}
	if actor != nil {
		notification.ActorID = actor.ID.Hex()
		notification.ActorName = actor.Name
		notification.ActorPicture = actor.ProfilePicture
	}
	if !relatedPost.IsZero() {
		notification.RelatedPostID = relatedPost.Hex()
	}

	if err := n.notifications.Create(notification); err != nil {
		metrics.NotificationFailures.Inc()
		n.logger.Error("failed to create notification",
			zap.String("type", notifType),
			zap.String("recipient", notification.RecipientID),
			zap.Error(err),
		)
	}
}

// ListRecent returns the user's 20 newest notifications, newest first.
func (n *Notifier) ListRecent(userID string) ([]models.NotificationView, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, InvalidInput("Invalid user ID.")
	}

	notifications, err := n.notifications.ListRecent(id.Hex(), 20)
	if err != nil {
		return nil, Internal(err)
	}

	views := make([]models.NotificationView, len(notifications))
	for i, notification := range notifications {
		views[i] = notification.View()
	}
	return views, nil
}
