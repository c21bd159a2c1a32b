package services

import (
	"context"
	"strings"

	"github.com/ossiecodes/mingle/internal/models"
	"github.com/ossiecodes/mingle/internal/repositories"
	"github.com/ossiecodes/mingle/pkg/clock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageService runs direct messaging: sends, the conversation list and
// thread reads with their bulk read-flag transition.
type MessageService struct {
	users    repositories.UserRepository
	messages repositories.MessageRepository
	notifier *Notifier
	clock    clock.Clock
}

// NewMessageService creates a MessageService.
func NewMessageService(users repositories.UserRepository, messages repositories.MessageRepository, notifier *Notifier, clk clock.Clock) *MessageService {
	return &MessageService{users: users, messages: messages, notifier: notifier, clock: clk}
}

// Send creates an unread message between two distinct users and notifies
// the receiver.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID, text string) (*models.Message, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, InvalidInput("All fields are required.")
	}
	if senderID == receiverID {
		return nil, InvalidInput("Cannot send message to yourself.")
	}
	sID, err := primitive.ObjectIDFromHex(senderID)
	if err != nil {
		return nil, InvalidInput("Invalid user IDs.")
	}
	rID, err := primitive.ObjectIDFromHex(receiverID)
	if err != nil {
		return nil, InvalidInput("Invalid user IDs.")
	}

	sender, err := s.users.GetByID(ctx, sID)
	if err != nil {
		return nil, storeErr(err, "User not found.")
	}
	receiver, err := s.users.GetByID(ctx, rID)
	if err != nil {
		return nil, storeErr(err, "User not found.")
	}

	message := &models.Message{
		Text:      trimmed,
		Sender:    sender.Snapshot(),
		Receiver:  receiver.Snapshot(),
		Read:      false,
		CreatedAt: s.clock.Now(),
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, Internal(err)
	}

	senderSnapshot := sender.Snapshot()
	s.notifier.Enqueue(rID, models.NotifNewMessage,
		sender.Name+" sent you a message", &senderSnapshot, primitive.NilObjectID)
	return message, nil
}

// ListConversations groups the user's messages by counterpart: snapshot
// and last message from the most recent exchange, plus the unread count of
// messages the user received from that counterpart. Newest first.
func (s *MessageService) ListConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, InvalidInput("Invalid user ID.")
	}

	conversations, err := s.messages.Conversations(ctx, id)
	if err != nil {
		return nil, Internal(err)
	}
	if conversations == nil {
		conversations = []models.Conversation{}
	}
	return conversations, nil
}

// GetThread returns every message between the two users, oldest first,
// then marks all messages the caller received from the other side as read.
// The returned messages show their pre-transition read flags.
func (s *MessageService) GetThread(ctx context.Context, userID, otherID string) ([]models.Message, error) {
	uID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, InvalidInput("Invalid user IDs.")
	}
	oID, err := primitive.ObjectIDFromHex(otherID)
	if err != nil {
		return nil, InvalidInput("Invalid user IDs.")
	}

	messages, err := s.messages.ListBetween(ctx, uID, oID)
	if err != nil {
		return nil, Internal(err)
	}

	if err := s.messages.MarkThreadRead(ctx, uID, oID); err != nil {
		return nil, Internal(err)
	}

	if messages == nil {
		messages = []models.Message{}
	}
	return messages, nil
}
