package services

import (
	"context"
	"errors"

	"github.com/ossiecodes/mingle/internal/models"
	"github.com/ossiecodes/mingle/internal/repositories"
	"github.com/ossiecodes/mingle/pkg/clock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SocialService runs the follow-request workflow: pending requests,
// accept/reject transitions and the symmetric follower/following updates.
type SocialService struct {
	users    repositories.UserRepository
	requests repositories.FollowRequestRepository
	notifier *Notifier
	clock    clock.Clock
}

// NewSocialService creates a SocialService.
func NewSocialService(users repositories.UserRepository, requests repositories.FollowRequestRepository, notifier *Notifier, clk clock.Clock) *SocialService {
	return &SocialService{users: users, requests: requests, notifier: notifier, clock: clk}
}

// SendFollowRequest creates a pending request from one user to another.
// Follower/following sets are untouched until the request is accepted.
func (s *SocialService) SendFollowRequest(ctx context.Context, fromUserID, toUserID string) error {
	if fromUserID == toUserID {
		return InvalidInput("Cannot follow yourself.")
	}
	fromID, err := primitive.ObjectIDFromHex(fromUserID)
	if err != nil {
		return InvalidInput("Invalid user IDs.")
	}
	toID, err := primitive.ObjectIDFromHex(toUserID)
	if err != nil {
		return InvalidInput("Invalid user IDs.")
	}

	fromUser, err := s.users.GetByID(ctx, fromID)
	if err != nil {
		return storeErr(err, "User not found.")
	}
	toUser, err := s.users.GetByID(ctx, toID)
	if err != nil {
		return storeErr(err, "User not found.")
	}

	if fromUser.IsFollowing(toID) {
		return Conflict("Already following this user.")
	}

	// Check-then-create: two concurrent sends can still slip through and
	// leave duplicate pending requests.
	pending, err := s.requests.HasPending(ctx, fromID, toID)
	if err != nil {
		return Internal(err)
	}
	if pending {
		return Conflict("Follow request already sent.")
	}

	request := &models.FollowRequest{
		From:      fromUser.Snapshot(),
		To:        toUser.Snapshot(),
		Status:    models.RequestPending,
		CreatedAt: s.clock.Now(),
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return Internal(err)
	}

	fromSnapshot := fromUser.Snapshot()
	s.notifier.Enqueue(toID, models.NotifFollowRequest,
		fromUser.Name+" wants to follow you", &fromSnapshot, primitive.NilObjectID)
	return nil
}

// HandleFollowRequest settles a pending request. Accepting adds each side
// to the other's set; rejecting only flips the status. A request that is
// no longer pending cannot be handled again.
func (s *SocialService) HandleFollowRequest(ctx context.Context, requestID, action string) error {
	if action != "accept" && action != "reject" {
		return InvalidInput("Invalid request or action.")
	}
	id, err := primitive.ObjectIDFromHex(requestID)
	if err != nil {
		return InvalidInput("Invalid request ID.")
	}

	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return storeErr(err, "Follow request not found.")
	}
	if request.Status != models.RequestPending {
		return Conflict("Follow request already handled.")
	}

	status := models.RequestAccepted
	if action == "reject" {
		status = models.RequestRejected
	}
	if err := s.requests.UpdateStatus(ctx, id, status); err != nil {
		return storeErr(err, "Follow request not found.")
	}

	if action != "accept" {
		return nil
	}

	// Two single-document atomic updates; a reader may observe the state
	// between them.
	if err := s.users.AddFollowing(ctx, request.From.ID, request.To.ID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return Internal(err)
	}
	if err := s.users.AddFollower(ctx, request.To.ID, request.From.ID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return Internal(err)
	}

	s.notifier.Enqueue(request.From.ID, models.NotifFollowAccepted,
		request.To.Name+" accepted your follow request", &request.To, primitive.NilObjectID)
	s.notifier.Enqueue(request.To.ID, models.NotifNewFollower,
		request.From.Name+" is now following you", &request.From, primitive.NilObjectID)
	return nil
}

// ListPendingRequests returns pending requests targeting the user,
// newest first.
func (s *SocialService) ListPendingRequests(ctx context.Context, userID string) ([]models.FollowRequest, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, InvalidInput("Invalid user ID.")
	}

	requests, err := s.requests.ListPendingFor(ctx, id)
	if err != nil {
		return nil, Internal(err)
	}
	if requests == nil {
		requests = []models.FollowRequest{}
	}
	return requests, nil
}
