package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ossiecodes/mingle/internal/models"
	"github.com/ossiecodes/mingle/internal/repositories"
	"github.com/ossiecodes/mingle/pkg/hash"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccountService manages user records and credentials. There are no
// sessions or tokens; identity is the plain user id carried by requests.
type AccountService struct {
	users    repositories.UserRepository
	requests repositories.FollowRequestRepository
	hasher   hash.Hasher
}

// NewAccountService creates an AccountService.
func NewAccountService(users repositories.UserRepository, requests repositories.FollowRequestRepository, hasher hash.Hasher) *AccountService {
	return &AccountService{users: users, requests: requests, hasher: hasher}
}

// Register creates an account. pictureRef may be empty.
func (s *AccountService) Register(ctx context.Context, req models.RegisterRequest, pictureRef string) (*models.User, error) {
	if req.Password != req.ConfirmPassword {
		return nil, InvalidInput("Passwords do not match.")
	}

	_, err := s.users.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, Conflict("User already exists.")
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, Internal(err)
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, Internal(err)
	}

	user := &models.User{
		Name:           strings.TrimSpace(req.Name),
		Email:          req.Email,
		PasswordHash:   passwordHash,
		ProfilePicture: pictureRef,
		Bio:            models.DefaultBio,
		Followers:      []primitive.ObjectID{},
		Following:      []primitive.ObjectID{},
		Posts:          []primitive.ObjectID{},
		Stories:        []primitive.ObjectID{},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, Internal(err)
	}
	return user, nil
}

// Login checks credentials. Both an unknown email and a wrong password
// come back as the same Forbidden so the response does not leak which
// half was wrong.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, Forbidden("Invalid email or password.")
		}
		return nil, Internal(err)
	}
	if !s.hasher.Compare(password, user.PasswordHash) {
		return nil, Forbidden("Invalid email or password.")
	}
	return user, nil
}

// GetUser fetches one user by id.
func (s *AccountService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, InvalidInput("Invalid user ID.")
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "User not found.")
	}
	return user, nil
}

// ListUsers returns the discover list: up to 20 users with counts. When
// excludeUserID is set, that user is omitted and each entry carries the
// caller's follow status toward it.
func (s *AccountService) ListUsers(ctx context.Context, excludeUserID string) ([]models.UserListItem, error) {
	var exclude primitive.ObjectID
	var current *models.User

	if excludeUserID != "" {
		id, err := primitive.ObjectIDFromHex(excludeUserID)
		if err == nil {
			exclude = id
			current, _ = s.users.GetByID(ctx, id)
		}
	}

	users, err := s.users.List(ctx, exclude, 20)
	if err != nil {
		return nil, Internal(err)
	}

	items := make([]models.UserListItem, len(users))
	for i, user := range users {
		items[i] = models.UserListItem{
			ID:             user.ID,
			Name:           user.Name,
			Email:          user.Email,
			ProfilePicture: user.ProfilePicture,
			Bio:            user.Bio,
			Followers:      len(user.Followers),
			Following:      len(user.Following),
			Posts:          len(user.Posts),
		}
		if current != nil {
			items[i].FollowStatus = s.followStatus(ctx, current, user.ID)
		}
	}
	return items, nil
}

func (s *AccountService) followStatus(ctx context.Context, current *models.User, target primitive.ObjectID) string {
	if current.IsFollowing(target) {
		return models.FollowStatusFollowing
	}
	pending, err := s.requests.HasPending(ctx, current.ID, target)
	if err == nil && pending {
		return models.FollowStatusPending
	}
	return models.FollowStatusNone
}

// UpdateBio replaces the user's bio and returns the stored value.
// Historical snapshots elsewhere are not touched.
func (s *AccountService) UpdateBio(ctx context.Context, userID, bio string) (string, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return "", InvalidInput("Invalid user ID.")
	}
	if err := s.users.UpdateBio(ctx, id, bio); err != nil {
		return "", storeErr(err, "User not found.")
	}
	return bio, nil
}

// UpdateProfilePicture points the user at a new media reference. Snapshots
// embedded in older documents keep the previous picture.
func (s *AccountService) UpdateProfilePicture(ctx context.Context, userID, reference string) (string, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return "", InvalidInput("Invalid user ID.")
	}
	if reference == "" {
		return "", InvalidInput("Profile picture is required.")
	}
	if err := s.users.UpdateProfilePicture(ctx, id, reference); err != nil {
		return "", storeErr(err, "User not found.")
	}
	return reference, nil
}
