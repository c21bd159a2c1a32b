package services

import (
	"context"
	"time"

	"github.com/ossiecodes/mingle/internal/models"
	"github.com/ossiecodes/mingle/internal/repositories"
	"github.com/ossiecodes/mingle/pkg/clock"
	"github.com/ossiecodes/mingle/pkg/metrics"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// StoryService runs the ephemeral story workflow: uploads, the active-story
// listing, view tracking and the expiry sweep.
type StoryService struct {
	users   repositories.UserRepository
	stories repositories.StoryRepository
	clock   clock.Clock
	logger  *zap.Logger
}

// NewStoryService creates a StoryService.
func NewStoryService(users repositories.UserRepository, stories repositories.StoryRepository, clk clock.Clock, logger *zap.Logger) *StoryService {
	return &StoryService{users: users, stories: stories, clock: clk, logger: logger}
}

// Upload stores a new story expiring 24 hours after creation and appends
// its id to the author's story list.
func (s *StoryService) Upload(ctx context.Context, userID, mediaRef, mediaType string) (*models.StoryView, error) {
	if mediaRef == "" {
		return nil, InvalidInput("Story media is required.")
	}
	if mediaType != models.MediaImage && mediaType != models.MediaVideo {
		return nil, InvalidInput("Only image and video files are allowed.")
	}
	authorID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, InvalidInput("Invalid user ID.")
	}

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, storeErr(err, "User not found.")
	}

	now := s.clock.Now()
	story := &models.Story{
		Media:     mediaRef,
		MediaType: mediaType,
		Author:    author.Snapshot(),
		Viewers:   []primitive.ObjectID{},
		CreatedAt: now,
		ExpiresAt: now.Add(models.StoryTTL),
	}
	if err := s.stories.Create(ctx, story); err != nil {
		return nil, Internal(err)
	}
	if err := s.users.AddStoryRef(ctx, authorID, story.ID); err != nil {
		return nil, Internal(err)
	}

	view := story.View(authorID)
	return &view, nil
}

// ListActive returns non-expired stories by the user and everyone they
// follow, newest first, shaped for the caller.
func (s *StoryService) ListActive(ctx context.Context, userID string) ([]models.StoryView, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, InvalidInput("Invalid user ID.")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "User not found.")
	}

	authorIDs := append([]primitive.ObjectID{}, user.Following...)
	authorIDs = append(authorIDs, id)

	stories, err := s.stories.ListActiveByAuthors(ctx, authorIDs, s.clock.Now())
	if err != nil {
		return nil, Internal(err)
	}

	views := make([]models.StoryView, len(stories))
	for i := range stories {
		views[i] = stories[i].View(id)
	}
	return views, nil
}

// RecordView adds the user to the story's viewer set. Repeat views are
// no-ops.
func (s *StoryService) RecordView(ctx context.Context, userID, storyID string) error {
	uID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return InvalidInput("Invalid IDs.")
	}
	sID, err := primitive.ObjectIDFromHex(storyID)
	if err != nil {
		return InvalidInput("Invalid IDs.")
	}

	if err := s.stories.AddViewer(ctx, sID, uID); err != nil {
		return storeErr(err, "Story not found.")
	}
	return nil
}

// Sweep hard-deletes every story past its expiry. This is the only
// automatic deletion in the system.
func (s *StoryService) Sweep(ctx context.Context) (int64, error) {
	deleted, err := s.stories.DeleteExpired(ctx, s.clock.Now())
	metrics.SweepRuns.Inc()
	if err != nil {
		return 0, Internal(err)
	}
	if deleted > 0 {
		metrics.StoriesSwept.Add(float64(deleted))
		s.logger.Info("cleaned up expired stories", zap.Int64("count", deleted))
	}
	return deleted, nil
}

// RunSweeper executes Sweep on a fixed interval until ctx is cancelled.
// It holds no locks and runs independently of request traffic.
func (s *StoryService) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				s.logger.Error("story cleanup failed", zap.Error(err))
			}
		}
	}
}
