package services

import (
	"context"
	"strings"

	"github.com/ossiecodes/mingle/internal/models"
	"github.com/ossiecodes/mingle/internal/repositories"
	"github.com/ossiecodes/mingle/pkg/clock"
	"github.com/ossiecodes/mingle/pkg/media"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// FeedLimit caps how many posts a feed query returns.
const FeedLimit = 50

// ContentService runs the post workflow: creation, comments, reactions,
// author-authorized deletion and the feed projection.
type ContentService struct {
	users    repositories.UserRepository
	posts    repositories.PostRepository
	notifier *Notifier
	media    media.Store
	clock    clock.Clock
	logger   *zap.Logger
}

// NewContentService creates a ContentService.
func NewContentService(users repositories.UserRepository, posts repositories.PostRepository, notifier *Notifier, store media.Store, clk clock.Clock, logger *zap.Logger) *ContentService {
	return &ContentService{users: users, posts: posts, notifier: notifier, media: store, clock: clk, logger: logger}
}

// CreatePost stores a new post and appends its id to the author's list.
// imageRef may be empty.
func (s *ContentService) CreatePost(ctx context.Context, userID, content, imageRef string) (*models.PostView, error) {
	text := strings.TrimSpace(content)
	if text == "" {
		return nil, InvalidInput("Post content is required.")
	}
	authorID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, InvalidInput("Invalid user ID.")
	}

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, storeErr(err, "User not found.")
	}

	post := &models.Post{
		Text:      text,
		Image:     imageRef,
		Author:    author.Snapshot(),
		Reactions: []models.Reaction{},
		Comments:  []models.Comment{},
		CreatedAt: s.clock.Now(),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, Internal(err)
	}
	if err := s.users.AddPostRef(ctx, authorID, post.ID); err != nil {
		return nil, Internal(err)
	}

	view := post.View(authorID)
	return &view, nil
}

// AddComment appends a comment snapshot and notifies the post's author.
// The author is notified even when commenting on their own post.
func (s *ContentService) AddComment(ctx context.Context, postID, userID, text string) (*models.Comment, int, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, 0, InvalidInput("All fields are required.")
	}
	pID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, 0, InvalidInput("Invalid IDs.")
	}
	uID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, 0, InvalidInput("Invalid IDs.")
	}

	user, err := s.users.GetByID(ctx, uID)
	if err != nil {
		return nil, 0, storeErr(err, "User or post not found.")
	}
	post, err := s.posts.GetByID(ctx, pID)
	if err != nil {
		return nil, 0, storeErr(err, "User or post not found.")
	}

	comment := models.Comment{
		Text:      trimmed,
		Author:    user.Snapshot(),
		Reactions: []models.Reaction{},
		CreatedAt: s.clock.Now(),
	}
	if err := s.posts.PushComment(ctx, pID, comment); err != nil {
		return nil, 0, storeErr(err, "User or post not found.")
	}

	userSnapshot := user.Snapshot()
	s.notifier.Enqueue(post.Author.ID, models.NotifPostComment,
		user.Name+" commented on your post", &userSnapshot, pID)

	updated, err := s.posts.GetByID(ctx, pID)
	if err != nil {
		return nil, 0, storeErr(err, "User or post not found.")
	}
	return &comment, len(updated.Comments), nil
}

// AddOrReplaceReaction sets the user's reaction on a post, replacing any
// previous one, and returns the reshaped post.
func (s *ContentService) AddOrReplaceReaction(ctx context.Context, postID, userID, reactionType string) (*models.PostView, error) {
	if !models.IsValidReaction(reactionType) {
		return nil, InvalidInput("Invalid reaction type.")
	}
	pID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, InvalidInput("Invalid IDs.")
	}
	uID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, InvalidInput("Invalid IDs.")
	}

	user, err := s.users.GetByID(ctx, uID)
	if err != nil {
		return nil, storeErr(err, "User or post not found.")
	}
	post, err := s.posts.GetByID(ctx, pID)
	if err != nil {
		return nil, storeErr(err, "User or post not found.")
	}

	reaction := models.Reaction{
		Type:      reactionType,
		User:      user.Snapshot(),
		CreatedAt: s.clock.Now(),
	}
	updated, err := s.posts.ReplaceReaction(ctx, pID, uID, reaction)
	if err != nil {
		return nil, storeErr(err, "User or post not found.")
	}

	userSnapshot := user.Snapshot()
	s.notifier.Enqueue(post.Author.ID, models.NotifPostReaction,
		user.Name+" reacted to your post", &userSnapshot, pID)

	view := updated.View(uID)
	return &view, nil
}

// DeletePost removes a post. Only the author may delete; the backing
// media and the author's post ref go with it.
func (s *ContentService) DeletePost(ctx context.Context, postID, userID string) error {
	pID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return InvalidInput("Invalid IDs.")
	}
	uID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return InvalidInput("Invalid IDs.")
	}

	post, err := s.posts.GetByID(ctx, pID)
	if err != nil {
		return storeErr(err, "Post not found.")
	}
	if post.Author.ID != uID {
		return Forbidden("Not authorized.")
	}

	if post.Image != "" {
		if err := s.media.Remove(post.Image); err != nil {
			s.logger.Warn("failed to remove post media",
				zap.String("post", pID.Hex()), zap.Error(err))
		}
	}
	if err := s.users.RemovePostRef(ctx, uID, pID); err != nil {
		return Internal(err)
	}
	if err := s.posts.Delete(ctx, pID); err != nil {
		return storeErr(err, "Post not found.")
	}
	return nil
}

// ListFeed returns posts by the user and everyone they follow, newest
// first, capped at FeedLimit, shaped for the caller.
func (s *ContentService) ListFeed(ctx context.Context, userID string) ([]models.PostView, error) {
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

	posts, err := s.posts.ListByAuthors(ctx, authorIDs, FeedLimit)
	if err != nil {
		return nil, Internal(err)
	}
	return shapePosts(posts, id), nil
}

// ListUserPosts returns all posts by one author, newest first, shaped for
// the viewer. viewerID may be empty.
func (s *ContentService) ListUserPosts(ctx context.Context, authorID, viewerID string) ([]models.PostView, error) {
	aID, err := primitive.ObjectIDFromHex(authorID)
	if err != nil {
		return nil, InvalidInput("Invalid user ID.")
	}

	var vID primitive.ObjectID
	if viewerID != "" {
		vID, _ = primitive.ObjectIDFromHex(viewerID)
	}

	posts, err := s.posts.ListByAuthor(ctx, aID)
	if err != nil {
		return nil, Internal(err)
	}
	return shapePosts(posts, vID), nil
}

func shapePosts(posts []models.Post, viewerID primitive.ObjectID) []models.PostView {
	views := make([]models.PostView, len(posts))
	for i := range posts {
		views[i] = posts[i].View(viewerID)
	}
	return views
}
