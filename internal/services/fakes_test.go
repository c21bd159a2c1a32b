package services

import (
	"context"
	"errors"
	"io"
	"sort"
	"time"

	"github.com/ossiecodes/mingle/internal/models"
	"github.com/ossiecodes/mingle/internal/repositories"
	"github.com/ossiecodes/mingle/pkg/media"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// fakeClock lets tests position and advance time deterministically.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// --- users ---

type memUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memUserRepo) List(_ context.Context, exclude primitive.ObjectID, limit int64) ([]models.User, error) {
	var users []models.User
	for _, user := range r.users {
		if user.ID == exclude {
			continue
		}
		users = append(users, *user)
		if int64(len(users)) >= limit {
			break
		}
	}
	return users, nil
}

func (r *memUserRepo) UpdateBio(_ context.Context, id primitive.ObjectID, bio string) error {
	user, ok := r.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	user.Bio = bio
	return nil
}

func (r *memUserRepo) UpdateProfilePicture(_ context.Context, id primitive.ObjectID, reference string) error {
	user, ok := r.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	user.ProfilePicture = reference
	return nil
}

func (r *memUserRepo) AddPostRef(_ context.Context, userID, postID primitive.ObjectID) error {
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	user.Posts = append(user.Posts, postID)
	return nil
}

func (r *memUserRepo) RemovePostRef(_ context.Context, userID, postID primitive.ObjectID) error {
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	user.Posts = removeID(user.Posts, postID)
	return nil
}

func (r *memUserRepo) AddStoryRef(_ context.Context, userID, storyID primitive.ObjectID) error {
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	user.Stories = append(user.Stories, storyID)
	return nil
}

func (r *memUserRepo) AddFollower(_ context.Context, userID, followerID primitive.ObjectID) error {
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	user.Followers = addToSet(user.Followers, followerID)
	return nil
}

func (r *memUserRepo) AddFollowing(_ context.Context, userID, followingID primitive.ObjectID) error {
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	user.Following = addToSet(user.Following, followingID)
	return nil
}

func addToSet(set []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for _, existing := range set {
		if existing == id {
			return set
		}
	}
	return append(set, id)
}

func removeID(set []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := set[:0]
	for _, existing := range set {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

// --- follow requests ---

type memFollowRequestRepo struct {
	requests map[primitive.ObjectID]*models.FollowRequest
}

func newMemFollowRequestRepo() *memFollowRequestRepo {
	return &memFollowRequestRepo{requests: make(map[primitive.ObjectID]*models.FollowRequest)}
}

func (r *memFollowRequestRepo) Create(_ context.Context, req *models.FollowRequest) error {
	req.ID = primitive.NewObjectID()
	copied := *req
	r.requests[req.ID] = &copied
	return nil
}

func (r *memFollowRequestRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.FollowRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *req
	return &copied, nil
}

func (r *memFollowRequestRepo) HasPending(_ context.Context, fromID, toID primitive.ObjectID) (bool, error) {
	for _, req := range r.requests {
		if req.From.ID == fromID && req.To.ID == toID && req.Status == models.RequestPending {
			return true, nil
		}
	}
	return false, nil
}

func (r *memFollowRequestRepo) ListPendingFor(_ context.Context, toID primitive.ObjectID) ([]models.FollowRequest, error) {
	var requests []models.FollowRequest
	for _, req := range r.requests {
		if req.To.ID == toID && req.Status == models.RequestPending {
			requests = append(requests, *req)
		}
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
	return requests, nil
}

func (r *memFollowRequestRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) error {
	req, ok := r.requests[id]
	if !ok {
		return repositories.ErrNotFound
	}
	req.Status = status
	return nil
}

// --- posts ---

type memPostRepo struct {
	posts map[primitive.ObjectID]*models.Post
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{posts: make(map[primitive.ObjectID]*models.Post)}
}

func (r *memPostRepo) Create(_ context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	copied := *post
	r.posts[post.ID] = &copied
	return nil
}

func (r *memPostRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *post
	return &copied, nil
}

func (r *memPostRepo) ListByAuthors(_ context.Context, authorIDs []primitive.ObjectID, limit int64) ([]models.Post, error) {
	var posts []models.Post
	for _, post := range r.posts {
		for _, authorID := range authorIDs {
			if post.Author.ID == authorID {
				posts = append(posts, *post)
				break
			}
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	if int64(len(posts)) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (r *memPostRepo) ListByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Post, error) {
	return r.ListByAuthors(ctx, []primitive.ObjectID{authorID}, int64(len(r.posts)+1))
}

func (r *memPostRepo) PushComment(_ context.Context, postID primitive.ObjectID, comment models.Comment) error {
	post, ok := r.posts[postID]
	if !ok {
		return repositories.ErrNotFound
	}
	post.Comments = append(post.Comments, comment)
	return nil
}

func (r *memPostRepo) ReplaceReaction(_ context.Context, postID, userID primitive.ObjectID, reaction models.Reaction) (*models.Post, error) {
	post, ok := r.posts[postID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	kept := post.Reactions[:0]
	for _, existing := range post.Reactions {
		if existing.User.ID != userID {
			kept = append(kept, existing)
		}
	}
	post.Reactions = append(kept, reaction)
	copied := *post
	return &copied, nil
}

func (r *memPostRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.posts[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

// --- stories ---

type memStoryRepo struct {
	stories map[primitive.ObjectID]*models.Story
}

func newMemStoryRepo() *memStoryRepo {
	return &memStoryRepo{stories: make(map[primitive.ObjectID]*models.Story)}
}

func (r *memStoryRepo) Create(_ context.Context, story *models.Story) error {
	story.ID = primitive.NewObjectID()
	copied := *story
	r.stories[story.ID] = &copied
	return nil
}

func (r *memStoryRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Story, error) {
	story, ok := r.stories[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *story
	return &copied, nil
}

func (r *memStoryRepo) ListActiveByAuthors(_ context.Context, authorIDs []primitive.ObjectID, now time.Time) ([]models.Story, error) {
	var stories []models.Story
	for _, story := range r.stories {
		if !story.ExpiresAt.After(now) {
			continue
		}
		for _, authorID := range authorIDs {
			if story.Author.ID == authorID {
				stories = append(stories, *story)
				break
			}
		}
	}
	sort.Slice(stories, func(i, j int) bool {
		return stories[i].CreatedAt.After(stories[j].CreatedAt)
	})
	return stories, nil
}

func (r *memStoryRepo) AddViewer(_ context.Context, storyID, userID primitive.ObjectID) error {
	story, ok := r.stories[storyID]
	if !ok {
		return repositories.ErrNotFound
	}
	story.Viewers = addToSet(story.Viewers, userID)
	return nil
}

func (r *memStoryRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var deleted int64
	for id, story := range r.stories {
		if !story.ExpiresAt.After(now) {
			delete(r.stories, id)
			deleted++
		}
	}
	return deleted, nil
}

// --- messages ---

type memMessageRepo struct {
	messages []*models.Message
}

func newMemMessageRepo() *memMessageRepo { return &memMessageRepo{} }

func (r *memMessageRepo) Create(_ context.Context, message *models.Message) error {
	message.ID = primitive.NewObjectID()
	copied := *message
	r.messages = append(r.messages, &copied)
	return nil
}

func (r *memMessageRepo) ListBetween(_ context.Context, userID, otherID primitive.ObjectID) ([]models.Message, error) {
	var messages []models.Message
	for _, m := range r.messages {
		if (m.Sender.ID == userID && m.Receiver.ID == otherID) ||
			(m.Sender.ID == otherID && m.Receiver.ID == userID) {
			messages = append(messages, *m)
		}
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}

func (r *memMessageRepo) MarkThreadRead(_ context.Context, receiverID, senderID primitive.ObjectID) error {
	for _, m := range r.messages {
		if m.Receiver.ID == receiverID && m.Sender.ID == senderID && !m.Read {
			m.Read = true
		}
	}
	return nil
}

func (r *memMessageRepo) Conversations(_ context.Context, userID primitive.ObjectID) ([]models.Conversation, error) {
	byCounterpart := make(map[primitive.ObjectID]*models.Conversation)
	for _, m := range r.messages {
		var counterpart models.UserSnapshot
		switch {
		case m.Sender.ID == userID:
			counterpart = m.Receiver
		case m.Receiver.ID == userID:
			counterpart = m.Sender
		default:
			continue
		}

		conv, ok := byCounterpart[counterpart.ID]
		if !ok {
			conv = &models.Conversation{CounterpartID: counterpart.ID}
			byCounterpart[counterpart.ID] = conv
		}
		if m.CreatedAt.After(conv.LastMessageAt) {
			conv.Name = counterpart.Name
			conv.ProfilePicture = counterpart.ProfilePicture
			conv.LastMessage = m.Text
			conv.LastMessageAt = m.CreatedAt
		}
		if m.Receiver.ID == userID && !m.Read {
			conv.UnreadCount++
		}
	}

	conversations := make([]models.Conversation, 0, len(byCounterpart))
	for _, conv := range byCounterpart {
		conversations = append(conversations, *conv)
	}
	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].LastMessageAt.After(conversations[j].LastMessageAt)
	})
	return conversations, nil
}

// --- notifications ---

type memNotificationRepo struct {
	notifications []models.Notification
	failNext      bool
}

func newMemNotificationRepo() *memNotificationRepo { return &memNotificationRepo{} }

func (r *memNotificationRepo) Create(notification *models.Notification) error {
	if r.failNext {
		r.failNext = false
		return errors.New("storage unavailable")
	}
	notification.ID = uint(len(r.notifications) + 1)
	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *memNotificationRepo) ListRecent(recipientID string, limit int) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range r.notifications {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memNotificationRepo) byType(recipientID, notifType string) []models.Notification {
	var out []models.Notification
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && n.Type == notifType {
			out = append(out, n)
		}
	}
	return out
}

// --- media ---

type memMediaStore struct {
	saved   []string
	removed []string
}

func (s *memMediaStore) Save(kind media.Kind, originalName string, _ io.Reader) (string, error) {
	ref := "/uploads/" + string(kind) + "-" + originalName
	s.saved = append(s.saved, ref)
	return ref, nil
}

func (s *memMediaStore) Remove(reference string) error {
	s.removed = append(s.removed, reference)
	return nil
}

// --- fixture helpers ---

type fixture struct {
	users    *memUserRepo
	requests *memFollowRequestRepo
	posts    *memPostRepo
	stories  *memStoryRepo
	messages *memMessageRepo
	notifs   *memNotificationRepo
	media    *memMediaStore
	clock    *fakeClock

	notifier  *Notifier
	social    *SocialService
	content   *ContentService
	story     *StoryService
	messaging *MessageService
}

func newFixture() *fixture {
	f := &fixture{
		users:    newMemUserRepo(),
		requests: newMemFollowRequestRepo(),
		posts:    newMemPostRepo(),
		stories:  newMemStoryRepo(),
		messages: newMemMessageRepo(),
		notifs:   newMemNotificationRepo(),
		media:    &memMediaStore{},
		clock:    newFakeClock(),
	}
	logger := zap.NewNop()
	f.notifier = NewNotifier(f.notifs, f.clock, logger)
	f.social = NewSocialService(f.users, f.requests, f.notifier, f.clock)
	f.content = NewContentService(f.users, f.posts, f.notifier, f.media, f.clock, logger)
	f.story = NewStoryService(f.users, f.stories, f.clock, logger)
	f.messaging = NewMessageService(f.users, f.messages, f.notifier, f.clock)
	return f
}

func (f *fixture) addUser(name string) *models.User {
	user := &models.User{
		Name:      name,
		Email:     name + "@example.com",
		Bio:       models.DefaultBio,
		Followers: []primitive.ObjectID{},
		Following: []primitive.ObjectID{},
		Posts:     []primitive.ObjectID{},
		Stories:   []primitive.ObjectID{},
	}
	if err := f.users.Create(context.Background(), user); err != nil {
		panic(err)
	}
	return user
}

func (f *fixture) mustUser(id primitive.ObjectID) *models.User {
	user, err := f.users.GetByID(context.Background(), id)
	if err != nil {
		panic(err)
	}
	return user
}
