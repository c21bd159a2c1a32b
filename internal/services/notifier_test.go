package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/ossiecodes/mingle/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEnqueue_StoresActorAndPost(t *testing.T) {
	f := newFixture()
	recipient := primitive.NewObjectID()
	actor := models.UserSnapshot{ID: primitive.NewObjectID(), Name: "alice", ProfilePicture: "/uploads/profile-a.jpg"}
	postID := primitive.NewObjectID()

	f.notifier.Enqueue(recipient, models.NotifPostReaction, "alice reacted to your post", &actor, postID)

	views, err := f.notifier.ListRecent(recipient.Hex())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, models.NotifPostReaction, views[0].Type)
	assert.Equal(t, "alice reacted to your post", views[0].Message)
	assert.Equal(t, postID.Hex(), views[0].RelatedPostID)
	require.NotNil(t, views[0].From)
	assert.Equal(t, "alice", views[0].From.Name)
}

func TestEnqueue_FailureIsSwallowed(t *testing.T) {
	f := newFixture()
	recipient := primitive.NewObjectID()
	f.notifs.failNext = true

	// Must not panic or surface the storage error.
	f.notifier.Enqueue(recipient, models.NotifNewMessage, "someone sent you a message", nil, primitive.NilObjectID)

	views, err := f.notifier.ListRecent(recipient.Hex())
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestEnqueue_FailureDoesNotFailTriggeringOperation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.addUser("alice")
	bob := f.addUser("bob")
	f.notifs.failNext = true

	err := f.social.SendFollowRequest(ctx, alice.ID.Hex(), bob.ID.Hex())
	require.NoError(t, err)

	pending, err := f.social.ListPendingRequests(ctx, bob.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestListRecent_NewestTwenty(t *testing.T) {
	f := newFixture()
	recipient := primitive.NewObjectID()

	for i := 0; i < 25; i++ {
		f.notifier.Enqueue(recipient, models.NotifNewFollower, fmt.Sprintf("follower %d", i), nil, primitive.NilObjectID)
		f.clock.Advance(1)
	}

	views, err := f.notifier.ListRecent(recipient.Hex())
	require.NoError(t, err)
	require.Len(t, views, 20)
	assert.Equal(t, "follower 24", views[0].Message)
	assert.Equal(t, "follower 5", views[19].Message)
}

func TestListRecent_InvalidID(t *testing.T) {
	f := newFixture()

	_, err := f.notifier.ListRecent("nope")
	assert.Equal(t, KindInvalidInput, KindOf(err))
}
