package services

import (
	"context"
	"testing"
	"time"

	"github.com/ossiecodes/mingle/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSendFollowRequest_CreatesPendingAndNotifies(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.addUser("alice")
	bob := f.addUser("bob")

	err := f.social.SendFollowRequest(ctx, alice.ID.Hex(), bob.ID.Hex())
	require.NoError(t, err)

	pending, err := f.social.ListPendingRequests(ctx, bob.ID.Hex())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, models.RequestPending, pending[0].Status)
	assert.Equal(t, alice.ID, pending[0].From.ID)
	assert.Equal(t, bob.ID, pending[0].To.ID)

	// Follower sets stay untouched until acceptance.
	assert.Empty(t, f.mustUser(alice.ID).Following)
	assert.Empty(t, f.mustUser(bob.ID).Followers)

	notifs := f.notifs.byType(bob.ID.Hex(), models.NotifFollowRequest)
	require.Len(t, notifs, 1)
	assert.Equal(t, "alice wants to follow you", notifs[0].Message)
	assert.Equal(t, alice.ID.Hex(), notifs[0].ActorID)
}

func TestSendFollowRequest_SelfFollowRejected(t *testing.T) {
	f := newFixture()
	alice := f.addUser("alice")

	err := f.social.SendFollowRequest(context.Background(), alice.ID.Hex(), alice.ID.Hex())
	require.Error(t, err)
	assert.Equal(t, KindInvalidInput, KindOf(err))
	assert.Equal(t, "Cannot follow yourself.", MessageOf(err))
}

func TestSendFollowRequest_InvalidIDs(t *testing.T) {
	f := newFixture()
	alice := f.addUser("alice")

	err := f.social.SendFollowRequest(context.Background(), "not-hex", alice.ID.Hex())
	assert.Equal(t, KindInvalidInput, KindOf(err))

	err = f.social.SendFollowRequest(context.Background(), alice.ID.Hex(), "not-hex")
	assert.Equal(t, KindInvalidInput, KindOf(err))
}

func TestSendFollowRequest_UnknownUser(t *testing.T) {
	f := newFixture()
	alice := f.addUser("alice")

	err := f.social.SendFollowRequest(context.Background(), alice.ID.Hex(), primitive.NewObjectID().Hex())
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "User not found.", MessageOf(err))
}

func TestSendFollowRequest_DuplicatePending(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.addUser("alice")
	bob := f.addUser("bob")

	require.NoError(t, f.social.SendFollowRequest(ctx, alice.ID.Hex(), bob.ID.Hex()))

	err := f.social.SendFollowRequest(ctx, alice.ID.Hex(), bob.ID.Hex())
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, "Follow request already sent.", MessageOf(err))
}

func TestSendFollowRequest_AlreadyFollowing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.addUser("alice")
	bob := f.addUser("bob")
	require.NoError(t, f.users.AddFollowing(ctx, alice.ID, bob.ID))

	err := f.social.SendFollowRequest(ctx, alice.ID.Hex(), bob.ID.Hex())
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, "Already following this user.", MessageOf(err))
}

func TestHandleFollowRequest_AcceptUpdatesBothSides(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.addUser("alice")
	bob := f.addUser("bob")

	require.NoError(t, f.social.SendFollowRequest(ctx, alice.ID.Hex(), bob.ID.Hex()))
	pending, err := f.social.ListPendingRequests(ctx, bob.ID.Hex())
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, f.social.HandleFollowRequest(ctx, pending[0].ID.Hex(), "accept"))

	assert.Contains(t, f.mustUser(alice.ID).Following, bob.ID)
	assert.Contains(t, f.mustUser(bob.ID).Followers, alice.ID)
	// Only sender->target: bob does not follow alice back.
	assert.NotContains(t, f.mustUser(bob.ID).Following, alice.ID)

	remaining, err := f.social.ListPendingRequests(ctx, bob.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, remaining)

	accepted := f.notifs.byType(alice.ID.Hex(), models.NotifFollowAccepted)
	require.Len(t, accepted, 1)
	assert.Equal(t, "bob accepted your follow request", accepted[0].Message)

	follower := f.notifs.byType(bob.ID.Hex(), models.NotifNewFollower)
	require.Len(t, follower, 1)
	assert.Equal(t, "alice is now following you", follower[0].Message)
}

func TestHandleFollowRequest_RejectLeavesSetsUntouched(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.addUser("alice")
	bob := f.addUser("bob")

	require.NoError(t, f.social.SendFollowRequest(ctx, alice.ID.Hex(), bob.ID.Hex()))
	pending, err := f.social.ListPendingRequests(ctx, bob.ID.Hex())
	require.NoError(t, err)

	require.NoError(t, f.social.HandleFollowRequest(ctx, pending[0].ID.Hex(), "reject"))

	assert.Empty(t, f.mustUser(alice.ID).Following)
	assert.Empty(t, f.mustUser(bob.ID).Followers)

	stored, err := f.requests.GetByID(ctx, pending[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestRejected, stored.Status)

	assert.Empty(t, f.notifs.byType(alice.ID.Hex(), models.NotifFollowAccepted))
}

func TestHandleFollowRequest_AlreadyHandled(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.addUser("alice")
	bob := f.addUser("bob")

	require.NoError(t, f.social.SendFollowRequest(ctx, alice.ID.Hex(), bob.ID.Hex()))
	pending, err := f.social.ListPendingRequests(ctx, bob.ID.Hex())
	require.NoError(t, err)

	require.NoError(t, f.social.HandleFollowRequest(ctx, pending[0].ID.Hex(), "reject"))

	err = f.social.HandleFollowRequest(ctx, pending[0].ID.Hex(), "accept")
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, "Follow request already handled.", MessageOf(err))
}

func TestHandleFollowRequest_InvalidAction(t *testing.T) {
	f := newFixture()

	err := f.social.HandleFollowRequest(context.Background(), primitive.NewObjectID().Hex(), "ignore")
	assert.Equal(t, KindInvalidInput, KindOf(err))
}

func TestHandleFollowRequest_UnknownRequest(t *testing.T) {
	f := newFixture()

	err := f.social.HandleFollowRequest(context.Background(), primitive.NewObjectID().Hex(), "accept")
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "Follow request not found.", MessageOf(err))
}

func TestListPendingRequests_NewestFirst(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.addUser("alice")
	bob := f.addUser("bob")
	carol := f.addUser("carol")

	require.NoError(t, f.social.SendFollowRequest(ctx, alice.ID.Hex(), carol.ID.Hex()))
	f.clock.Advance(time.Minute)
	require.NoError(t, f.social.SendFollowRequest(ctx, bob.ID.Hex(), carol.ID.Hex()))

	pending, err := f.social.ListPendingRequests(ctx, carol.ID.Hex())
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, bob.ID, pending[0].From.ID)
	assert.Equal(t, alice.ID, pending[1].From.ID)
}
