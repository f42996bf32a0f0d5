package domain

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/giveawayhub/backend/internal/domain/statistic"
	"github.com/giveawayhub/backend/internal/entity"
	"github.com/giveawayhub/backend/internal/model"
	"github.com/giveawayhub/backend/internal/repository"
	"github.com/giveawayhub/backend/pkg/pubsub"
	"github.com/giveawayhub/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

type memberFeedTestEnv struct {
	ctx       context.Context
	community entity.Community

	domain       MemberFeedDomain
	followerRepo repository.FollowerRepository
	userRepo     repository.UserRepository
}

func newMemberFeedTestEnv(t *testing.T) *memberFeedTestEnv {
	ctx := testutil.MockContext()

	community, err := testutil.SampleCommunity(ctx, nil)
	require.NoError(t, err)

	communityRepo := repository.NewCommunityRepository()
	userRepo := repository.NewUserRepository()
	followerRepo := repository.NewFollowerRepository()
	giveawayRepo := repository.NewGiveawayRepository()
	entryRepo := repository.NewEntryRepository()

	calculator := NewTicketCalculator(followerRepo, &testutil.MockRoleChecker{})
	leaderboard := statistic.New(entryRepo, testutil.NewInMemoryRedisClient(), calculator)

	return &memberFeedTestEnv{
		ctx:       ctx,
		community: community,
		domain: NewMemberFeedDomain(
			communityRepo, userRepo, followerRepo, giveawayRepo, leaderboard),
		followerRepo: followerRepo,
		userRepo:     userRepo,
	}
}

func (env *memberFeedTestEnv) handle(t *testing.T, event model.MemberEvent) {
	t.Helper()

	if event.GuildID == "" {
		event.GuildID = env.community.PlatformGuildID
	}

	b, err := json.Marshal(event)
	require.NoError(t, err)

	env.domain.HandleEvent(env.ctx, &pubsub.Pack{Msg: b}, time.Now())
}

func (env *memberFeedTestEnv) inviteCount(t *testing.T, userID string) uint64 {
	t.Helper()

	follower, err := env.followerRepo.Get(env.ctx, userID, env.community.ID)
	require.NoError(t, err)
	return follower.InviteCount
}

func Test_memberFeedDomain_Join(t *testing.T) {
	env := newMemberFeedTestEnv(t)

	env.handle(t, model.MemberEvent{
		Type:      model.MemberJoin,
		UserID:    "member1",
		InviterID: "inviter",
	})

	require.EqualValues(t, 1, env.inviteCount(t, "inviter"))

	follower, err := env.followerRepo.Get(env.ctx, "member1", env.community.ID)
	require.NoError(t, err)
	require.True(t, follower.InvitedBy.Valid)
	require.Equal(t, "inviter", follower.InvitedBy.String)

	// Both sides of the attribution got a user row.
	_, err = env.userRepo.GetByID(env.ctx, "member1")
	require.NoError(t, err)
	_, err = env.userRepo.GetByID(env.ctx, "inviter")
	require.NoError(t, err)
}

func Test_memberFeedDomain_Join_NotCounted(t *testing.T) {
	env := newMemberFeedTestEnv(t)

	// A bot join is ignored entirely.
	env.handle(t, model.MemberEvent{
		Type:      model.MemberJoin,
		UserID:    "bot1",
		IsBot:     true,
		InviterID: "inviter",
	})
	_, err := env.followerRepo.Get(env.ctx, "bot1", env.community.ID)
	require.Error(t, err)

	// A self invite earns nothing.
	env.handle(t, model.MemberEvent{
		Type:      model.MemberJoin,
		UserID:    "member1",
		InviterID: "member1",
	})
	require.Zero(t, env.inviteCount(t, "member1"))

	// A bot-attributed invite earns nothing.
	env.handle(t, model.MemberEvent{
		Type:         model.MemberJoin,
		UserID:       "member2",
		InviterID:    "inviter",
		InviterIsBot: true,
	})
	_, err = env.followerRepo.Get(env.ctx, "inviter", env.community.ID)
	require.Error(t, err)

	// An unknown guild is skipped.
	env.handle(t, model.MemberEvent{
		Type:      model.MemberJoin,
		GuildID:   "unknown-guild",
		UserID:    "member3",
		InviterID: "inviter",
	})
	_, err = env.followerRepo.Get(env.ctx, "member3", env.community.ID)
	require.Error(t, err)
}

func Test_memberFeedDomain_Rejoin(t *testing.T) {
	env := newMemberFeedTestEnv(t)

	env.handle(t, model.MemberEvent{
		Type:      model.MemberJoin,
		UserID:    "member1",
		InviterID: "inviter",
	})

	// A rejoin with the attribution already recorded is not counted twice,
	// even with a different inviter.
	env.handle(t, model.MemberEvent{
		Type:      model.MemberJoin,
		UserID:    "member1",
		InviterID: "another",
	})

	require.EqualValues(t, 1, env.inviteCount(t, "inviter"))

	follower, err := env.followerRepo.Get(env.ctx, "member1", env.community.ID)
	require.NoError(t, err)
	require.Equal(t, "inviter", follower.InvitedBy.String)
}

func Test_memberFeedDomain_Leave(t *testing.T) {
	env := newMemberFeedTestEnv(t)

	env.handle(t, model.MemberEvent{
		Type:      model.MemberJoin,
		UserID:    "member1",
		InviterID: "inviter",
	})
	require.EqualValues(t, 1, env.inviteCount(t, "inviter"))

	env.handle(t, model.MemberEvent{
		Type:   model.MemberLeave,
		UserID: "member1",
	})
	require.Zero(t, env.inviteCount(t, "inviter"))

	follower, err := env.followerRepo.Get(env.ctx, "member1", env.community.ID)
	require.NoError(t, err)
	require.False(t, follower.InvitedBy.Valid)

	// The next join attributes and counts again.
	env.handle(t, model.MemberEvent{
		Type:      model.MemberJoin,
		UserID:    "member1",
		InviterID: "inviter",
	})
	require.EqualValues(t, 1, env.inviteCount(t, "inviter"))
}

func Test_memberFeedDomain_Leave_Unattributed(t *testing.T) {
	env := newMemberFeedTestEnv(t)

	env.handle(t, model.MemberEvent{
		Type:   model.MemberJoin,
		UserID: "member1",
	})

	// Leaving without a recorded inviter is a no-op.
	env.handle(t, model.MemberEvent{
		Type:   model.MemberLeave,
		UserID: "member1",
	})

	follower, err := env.followerRepo.Get(env.ctx, "member1", env.community.ID)
	require.NoError(t, err)
	require.False(t, follower.InvitedBy.Valid)
}
