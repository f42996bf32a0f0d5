package repository_test

import (
	"testing"

	"github.com/giveawayhub/backend/internal/entity"
	"github.com/giveawayhub/backend/internal/repository"
	"github.com/giveawayhub/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_followerRepository_InviteCount(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewFollowerRepository()

	follower, err := testutil.SampleFollower(ctx, nil)
	require.NoError(t, err)

	// Counting without a follower row fails loudly.
	err = repo.IncreaseInviteCount(ctx, "nobody", follower.CommunityID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.IncreaseInviteCount(ctx, follower.UserID, follower.CommunityID))
	require.NoError(t, repo.IncreaseInviteCount(ctx, follower.UserID, follower.CommunityID))

	stored, err := repo.Get(ctx, follower.UserID, follower.CommunityID)
	require.NoError(t, err)
	require.EqualValues(t, 2, stored.InviteCount)

	// The count never goes below zero.
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.DecreaseInviteCount(ctx, follower.UserID, follower.CommunityID))
	}

	stored, err = repo.Get(ctx, follower.UserID, follower.CommunityID)
	require.NoError(t, err)
	require.Zero(t, stored.InviteCount)
}

func Test_followerRepository_SetInvitedBy(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewFollowerRepository()

	follower, err := testutil.SampleFollower(ctx, nil)
	require.NoError(t, err)

	err = repo.SetInvitedBy(ctx, follower.UserID, follower.CommunityID, "inviter1")
	require.NoError(t, err)

	// The attribution is write-once until cleared.
	err = repo.SetInvitedBy(ctx, follower.UserID, follower.CommunityID, "inviter2")
	require.NoError(t, err)

	stored, err := repo.Get(ctx, follower.UserID, follower.CommunityID)
	require.NoError(t, err)
	require.Equal(t, "inviter1", stored.InvitedBy.String)

	require.NoError(t, repo.ClearInvitedBy(ctx, follower.UserID, follower.CommunityID))

	err = repo.SetInvitedBy(ctx, follower.UserID, follower.CommunityID, "inviter2")
	require.NoError(t, err)

	stored, err = repo.Get(ctx, follower.UserID, follower.CommunityID)
	require.NoError(t, err)
	require.Equal(t, "inviter2", stored.InvitedBy.String)
}

func Test_followerRepository_ResetByCommunityID(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewFollowerRepository()

	community, err := testutil.SampleCommunity(ctx, nil)
	require.NoError(t, err)

	follower, err := testutil.SampleFollower(ctx, &entity.Follower{
		CommunityID: community.ID,
	})
	require.NoError(t, err)

	require.NoError(t, repo.IncreaseInviteCount(ctx, follower.UserID, community.ID))
	require.NoError(t, repo.AddManualBonus(ctx, follower.UserID, community.ID, 5))
	require.NoError(t, repo.SetInvitedBy(ctx, follower.UserID, community.ID, "inviter"))

	// Keep a follower of another community around.
	other, err := testutil.SampleFollower(ctx, nil)
	require.NoError(t, err)

	require.NoError(t, repo.ResetByCommunityID(ctx, community.ID))

	_, err = repo.Get(ctx, follower.UserID, community.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.Get(ctx, other.UserID, other.CommunityID)
	require.NoError(t, err)

	// The pair is free for a fresh record after the reset.
	recreated, err := testutil.SampleFollower(ctx, &entity.Follower{
		UserID:      follower.UserID,
		CommunityID: community.ID,
	})
	require.NoError(t, err)
	require.Zero(t, recreated.InviteCount)
}
