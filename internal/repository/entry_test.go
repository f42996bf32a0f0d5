package repository_test

import (
	"testing"

	"github.com/giveawayhub/backend/internal/entity"
	"github.com/giveawayhub/backend/internal/repository"
	"github.com/giveawayhub/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_entryRepository_Create_Idempotent(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewEntryRepository()

	giveaway, err := testutil.SampleGiveaway(ctx, nil)
	require.NoError(t, err)

	entry := &entity.GiveawayEntry{
		CommunityID:     giveaway.CommunityID,
		GiveawayEventID: giveaway.ID,
		UserID:          "member1",
	}

	created, err := repo.Create(ctx, entry)
	require.NoError(t, err)
	require.True(t, created)

	created, err = repo.Create(ctx, entry)
	require.NoError(t, err)
	require.False(t, created)

	count, err := repo.CountByEventID(ctx, giveaway.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	exist, err := repo.Exist(ctx, giveaway.ID, "member1")
	require.NoError(t, err)
	require.True(t, exist)

	exist, err = repo.Exist(ctx, giveaway.ID, "member2")
	require.NoError(t, err)
	require.False(t, exist)
}

func Test_entryRepository_DeleteByCommunityID(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewEntryRepository()

	giveaway, err := testutil.SampleGiveaway(ctx, nil)
	require.NoError(t, err)

	other, err := testutil.SampleGiveaway(ctx, nil)
	require.NoError(t, err)

	for _, g := range []entity.GiveawayEvent{giveaway, other} {
		_, err := repo.Create(ctx, &entity.GiveawayEntry{
			CommunityID:     g.CommunityID,
			GiveawayEventID: g.ID,
			UserID:          "member1",
		})
		require.NoError(t, err)
	}

	require.NoError(t, repo.DeleteByCommunityID(ctx, giveaway.CommunityID))

	count, err := repo.CountByEventID(ctx, giveaway.ID)
	require.NoError(t, err)
	require.Zero(t, count)

	// Entries of other communities stay.
	count, err = repo.CountByEventID(ctx, other.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}
