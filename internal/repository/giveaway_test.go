package repository_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/giveawayhub/backend/internal/entity"
	"github.com/giveawayhub/backend/internal/repository"
	"github.com/giveawayhub/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_giveawayRepository_CheckAndCloseEvent(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewGiveawayRepository()

	giveaway, err := testutil.SampleGiveaway(ctx, nil)
	require.NoError(t, err)

	giveaway.Status = entity.GiveawayClosed
	giveaway.ClosedAt = sql.NullTime{Valid: true, Time: time.Now()}
	giveaway.Winners = entity.Array[string]{"member1"}
	giveaway.WinnerTickets = entity.Array[int]{3}
	giveaway.TotalEntrants = 1
	giveaway.TotalTickets = 3

	require.NoError(t, repo.CheckAndCloseEvent(ctx, &giveaway))

	stored, err := repo.GetEventByID(ctx, giveaway.ID)
	require.NoError(t, err)
	require.False(t, stored.IsOpen())
	require.Equal(t, entity.Array[string]{"member1"}, stored.Winners)
	require.Equal(t, entity.Array[int]{3}, stored.WinnerTickets)
	require.Equal(t, 1, stored.TotalEntrants)
	require.Equal(t, 3, stored.TotalTickets)

	// The status guard makes the second close attempt lose.
	err = repo.CheckAndCloseEvent(ctx, &giveaway)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func Test_giveawayRepository_LockOpenEvent(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewGiveawayRepository()

	giveaway, err := testutil.SampleGiveaway(ctx, nil)
	require.NoError(t, err)

	require.NoError(t, repo.LockOpenEvent(ctx, giveaway.ID))

	giveaway.Status = entity.GiveawayClosed
	giveaway.ClosedAt = sql.NullTime{Valid: true, Time: time.Now()}
	require.NoError(t, repo.CheckAndCloseEvent(ctx, &giveaway))

	// A closed giveaway no longer passes the status guard.
	err = repo.LockOpenEvent(ctx, giveaway.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func Test_giveawayRepository_GetLastOpenByCommunityID(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewGiveawayRepository()

	community, err := testutil.SampleCommunity(ctx, nil)
	require.NoError(t, err)

	_, err = repo.GetLastOpenByCommunityID(ctx, community.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	older, err := testutil.SampleGiveaway(ctx, &entity.GiveawayEvent{
		Base:        entity.Base{CreatedAt: time.Now().Add(-time.Hour)},
		CommunityID: community.ID,
		Status:      entity.GiveawayClosed,
	})
	require.NoError(t, err)

	_, err = repo.GetLastOpenByCommunityID(ctx, community.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	newer, err := testutil.SampleGiveaway(ctx, &entity.GiveawayEvent{
		CommunityID: community.ID,
	})
	require.NoError(t, err)

	found, err := repo.GetLastOpenByCommunityID(ctx, community.ID)
	require.NoError(t, err)
	require.Equal(t, newer.ID, found.ID)
	require.NotEqual(t, older.ID, found.ID)
}

func Test_giveawayRepository_GetOpenEventsWithDeadline(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewGiveawayRepository()

	timed, err := testutil.SampleGiveaway(ctx, &entity.GiveawayEvent{
		Deadline: sql.NullTime{Valid: true, Time: time.Now().Add(time.Hour)},
	})
	require.NoError(t, err)

	// No deadline, not returned.
	_, err = testutil.SampleGiveaway(ctx, nil)
	require.NoError(t, err)

	// Closed, not returned.
	_, err = testutil.SampleGiveaway(ctx, &entity.GiveawayEvent{
		Status:   entity.GiveawayClosed,
		Deadline: sql.NullTime{Valid: true, Time: time.Now().Add(time.Hour)},
	})
	require.NoError(t, err)

	events, err := repo.GetOpenEventsWithDeadline(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, timed.ID, events[0].ID)
}
