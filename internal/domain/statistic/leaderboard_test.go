package statistic

import (
	"context"
	"testing"

	"github.com/giveawayhub/backend/internal/entity"
	"github.com/giveawayhub/backend/internal/repository"
	"github.com/giveawayhub/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

// countingWeigher serves fixed weights and records how often each user was
// weighed, so a test can tell a cache hit from a rebuild.
type countingWeigher struct {
	weights map[string]int
	calls   int
}

func (w *countingWeigher) Weigh(
	ctx context.Context, community *entity.Community, userID string,
) (int, error) {
	w.calls++
	return w.weights[userID], nil
}

func newLeaderboardTest(t *testing.T) (
	context.Context, *leaderboard, *countingWeigher, entity.GiveawayEvent, entity.Community,
) {
	ctx := testutil.MockContext()

	community, err := testutil.SampleCommunity(ctx, nil)
	require.NoError(t, err)

	giveaway, err := testutil.SampleGiveaway(ctx, &entity.GiveawayEvent{
		CommunityID: community.ID,
	})
	require.NoError(t, err)

	entryRepo := repository.NewEntryRepository()
	for _, userID := range []string{"member1", "member2", "member3"} {
		_, err := entryRepo.Create(ctx, &entity.GiveawayEntry{
			CommunityID:     community.ID,
			GiveawayEventID: giveaway.ID,
			UserID:          userID,
		})
		require.NoError(t, err)
	}

	weigher := &countingWeigher{weights: map[string]int{
		"member1": 1,
		"member2": 4,
		"member3": 2,
	}}

	lb := New(entryRepo, testutil.NewInMemoryRedisClient(), weigher)
	return ctx, lb, weigher, giveaway, community
}

func Test_leaderboard_GetTickets(t *testing.T) {
	ctx, lb, weigher, giveaway, community := newLeaderboardTest(t)

	scores, err := lb.GetTickets(ctx, &giveaway, &community)
	require.NoError(t, err)
	require.Equal(t, []Score{
		{UserID: "member2", Tickets: 4},
		{UserID: "member3", Tickets: 2},
		{UserID: "member1", Tickets: 1},
	}, scores)
	require.Equal(t, 3, weigher.calls)

	// The second read is served from the cache.
	_, err = lb.GetTickets(ctx, &giveaway, &community)
	require.NoError(t, err)
	require.Equal(t, 3, weigher.calls)
}

func Test_leaderboard_Invalidate(t *testing.T) {
	ctx, lb, weigher, giveaway, community := newLeaderboardTest(t)

	_, err := lb.GetTickets(ctx, &giveaway, &community)
	require.NoError(t, err)
	require.Equal(t, 3, weigher.calls)

	require.NoError(t, lb.Invalidate(ctx, giveaway.ID))

	// Weights changed while the cache was stale.
	weigher.weights["member1"] = 10

	scores, err := lb.GetTickets(ctx, &giveaway, &community)
	require.NoError(t, err)
	require.Equal(t, 6, weigher.calls)
	require.Equal(t, "member1", scores[0].UserID)
	require.Equal(t, 10, scores[0].Tickets)
}

func Test_leaderboard_ZeroWeightHidden(t *testing.T) {
	ctx, lb, weigher, giveaway, community := newLeaderboardTest(t)
	weigher.weights["member1"] = 0

	scores, err := lb.GetTickets(ctx, &giveaway, &community)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	for _, score := range scores {
		require.NotEqual(t, "member1", score.UserID)
	}
}
