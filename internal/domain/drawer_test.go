package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Draw_DistinctWinners(t *testing.T) {
	candidates := []Candidate{
		{UserID: "user1", Tickets: 3},
		{UserID: "user2", Tickets: 1},
		{UserID: "user3", Tickets: 2},
	}

	for i := 0; i < 50; i++ {
		winners := Draw(candidates, 3)
		require.Len(t, winners, 3)

		seen := map[string]bool{}
		for _, w := range winners {
			require.False(t, seen[w.UserID], "user %s won twice", w.UserID)
			seen[w.UserID] = true
		}
	}
}

func Test_Draw_FewerCandidatesThanWinners(t *testing.T) {
	candidates := []Candidate{
		{UserID: "user1", Tickets: 2},
		{UserID: "user2", Tickets: 1},
	}

	winners := Draw(candidates, 5)
	require.Len(t, winners, 2)
}

func Test_Draw_ZeroWeightNeverWins(t *testing.T) {
	candidates := []Candidate{
		{UserID: "user1", Tickets: 1},
		{UserID: "zero", Tickets: 0},
		{UserID: "negative", Tickets: -2},
	}

	for i := 0; i < 50; i++ {
		winners := Draw(candidates, 3)
		require.Len(t, winners, 1)
		require.Equal(t, "user1", winners[0].UserID)
		require.Equal(t, 1, winners[0].Tickets)
	}
}

func Test_Draw_NoCandidates(t *testing.T) {
	require.Empty(t, Draw(nil, 3))
	require.Empty(t, Draw([]Candidate{{UserID: "zero", Tickets: 0}}, 1))
}

func Test_Draw_WeightBiasesOutcome(t *testing.T) {
	candidates := []Candidate{
		{UserID: "heavy", Tickets: 4},
		{UserID: "light", Tickets: 1},
	}

	heavyWins := 0
	rounds := 2000
	for i := 0; i < rounds; i++ {
		winners := Draw(candidates, 1)
		require.Len(t, winners, 1)
		if winners[0].UserID == "heavy" {
			heavyWins++
		}
	}

	// The expected share is 80%. Allow a generous band to keep this test
	// stable.
	require.Greater(t, heavyWins, rounds*70/100)
	require.Less(t, heavyWins, rounds*90/100)
}

func Test_Draw_RecordsTicketsAtDrawTime(t *testing.T) {
	candidates := []Candidate{
		{UserID: "user1", Tickets: 7},
		{UserID: "user2", Tickets: 5},
	}

	winners := Draw(candidates, 2)
	require.Len(t, winners, 2)

	tickets := map[string]int{}
	for _, w := range winners {
		tickets[w.UserID] = w.Tickets
	}

	require.Equal(t, 7, tickets["user1"])
	require.Equal(t, 5, tickets["user2"])
}
