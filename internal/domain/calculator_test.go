package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/giveawayhub/backend/internal/entity"
	"github.com/giveawayhub/backend/internal/repository"
	"github.com/giveawayhub/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_TicketCalculator_Calculate(t *testing.T) {
	ctx := testutil.MockContext()

	community, err := testutil.SampleCommunity(ctx, nil)
	require.NoError(t, err)

	followerRepo := repository.NewFollowerRepository()
	roleChecker := &testutil.MockRoleChecker{Holders: map[string]bool{
		"holder":  true,
		"holder2": true,
	}}
	calculator := NewTicketCalculator(followerRepo, roleChecker)

	testcases := []struct {
		name        string
		userID      string
		inviteCount uint64
		manualBonus int64
		noFollower  bool
		expected    int
	}{
		{
			name:     "base ticket only",
			userID:   "plain",
			expected: 1,
		},
		{
			name:       "no follower row still gets base ticket",
			userID:     "stranger",
			noFollower: true,
			expected:   1,
		},
		{
			name:        "invites below cap",
			userID:      "inviter",
			inviteCount: 3,
			expected:    4,
		},
		{
			name:        "invites above cap are clamped",
			userID:      "superinviter",
			inviteCount: 12,
			expected:    6,
		},
		{
			name:        "role bonus stacks",
			userID:      "holder",
			inviteCount: 2,
			expected:    4,
		},
		{
			name:        "negative manual bonus",
			userID:      "penalized",
			inviteCount: 5,
			manualBonus: -3,
			expected:    3,
		},
		{
			name:        "all sources combined",
			userID:      "holder2",
			inviteCount: 8,
			manualBonus: -3,
			expected:    4,
		},
		{
			name:        "manual bonus cannot push below zero",
			userID:      "banned",
			manualBonus: -10,
			expected:    0,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := testutil.SampleUser(ctx, &entity.User{Base: entity.Base{ID: tc.userID}})
			require.NoError(t, err)

			if !tc.noFollower {
				_, err = testutil.SampleFollower(ctx, &entity.Follower{
					UserID:      tc.userID,
					CommunityID: community.ID,
					InviteCount: tc.inviteCount,
					ManualBonus: tc.manualBonus,
				})
				require.NoError(t, err)
			}

			breakdown, err := calculator.Calculate(ctx, &community, tc.userID)
			require.NoError(t, err)
			require.Equal(t, tc.expected, breakdown.Total)
			require.Equal(t, 1, breakdown.Base)
		})
	}
}

func Test_TicketCalculator_RoleLookupFailsSoft(t *testing.T) {
	ctx := testutil.MockContext()

	community, err := testutil.SampleCommunity(ctx, nil)
	require.NoError(t, err)

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	roleChecker := &testutil.MockRoleChecker{
		HasRoleFunc: func(ctx context.Context, guildID, userID, roleID string) (bool, error) {
			return false, errors.New("discord is down")
		},
	}

	calculator := NewTicketCalculator(repository.NewFollowerRepository(), roleChecker)

	breakdown, err := calculator.Calculate(ctx, &community, user.ID)
	require.NoError(t, err)
	require.Equal(t, 0, breakdown.RoleBonus)
	require.Equal(t, 1, breakdown.Total)
}
