package domain

import (
	"context"
	"errors"

	"github.com/giveawayhub/backend/internal/entity"
	"github.com/giveawayhub/backend/internal/repository"
	"github.com/giveawayhub/backend/pkg/xcontext"
	mathUtil "github.com/pkg/math"
	"gorm.io/gorm"
)

// RoleChecker reports whether a user holds a role on the chat platform.
type RoleChecker interface {
	HasRole(ctx context.Context, guildID, userID, roleID string) (bool, error)
}

// TicketBreakdown itemizes one user's ticket weight for a giveaway.
type TicketBreakdown struct {
	Base             int
	InviteCount      uint64
	ExtraFromInvites int
	RoleBonus        int
	ManualBonus      int64

	// Total is never negative. A large enough negative manual bonus clamps
	// the weight to zero, which excludes the user from the draw.
	Total int
}

// TicketCalculator computes the ticket weight of an entered user. A user who
// has not entered has no weight at all; callers check the entry first.
type TicketCalculator struct {
	followerRepo repository.FollowerRepository
	roleChecker  RoleChecker
}

func NewTicketCalculator(
	followerRepo repository.FollowerRepository,
	roleChecker RoleChecker,
) *TicketCalculator {
	return &TicketCalculator{
		followerRepo: followerRepo,
		roleChecker:  roleChecker,
	}
}

func (c *TicketCalculator) Calculate(
	ctx context.Context, community *entity.Community, userID string,
) (TicketBreakdown, error) {
	breakdown := TicketBreakdown{Base: 1}

	follower, err := c.followerRepo.Get(ctx, userID, community.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return TicketBreakdown{}, err
	}

	if err == nil {
		giveawayCfg := xcontext.Configs(ctx).Giveaway
		breakdown.InviteCount = follower.InviteCount
		breakdown.ExtraFromInvites = mathUtil.MinInt(
			int(follower.InviteCount), giveawayCfg.MaxExtraTickets)
		breakdown.ManualBonus = follower.ManualBonus
	}

	breakdown.RoleBonus = c.roleBonus(ctx, community, userID)

	total := int64(breakdown.Base) + int64(breakdown.ExtraFromInvites) +
		int64(breakdown.RoleBonus) + breakdown.ManualBonus
	if total > 0 {
		breakdown.Total = int(total)
	}

	return breakdown, nil
}

// Weigh returns only the total weight.
func (c *TicketCalculator) Weigh(
	ctx context.Context, community *entity.Community, userID string,
) (int, error) {
	breakdown, err := c.Calculate(ctx, community, userID)
	if err != nil {
		return 0, err
	}

	return breakdown.Total, nil
}

// roleBonus fails soft. A platform outage must not block an entry or a draw,
// so any lookup failure counts as not holding the role.
func (c *TicketCalculator) roleBonus(
	ctx context.Context, community *entity.Community, userID string,
) int {
	giveawayCfg := xcontext.Configs(ctx).Giveaway
	if giveawayCfg.BonusRoleID == "" || community.PlatformGuildID == "" {
		return 0
	}

	hasRole, err := c.roleChecker.HasRole(
		ctx, community.PlatformGuildID, userID, giveawayCfg.BonusRoleID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot check bonus role of %s: %v", userID, err)
		return 0
	}

	if !hasRole {
		return 0
	}

	return giveawayCfg.RoleBonus
}
