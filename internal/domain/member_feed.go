package domain

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/giveawayhub/backend/internal/domain/statistic"
	"github.com/giveawayhub/backend/internal/entity"
	"github.com/giveawayhub/backend/internal/model"
	"github.com/giveawayhub/backend/internal/repository"
	"github.com/giveawayhub/backend/pkg/crypto"
	"github.com/giveawayhub/backend/pkg/pubsub"
	"github.com/giveawayhub/backend/pkg/xcontext"
	"github.com/mitchellh/mapstructure"
	"gorm.io/gorm"
)

// MemberFeedDomain consumes member join/leave facts published by the chat
// platform collaborator and keeps the invite ledger in sync.
type MemberFeedDomain interface {
	HandleEvent(ctx context.Context, pack *pubsub.Pack, t time.Time)
}

type memberFeedDomain struct {
	communityRepo repository.CommunityRepository
	userRepo      repository.UserRepository
	followerRepo  repository.FollowerRepository
	giveawayRepo  repository.GiveawayRepository
	leaderboard   statistic.Leaderboard
}

func NewMemberFeedDomain(
	communityRepo repository.CommunityRepository,
	userRepo repository.UserRepository,
	followerRepo repository.FollowerRepository,
	giveawayRepo repository.GiveawayRepository,
	leaderboard statistic.Leaderboard,
) *memberFeedDomain {
	return &memberFeedDomain{
		communityRepo: communityRepo,
		userRepo:      userRepo,
		followerRepo:  followerRepo,
		giveawayRepo:  giveawayRepo,
		leaderboard:   leaderboard,
	}
}

// HandleEvent never returns an error to the consumer group. A malformed or
// stale message is logged and skipped, not retried forever.
func (d *memberFeedDomain) HandleEvent(ctx context.Context, pack *pubsub.Pack, t time.Time) {
	var raw map[string]any
	if err := json.Unmarshal(pack.Msg, &raw); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot unmarshal member event: %v", err)
		return
	}

	var event model.MemberEvent
	if err := mapstructure.Decode(raw, &event); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot decode member event: %v", err)
		return
	}

	switch event.Type {
	case model.MemberJoin:
		d.handleJoin(ctx, &event)
	case model.MemberLeave:
		d.handleLeave(ctx, &event)
	default:
		xcontext.Logger(ctx).Warnf("Unknown member event type %s", event.Type)
	}
}

func (d *memberFeedDomain) handleJoin(ctx context.Context, event *model.MemberEvent) {
	if event.IsBot {
		return
	}

	community, err := d.communityRepo.GetByPlatformGuildID(ctx, event.GuildID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Debugf("Skip join of unknown guild %s", event.GuildID)
			return
		}

		xcontext.Logger(ctx).Errorf("Cannot get community of guild %s: %v", event.GuildID, err)
		return
	}

	if err := d.ensureUser(ctx, event.UserID); err != nil {
		return
	}

	follower, err := d.ensureFollower(ctx, event.UserID, community.ID)
	if err != nil {
		return
	}

	// Self invites and bot-attributed invites earn nothing. A rejoin with the
	// attribution already recorded is not counted twice.
	if event.InviterID == "" || event.InviterID == event.UserID || event.InviterIsBot {
		return
	}

	if follower.InvitedBy.Valid {
		return
	}

	if err := d.ensureUser(ctx, event.InviterID); err != nil {
		return
	}

	if _, err := d.ensureFollower(ctx, event.InviterID, community.ID); err != nil {
		return
	}

	err = d.followerRepo.SetInvitedBy(ctx, event.UserID, community.ID, event.InviterID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot set inviter of %s: %v", event.UserID, err)
		return
	}

	err = d.followerRepo.IncreaseInviteCount(ctx, event.InviterID, community.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase invite count of %s: %v", event.InviterID, err)
		return
	}

	d.invalidateOpenLeaderboards(ctx, community.ID)
}

func (d *memberFeedDomain) handleLeave(ctx context.Context, event *model.MemberEvent) {
	community, err := d.communityRepo.GetByPlatformGuildID(ctx, event.GuildID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return
		}

		xcontext.Logger(ctx).Errorf("Cannot get community of guild %s: %v", event.GuildID, err)
		return
	}

	follower, err := d.followerRepo.Get(ctx, event.UserID, community.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get follower %s: %v", event.UserID, err)
		}

		return
	}

	if !follower.InvitedBy.Valid {
		return
	}

	err = d.followerRepo.DecreaseInviteCount(ctx, follower.InvitedBy.String, community.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decrease invite count of %s: %v",
			follower.InvitedBy.String, err)
		return
	}

	if err := d.followerRepo.ClearInvitedBy(ctx, event.UserID, community.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot clear inviter of %s: %v", event.UserID, err)
		return
	}

	d.invalidateOpenLeaderboards(ctx, community.ID)
}

func (d *memberFeedDomain) ensureUser(ctx context.Context, userID string) error {
	_, err := d.userRepo.GetByID(ctx, userID)
	if err == nil {
		return nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user %s: %v", userID, err)
		return err
	}

	err = d.userRepo.Create(ctx, &entity.User{
		Base: entity.Base{ID: userID},
		Name: userID,
		Role: entity.UserRole,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user %s: %v", userID, err)
		return err
	}

	return nil
}

func (d *memberFeedDomain) ensureFollower(
	ctx context.Context, userID, communityID string,
) (*entity.Follower, error) {
	follower, err := d.followerRepo.Get(ctx, userID, communityID)
	if err == nil {
		return follower, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get follower %s: %v", userID, err)
		return nil, err
	}

	follower = &entity.Follower{
		UserID:      userID,
		CommunityID: communityID,
		InviteCode:  crypto.GenerateRandomAlphabet(eventIDLength),
	}

	if err := d.followerRepo.Create(ctx, follower); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create follower %s: %v", userID, err)
		return nil, err
	}

	return follower, nil
}

func (d *memberFeedDomain) invalidateOpenLeaderboards(ctx context.Context, communityID string) {
	events, err := d.giveawayRepo.GetOpenByCommunityID(ctx, communityID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get open giveaways: %v", err)
		return
	}

	for _, event := range events {
		if err := d.leaderboard.Invalidate(ctx, event.ID); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot invalidate leaderboard of %s: %v", event.ID, err)
		}
	}
}
