package domain

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/giveawayhub/backend/internal/domain/statistic"
	"github.com/giveawayhub/backend/internal/entity"
	"github.com/giveawayhub/backend/internal/model"
	"github.com/giveawayhub/backend/internal/repository"
	"github.com/giveawayhub/backend/pkg/crypto"
	"github.com/giveawayhub/backend/pkg/errorx"
	"github.com/giveawayhub/backend/pkg/pubsub"
	"github.com/giveawayhub/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const eventIDLength = 8
const defaultLeaderboardLimit = 10

type GiveawayDomain interface {
	Create(context.Context, *model.CreateGiveawayRequest) (*model.CreateGiveawayResponse, error)
	Enter(context.Context, *model.EnterGiveawayRequest) (*model.EnterGiveawayResponse, error)
	Close(context.Context, *model.CloseGiveawayRequest) (*model.CloseGiveawayResponse, error)
	Get(context.Context, *model.GetGiveawayRequest) (*model.GetGiveawayResponse, error)
	GetLeaderboard(context.Context, *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
	GetMyTickets(context.Context, *model.GetMyTicketsRequest) (*model.GetMyTicketsResponse, error)
	AdjustBonus(context.Context, *model.AdjustBonusRequest) (*model.AdjustBonusResponse, error)
	Clear(context.Context, *model.ClearGiveawaysRequest) (*model.ClearGiveawaysResponse, error)

	CloseExpired(ctx context.Context, eventID string) error
}

type giveawayDomain struct {
	giveawayRepo  repository.GiveawayRepository
	entryRepo     repository.EntryRepository
	followerRepo  repository.FollowerRepository
	communityRepo repository.CommunityRepository
	userRepo      repository.UserRepository
	calculator    *TicketCalculator
	leaderboard   statistic.Leaderboard
	scheduler     *DeadlineScheduler
	publisher     pubsub.Publisher
}

func NewGiveawayDomain(
	giveawayRepo repository.GiveawayRepository,
	entryRepo repository.EntryRepository,
	followerRepo repository.FollowerRepository,
	communityRepo repository.CommunityRepository,
	userRepo repository.UserRepository,
	calculator *TicketCalculator,
	leaderboard statistic.Leaderboard,
	scheduler *DeadlineScheduler,
	publisher pubsub.Publisher,
) *giveawayDomain {
	d := &giveawayDomain{
		giveawayRepo:  giveawayRepo,
		entryRepo:     entryRepo,
		followerRepo:  followerRepo,
		communityRepo: communityRepo,
		userRepo:      userRepo,
		calculator:    calculator,
		leaderboard:   leaderboard,
		scheduler:     scheduler,
		publisher:     publisher,
	}

	scheduler.SetCloser(d)
	return d
}

func (d *giveawayDomain) Create(
	ctx context.Context, req *model.CreateGiveawayRequest,
) (*model.CreateGiveawayResponse, error) {
	if err := d.verifyAdmin(ctx); err != nil {
		return nil, err
	}

	if req.Prize == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty prize")
	}

	giveawayCfg := xcontext.Configs(ctx).Giveaway
	if req.WinnerCount < 1 || req.WinnerCount > giveawayCfg.MaxWinners {
		return nil, errorx.New(errorx.BadRequest,
			"The number of winners must be in range [1, %d]", giveawayCfg.MaxWinners)
	}

	if len(req.PrizeDistribution) > 0 && len(req.PrizeDistribution) != req.WinnerCount {
		return nil, errorx.New(errorx.BadRequest,
			"The prize distribution must have exactly %d prizes", req.WinnerCount)
	}

	deadline := sql.NullTime{}
	if !req.Deadline.IsZero() {
		now := time.Now()
		if !req.Deadline.After(now) {
			return nil, errorx.New(errorx.InvalidDeadline, "The deadline must be in the future")
		}

		if giveawayCfg.MaxDeadlineHorizon > 0 && req.Deadline.After(now.Add(giveawayCfg.MaxDeadlineHorizon)) {
			return nil, errorx.New(errorx.InvalidDeadline,
				"The deadline cannot be further than %s from now", giveawayCfg.MaxDeadlineHorizon)
		}

		deadline = sql.NullTime{Valid: true, Time: req.Deadline}
	}

	community, err := d.getCommunity(ctx, req.CommunityHandle)
	if err != nil {
		return nil, err
	}

	_, err = d.giveawayRepo.GetLastOpenByCommunityID(ctx, community.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get the last open giveaway: %v", err)
		return nil, errorx.Unknown
	}

	if err == nil {
		return nil, errorx.New(errorx.Unavailable, "Still have an open giveaway")
	}

	event := &entity.GiveawayEvent{
		Base:              entity.Base{ID: crypto.GenerateRandomAlphabet(eventIDLength)},
		CommunityID:       community.ID,
		Prize:             req.Prize,
		PrizeDistribution: req.PrizeDistribution,
		WinnerCount:       req.WinnerCount,
		Status:            entity.GiveawayOpen,
		CreatedBy:         xcontext.RequestUserID(ctx),
		Deadline:          deadline,
	}

	if err := d.giveawayRepo.CreateEvent(ctx, event); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create giveaway: %v", err)
		return nil, errorx.Unknown
	}

	if event.Deadline.Valid {
		d.scheduler.Schedule(event.ID, event.Deadline.Time)
	}

	return &model.CreateGiveawayResponse{
		Giveaway: model.ConvertGiveawayEvent(event, community.Handle),
	}, nil
}

func (d *giveawayDomain) Enter(
	ctx context.Context, req *model.EnterGiveawayRequest,
) (*model.EnterGiveawayResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Require authentication")
	}

	community, err := d.getCommunity(ctx, req.CommunityHandle)
	if err != nil {
		return nil, err
	}

	event, err := d.getEvent(ctx, community, req.GiveawayID)
	if err != nil {
		return nil, err
	}

	if !event.IsOpen() || event.DeadlineElapsed(time.Now()) {
		return nil, errorx.New(errorx.AlreadyEnded, "The giveaway already ended")
	}

	if err := d.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// The lock serializes this entry against a concurrent close. An entry
	// never commits on a closed giveaway; it either lands before the draw
	// reads the entries or the caller gets AlreadyEnded.
	if err := d.giveawayRepo.LockOpenEvent(ctx, event.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.AlreadyEnded, "The giveaway already ended")
		}

		xcontext.Logger(ctx).Errorf("Cannot lock giveaway %s: %v", event.ID, err)
		return nil, errorx.Unknown
	}

	created, err := d.entryRepo.Create(ctx, &entity.GiveawayEntry{
		CommunityID:     community.ID,
		GiveawayEventID: event.ID,
		UserID:          userID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create entry: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)
	if err := xcontext.TxError(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit transaction: %v", err)
		return nil, errorx.Unknown
	}

	if created {
		if err := d.leaderboard.Invalidate(ctx, event.ID); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot invalidate leaderboard of %s: %v", event.ID, err)
		}
	}

	breakdown, err := d.calculator.Calculate(ctx, community, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot calculate tickets: %v", err)
		return nil, errorx.Unknown
	}

	return &model.EnterGiveawayResponse{
		Tickets:        breakdown.Total,
		AlreadyEntered: !created,
		Prize:          event.Prize,
	}, nil
}

func (d *giveawayDomain) Close(
	ctx context.Context, req *model.CloseGiveawayRequest,
) (*model.CloseGiveawayResponse, error) {
	if err := d.verifyAdmin(ctx); err != nil {
		return nil, err
	}

	community, err := d.getCommunity(ctx, req.CommunityHandle)
	if err != nil {
		return nil, err
	}

	event, err := d.getEvent(ctx, community, req.GiveawayID)
	if err != nil {
		return nil, err
	}

	if !event.IsOpen() {
		return nil, errorx.New(errorx.AlreadyEnded, "The giveaway already ended")
	}

	result, err := d.closeEvent(ctx, event, community)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.AlreadyEnded, "The giveaway already ended")
		}

		return nil, err
	}

	return &model.CloseGiveawayResponse{Result: *result}, nil
}

// CloseExpired is invoked by the deadline scheduler. It swallows the benign
// races: an already closed or deleted giveaway is not an error here.
func (d *giveawayDomain) CloseExpired(ctx context.Context, eventID string) error {
	event, err := d.giveawayRepo.GetEventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get giveaway %s: %v", eventID, err)
		return errorx.Unknown
	}

	if !event.IsOpen() {
		return nil
	}

	community, err := d.communityRepo.GetByID(ctx, event.CommunityID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get community %s: %v", event.CommunityID, err)
		return errorx.Unknown
	}

	if _, err := d.closeEvent(ctx, event, community); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}

		return err
	}

	return nil
}

func (d *giveawayDomain) Get(
	ctx context.Context, req *model.GetGiveawayRequest,
) (*model.GetGiveawayResponse, error) {
	community, err := d.getCommunity(ctx, req.CommunityHandle)
	if err != nil {
		return nil, err
	}

	event, err := d.getEvent(ctx, community, req.GiveawayID)
	if err != nil {
		return nil, err
	}

	resp := &model.GetGiveawayResponse{
		Giveaway: model.ConvertGiveawayEvent(event, community.Handle),
	}

	if event.IsOpen() {
		count, err := d.entryRepo.CountByEventID(ctx, event.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count entries: %v", err)
			return nil, errorx.Unknown
		}

		scores, err := d.leaderboard.GetTickets(ctx, event, community)
		if err != nil {
			return nil, err
		}

		resp.TotalEntrants = count
		for _, score := range scores {
			resp.TotalTickets += score.Tickets
		}
	} else {
		result := model.ConvertDrawResult(event)
		resp.TotalEntrants = int64(event.TotalEntrants)
		resp.TotalTickets = event.TotalTickets
		resp.Result = &result
	}

	if userID := xcontext.RequestUserID(ctx); userID != "" {
		entered, err := d.entryRepo.Exist(ctx, event.ID, userID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot check entry: %v", err)
			return nil, errorx.Unknown
		}

		resp.UserEntered = entered
		if entered && event.IsOpen() {
			breakdown, err := d.calculator.Calculate(ctx, community, userID)
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot calculate tickets: %v", err)
				return nil, errorx.Unknown
			}

			resp.UserTickets = breakdown.Total
		}
	}

	return resp, nil
}

func (d *giveawayDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	community, err := d.getCommunity(ctx, req.CommunityHandle)
	if err != nil {
		return nil, err
	}

	event, err := d.getEvent(ctx, community, req.GiveawayID)
	if err != nil {
		return nil, err
	}

	if !event.IsOpen() {
		return nil, errorx.New(errorx.AlreadyEnded, "The giveaway already ended")
	}

	scores, err := d.leaderboard.GetTickets(ctx, event, community)
	if err != nil {
		return nil, err
	}

	totalTickets := 0
	for _, score := range scores {
		totalTickets += score.Tickets
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}

	resp := &model.GetLeaderboardResponse{
		TotalEntrants: len(scores),
		TotalTickets:  totalTickets,
	}

	for i, score := range scores {
		if i >= limit {
			break
		}

		entry := model.LeaderboardEntry{
			UserID:  score.UserID,
			Tickets: score.Tickets,
		}

		if totalTickets > 0 {
			entry.WinChance = float64(score.Tickets) / float64(totalTickets) * 100
		}

		follower, err := d.followerRepo.Get(ctx, score.UserID, community.ID)
		if err == nil {
			entry.InviteCount = follower.InviteCount
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get follower %s: %v", score.UserID, err)
			return nil, errorx.Unknown
		}

		resp.Entries = append(resp.Entries, entry)
	}

	return resp, nil
}

func (d *giveawayDomain) GetMyTickets(
	ctx context.Context, req *model.GetMyTicketsRequest,
) (*model.GetMyTicketsResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Require authentication")
	}

	community, err := d.getCommunity(ctx, req.CommunityHandle)
	if err != nil {
		return nil, err
	}

	event, err := d.getEvent(ctx, community, req.GiveawayID)
	if err != nil {
		return nil, err
	}

	entered, err := d.entryRepo.Exist(ctx, event.ID, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check entry: %v", err)
		return nil, errorx.Unknown
	}

	breakdown, err := d.calculator.Calculate(ctx, community, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot calculate tickets: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMyTicketsResponse{
		TicketBreakdown: model.TicketBreakdown{
			Entered:          entered,
			Total:            breakdown.Total,
			Base:             breakdown.Base,
			InviteCount:      breakdown.InviteCount,
			ExtraFromInvites: breakdown.ExtraFromInvites,
			RoleBonus:        breakdown.RoleBonus,
			ManualBonus:      breakdown.ManualBonus,
		},
	}, nil
}

func (d *giveawayDomain) AdjustBonus(
	ctx context.Context, req *model.AdjustBonusRequest,
) (*model.AdjustBonusResponse, error) {
	if err := d.verifyAdmin(ctx); err != nil {
		return nil, err
	}

	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty user id")
	}

	if req.Delta == 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow a zero delta")
	}

	community, err := d.getCommunity(ctx, req.CommunityHandle)
	if err != nil {
		return nil, err
	}

	if err := d.ensureUser(ctx, req.UserID); err != nil {
		return nil, err
	}

	if err := d.ensureFollower(ctx, req.UserID, community.ID); err != nil {
		return nil, err
	}

	if err := d.followerRepo.AddManualBonus(ctx, req.UserID, community.ID, req.Delta); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot add manual bonus: %v", err)
		return nil, errorx.Unknown
	}

	d.invalidateOpenLeaderboards(ctx, community.ID)

	follower, err := d.followerRepo.Get(ctx, req.UserID, community.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get follower: %v", err)
		return nil, errorx.Unknown
	}

	return &model.AdjustBonusResponse{ManualBonus: follower.ManualBonus}, nil
}

// Clear discards every giveaway record of the community, entries and invite
// attribution included. Armed timers of the removed giveaways are dropped.
func (d *giveawayDomain) Clear(
	ctx context.Context, req *model.ClearGiveawaysRequest,
) (*model.ClearGiveawaysResponse, error) {
	if err := d.verifyAdmin(ctx); err != nil {
		return nil, err
	}

	community, err := d.getCommunity(ctx, req.CommunityHandle)
	if err != nil {
		return nil, err
	}

	openEvents, err := d.giveawayRepo.GetOpenByCommunityID(ctx, community.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get open giveaways: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.entryRepo.DeleteByCommunityID(ctx, community.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete entries: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.giveawayRepo.DeleteByCommunityID(ctx, community.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete giveaways: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.followerRepo.ResetByCommunityID(ctx, community.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reset followers: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)
	if err := xcontext.TxError(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit transaction: %v", err)
		return nil, errorx.Unknown
	}

	for _, event := range openEvents {
		d.scheduler.Cancel(event.ID)
		if err := d.leaderboard.Invalidate(ctx, event.ID); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot invalidate leaderboard of %s: %v", event.ID, err)
		}
	}

	return &model.ClearGiveawaysResponse{}, nil
}

// closeEvent draws the winners and transitions the event to closed. The
// status update is guarded on the open status, so a concurrent close loses
// with gorm.ErrRecordNotFound and no winners of its own.
func (d *giveawayDomain) closeEvent(
	ctx context.Context, event *entity.GiveawayEvent, community *entity.Community,
) (*model.DrawResult, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// Taking the row lock before reading the entries lets an in-flight entry
	// finish first, so the draw sees every committed entry.
	if err := d.giveawayRepo.LockOpenEvent(ctx, event.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		xcontext.Logger(ctx).Errorf("Cannot lock giveaway %s: %v", event.ID, err)
		return nil, errorx.Unknown
	}

	entries, err := d.entryRepo.GetByEventID(ctx, event.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get entries of %s: %v", event.ID, err)
		return nil, errorx.Unknown
	}

	totalTickets := 0
	candidates := make([]Candidate, 0, len(entries))
	for _, entry := range entries {
		tickets, err := d.calculator.Weigh(ctx, community, entry.UserID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot weigh tickets of %s: %v", entry.UserID, err)
			return nil, errorx.Unknown
		}

		totalTickets += tickets
		candidates = append(candidates, Candidate{UserID: entry.UserID, Tickets: tickets})
	}

	winners := Draw(candidates, event.WinnerCount)

	event.Status = entity.GiveawayClosed
	event.ClosedAt = sql.NullTime{Valid: true, Time: time.Now()}
	event.TotalEntrants = len(entries)
	event.TotalTickets = totalTickets
	event.NoValidEntries = len(winners) == 0
	event.Winners = entity.Array[string]{}
	event.WinnerTickets = entity.Array[int]{}
	for _, winner := range winners {
		event.Winners = append(event.Winners, winner.UserID)
		event.WinnerTickets = append(event.WinnerTickets, winner.Tickets)
	}

	if err := d.giveawayRepo.CheckAndCloseEvent(ctx, event); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		xcontext.Logger(ctx).Errorf("Cannot close giveaway %s: %v", event.ID, err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)
	if err := xcontext.TxError(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit transaction: %v", err)
		return nil, errorx.Unknown
	}

	d.scheduler.Cancel(event.ID)
	if err := d.leaderboard.Invalidate(ctx, event.ID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot invalidate leaderboard of %s: %v", event.ID, err)
	}

	result := model.ConvertDrawResult(event)
	d.announce(ctx, event, &result)

	return &result, nil
}

// announce is best effort. A draw never fails because the message bus is
// down.
func (d *giveawayDomain) announce(
	ctx context.Context, event *entity.GiveawayEvent, result *model.DrawResult,
) {
	if d.publisher == nil {
		return
	}

	b, err := json.Marshal(result)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal draw result of %s: %v", event.ID, err)
		return
	}

	topic := xcontext.Configs(ctx).Kafka.AnnouncementTopic
	err = d.publisher.Publish(ctx, topic, &pubsub.Pack{
		Key: []byte(event.CommunityID),
		Msg: b,
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot announce draw result of %s: %v", event.ID, err)
	}
}

func (d *giveawayDomain) getCommunity(
	ctx context.Context, handle string,
) (*entity.Community, error) {
	community, err := d.communityRepo.GetByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
		return nil, errorx.Unknown
	}

	return community, nil
}

// getEvent resolves an explicit giveaway id, or the latest open giveaway of
// the community when the id is empty.
func (d *giveawayDomain) getEvent(
	ctx context.Context, community *entity.Community, giveawayID string,
) (*entity.GiveawayEvent, error) {
	if giveawayID == "" {
		event, err := d.giveawayRepo.GetLastOpenByCommunityID(ctx, community.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found any open giveaway")
			}

			xcontext.Logger(ctx).Errorf("Cannot get the last open giveaway: %v", err)
			return nil, errorx.Unknown
		}

		return event, nil
	}

	event, err := d.giveawayRepo.GetEventByID(ctx, giveawayID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found giveaway")
		}

		xcontext.Logger(ctx).Errorf("Cannot get giveaway: %v", err)
		return nil, errorx.Unknown
	}

	if event.CommunityID != community.ID {
		return nil, errorx.New(errorx.NotFound, "Not found giveaway")
	}

	return event, nil
}

func (d *giveawayDomain) verifyAdmin(ctx context.Context) error {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return errorx.New(errorx.Unauthenticated, "Require authentication")
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.PermissionDenied, "Permission denied")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return errorx.Unknown
	}

	if user.Role != entity.AdminRole {
		return errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	return nil
}

func (d *giveawayDomain) ensureUser(ctx context.Context, userID string) error {
	_, err := d.userRepo.GetByID(ctx, userID)
	if err == nil {
		return nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return errorx.Unknown
	}

	err = d.userRepo.Create(ctx, &entity.User{
		Base: entity.Base{ID: userID},
		Name: userID,
		Role: entity.UserRole,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (d *giveawayDomain) ensureFollower(ctx context.Context, userID, communityID string) error {
	_, err := d.followerRepo.Get(ctx, userID, communityID)
	if err == nil {
		return nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get follower: %v", err)
		return errorx.Unknown
	}

	err = d.followerRepo.Create(ctx, &entity.Follower{
		UserID:      userID,
		CommunityID: communityID,
		InviteCode:  crypto.GenerateRandomAlphabet(eventIDLength),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create follower: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (d *giveawayDomain) invalidateOpenLeaderboards(ctx context.Context, communityID string) {
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
