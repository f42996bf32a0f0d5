package statistic

import (
	"context"

	"github.com/giveawayhub/backend/internal/entity"
	"github.com/giveawayhub/backend/internal/repository"
	"github.com/giveawayhub/backend/pkg/errorx"
	"github.com/giveawayhub/backend/pkg/xcontext"
	"github.com/giveawayhub/backend/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

// A giveaway never carries more entrants than this in practice; it bounds the
// range read from redis.
const maxEntrants = 100000

// TicketWeigher computes the current ticket weight of one entrant.
type TicketWeigher interface {
	Weigh(ctx context.Context, community *entity.Community, userID string) (int, error)
}

type Score struct {
	UserID  string
	Tickets int
}

// Leaderboard caches per-giveaway ticket counts in a redis sorted set. The
// cache is a pure view; every draw reads ticket weights from the database.
type Leaderboard interface {
	GetTickets(ctx context.Context, event *entity.GiveawayEvent, community *entity.Community) ([]Score, error)
	Invalidate(ctx context.Context, eventID string) error
}

type leaderboard struct {
	entryRepo   repository.EntryRepository
	redisClient xredis.Client
	weigher     TicketWeigher
}

func New(
	entryRepo repository.EntryRepository,
	redisClient xredis.Client,
	weigher TicketWeigher,
) *leaderboard {
	return &leaderboard{
		entryRepo:   entryRepo,
		redisClient: redisClient,
		weigher:     weigher,
	}
}

// GetTickets returns every entrant with a positive ticket weight, ordered by
// weight descending.
func (l *leaderboard) GetTickets(
	ctx context.Context, event *entity.GiveawayEvent, community *entity.Community,
) ([]Score, error) {
	key := redisKeyTicketLeaderboard(event.ID)

	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return nil, errorx.Unknown
	}

	// If the key didn't exist in redis, load it from database.
	if !ok {
		if err := l.loadFromDB(ctx, event, community); err != nil {
			return nil, err
		}
	}

	results, err := l.redisClient.ZRevRangeWithScores(ctx, key, 0, maxEntrants)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get revrange redis: %v", err)
		return nil, errorx.Unknown
	}

	scores := []Score{}
	for _, z := range results {
		if z.Score <= 0 {
			continue
		}

		scores = append(scores, Score{
			UserID:  z.Member.(string),
			Tickets: int(z.Score),
		})
	}

	return scores, nil
}

// Invalidate drops the cached set. Called whenever anything feeding a ticket
// weight changes, so the next read rebuilds from the database.
func (l *leaderboard) Invalidate(ctx context.Context, eventID string) error {
	return l.redisClient.Del(ctx, redisKeyTicketLeaderboard(eventID))
}

func (l *leaderboard) loadFromDB(
	ctx context.Context, event *entity.GiveawayEvent, community *entity.Community,
) error {
	entries, err := l.entryRepo.GetByEventID(ctx, event.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get entries of %s: %v", event.ID, err)
		return errorx.Unknown
	}

	key := redisKeyTicketLeaderboard(event.ID)
	for _, entry := range entries {
		tickets, err := l.weigher.Weigh(ctx, community, entry.UserID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot weigh tickets of %s: %v", entry.UserID, err)
			return errorx.Unknown
		}

		err = l.redisClient.ZAdd(ctx, key, redis.Z{
			Member: entry.UserID,
			Score:  float64(tickets),
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot call ZAdd redis: %v", err)
			return errorx.Unknown
		}
	}

	return nil
}
