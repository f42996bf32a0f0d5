package domain

import (
	"context"
	"time"

	"github.com/giveawayhub/backend/internal/repository"
	"github.com/giveawayhub/backend/pkg/xcontext"
	"github.com/puzpuzpuz/xsync"
	"golang.org/x/sync/errgroup"
)

// GiveawayCloser closes a giveaway whose deadline elapsed. The close must be
// idempotent because a timer can race a manual close.
type GiveawayCloser interface {
	CloseExpired(ctx context.Context, eventID string) error
}

// DeadlineScheduler keeps one in-process timer per open giveaway with a
// deadline. Timers are lost on restart; Start sweeps the database and
// re-arms them.
type DeadlineScheduler struct {
	giveawayRepo repository.GiveawayRepository
	closer       GiveawayCloser
	timers       *xsync.MapOf[string, *time.Timer]

	// rootCtx outlives the request that armed a timer. It carries the
	// database, configs and logger of the process.
	rootCtx context.Context
}

func NewDeadlineScheduler(giveawayRepo repository.GiveawayRepository) *DeadlineScheduler {
	return &DeadlineScheduler{
		giveawayRepo: giveawayRepo,
		timers:       xsync.NewMapOf[*time.Timer](),
	}
}

// SetCloser must be called before Start or Schedule. It is separated from the
// constructor because the closer itself needs the scheduler.
func (s *DeadlineScheduler) SetCloser(closer GiveawayCloser) {
	s.closer = closer
}

// Start closes every open giveaway whose deadline already elapsed, then arms
// a timer for each remaining one. Call once at boot, before serving requests.
func (s *DeadlineScheduler) Start(ctx context.Context) error {
	s.rootCtx = ctx

	events, err := s.giveawayRepo.GetOpenEventsWithDeadline(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	eg := errgroup.Group{}
	for _, event := range events {
		if event.DeadlineElapsed(now) {
			eventID := event.ID
			eg.Go(func() error {
				if err := s.closer.CloseExpired(ctx, eventID); err != nil {
					xcontext.Logger(ctx).Errorf(
						"Cannot close overdue giveaway %s: %v", eventID, err)
				}

				return nil
			})
		} else {
			s.Schedule(event.ID, event.Deadline.Time)
		}
	}

	return eg.Wait()
}

// Schedule arms a timer firing at deadline. Re-scheduling the same giveaway
// replaces the previous timer.
func (s *DeadlineScheduler) Schedule(eventID string, deadline time.Time) {
	timer := time.AfterFunc(time.Until(deadline), func() {
		ctx := s.rootCtx
		if ctx == nil {
			ctx = context.Background()
		}

		s.timers.Delete(eventID)
		if err := s.closer.CloseExpired(ctx, eventID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot close giveaway %s on deadline: %v", eventID, err)
		}
	})

	if old, ok := s.timers.LoadAndStore(eventID, timer); ok {
		old.Stop()
	}
}

// Cancel stops the timer of a giveaway that was closed manually. Calling it
// for an unknown giveaway is a no-op.
func (s *DeadlineScheduler) Cancel(eventID string) {
	if timer, ok := s.timers.LoadAndDelete(eventID); ok {
		timer.Stop()
	}
}

// Stop drops every armed timer. Used on shutdown.
func (s *DeadlineScheduler) Stop() {
	s.timers.Range(func(eventID string, timer *time.Timer) bool {
		timer.Stop()
		s.timers.Delete(eventID)
		return true
	})
}
