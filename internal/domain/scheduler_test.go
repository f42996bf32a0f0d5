package domain

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/giveawayhub/backend/internal/entity"
	"github.com/giveawayhub/backend/internal/repository"
	"github.com/giveawayhub/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

type recordingCloser struct {
	closed chan string
}

func newRecordingCloser() *recordingCloser {
	return &recordingCloser{closed: make(chan string, 16)}
}

func (c *recordingCloser) CloseExpired(ctx context.Context, eventID string) error {
	c.closed <- eventID
	return nil
}

func (c *recordingCloser) wait(t *testing.T) string {
	t.Helper()

	select {
	case eventID := <-c.closed:
		return eventID
	case <-time.After(3 * time.Second):
		t.Fatal("no giveaway was closed in time")
		return ""
	}
}

func Test_DeadlineScheduler_TimerFires(t *testing.T) {
	ctx := testutil.MockContext()
	closer := newRecordingCloser()

	scheduler := NewDeadlineScheduler(repository.NewGiveawayRepository())
	scheduler.SetCloser(closer)
	require.NoError(t, scheduler.Start(ctx))
	defer scheduler.Stop()

	scheduler.Schedule("giveaway1", time.Now().Add(20*time.Millisecond))
	require.Equal(t, "giveaway1", closer.wait(t))
}

func Test_DeadlineScheduler_Cancel(t *testing.T) {
	ctx := testutil.MockContext()
	closer := newRecordingCloser()

	scheduler := NewDeadlineScheduler(repository.NewGiveawayRepository())
	scheduler.SetCloser(closer)
	require.NoError(t, scheduler.Start(ctx))
	defer scheduler.Stop()

	scheduler.Schedule("giveaway1", time.Now().Add(50*time.Millisecond))
	scheduler.Cancel("giveaway1")

	select {
	case eventID := <-closer.closed:
		t.Fatalf("giveaway %s was closed after cancel", eventID)
	case <-time.After(200 * time.Millisecond):
	}
}

func Test_DeadlineScheduler_Reschedule(t *testing.T) {
	ctx := testutil.MockContext()
	closer := newRecordingCloser()

	scheduler := NewDeadlineScheduler(repository.NewGiveawayRepository())
	scheduler.SetCloser(closer)
	require.NoError(t, scheduler.Start(ctx))
	defer scheduler.Stop()

	scheduler.Schedule("giveaway1", time.Now().Add(time.Hour))
	scheduler.Schedule("giveaway1", time.Now().Add(20*time.Millisecond))

	require.Equal(t, "giveaway1", closer.wait(t))

	select {
	case eventID := <-closer.closed:
		t.Fatalf("giveaway %s was closed twice", eventID)
	case <-time.After(100 * time.Millisecond):
	}
}

func Test_DeadlineScheduler_StartSweep(t *testing.T) {
	ctx := testutil.MockContext()
	closer := newRecordingCloser()

	overdue, err := testutil.SampleGiveaway(ctx, &entity.GiveawayEvent{
		Deadline: sql.NullTime{Valid: true, Time: time.Now().Add(-time.Hour)},
	})
	require.NoError(t, err)

	upcoming, err := testutil.SampleGiveaway(ctx, &entity.GiveawayEvent{
		Deadline: sql.NullTime{Valid: true, Time: time.Now().Add(50 * time.Millisecond)},
	})
	require.NoError(t, err)

	scheduler := NewDeadlineScheduler(repository.NewGiveawayRepository())
	scheduler.SetCloser(closer)
	require.NoError(t, scheduler.Start(ctx))
	defer scheduler.Stop()

	// The overdue giveaway is closed during the sweep, the upcoming one when
	// its deadline elapses.
	require.Equal(t, overdue.ID, closer.wait(t))
	require.Equal(t, upcoming.ID, closer.wait(t))
}
