package lib

import (
	"context"
	"testing"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler(t *testing.T, handler ReminderHandler) *ReminderScheduler {
	sched, err := gocron.NewScheduler()
	require.NoError(t, err)
	sched.Start()
	t.Cleanup(func() { _ = sched.Shutdown() })
	return NewReminderScheduler(sched, handler)
}

func TestReminderSchedulerFires(t *testing.T) {
	fired := make(chan string, 1)
	r := newTestScheduler(t, func(ctx context.Context, ticketID string) {
		fired <- ticketID
	})

	require.NoError(t, r.Schedule("ticket-1", time.Now().Add(200*time.Millisecond)))
	assert.True(t, r.Pending("ticket-1"))

	select {
	case id := <-fired:
		assert.Equal(t, "ticket-1", id)
	case <-time.After(5 * time.Second):
		t.Fatal("reminder did not fire")
	}
}

func TestReminderSchedulerCancel(t *testing.T) {
	r := newTestScheduler(t, func(ctx context.Context, ticketID string) {})

	require.NoError(t, r.Schedule("ticket-2", time.Now().Add(time.Hour)))
	assert.True(t, r.Pending("ticket-2"))

	require.NoError(t, r.Cancel("ticket-2"))
	assert.Eventually(t, func() bool { return !r.Pending("ticket-2") }, time.Second, 10*time.Millisecond)
}

func TestReminderSchedulerReplaces(t *testing.T) {
	r := newTestScheduler(t, func(ctx context.Context, ticketID string) {})

	require.NoError(t, r.Schedule("ticket-3", time.Now().Add(time.Hour)))
	require.NoError(t, r.Schedule("ticket-3", time.Now().Add(2*time.Hour)))
	assert.Eventually(t, func() bool { return len(r.sched.Jobs()) == 1 }, time.Second, 10*time.Millisecond)
}

func TestReminderSchedulerSkipsPast(t *testing.T) {
	r := newTestScheduler(t, func(ctx context.Context, ticketID string) {})

	require.NoError(t, r.Schedule("ticket-4", time.Now().Add(-time.Minute)))
	assert.False(t, r.Pending("ticket-4"))
}

func TestDepartureTime(t *testing.T) {
	got, err := DepartureTime("2026-12-01", "10:00", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 12, 1, 10, 0, 0, 0, time.UTC), got)

	_, err = DepartureTime("2026-12-01", "", time.UTC)
	assert.Error(t, err)
}
