package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-list/internal/model"
	"todo-list/internal/notify"
)

var monitorNow = time.Date(2030, 1, 1, 8, 30, 0, 0, time.UTC)

// fakeClock lets a test move time between polls.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func addRawTask(t *testing.T, env testEnv, userID uint, title, deadline string) *model.Task {
	t.Helper()
	task := &model.Task{UserID: userID, Title: title, Deadline: deadline, Priority: model.PriorityMedium}
	require.NoError(t, env.tasks.Create(context.Background(), task))
	return task
}

func TestDueSoon(t *testing.T) {
	cases := []struct {
		delta time.Duration
		want  bool
	}{
		{-time.Second, false},
		{0, true},
		{30 * time.Minute, true},
		{time.Hour, true},
		{time.Hour + time.Second, false},
		{48 * time.Hour, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DueSoon(monitorNow.Add(tc.delta), monitorNow, time.Hour), tc.delta.String())
	}
}

func TestDeadlineMonitor_Poll(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	addRawTask(t, env, 1, "Submit report", "2030-01-01 09:00") // +30m
	addRawTask(t, env, 1, "Edge", "2030-01-01 09:30")          // +60m exactly
	addRawTask(t, env, 1, "Later", "2030-01-01 10:31")         // +2h01m
	addRawTask(t, env, 1, "Overdue", "2030-01-01 08:29")       // -1m
	addRawTask(t, env, 1, "Broken", "soon")
	done := addRawTask(t, env, 1, "Done", "2030-01-01 08:45")
	require.NoError(t, env.tasks.MarkCompleted(ctx, done.ID))
	addRawTask(t, env, 2, "Other user", "2030-01-01 08:45")

	rec := newRecordingNotifier()
	m := NewDeadlineMonitor(env.task, rec, 1, MonitorOptions{Now: func() time.Time { return monitorNow }})

	sent, err := m.Poll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Equal(t, []notify.Notification{
		{
			Title:   "Task Due Soon: Submit report",
			Message: "Your task 'Submit report' is due at 2030-01-01 09:00",
			Timeout: DefaultNotificationTimeout,
		},
		{
			Title:   "Task Due Soon: Edge",
			Message: "Your task 'Edge' is due at 2030-01-01 09:30",
			Timeout: DefaultNotificationTimeout,
		},
	}, rec.got)
}

func TestDeadlineMonitor_RepeatsEveryCycleByDefault(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	addRawTask(t, env, 1, "Submit report", "2030-01-01 09:00")

	rec := newRecordingNotifier()
	m := NewDeadlineMonitor(env.task, rec, 1, MonitorOptions{Now: func() time.Time { return monitorNow }})

	for i := 0; i < 3; i++ {
		sent, err := m.Poll(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, sent)
	}
	assert.Equal(t, 3, rec.count())
}

func TestDeadlineMonitor_NotifyOnce(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	addRawTask(t, env, 1, "Submit report", "2030-01-01 09:00")

	clock := &fakeClock{now: monitorNow}
	rec := newRecordingNotifier()
	m := NewDeadlineMonitor(env.task, rec, 1, MonitorOptions{NotifyOnce: true, Now: clock.Now})

	sent, err := m.Poll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	clock.Set(monitorNow.Add(10 * time.Second))
	sent, err = m.Poll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)

	// A second task entering the window is still announced.
	addRawTask(t, env, 1, "Call bank", "2030-01-01 09:10")
	sent, err = m.Poll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, 2, rec.count())
}

func TestDeadlineMonitor_NotifyOnceRetriesAfterSinkFailure(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	addRawTask(t, env, 1, "Submit report", "2030-01-01 09:00")

	rec := newRecordingNotifier()
	rec.failWith(errSinkDown)
	m := NewDeadlineMonitor(env.task, rec, 1, MonitorOptions{NotifyOnce: true, Now: func() time.Time { return monitorNow }})

	sent, err := m.Poll(ctx)
	require.NoError(t, err, "sink failures are logged, not returned")
	assert.Equal(t, 0, sent)

	rec.failWith(nil)
	sent, err = m.Poll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}

func TestDeadlineMonitor_SkipsCompletedAndDeletedOnNextPoll(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	a := addRawTask(t, env, 1, "a", "2030-01-01 09:00")
	b := addRawTask(t, env, 1, "b", "2030-01-01 09:05")

	rec := newRecordingNotifier()
	m := NewDeadlineMonitor(env.task, rec, 1, MonitorOptions{Now: func() time.Time { return monitorNow }})

	sent, err := m.Poll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sent)

	require.NoError(t, env.task.MarkCompleted(ctx, a.ID))
	require.NoError(t, env.task.DeleteTask(ctx, b.ID))

	sent, err = m.Poll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
}

func TestDeadlineMonitor_RunStopsOnCancel(t *testing.T) {
	env := setupTestEnv(t)
	addRawTask(t, env, 1, "Submit report", "2030-01-01 09:00")

	rec := newRecordingNotifier()
	m := NewDeadlineMonitor(env.task, rec, 1, MonitorOptions{
		Interval: time.Second,
		Now:      func() time.Time { return monitorNow },
	})

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() {
		result <- m.Run(ctx)
	}()

	// One immediate poll plus at least one scheduled poll.
	for i := 0; i < 2; i++ {
		select {
		case n := <-rec.sent:
			assert.Equal(t, "Task Due Soon: Submit report", n.Title)
		case <-time.After(5 * time.Second):
			t.Fatalf("no notification for cycle %d", i+1)
		}
	}

	cancel()
	select {
	case err := <-result:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("monitor did not stop after cancel")
	}
}
