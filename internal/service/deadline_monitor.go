package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"todo-list/internal/model"
	"todo-list/internal/notify"
)

const (
	DefaultPollInterval        = 10 * time.Second
	DefaultDueSoonWindow       = time.Hour
	DefaultNotificationTimeout = 10 * time.Second
)

// TaskLister is the read side the monitor polls.
type TaskLister interface {
	ListTasks(ctx context.Context, userID uint) ([]model.Task, error)
}

// MonitorOptions tunes a DeadlineMonitor. Zero values fall back to defaults.
type MonitorOptions struct {
	Interval time.Duration
	Window   time.Duration
	Timeout  time.Duration
	// NotifyOnce suppresses repeats for a task already announced while it
	// stays in the window. Off, every poll re-announces every due task.
	NotifyOnce bool
	Now        func() time.Time
}

func (o MonitorOptions) withDefaults() MonitorOptions {
	if o.Interval <= 0 {
		o.Interval = DefaultPollInterval
	}
	if o.Window <= 0 {
		o.Window = DefaultDueSoonWindow
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultNotificationTimeout
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// DeadlineMonitor polls one user's tasks and announces those due soon.
type DeadlineMonitor struct {
	tasks    TaskLister
	notifier notify.Notifier
	userID   uint
	opts     MonitorOptions

	mu       sync.Mutex
	notified map[uint]string // task id -> deadline it was announced for
}

func NewDeadlineMonitor(tasks TaskLister, notifier notify.Notifier, userID uint, opts MonitorOptions) *DeadlineMonitor {
	return &DeadlineMonitor{
		tasks:    tasks,
		notifier: notifier,
		userID:   userID,
		opts:     opts.withDefaults(),
		notified: make(map[uint]string),
	}
}

// DueSoon reports whether deadline lies within [now, now+window].
func DueSoon(deadline, now time.Time, window time.Duration) bool {
	diff := deadline.Sub(now)
	return diff >= 0 && diff <= window
}

// Run polls once immediately and then every interval until ctx is done.
func (m *DeadlineMonitor) Run(ctx context.Context) error {
	log.Printf("[info] deadline monitor started for user %d (every %s)", m.userID, m.opts.Interval)

	m.pollAndLog(ctx)

	scheduler := NewSchedulerService(m.opts.Now().Location())
	if _, err := scheduler.ScheduleInterval(m.opts.Interval, func() { m.pollAndLog(ctx) }); err != nil {
		return fmt.Errorf("schedule deadline poll: %w", err)
	}
	scheduler.Start()

	<-ctx.Done()
	scheduler.Stop()

	log.Printf("[info] deadline monitor stopped for user %d", m.userID)
	return nil
}

// Poll runs a single cycle and returns how many notifications were sent.
func (m *DeadlineMonitor) Poll(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tasks, err := m.tasks.ListTasks(ctx, m.userID)
	if err != nil {
		return 0, err
	}

	now := m.opts.Now()
	due := make(map[uint]string)
	sent := 0

	for _, task := range tasks {
		if task.Completed {
			continue
		}
		deadline, err := model.ParseDeadline(task.Deadline, now.Location())
		if err != nil {
			log.Printf("[warn] task %d has malformed deadline %q, skipping: %v", task.ID, task.Deadline, err)
			continue
		}
		if !DueSoon(deadline, now, m.opts.Window) {
			continue
		}

		due[task.ID] = task.Deadline
		if m.opts.NotifyOnce && m.notified[task.ID] == task.Deadline {
			continue
		}

		if err := m.notifier.Notify(ctx, dueSoonNotification(task, deadline, m.opts.Timeout)); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return sent, ctxErr
			}
			log.Printf("[warn] notify task %d: %v", task.ID, err)
			continue
		}
		sent++
		if m.opts.NotifyOnce {
			m.notified[task.ID] = task.Deadline
		}
	}

	// Forget tasks that left the window so a new deadline is announced again.
	for id, deadline := range m.notified {
		if due[id] != deadline {
			delete(m.notified, id)
		}
	}

	return sent, nil
}

func (m *DeadlineMonitor) pollAndLog(ctx context.Context) {
	if _, err := m.Poll(ctx); err != nil && !errors.Is(err, context.Canceled) && ctx.Err() == nil {
		log.Printf("[warn] deadline poll for user %d: %v", m.userID, err)
	}
}

func dueSoonNotification(task model.Task, deadline time.Time, timeout time.Duration) notify.Notification {
	return notify.Notification{
		Title:   fmt.Sprintf("Task Due Soon: %s", task.Title),
		Message: fmt.Sprintf("Your task '%s' is due at %s", task.Title, model.FormatDeadline(deadline)),
		Timeout: timeout,
	}
}
