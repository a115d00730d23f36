package service

import (
	"context"
	"sync"

	apperrors "todo-list/internal/errors"
	"todo-list/internal/model"
	"todo-list/internal/notify"
)

// Session binds one interactive client to at most one logged-in user and
// owns that user's deadline monitor.
type Session struct {
	auth        *AuthService
	tasks       *TaskService
	notifier    notify.Notifier
	monitorOpts MonitorOptions

	mu          sync.Mutex
	userID      uint
	loggedIn    bool
	stopMonitor context.CancelFunc
	monitorDone chan struct{}
}

func NewSession(auth *AuthService, tasks *TaskService, notifier notify.Notifier, opts MonitorOptions) *Session {
	return &Session{
		auth:        auth,
		tasks:       tasks,
		notifier:    notifier,
		monitorOpts: opts,
	}
}

// Signup creates an account without logging in.
func (s *Session) Signup(ctx context.Context, username, password string) error {
	return s.auth.Signup(ctx, username, password)
}

// Login drops any current identity, then binds the session to the user
// when the credentials match.
func (s *Session) Login(ctx context.Context, username, password string) (bool, error) {
	s.Logout()

	userID, ok, err := s.auth.Authenticate(ctx, username, password)
	if err != nil || !ok {
		return false, err
	}

	s.mu.Lock()
	s.userID = userID
	s.loggedIn = true
	s.mu.Unlock()
	return true, nil
}

// Logout stops the monitor, waits for it to exit and clears the identity.
func (s *Session) Logout() {
	s.mu.Lock()
	stop, done := s.stopMonitor, s.monitorDone
	s.stopMonitor, s.monitorDone = nil, nil
	s.userID = 0
	s.loggedIn = false
	s.mu.Unlock()

	if stop != nil {
		stop()
		<-done
	}
}

// UserID returns the logged-in user, if any.
func (s *Session) UserID() (uint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID, s.loggedIn
}

func (s *Session) currentUser() (uint, error) {
	userID, ok := s.UserID()
	if !ok {
		return 0, apperrors.ErrUnauthenticated
	}
	return userID, nil
}

func (s *Session) AddTask(ctx context.Context, input TaskInput) (*model.Task, error) {
	userID, err := s.currentUser()
	if err != nil {
		return nil, err
	}
	return s.tasks.AddTask(ctx, userID, input)
}

func (s *Session) ListTasks(ctx context.Context) ([]model.Task, error) {
	userID, err := s.currentUser()
	if err != nil {
		return nil, err
	}
	return s.tasks.ListTasks(ctx, userID)
}

func (s *Session) MarkCompleted(ctx context.Context, taskID uint) error {
	if _, err := s.currentUser(); err != nil {
		return err
	}
	return s.tasks.MarkCompleted(ctx, taskID)
}

func (s *Session) DeleteTask(ctx context.Context, taskID uint) error {
	if _, err := s.currentUser(); err != nil {
		return err
	}
	return s.tasks.DeleteTask(ctx, taskID)
}

// StartMonitor launches the deadline monitor for the logged-in user. It runs
// until ctx is cancelled or the session logs out. Calling it again while a
// monitor is running is a no-op.
func (s *Session) StartMonitor(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loggedIn {
		return apperrors.ErrUnauthenticated
	}
	if s.stopMonitor != nil {
		return nil
	}

	monitorCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	monitor := NewDeadlineMonitor(s.tasks, s.notifier, s.userID, s.monitorOpts)

	s.stopMonitor = cancel
	s.monitorDone = done

	go func() {
		defer close(done)
		_ = monitor.Run(monitorCtx)
	}()
	return nil
}
