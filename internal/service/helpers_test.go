package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"todo-list/internal/credential"
	"todo-list/internal/notify"
	"todo-list/internal/repository"
)

type testEnv struct {
	users *repository.UserRepository
	tasks *repository.TaskRepository
	auth  *AuthService
	task  *TaskService
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()

	db, err := repository.NewDB(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	users := repository.NewUserRepository(db)
	tasks := repository.NewTaskRepository(db)
	return testEnv{
		users: users,
		tasks: tasks,
		auth:  NewAuthService(users, credential.Bcrypt{Cost: bcrypt.MinCost}),
		task:  NewTaskService(tasks),
	}
}

// recordingNotifier keeps every notification and optionally fails.
type recordingNotifier struct {
	mu   sync.Mutex
	got  []notify.Notification
	err  error
	sent chan notify.Notification
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{sent: make(chan notify.Notification, 64)}
}

func (r *recordingNotifier) Notify(ctx context.Context, n notify.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.got = append(r.got, n)
	select {
	case r.sent <- n:
	default:
	}
	return nil
}

func (r *recordingNotifier) failWith(err error) {
	r.mu.Lock()
	r.err = err
	r.mu.Unlock()
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.got)
}

var errSinkDown = errors.New("notification service unavailable")
