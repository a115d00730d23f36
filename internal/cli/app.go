package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"todo-list/internal/config"
	"todo-list/internal/credential"
	apperrors "todo-list/internal/errors"
	"todo-list/internal/notify"
	"todo-list/internal/repository"
	"todo-list/internal/service"
)

// app holds everything one command invocation needs.
type app struct {
	db      *gorm.DB
	session *service.Session
}

func openApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	hasher, err := credential.New(cfg.PasswordMode)
	if err != nil {
		return nil, err
	}
	notifier, err := notify.New(cfg.Notifier)
	if err != nil {
		return nil, err
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}

	authSvc := service.NewAuthService(repository.NewUserRepository(db), hasher)
	taskSvc := service.NewTaskService(repository.NewTaskRepository(db))
	session := service.NewSession(authSvc, taskSvc, notifier, service.MonitorOptions{
		Interval:   cfg.PollInterval,
		Window:     cfg.DueSoonWindow,
		Timeout:    cfg.NotificationTimeout,
		NotifyOnce: cfg.NotifyOnce,
	})

	return &app{db: db, session: session}, nil
}

// login binds the session to the --username/--password flags.
func (a *app) login(cmd *cobra.Command) error {
	ok, err := a.session.Login(cmd.Context(), username, password)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrInvalidCredentials
	}
	return nil
}

func (a *app) Close() {
	a.session.Logout()
	if sqlDB, err := a.db.DB(); err == nil {
		sqlDB.Close()
	}
}

// withApp opens the app, optionally logs in, and runs fn.
func withApp(needLogin bool, fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if needLogin {
			if err := a.login(cmd); err != nil {
				return err
			}
		}
		return fn(cmd, args, a)
	}
}
