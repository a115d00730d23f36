package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"todo-list/internal/credential"
	"todo-list/internal/notify"
)

// Config keeps runtime settings for the to-do client.
type Config struct {
	DatabaseURL         string
	PollInterval        time.Duration
	DueSoonWindow       time.Duration
	NotificationTimeout time.Duration
	NotifyOnce          bool
	PasswordMode        string
	Notifier            string
}

// Load reads defaults, then the optional YAML file at path, then environment
// variables (DATABASE_URL, POLL_INTERVAL_SECONDS, ...). Later sources win.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("database_url", "tasks.db")
	v.SetDefault("poll_interval_seconds", 10)
	v.SetDefault("due_soon_minutes", 60)
	v.SetDefault("notify_timeout_seconds", 10)
	v.SetDefault("notify_once", false)
	v.SetDefault("password_mode", credential.ModeBcrypt)
	v.SetDefault("notifier", notify.KindDesktop)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := Config{
		DatabaseURL:         strings.TrimSpace(v.GetString("database_url")),
		PollInterval:        time.Duration(v.GetInt("poll_interval_seconds")) * time.Second,
		DueSoonWindow:       time.Duration(v.GetInt("due_soon_minutes")) * time.Minute,
		NotificationTimeout: time.Duration(v.GetInt("notify_timeout_seconds")) * time.Second,
		NotifyOnce:          v.GetBool("notify_once"),
		PasswordMode:        strings.ToLower(strings.TrimSpace(v.GetString("password_mode"))),
		Notifier:            strings.ToLower(strings.TrimSpace(v.GetString("notifier"))),
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL_SECONDS must be a positive integer")
	}
	if c.DueSoonWindow <= 0 {
		return fmt.Errorf("DUE_SOON_MINUTES must be a positive integer")
	}
	if c.NotificationTimeout <= 0 {
		return fmt.Errorf("NOTIFY_TIMEOUT_SECONDS must be a positive integer")
	}
	switch c.PasswordMode {
	case credential.ModeBcrypt, credential.ModePlaintext:
	default:
		return fmt.Errorf("PASSWORD_MODE must be %q or %q, got %q", credential.ModeBcrypt, credential.ModePlaintext, c.PasswordMode)
	}
	switch c.Notifier {
	case notify.KindDesktop, notify.KindLog:
	default:
		return fmt.Errorf("NOTIFIER must be %q or %q, got %q", notify.KindDesktop, notify.KindLog, c.Notifier)
	}
	return nil
}
