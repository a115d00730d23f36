// Package notify delivers due-soon alerts to the user.
package notify

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gen2brain/beeep"
)

const (
	KindDesktop = "desktop"
	KindLog     = "log"
)

// Notification is a single alert. Timeout is how long the sink should keep it
// on screen; sinks that cannot control it ignore it.
type Notification struct {
	Title   string
	Message string
	Timeout time.Duration
}

// Notifier is fire-and-forget: a nil error means the sink accepted the
// notification, not that the user saw it.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// New returns the notifier for kind.
func New(kind string) (Notifier, error) {
	switch kind {
	case KindDesktop, "":
		return Desktop{}, nil
	case KindLog:
		return NewLog(log.New(os.Stdout, "", log.LstdFlags)), nil
	default:
		return nil, fmt.Errorf("unknown notifier %q", kind)
	}
}

// Desktop raises a system notification through the platform's notification
// service (libnotify/D-Bus, Notification Center, toast). Notification.Timeout
// is ignored: the platform decides how long the alert stays on screen.
type Desktop struct {
	AppIcon string
}

func (d Desktop) Notify(ctx context.Context, n Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := beeep.Notify(n.Title, n.Message, d.AppIcon); err != nil {
		return fmt.Errorf("desktop notify: %w", err)
	}
	return nil
}

// Log writes notifications to a logger. Useful on headless machines.
type Log struct {
	logger *log.Logger
}

func NewLog(logger *log.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Notify(ctx context.Context, n Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.logger.Printf("[notify] %s: %s", n.Title, n.Message)
	return nil
}
