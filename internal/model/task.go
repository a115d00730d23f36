package model

import (
	"fmt"
	"strings"
	"time"
)

// DeadlineLayout is the stored text form of a deadline: no seconds, no zone.
const DeadlineLayout = "2006-01-02 15:04"

// Priority is one of High, Medium or Low.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// ParsePriority accepts any casing and returns the canonical value.
// An empty string yields Medium.
func ParsePriority(raw string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	default:
		return "", fmt.Errorf("unknown priority %q, expected High, Medium or Low", raw)
	}
}

// ParseDeadline parses the stored deadline text in loc.
func ParseDeadline(raw string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DeadlineLayout, strings.TrimSpace(raw), loc)
}

// FormatDeadline renders t in the stored deadline layout.
func FormatDeadline(t time.Time) string {
	return t.Format(DeadlineLayout)
}

// Task represents a single to-do item.
type Task struct {
	ID        uint     `gorm:"column:id;primaryKey"`
	UserID    uint     `gorm:"column:user_id"`
	Title     string   `gorm:"column:title"`
	Deadline  string   `gorm:"column:deadline"`
	Priority  Priority `gorm:"column:priority"`
	Completed bool     `gorm:"column:completed"`
}

func (Task) TableName() string {
	return "tasks"
}

// String renders the task the way the list screen shows it.
func (t Task) String() string {
	status := "Pending"
	if t.Completed {
		status = "Completed"
	}
	return fmt.Sprintf("%s | Deadline: %s | Priority: %s | %s", t.Title, t.Deadline, t.Priority, status)
}
