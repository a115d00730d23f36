package service

import (
	"context"
	"strings"
	"time"

	apperrors "todo-list/internal/errors"
	"todo-list/internal/model"
	"todo-list/internal/repository"
)

// TaskInput represents data required to create a task.
type TaskInput struct {
	Title    string
	Deadline string // YYYY-MM-DD HH:MM
	Priority string // High, Medium or Low; empty means Medium
}

// TaskService wraps task-related business logic.
type TaskService struct {
	taskRepo *repository.TaskRepository
}

func NewTaskService(taskRepo *repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

func (s *TaskService) AddTask(ctx context.Context, userID uint, input TaskInput) (*model.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.Validation("title is required")
	}

	deadline := strings.TrimSpace(input.Deadline)
	if deadline == "" {
		return nil, apperrors.Validation("deadline is required")
	}
	// UTC has no DST gaps; the text is stored as entered.
	if _, err := time.Parse(model.DeadlineLayout, deadline); err != nil {
		return nil, apperrors.Validation("invalid deadline %q, use YYYY-MM-DD HH:MM", deadline)
	}

	priority, err := model.ParsePriority(input.Priority)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeValidation, "invalid priority", err)
	}

	task := model.Task{
		UserID:   userID,
		Title:    title,
		Deadline: deadline,
		Priority: priority,
	}
	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) ListTasks(ctx context.Context, userID uint) ([]model.Task, error) {
	return s.taskRepo.ListByUser(ctx, userID)
}

// MarkCompleted is idempotent and ignores unknown ids.
func (s *TaskService) MarkCompleted(ctx context.Context, taskID uint) error {
	return s.taskRepo.MarkCompleted(ctx, taskID)
}

// DeleteTask ignores unknown ids.
func (s *TaskService) DeleteTask(ctx context.Context, taskID uint) error {
	return s.taskRepo.Delete(ctx, taskID)
}
