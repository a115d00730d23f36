package repository

import (
	"context"

	"gorm.io/gorm"

	apperrors "todo-list/internal/errors"
	"todo-list/internal/model"
)

// TaskRepository handles CRUD for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts task as not completed and fills in its ID.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	task.Completed = false
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return apperrors.Storage("create task", err)
	}
	return nil
}

// ListByUser returns a snapshot of the user's tasks, earliest deadline first.
// Deadlines compare as text; equal deadlines keep insertion order.
func (r *TaskRepository) ListByUser(ctx context.Context, userID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("deadline ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, apperrors.Storage("list tasks", err)
	}
	return tasks, nil
}

// MarkCompleted sets completed for the task. Unknown ids are ignored.
func (r *TaskRepository) MarkCompleted(ctx context.Context, taskID uint) error {
	if err := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", taskID).
		Update("completed", true).Error; err != nil {
		return apperrors.Storage("complete task", err)
	}
	return nil
}

// Delete removes the task. Unknown ids are ignored.
func (r *TaskRepository) Delete(ctx context.Context, taskID uint) error {
	if err := r.db.WithContext(ctx).Where("id = ?", taskID).
		Delete(&model.Task{}).Error; err != nil {
		return apperrors.Storage("delete task", err)
	}
	return nil
}
