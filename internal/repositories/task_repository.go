package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"task-track-system.com/task-track-system/internal/constants"
	apperrors "task-track-system.com/task-track-system/internal/errors"
	model "task-track-system.com/task-track-system/internal/models"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) (*model.Task, error) {
	task.ID = uuid.NewString()
	if task.Status == "" {
		task.Status = constants.StatusTodo
	}
	if task.Priority == "" {
		task.Priority = constants.PriorityMedium
	}
	task.Version = 1
	task.CreatedAt = time.Now().UTC()
	task.UpdatedAt = task.CreatedAt

	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, err
	}

	return task, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at desc").
		Find(&tasks).Error
	return tasks, err
}

// ListOverdue returns tasks whose due date has passed and that are not yet
// DONE. Used by the overdue scanner.
func (r *TaskRepository) ListOverdue(ctx context.Context, now time.Time) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("due_date IS NOT NULL AND due_date < ? AND status <> ?", now, constants.StatusDone).
		Order("due_date asc").
		Find(&tasks).Error
	return tasks, err
}

// Update writes the task under optimistic locking: the row is only updated
// if its version still matches the one the caller loaded. A concurrent
// writer wins the race and the loser gets ErrOptimisticLock.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Updates(map[string]interface{}{
			"name":           task.Name,
			"description":    task.Description,
			"status":         task.Status,
			"priority":       task.Priority,
			"due_date":       task.DueDate,
			"parent_task_id": task.ParentTaskID,
			"updated_at":     time.Now().UTC(),
			"version":        gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}

	task.Version++
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Task{}).Error
}
