package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"task-track-system.com/task-track-system/internal/constants"
	apperrors "task-track-system.com/task-track-system/internal/errors"
	model "task-track-system.com/task-track-system/internal/models"
)

// DependencyRepository owns the task_dependencies relation. It stores direct
// edges only; transitive reachability is never computed.
type DependencyRepository struct {
	db *gorm.DB
}

func NewDependencyRepository(db *gorm.DB) *DependencyRepository {
	return &DependencyRepository{db: db}
}

// DependencyState is a direct prerequisite of a task paired with its
// current status, used by the status gate to build denial messages.
type DependencyState struct {
	TaskID string
	Name   string
	Status constants.TaskStatus
}

// AddEdge inserts the edge (taskID requires dependsOnTaskID). A duplicate
// edge is rejected with ErrDuplicateDependency rather than silently
// tolerated, so callers learn the graph already encodes the relationship.
// The composite primary key makes the check atomic: a concurrent insert of
// the same edge lands on the conflict clause, not a constraint error.
func (r *DependencyRepository) AddEdge(ctx context.Context, taskID, dependsOnTaskID string) error {
	edge := &model.TaskDependency{
		TaskID:          taskID,
		DependsOnTaskID: dependsOnTaskID,
		CreatedAt:       time.Now().UTC(),
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(edge)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrDuplicateDependency
	}
	return nil
}

// RemoveEdge is idempotent: removing an absent edge is not an error.
func (r *DependencyRepository) RemoveEdge(ctx context.Context, taskID, dependsOnTaskID string) error {
	return r.db.WithContext(ctx).
		Where("task_id = ? AND depends_on_task_id = ?", taskID, dependsOnTaskID).
		Delete(&model.TaskDependency{}).Error
}

// DirectDependencies returns the task ids that taskID directly requires.
func (r *DependencyRepository) DirectDependencies(ctx context.Context, taskID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&model.TaskDependency{}).
		Where("task_id = ?", taskID).
		Pluck("depends_on_task_id", &ids).Error
	return ids, err
}

// DirectDependents returns the task ids that directly require taskID.
func (r *DependencyRepository) DirectDependents(ctx context.Context, taskID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&model.TaskDependency{}).
		Where("depends_on_task_id = ?", taskID).
		Pluck("task_id", &ids).Error
	return ids, err
}

// RemoveAllEdgesForTask removes every edge where the task appears as either
// endpoint. Called when a task is deleted.
func (r *DependencyRepository) RemoveAllEdgesForTask(ctx context.Context, taskID string) error {
	return r.db.WithContext(ctx).
		Where("task_id = ? OR depends_on_task_id = ?", taskID, taskID).
		Delete(&model.TaskDependency{}).Error
}

// DependencyStates joins each direct prerequisite of taskID with its current
// name and status, ordered by name ascending.
func (r *DependencyRepository) DependencyStates(ctx context.Context, taskID string) ([]DependencyState, error) {
	var states []DependencyState
	err := r.db.WithContext(ctx).Model(&model.TaskDependency{}).
		Select("tasks.id AS task_id, tasks.name AS name, tasks.status AS status").
		Joins("JOIN tasks ON tasks.id = task_dependencies.depends_on_task_id").
		Where("task_dependencies.task_id = ?", taskID).
		Order("tasks.name ASC").
		Scan(&states).Error
	return states, err
}

// EdgesForProject returns every edge whose dependent task belongs to the
// project. Used by the optional cycle-detection hook.
func (r *DependencyRepository) EdgesForProject(ctx context.Context, projectID string) ([]model.TaskDependency, error) {
	var edges []model.TaskDependency
	err := r.db.WithContext(ctx).Model(&model.TaskDependency{}).
		Joins("JOIN tasks ON tasks.id = task_dependencies.task_id").
		Where("tasks.project_id = ?", projectID).
		Find(&edges).Error
	return edges, err
}
