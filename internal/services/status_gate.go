package services

import (
	"context"

	"gorm.io/gorm"

	"task-track-system.com/task-track-system/internal/constants"
	apperrors "task-track-system.com/task-track-system/internal/errors"
	model "task-track-system.com/task-track-system/internal/models"
	repository "task-track-system.com/task-track-system/internal/repositories"
)

// StatusGate guards the one constrained transition: into DONE. A task may
// only be completed once every task it directly depends on is DONE. All
// other transitions, including leaving DONE, pass through unchecked.
type StatusGate struct {
	db *gorm.DB
}

func NewStatusGate(db *gorm.DB) *StatusGate {
	return &StatusGate{db: db}
}

// CanComplete reports whether the task may move to DONE right now. When it
// may not, the blocking prerequisites are returned in name order, each with
// its current status, so the caller can tell the user exactly what to
// unblock. A task with no dependencies can always complete.
func (g *StatusGate) CanComplete(ctx context.Context, taskID string) (bool, []apperrors.BlockingTask, error) {
	blocking, err := blockingDependencies(ctx, g.db, taskID)
	if err != nil {
		return false, nil, err
	}
	return len(blocking) == 0, blocking, nil
}

// RequestStatusChange validates and persists a status change as one atomic
// unit. The dependency check and the write happen inside a single
// transaction, so a dependency slipping back to an incomplete status between
// check and write cannot let an invalid completion through. Denial comes
// back as a DependenciesIncompleteError carrying the blocking list; it is an
// expected outcome, not a fault.
func (g *StatusGate) RequestStatusChange(ctx context.Context, task *model.Task, newStatus constants.TaskStatus) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if newStatus == constants.StatusDone {
			blocking, err := blockingDependencies(ctx, tx, task.ID)
			if err != nil {
				return err
			}
			if len(blocking) > 0 {
				return &apperrors.DependenciesIncompleteError{
					TaskName: task.Name,
					Blocking: blocking,
				}
			}
		}

		task.Status = newStatus
		return repository.NewTaskRepository(tx).Update(ctx, task)
	})
}

func blockingDependencies(ctx context.Context, db *gorm.DB, taskID string) ([]apperrors.BlockingTask, error) {
	states, err := repository.NewDependencyRepository(db).DependencyStates(ctx, taskID)
	if err != nil {
		return nil, err
	}

	var blocking []apperrors.BlockingTask
	for _, st := range states {
		if st.Status != constants.StatusDone {
			blocking = append(blocking, apperrors.BlockingTask{
				Name:   st.Name,
				Status: string(st.Status),
			})
		}
	}

	return blocking, nil
}
