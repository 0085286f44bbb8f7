package services

import (
	"context"

	"github.com/gammazero/toposort"

	apperrors "task-track-system.com/task-track-system/internal/errors"
	repository "task-track-system.com/task-track-system/internal/repositories"
)

// DependencyService manages the directed "requires" edges between tasks.
// The graph reasons about direct edges only; it never computes a transitive
// closure. Cycle detection at insertion time is an opt-in validation hook,
// off by default to match the historical shallow-gating behavior.
type DependencyService struct {
	deps       *repository.DependencyRepository
	tasks      *repository.TaskRepository
	cycleCheck bool
}

func NewDependencyService(
	deps *repository.DependencyRepository,
	tasks *repository.TaskRepository,
	cycleCheck bool,
) *DependencyService {
	return &DependencyService{
		deps:       deps,
		tasks:      tasks,
		cycleCheck: cycleCheck,
	}
}

// AddEdge records that taskID cannot be completed until dependsOnTaskID is.
// Self-dependencies are rejected before any mutation; both endpoints must
// exist. Duplicate edges are rejected with ErrDuplicateDependency.
func (s *DependencyService) AddEdge(ctx context.Context, taskID, dependsOnTaskID string) error {
	if taskID == dependsOnTaskID {
		return apperrors.ErrSelfDependency
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	if _, err := s.tasks.FindByID(ctx, dependsOnTaskID); err != nil {
		return err
	}

	if s.cycleCheck {
		if err := s.checkNoCycle(ctx, task.ProjectID, taskID, dependsOnTaskID); err != nil {
			return err
		}
	}

	return s.deps.AddEdge(ctx, taskID, dependsOnTaskID)
}

func (s *DependencyService) RemoveEdge(ctx context.Context, taskID, dependsOnTaskID string) error {
	return s.deps.RemoveEdge(ctx, taskID, dependsOnTaskID)
}

func (s *DependencyService) DirectDependencies(ctx context.Context, taskID string) ([]string, error) {
	return s.deps.DirectDependencies(ctx, taskID)
}

func (s *DependencyService) DirectDependents(ctx context.Context, taskID string) ([]string, error) {
	return s.deps.DirectDependents(ctx, taskID)
}

// RemoveAllEdgesForTask drops every edge touching the task, in either
// direction. Called by task deletion.
func (s *DependencyService) RemoveAllEdgesForTask(ctx context.Context, taskID string) error {
	return s.deps.RemoveAllEdgesForTask(ctx, taskID)
}

// checkNoCycle runs a topological sort over the project's edges plus the
// candidate edge. A sort failure means the new edge closes a cycle, which
// would leave every task on it permanently unable to reach DONE.
func (s *DependencyService) checkNoCycle(ctx context.Context, projectID, taskID, dependsOnTaskID string) error {
	existing, err := s.deps.EdgesForProject(ctx, projectID)
	if err != nil {
		return err
	}

	edges := make([]toposort.Edge, 0, len(existing)+1)
	for _, e := range existing {
		edges = append(edges, toposort.Edge{e.DependsOnTaskID, e.TaskID})
	}
	edges = append(edges, toposort.Edge{dependsOnTaskID, taskID})

	if _, err := toposort.Toposort(edges); err != nil {
		return apperrors.ErrDependencyCycle
	}

	return nil
}
