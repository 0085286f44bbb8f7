package services

import (
	"context"
	"strings"
	"time"

	"task-track-system.com/task-track-system/internal/constants"
	"task-track-system.com/task-track-system/internal/events"
	model "task-track-system.com/task-track-system/internal/models"
	repository "task-track-system.com/task-track-system/internal/repositories"
)

// TaskService is the task CRUD collaborator. Status changes are routed
// through the gate before anything is persisted, and lifecycle changes fan
// out notifications after the write succeeds. Fan-out failures never fail
// the operation that triggered them.
type TaskService struct {
	repo     *repository.TaskRepository
	users    *repository.UserRepository
	members  *repository.MembershipRepository
	comments *repository.CommentRepository
	deps     *DependencyService
	gate     *StatusGate
	fanout   *FanoutService
	store    *NotificationService
	overdue  *OverdueService
}

func NewTaskService(
	repo *repository.TaskRepository,
	users *repository.UserRepository,
	members *repository.MembershipRepository,
	comments *repository.CommentRepository,
	deps *DependencyService,
	gate *StatusGate,
	fanout *FanoutService,
	store *NotificationService,
	overdue *OverdueService,
) *TaskService {
	return &TaskService{
		repo:     repo,
		users:    users,
		members:  members,
		comments: comments,
		deps:     deps,
		gate:     gate,
		fanout:   fanout,
		store:    store,
		overdue:  overdue,
	}
}

type CreateTaskInput struct {
	ProjectID    string
	Name         string
	Description  string
	Priority     constants.TaskPriority
	DueDate      *time.Time
	ParentTaskID *string
}

func (s *TaskService) CreateTask(ctx context.Context, in CreateTaskInput) (*model.Task, error) {
	task := &model.Task{
		ProjectID:    in.ProjectID,
		Name:         in.Name,
		Description:  in.Description,
		Priority:     in.Priority,
		DueDate:      in.DueDate,
		ParentTaskID: in.ParentTaskID,
	}
	return s.repo.Create(ctx, task)
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*model.Task, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TaskService) ListTasks(ctx context.Context, projectID string) ([]model.Task, error) {
	return s.repo.ListByProject(ctx, projectID)
}

type UpdateTaskInput struct {
	Name        *string
	Description *string
	Priority    *constants.TaskPriority
	DueDate     *time.Time
	ClearDue    bool
	Status      *constants.TaskStatus
}

// UpdateTask applies field edits and, when the status changes, asks the
// gate first. A denied completion surfaces the blocking list unchanged to
// the caller and leaves the task untouched.
func (s *TaskService) UpdateTask(ctx context.Context, actorID, taskID string, in UpdateTaskInput) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	var changed []string
	if in.Name != nil && *in.Name != task.Name {
		task.Name = *in.Name
		changed = append(changed, "name")
	}
	if in.Description != nil && *in.Description != task.Description {
		task.Description = *in.Description
		changed = append(changed, "description")
	}
	if in.Priority != nil && *in.Priority != task.Priority {
		task.Priority = *in.Priority
		changed = append(changed, "priority")
	}
	dueChanged := false
	if in.DueDate != nil {
		if task.DueDate == nil || !in.DueDate.Equal(*task.DueDate) {
			task.DueDate = in.DueDate
			dueChanged = true
		}
	} else if in.ClearDue && task.DueDate != nil {
		task.DueDate = nil
		dueChanged = true
	}
	if dueChanged {
		changed = append(changed, "due date")
	}

	statusChange := in.Status != nil && *in.Status != task.Status

	if statusChange {
		// The gate performs the check and the write in one transaction,
		// carrying any pending field edits along with the status.
		if err := s.gate.RequestStatusChange(ctx, task, *in.Status); err != nil {
			return nil, err
		}
	} else if len(changed) > 0 {
		if err := s.repo.Update(ctx, task); err != nil {
			return nil, err
		}
	} else {
		return task, nil
	}

	if dueChanged {
		// A moved or cleared due date re-arms the once-per-task overdue
		// guard.
		s.overdue.ResetNotified(task.ID)
	}

	actorName := s.users.DisplayName(ctx, actorID)

	if statusChange {
		if task.Status == constants.StatusDone {
			s.fanout.Dispatch(ctx, events.TaskCompleted(actorID, actorName, task.ID, task.Name))
		} else {
			s.fanout.Dispatch(ctx, events.TaskStatusChanged(actorID, actorName, task.ID, task.Name, task.Status))
		}
	}
	if len(changed) > 0 {
		s.fanout.Dispatch(ctx, events.TaskUpdated(actorID, actorName, task.ID, task.Name, strings.Join(changed, ", ")))
	}

	return task, nil
}

type BlockingTaskView struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// CanComplete exposes the gate's read-only probe so the presentation layer
// can warn before an edit is even attempted.
func (s *TaskService) CanComplete(ctx context.Context, taskID string) (bool, []BlockingTaskView, error) {
	if _, err := s.repo.FindByID(ctx, taskID); err != nil {
		return false, nil, err
	}

	allowed, blocking, err := s.gate.CanComplete(ctx, taskID)
	if err != nil {
		return false, nil, err
	}

	views := make([]BlockingTaskView, 0, len(blocking))
	for _, b := range blocking {
		views = append(views, BlockingTaskView{Name: b.Name, Status: b.Status})
	}
	return allowed, views, nil
}

// AssignTask makes userID a member of the task and notifies only that user.
func (s *TaskService) AssignTask(ctx context.Context, actorID, taskID, userID string) error {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}

	if err := s.members.AddTaskMember(ctx, taskID, userID); err != nil {
		return err
	}

	actorName := s.users.DisplayName(ctx, actorID)
	s.fanout.Dispatch(ctx, events.TaskAssigned(actorID, actorName, task.ID, task.Name, userID))
	return nil
}

func (s *TaskService) UnassignTask(ctx context.Context, taskID, userID string) error {
	return s.members.RemoveTaskMember(ctx, taskID, userID)
}

// AddComment stores the comment and notifies the task members, excluding
// the author. An author who is the sole member gets nothing.
func (s *TaskService) AddComment(ctx context.Context, authorID, taskID, body string) (*model.Comment, error) {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	comment, err := s.comments.Create(ctx, taskID, authorID, body)
	if err != nil {
		return nil, err
	}

	authorName := s.users.DisplayName(ctx, authorID)
	s.fanout.Dispatch(ctx, events.TaskCommentPosted(authorID, authorName, task.ID, task.Name, excerpt(body)))
	return comment, nil
}

func (s *TaskService) ListComments(ctx context.Context, taskID string) ([]model.Comment, error) {
	return s.comments.ListByTask(ctx, taskID)
}

// DeleteTask removes the task plus its edges and memberships, and severs
// notification back-references. Notifications about the task survive with
// the link nulled out.
func (s *TaskService) DeleteTask(ctx context.Context, taskID string) error {
	if _, err := s.repo.FindByID(ctx, taskID); err != nil {
		return err
	}

	if err := s.deps.RemoveAllEdgesForTask(ctx, taskID); err != nil {
		return err
	}
	if err := s.members.RemoveAllTaskMembers(ctx, taskID); err != nil {
		return err
	}
	if err := s.store.ClearTaskReference(ctx, taskID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, taskID)
}

func excerpt(body string) string {
	const max = 120
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	return body[:max] + "..."
}
