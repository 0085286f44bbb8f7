package services

import (
	"context"
	"strings"

	"task-track-system.com/task-track-system/internal/constants"
	"task-track-system.com/task-track-system/internal/events"
	model "task-track-system.com/task-track-system/internal/models"
	repository "task-track-system.com/task-track-system/internal/repositories"
)

// ProjectService is the project CRUD and membership collaborator.
type ProjectService struct {
	repo    *repository.ProjectRepository
	users   *repository.UserRepository
	members *repository.MembershipRepository
	fanout  *FanoutService
	store   *NotificationService
}

func NewProjectService(
	repo *repository.ProjectRepository,
	users *repository.UserRepository,
	members *repository.MembershipRepository,
	fanout *FanoutService,
	store *NotificationService,
) *ProjectService {
	return &ProjectService{
		repo:    repo,
		users:   users,
		members: members,
		fanout:  fanout,
		store:   store,
	}
}

func (s *ProjectService) CreateProject(ctx context.Context, ownerID, name, description string) (*model.Project, error) {
	project, err := s.repo.Create(ctx, &model.Project{
		Name:        name,
		Description: description,
	})
	if err != nil {
		return nil, err
	}

	// The creator is the first member; no notification for joining your
	// own project.
	if ownerID != "" {
		if err := s.members.AddProjectMember(ctx, project.ID, ownerID); err != nil {
			return nil, err
		}
	}

	return project, nil
}

func (s *ProjectService) GetProject(ctx context.Context, id string) (*model.Project, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]model.Project, error) {
	return s.repo.List(ctx)
}

type UpdateProjectInput struct {
	Name        *string
	Description *string
	Status      *constants.ProjectStatus
}

// UpdateProject persists the edit and notifies all project members. The
// actor is deliberately part of their own audience here.
func (s *ProjectService) UpdateProject(ctx context.Context, actorID, projectID string, in UpdateProjectInput) (*model.Project, error) {
	project, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	var changed []string
	if in.Name != nil && *in.Name != project.Name {
		project.Name = *in.Name
		changed = append(changed, "name")
	}
	if in.Description != nil && *in.Description != project.Description {
		project.Description = *in.Description
		changed = append(changed, "description")
	}

	statusChange := in.Status != nil && *in.Status != project.Status
	if statusChange {
		project.Status = *in.Status
	}

	if len(changed) == 0 && !statusChange {
		return project, nil
	}

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}

	actorName := s.users.DisplayName(ctx, actorID)

	if statusChange {
		s.fanout.Dispatch(ctx, events.ProjectStatusChanged(actorID, actorName, project.ID, project.Name, project.Status))
	}
	if len(changed) > 0 {
		s.fanout.Dispatch(ctx, events.ProjectUpdated(actorID, actorName, project.ID, project.Name, strings.Join(changed, ", ")))
	}

	return project, nil
}

// AddMember adds the user to the project and notifies only the added user.
func (s *ProjectService) AddMember(ctx context.Context, actorID, projectID, userID string) error {
	project, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}

	if err := s.members.AddProjectMember(ctx, projectID, userID); err != nil {
		return err
	}

	actorName := s.users.DisplayName(ctx, actorID)
	s.fanout.Dispatch(ctx, events.ProjectMemberAdded(actorID, actorName, project.ID, project.Name, userID))
	return nil
}

// RemoveMember removes the user and notifies only the removed user.
func (s *ProjectService) RemoveMember(ctx context.Context, actorID, projectID, userID string) error {
	project, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return err
	}

	if err := s.members.RemoveProjectMember(ctx, projectID, userID); err != nil {
		return err
	}

	actorName := s.users.DisplayName(ctx, actorID)
	s.fanout.Dispatch(ctx, events.ProjectMemberRemoved(actorID, actorName, project.ID, project.Name, userID))
	return nil
}

func (s *ProjectService) ListMembers(ctx context.Context, projectID string) ([]string, error) {
	return s.members.ProjectMemberIDs(ctx, projectID)
}

// DeleteProject removes the project and its memberships, and severs
// notification back-references without deleting the notifications.
func (s *ProjectService) DeleteProject(ctx context.Context, projectID string) error {
	if _, err := s.repo.FindByID(ctx, projectID); err != nil {
		return err
	}

	if err := s.members.RemoveAllProjectMembers(ctx, projectID); err != nil {
		return err
	}
	if err := s.store.ClearProjectReference(ctx, projectID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, projectID)
}
