package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"task-track-system.com/task-track-system/internal/constants"
	dto "task-track-system.com/task-track-system/internal/data_models"
	"task-track-system.com/task-track-system/internal/http/validators"
	"task-track-system.com/task-track-system/internal/services"
)

func (h *Handler) CreateProject(c echo.Context) error {
	var req dto.CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateProjectRequest(&req); err != nil {
		return err
	}

	project, err := h.projects.CreateProject(c.Request().Context(), req.OwnerID, req.Name, req.Description)
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusCreated, project)
}

func (h *Handler) GetProject(c echo.Context) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}

	project, err := h.projects.GetProject(c.Request().Context(), id)
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, project)
}

func (h *Handler) ListProjects(c echo.Context) error {
	projects, err := h.projects.ListProjects(c.Request().Context())
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":    len(projects),
		"projects": projects,
	})
}

func (h *Handler) UpdateProject(c echo.Context) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	in := services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Status != nil {
		status := constants.ProjectStatus(*req.Status)
		in.Status = &status
	}

	project, err := h.projects.UpdateProject(c.Request().Context(), actorID(c), id, in)
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, project)
}

func (h *Handler) DeleteProject(c echo.Context) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.projects.DeleteProject(c.Request().Context(), id); err != nil {
		return httpError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) AddProjectMember(c echo.Context) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.AddMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if req.UserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	if err := h.projects.AddMember(c.Request().Context(), actorID(c), id, req.UserID); err != nil {
		return httpError(c, err)
	}

	return c.NoContent(http.StatusCreated)
}

func (h *Handler) RemoveProjectMember(c echo.Context) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	userID, err := requireParam(c, "userId")
	if err != nil {
		return err
	}

	if err := h.projects.RemoveMember(c.Request().Context(), actorID(c), id, userID); err != nil {
		return httpError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListProjectMembers(c echo.Context) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}

	members, err := h.projects.ListMembers(c.Request().Context(), id)
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"members": members})
}

func (h *Handler) ListProjectTasks(c echo.Context) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}

	tasks, err := h.tasks.ListTasks(c.Request().Context(), id)
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}
