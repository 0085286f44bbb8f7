package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"task-track-system.com/task-track-system/internal/constants"
	dto "task-track-system.com/task-track-system/internal/data_models"
	"task-track-system.com/task-track-system/internal/http/validators"
	"task-track-system.com/task-track-system/internal/services"
)

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return err
	}

	task, err := h.tasks.CreateTask(c.Request().Context(), services.CreateTaskInput{
		ProjectID:    req.ProjectID,
		Name:         req.Name,
		Description:  req.Description,
		Priority:     constants.TaskPriority(req.Priority),
		DueDate:      req.DueDate,
		ParentTaskID: req.ParentTaskID,
	})
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) GetTask(c echo.Context) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}

	task, err := h.tasks.GetTask(c.Request().Context(), id)
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	in := services.UpdateTaskInput{
		Name:        req.Name,
		Description: req.Description,
		DueDate:     req.DueDate,
		ClearDue:    req.ClearDue,
	}
	if req.Priority != nil {
		priority := constants.TaskPriority(*req.Priority)
		in.Priority = &priority
	}
	if req.Status != nil {
		status := constants.TaskStatus(*req.Status)
		in.Status = &status
	}

	task, err := h.tasks.UpdateTask(c.Request().Context(), actorID(c), id, in)
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.tasks.DeleteTask(c.Request().Context(), id); err != nil {
		return httpError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CanComplete is the read-only gate probe the task-edit form polls before
// offering the DONE transition.
func (h *Handler) CanComplete(c echo.Context) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}

	allowed, blocking, err := h.tasks.CanComplete(c.Request().Context(), id)
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"allowed":        allowed,
		"blocking_tasks": blocking,
	})
}

func (h *Handler) AssignTask(c echo.Context) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.AssignTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if req.UserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	if err := h.tasks.AssignTask(c.Request().Context(), actorID(c), id, req.UserID); err != nil {
		return httpError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) UnassignTask(c echo.Context) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	userID, err := requireParam(c, "userId")
	if err != nil {
		return err
	}

	if err := h.tasks.UnassignTask(c.Request().Context(), id, userID); err != nil {
		return httpError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) AddComment(c echo.Context) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.AddCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if req.Body == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "body is required")
	}

	comment, err := h.tasks.AddComment(c.Request().Context(), actorID(c), id, req.Body)
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusCreated, comment)
}

func (h *Handler) ListComments(c echo.Context) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}

	comments, err := h.tasks.ListComments(c.Request().Context(), id)
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, comments)
}
