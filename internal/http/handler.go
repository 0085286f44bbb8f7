package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "task-track-system.com/task-track-system/internal/errors"
	"task-track-system.com/task-track-system/internal/services"
)

type Handler struct {
	tasks         *services.TaskService
	projects      *services.ProjectService
	dependencies  *services.DependencyService
	notifications *services.NotificationService
	users         *services.UserService
}

func NewHandler(
	tasks *services.TaskService,
	projects *services.ProjectService,
	dependencies *services.DependencyService,
	notifications *services.NotificationService,
	users *services.UserService,
) *Handler {
	return &Handler{
		tasks:         tasks,
		projects:      projects,
		dependencies:  dependencies,
		notifications: notifications,
		users:         users,
	}
}

// actorID identifies the acting user for audit and actor-exclusion rules.
// Authentication is out of scope; the caller supplies its identity.
func actorID(c echo.Context) string {
	return c.Request().Header.Get("X-User-ID")
}

// httpError maps service errors onto HTTP responses. A completion denial is
// not collapsed into a generic message: the blocking list is rendered
// verbatim so the user can see exactly what to unblock.
func httpError(c echo.Context, err error) error {
	var gateErr *apperrors.DependenciesIncompleteError
	if errors.As(err, &gateErr) {
		return c.JSON(gateErr.HTTPStatusCode(), echo.Map{
			"error":          gateErr.Error(),
			"blocking_tasks": gateErr.Blocking,
		})
	}

	return echo.NewHTTPError(apperrors.StatusCode(err), err.Error())
}

func requireParam(c echo.Context, name string) (string, error) {
	v := c.Param(name)
	if v == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, name+" is required")
	}
	return v, nil
}
