package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-track-system.com/task-track-system/internal/data_models"
)

func (h *Handler) AddDependency(c echo.Context) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.AddDependencyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if req.DependsOnTaskID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "depends_on_task_id is required")
	}

	if err := h.dependencies.AddEdge(c.Request().Context(), id, req.DependsOnTaskID); err != nil {
		return httpError(c, err)
	}

	return c.NoContent(http.StatusCreated)
}

func (h *Handler) RemoveDependency(c echo.Context) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	depID, err := requireParam(c, "depId")
	if err != nil {
		return err
	}

	if err := h.dependencies.RemoveEdge(c.Request().Context(), id, depID); err != nil {
		return httpError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListDependencies(c echo.Context) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}

	ids, err := h.dependencies.DirectDependencies(c.Request().Context(), id)
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"depends_on": ids})
}

func (h *Handler) ListDependents(c echo.Context) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}

	ids, err := h.dependencies.DirectDependents(c.Request().Context(), id)
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"dependents": ids})
}
