package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-track-system.com/task-track-system/internal/data_models"
)

func (h *Handler) CreateUser(c echo.Context) error {
	var req dto.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	user, err := h.users.CreateUser(c.Request().Context(), req.Name, req.Email)
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *Handler) GetUser(c echo.Context) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}

	user, err := h.users.GetUser(c.Request().Context(), id)
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}
