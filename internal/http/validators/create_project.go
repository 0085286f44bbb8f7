package validators

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-track-system.com/task-track-system/internal/data_models"
)

func ValidateCreateProjectRequest(r *dto.CreateProjectRequest) error {
	if r.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	return nil
}
