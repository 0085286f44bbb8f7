package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// requireUser resolves the polling user. Notification endpoints are always
// scoped to one recipient.
func requireUser(c echo.Context) (string, error) {
	userID := actorID(c)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "X-User-ID header is required")
	}
	return userID, nil
}

func (h *Handler) ListNotifications(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	if limitParam := c.QueryParam("limit"); limitParam != "" {
		limit, convErr := strconv.Atoi(limitParam)
		if convErr != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
		}
		notifications, err := h.notifications.ListRecent(ctx, userID, limit)
		if err != nil {
			return httpError(c, err)
		}
		return c.JSON(http.StatusOK, notifications)
	}

	notifications, err := h.notifications.ListAll(ctx, userID)
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, notifications)
}

func (h *Handler) ListUnreadNotifications(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	notifications, err := h.notifications.ListUnread(c.Request().Context(), userID)
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, notifications)
}

// UnreadCount backs the badge poll; responses may be stale up to the badge
// cache TTL.
func (h *Handler) UnreadCount(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	count, err := h.notifications.UnreadCount(c.Request().Context(), userID)
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"unread": count})
}

func (h *Handler) MarkNotificationRead(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.notifications.MarkRead(c.Request().Context(), userID, id); err != nil {
		return httpError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) MarkAllNotificationsRead(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	affected, err := h.notifications.MarkAllRead(c.Request().Context(), userID)
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"marked_read": affected})
}

func (h *Handler) DeleteNotification(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.notifications.Delete(c.Request().Context(), userID, id); err != nil {
		return httpError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteAllNotifications(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	if err := h.notifications.DeleteAll(c.Request().Context(), userID); err != nil {
		return httpError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
