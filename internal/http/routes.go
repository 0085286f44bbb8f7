package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "task-track-system.com/task-track-system/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.POST("/users", h.CreateUser)
	e.GET("/users/:id", h.GetUser)

	e.POST("/projects", h.CreateProject)
	e.GET("/projects", h.ListProjects)
	e.GET("/projects/:id", h.GetProject)
	e.PATCH("/projects/:id", h.UpdateProject)
	e.DELETE("/projects/:id", h.DeleteProject)
	e.GET("/projects/:id/tasks", h.ListProjectTasks)
	e.GET("/projects/:id/members", h.ListProjectMembers)
	e.POST("/projects/:id/members", h.AddProjectMember)
	e.DELETE("/projects/:id/members/:userId", h.RemoveProjectMember)

	e.POST("/tasks", h.CreateTask)
	e.GET("/tasks/:id", h.GetTask)
	e.PATCH("/tasks/:id", h.UpdateTask)
	e.DELETE("/tasks/:id", h.DeleteTask)
	e.GET("/tasks/:id/can-complete", h.CanComplete)
	e.GET("/tasks/:id/dependencies", h.ListDependencies)
	e.POST("/tasks/:id/dependencies", h.AddDependency)
	e.DELETE("/tasks/:id/dependencies/:depId", h.RemoveDependency)
	e.GET("/tasks/:id/dependents", h.ListDependents)
	e.POST("/tasks/:id/assignees", h.AssignTask)
	e.DELETE("/tasks/:id/assignees/:userId", h.UnassignTask)
	e.POST("/tasks/:id/comments", h.AddComment)
	e.GET("/tasks/:id/comments", h.ListComments)

	e.GET("/notifications", h.ListNotifications)
	e.GET("/notifications/unread", h.ListUnreadNotifications)
	e.GET("/notifications/unread-count", h.UnreadCount)
	e.PUT("/notifications/:id/read", h.MarkNotificationRead)
	e.PUT("/notifications/read-all", h.MarkAllNotificationsRead)
	e.DELETE("/notifications/:id", h.DeleteNotification)
	e.DELETE("/notifications", h.DeleteAllNotifications)
}
