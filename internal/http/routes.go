package http

import (
	"time"

	"github.com/labstack/echo/v4"

	"task-market.com/task-market/internal/auth"
	middleware "task-market.com/task-market/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, resolver auth.Resolver, rateLimitPerMinute int) {
	e.HTTPErrorHandler = ErrorHandler
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	requireIdentity := middleware.RequireIdentity(resolver)
	optionalIdentity := middleware.OptionalIdentity(resolver)

	e.GET("/healthz", h.Health)

	e.GET("/tasks", h.ListTasks)
	e.GET("/tasks/:id", h.GetTask, optionalIdentity)
	e.POST("/tasks", h.CreateTask, requireIdentity)
	e.PATCH("/tasks/:id", h.UpdateTask, requireIdentity)
	e.DELETE("/tasks/:id", h.DeleteTask, requireIdentity)
	e.PATCH("/tasks/:id/status", h.ChangeTaskStatus, requireIdentity)
	e.GET("/tasks/:id/moderation", h.ModerationHistory, requireIdentity)

	e.GET("/tasks/:id/applications", h.ListTaskApplications, requireIdentity)
	e.POST("/tasks/:id/applications", h.SubmitApplication, requireIdentity)
	e.PATCH("/applications/:id", h.TransitionApplication, requireIdentity)

	e.GET("/me/tasks", h.ListOwnTasks, requireIdentity)
	e.GET("/me/applications", h.ListOwnApplications, requireIdentity)
}
