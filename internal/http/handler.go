package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	dto "task-market.com/task-market/internal/data_models"
	apperrors "task-market.com/task-market/internal/errors"
	middleware "task-market.com/task-market/internal/http/middlewares"
	"task-market.com/task-market/internal/http/validators"
	"task-market.com/task-market/internal/lifecycle"
	"task-market.com/task-market/internal/services"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

var errInvalidJSON = apperrors.Validation("invalid JSON payload")

type Handler struct {
	taskService        *services.TaskService
	applicationService *services.ApplicationService
}

func NewHandler(taskService *services.TaskService, applicationService *services.ApplicationService) *Handler {
	return &Handler{
		taskService:        taskService,
		applicationService: applicationService,
	}
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidJSON
	}
	in, err := validators.ValidateCreateTaskRequest(&req)
	if err != nil {
		return err
	}

	res, err := h.taskService.CreateTask(c.Request().Context(), middleware.Identity(c), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, res)
}

func (h *Handler) GetTask(c echo.Context) error {
	task, err := h.taskService.GetTask(c.Request().Context(), c.Param("id"), middleware.Identity(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ListTasks(c echo.Context) error {
	limit := defaultListLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return apperrors.Validation("limit must be a positive integer", "limit")
		}
		limit = min(n, maxListLimit)
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), c.QueryParam("category"), limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) ListOwnTasks(c echo.Context) error {
	tasks, err := h.taskService.ListOwnTasks(c.Request().Context(), middleware.Identity(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) UpdateTask(c echo.Context) error {
	var req dto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidJSON
	}
	in, err := validators.ValidateUpdateTaskRequest(&req)
	if err != nil {
		return err
	}

	res, err := h.taskService.UpdateTask(c.Request().Context(), middleware.Identity(c), c.Param("id"), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, res)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	if err := h.taskService.DeleteTask(c.Request().Context(), middleware.Identity(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ChangeTaskStatus(c echo.Context) error {
	var req dto.ChangeTaskStatusRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidJSON
	}
	status, err := lifecycle.ParseTaskStatus(req.Status)
	if err != nil {
		return err
	}

	task, err := h.taskService.ChangeStatus(c.Request().Context(), middleware.Identity(c), c.Param("id"), status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ModerationHistory(c echo.Context) error {
	entries, err := h.taskService.ModerationHistory(c.Request().Context(), middleware.Identity(c), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"entries": entries})
}

func (h *Handler) SubmitApplication(c echo.Context) error {
	var req dto.SubmitApplicationRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidJSON
	}

	taskID := c.Param("id")
	identity := middleware.Identity(c)
	price, err := validators.ValidateSubmitApplicationRequest(&req, taskID, identity)
	if err != nil {
		return err
	}

	app, err := h.applicationService.Submit(c.Request().Context(), taskID, identity, req.Message, price)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, app)
}

func (h *Handler) TransitionApplication(c echo.Context) error {
	var req dto.TransitionApplicationRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidJSON
	}

	identity := middleware.Identity(c)
	if err := validators.ValidateTransitionRequest(&req, identity); err != nil {
		return err
	}

	res, err := h.applicationService.Transition(c.Request().Context(), c.Param("id"), req.TaskID, req.Status, identity)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, res)
}

func (h *Handler) ListTaskApplications(c echo.Context) error {
	apps, err := h.applicationService.ListForTask(c.Request().Context(), c.Param("id"), middleware.Identity(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":        len(apps),
		"applications": apps,
	})
}

func (h *Handler) ListOwnApplications(c echo.Context) error {
	apps, err := h.applicationService.ListForApplicant(c.Request().Context(), middleware.Identity(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":        len(apps),
		"applications": apps,
	})
}
