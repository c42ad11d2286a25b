package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devlance/marketplace-api/internal/core/domain"
	"github.com/devlance/marketplace-api/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

type createTaskRequest struct {
	ApplicationID string     `json:"application_id" validate:"required"`
	Title         string     `json:"title" validate:"required"`
	Description   string     `json:"description"`
	Budget        float64    `json:"budget" validate:"omitempty,gt=0"`
	Deadline      *time.Time `json:"deadline,omitempty"`
}

type submitTaskRequest struct {
	GitLink string `json:"submission_git_link" validate:"required"`
	Notes   string `json:"submission_notes"`
}

type reviewTaskRequest struct {
	Decision string `json:"decision" validate:"required,oneof=Completed 'Changes Requested'"`
}

// Create handles POST /v1/projects/:id/tasks.
//
// @Summary      Create a task from an approved application
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Project id"
// @Param        body  body      createTaskRequest  true  "Task definition"
// @Success      201   {object}  domain.Task
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/projects/{id}/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.Create(c.Request().Context(), principal, ports.CreateTaskInput{
		ProjectID:     c.Param("id"),
		ApplicationID: req.ApplicationID,
		Title:         req.Title,
		Description:   req.Description,
		Budget:        req.Budget,
		Deadline:      req.Deadline,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, task)
}

// Get handles GET /v1/tasks/:id.
//
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  domain.Task
// @Failure      404  {object}  errorResponse
// @Router       /v1/tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	task, err := h.service.Get(c.Request().Context(), principal, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Start handles POST /v1/tasks/:id/start.
//
// @Summary      Start working on an assigned task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  domain.Task
// @Failure      409  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/tasks/{id}/start [post]
func (h *TaskHandler) Start(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	task, err := h.service.Start(c.Request().Context(), principal, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Submit handles POST /v1/tasks/:id/submission.
//
// @Summary      Submit work for review
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      submitTaskRequest  true  "Submission"
// @Success      200   {object}  domain.Task
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/tasks/{id}/submission [post]
func (h *TaskHandler) Submit(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req submitTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	// The empty-link case is left to the service so the EmptySubmission
	// contract is enforced in one place.
	task, err := h.service.Submit(c.Request().Context(), principal, ports.SubmitTaskInput{
		TaskID:  c.Param("id"),
		GitLink: req.GitLink,
		Notes:   req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Review handles POST /v1/tasks/:id/review.
//
// @Summary      Review a submitted task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      reviewTaskRequest  true  "Decision"
// @Success      200   {object}  domain.Task
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/tasks/{id}/review [post]
func (h *TaskHandler) Review(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req reviewTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.Review(c.Request().Context(), principal, c.Param("id"), domain.TaskStatus(req.Decision))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /v1/tasks/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Security     BearerAuth
// @Param        id  path  string  true  "Task id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), principal, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /v1/tasks.
//
// @Summary      List tasks visible to the caller
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        project_id  query     string  false  "Scope to one project"
// @Success      200         {array}   domain.Task
// @Router       /v1/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.ListForPrincipal(c.Request().Context(), principal, c.QueryParam("project_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}
