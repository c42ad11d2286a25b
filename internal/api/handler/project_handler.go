package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devlance/marketplace-api/internal/core/domain"
	"github.com/devlance/marketplace-api/internal/core/ports"
)

// ProjectHandler handles HTTP requests for project operations.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

type createProjectRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description" validate:"required"`
	ServiceType string     `json:"service_type"`
	Budget      float64    `json:"budget" validate:"omitempty,gt=0"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

type setProjectStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Open 'In Progress' Review Completed Rejected"`
}

type listProjectsResponse struct {
	Data       []*domain.Project  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// Create handles POST /v1/projects.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  domain.Project
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.service.Create(c.Request().Context(), principal, ports.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		ServiceType: req.ServiceType,
		Budget:      req.Budget,
		Deadline:    req.Deadline,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, project)
}

// Get handles GET /v1/projects/:id.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  domain.Project
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	project, err := h.service.Get(c.Request().Context(), principal, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// SetStatus handles PATCH /v1/projects/:id/status.
//
// @Summary      Move a project along its lifecycle
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Project id"
// @Param        body  body      setProjectStatusRequest  true  "Target status"
// @Success      200   {object}  domain.Project
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/projects/{id}/status [patch]
func (h *ProjectHandler) SetStatus(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req setProjectStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.service.SetStatus(c.Request().Context(), principal, c.Param("id"), domain.ProjectStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// List handles GET /v1/projects.
//
// @Summary      List projects visible to the caller
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listProjectsResponse
// @Router       /v1/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	input := ports.ListProjectsInput{Status: c.QueryParam("status")}
	input.Page, _ = atoiParam(c.QueryParam("page"))
	input.Limit, _ = atoiParam(c.QueryParam("limit"))

	result, err := h.service.ListForRole(c.Request().Context(), principal, input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listProjectsResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}
