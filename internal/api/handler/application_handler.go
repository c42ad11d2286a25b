package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devlance/marketplace-api/internal/core/domain"
	"github.com/devlance/marketplace-api/internal/core/ports"
)

// ApplicationHandler handles HTTP requests for project applications.
type ApplicationHandler struct {
	service ports.ApplicationService
}

func NewApplicationHandler(service ports.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

type applyRequest struct {
	CoverLetter string `json:"cover_letter"`
}

type decideRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=Approved Rejected"`
}

// Apply handles POST /v1/projects/:id/applications.
//
// @Summary      Apply to an open project
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true   "Project id"
// @Param        body  body      applyRequest  false  "Cover letter"
// @Success      201   {object}  domain.Application
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/projects/{id}/applications [post]
func (h *ApplicationHandler) Apply(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req applyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	application, err := h.service.Apply(c.Request().Context(), principal, ports.ApplyInput{
		ProjectID:   c.Param("id"),
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, application)
}

// Decide handles PATCH /v1/applications/:id/decision.
//
// @Summary      Approve or reject an application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Application id"
// @Param        body  body      decideRequest  true  "Outcome"
// @Success      200   {object}  domain.Application
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/applications/{id}/decision [patch]
func (h *ApplicationHandler) Decide(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req decideRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	application, err := h.service.Decide(c.Request().Context(), principal, c.Param("id"), domain.ApplicationStatus(req.Outcome))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, application)
}

// ListForProject handles GET /v1/projects/:id/applications.
//
// @Summary      List applications on a project
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {array}   domain.Application
// @Failure      403  {object}  errorResponse
// @Router       /v1/projects/{id}/applications [get]
func (h *ApplicationHandler) ListForProject(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	applications, err := h.service.ListForProject(c.Request().Context(), principal, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, applications)
}

// ListMine handles GET /v1/applications.
//
// @Summary      List the caller's applications
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Application
// @Failure      403  {object}  errorResponse
// @Router       /v1/applications [get]
func (h *ApplicationHandler) ListMine(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	applications, err := h.service.ListMine(c.Request().Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, applications)
}
