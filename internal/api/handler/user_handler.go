package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devlance/marketplace-api/internal/core/domain"
	"github.com/devlance/marketplace-api/internal/core/ports"
)

// UserHandler exposes profile self-service and the admin user-management
// surface.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type updateProfileRequest struct {
	FirstName  *string `json:"first_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	Skills     *string `json:"skills,omitempty"`
	Experience *string `json:"experience,omitempty"`
	Portfolio  *string `json:"portfolio,omitempty"`
	GithubLink *string `json:"github_link,omitempty"`
	Phone      *string `json:"phone,omitempty"`
}

type setApprovalRequest struct {
	Approved *bool `json:"approved" validate:"required"`
}

// GetProfile handles GET /v1/profile.
//
// @Summary      Get the caller's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Profile
// @Failure      404  {object}  errorResponse
// @Router       /v1/profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	profile, err := h.service.GetProfile(c.Request().Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile handles PATCH /v1/profile.
//
// @Summary      Update the caller's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  errorResponse
// @Router       /v1/profile [patch]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	profile, err := h.service.UpdateProfile(c.Request().Context(), principal, ports.ProfileUpdateInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Skills:     req.Skills,
		Experience: req.Experience,
		Portfolio:  req.Portfolio,
		GithubLink: req.GithubLink,
		Phone:      req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// List handles GET /v1/users.
//
// @Summary      List users, optionally filtered by role
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        role  query     string  false  "Client, Developer or Admin"
// @Success      200   {array}   domain.Profile
// @Failure      403   {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	users, err := h.service.ListUsers(c.Request().Context(), principal, domain.Role(c.QueryParam("role")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// SetApproval handles PATCH /v1/users/:id/approval.
//
// @Summary      Approve or revoke a developer
// @Tags         users
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string              true  "User id"
// @Param        body  body  setApprovalRequest  true  "Approval flag"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/users/{id}/approval [patch]
func (h *UserHandler) SetApproval(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req setApprovalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.SetDeveloperApproval(c.Request().Context(), principal, c.Param("id"), *req.Approved); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Remove handles DELETE /v1/users/:id.
//
// @Summary      Soft-remove a user
// @Tags         users
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Remove(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.RemoveUser(c.Request().Context(), principal, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
