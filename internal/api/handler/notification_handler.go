package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devlance/marketplace-api/internal/core/ports"
)

// NotificationHandler handles HTTP requests for in-app notifications.
type NotificationHandler struct {
	service ports.NotificationService
}

func NewNotificationHandler(service ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// List handles GET /v1/notifications.
//
// @Summary      List the caller's notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Notification
// @Router       /v1/notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	notifications, err := h.service.ListForRecipient(c.Request().Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notifications)
}

// MarkRead handles POST /v1/notifications/:id/read.
//
// @Summary      Mark a notification read
// @Tags         notifications
// @Security     BearerAuth
// @Param        id  path  string  true  "Notification id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.MarkRead(c.Request().Context(), principal, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
