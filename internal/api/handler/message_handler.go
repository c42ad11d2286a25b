package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devlance/marketplace-api/internal/core/ports"
)

// MessageHandler handles HTTP requests for direct messages.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

type sendMessageRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required"`
	Content    string `json:"content" validate:"required"`
}

// Send handles POST /v1/messages.
//
// @Summary      Send a direct message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendMessageRequest  true  "Message"
// @Success      201   {object}  domain.Message
// @Failure      400   {object}  errorResponse
// @Router       /v1/messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.service.Send(c.Request().Context(), principal, req.ReceiverID, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msg)
}

// Conversation handles GET /v1/messages.
//
// @Summary      Poll a conversation
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        with   query     string  true   "Other participant id"
// @Param        since  query     string  false  "RFC3339 timestamp; only newer messages are returned"
// @Success      200    {array}   domain.Message
// @Failure      400    {object}  errorResponse
// @Router       /v1/messages [get]
func (h *MessageHandler) Conversation(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var since time.Time
	if raw := c.QueryParam("since"); raw != "" {
		since, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "since must be an RFC3339 timestamp")
		}
	}

	msgs, err := h.service.Conversation(c.Request().Context(), principal, c.QueryParam("with"), since)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgs)
}
