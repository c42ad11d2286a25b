package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devlance/marketplace-api/internal/core/ports"
)

// PaymentHandler handles HTTP requests for the internal ledger.
type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

type recordPayoutRequest struct {
	PayeeID string  `json:"payee_id" validate:"required"`
	Amount  float64 `json:"amount" validate:"required,gt=0"`
	TaskID  string  `json:"task_id"`
}

// RecordPayout handles POST /v1/payments/payouts.
//
// @Summary      Record a developer payout
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      recordPayoutRequest  true  "Payout"
// @Success      201   {object}  domain.Payment
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/payments/payouts [post]
func (h *PaymentHandler) RecordPayout(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req recordPayoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	payment, err := h.service.RecordPayout(c.Request().Context(), principal, ports.RecordPayoutInput{
		PayeeID: req.PayeeID,
		Amount:  req.Amount,
		TaskID:  req.TaskID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, payment)
}

// Totals handles GET /v1/payments/totals.
//
// @Summary      Ledger totals
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.LedgerTotals
// @Failure      403  {object}  errorResponse
// @Router       /v1/payments/totals [get]
func (h *PaymentHandler) Totals(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	totals, err := h.service.Totals(c.Request().Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, totals)
}

// List handles GET /v1/payments.
//
// @Summary      List ledger entries visible to the caller
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Payment
// @Router       /v1/payments [get]
func (h *PaymentHandler) List(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	payments, err := h.service.List(c.Request().Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}
