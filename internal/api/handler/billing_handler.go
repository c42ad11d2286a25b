package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devlance/marketplace-api/internal/api/metrics"
	"github.com/devlance/marketplace-api/internal/core/ports"
)

// EventDeduper answers whether a billing event id was already processed.
type EventDeduper interface {
	IsDuplicate(ctx context.Context, eventID string) (bool, error)
	Mark(ctx context.Context, eventID string) error
}

// BillingHandler receives payment-confirmation events from the external
// billing provider. Delivery is at-least-once, so events are deduplicated by
// their provider-assigned id before touching the ledger.
type BillingHandler struct {
	payments ports.PaymentService
	dedup    EventDeduper
	log      zerolog.Logger
}

func NewBillingHandler(payments ports.PaymentService, dedup EventDeduper, log zerolog.Logger) *BillingHandler {
	return &BillingHandler{payments: payments, dedup: dedup, log: log}
}

type billingEventRequest struct {
	EventID   string    `json:"event_id" validate:"required"`
	PayerID   string    `json:"payer_id"`
	Amount    float64   `json:"amount" validate:"required,gt=0"`
	Timestamp time.Time `json:"timestamp"`
}

// HandleEvent handles POST /v1/billing/events.
//
// @Summary      Ingest a billing payment-confirmed event
// @Tags         billing
// @Accept       json
// @Produce      json
// @Param        body  body      billingEventRequest  true  "Billing event"
// @Success      200   {object}  map[string]string
// @Success      201   {object}  domain.Payment
// @Failure      400   {object}  errorResponse
// @Router       /v1/billing/events [post]
func (h *BillingHandler) HandleEvent(c echo.Context) error {
	var req billingEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	dup, err := h.dedup.IsDuplicate(ctx, req.EventID)
	if err != nil {
		return err
	}
	if dup {
		metrics.BillingEventsDedupTotal.WithLabelValues("duplicate").Inc()
		h.log.Debug().Str("event_id", req.EventID).Msg("billing event replayed, dropping")
		return c.JSON(http.StatusOK, map[string]string{"status": "duplicate"})
	}

	payment, err := h.payments.RecordIncoming(ctx, ports.IncomingPaymentInput{
		EventID:   req.EventID,
		PayerID:   req.PayerID,
		Amount:    req.Amount,
		Timestamp: req.Timestamp,
	})
	if err != nil {
		return err
	}

	if err := h.dedup.Mark(ctx, req.EventID); err != nil {
		// The entry is already written; a failed mark only risks a replay,
		// which the unique external_ref index will reject.
		h.log.Warn().Err(err).Str("event_id", req.EventID).Msg("failed to mark billing event")
	}
	metrics.BillingEventsDedupTotal.WithLabelValues("accepted").Inc()
	return c.JSON(http.StatusCreated, payment)
}
