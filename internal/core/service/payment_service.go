package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/devlance/marketplace-api/internal/api/metrics"
	"github.com/devlance/marketplace-api/internal/core/domain"
	"github.com/devlance/marketplace-api/internal/core/ports"
)

// PaymentService is the internal bookkeeping ledger. Entries are written once
// and never mutated or deleted; totals are recomputed from the store on every
// call so nothing can drift out of sync with the rows.
type PaymentService struct {
	repo     ports.PaymentRepository
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewPaymentService(repo ports.PaymentRepository, notifier ports.Notifier, log zerolog.Logger) *PaymentService {
	return &PaymentService{repo: repo, notifier: notifier, log: log}
}

// RecordPayout writes an outgoing ledger entry for a developer. Admin only.
// Payouts are recorded as already executed, status Paid with no pending state.
func (s *PaymentService) RecordPayout(ctx context.Context, principal domain.Principal, input ports.RecordPayoutInput) (*domain.Payment, error) {
	if principal.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if input.PayeeID == "" {
		return nil, fmt.Errorf("%w: payee is required", domain.ErrValidation)
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}

	payment := &domain.Payment{
		ID:        uuid.NewString(),
		PayerID:   principal.ID,
		PayeeID:   input.PayeeID,
		Amount:    input.Amount,
		Type:      domain.PaymentPayout,
		Status:    domain.PaymentPaid,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, err
	}

	metrics.PaymentsRecordedTotal.WithLabelValues(string(domain.PaymentPayout)).Inc()
	s.log.Info().
		Str("payment_id", payment.ID).
		Str("payee_id", input.PayeeID).
		Float64("amount", input.Amount).
		Msg("payout recorded")

	s.notifier.Notify(domain.Notification{
		RecipientID: input.PayeeID,
		Kind:        domain.NotifyPayoutRecorded,
		Subject:     fmt.Sprintf("Payout of %.2f recorded", input.Amount),
		EntityID:    payment.ID,
	})
	return payment, nil
}

// RecordIncoming writes an incoming ledger entry for a confirmed client
// payment. System-triggered by the billing webhook; the transport layer has
// already deduplicated the event id.
func (s *PaymentService) RecordIncoming(ctx context.Context, input ports.IncomingPaymentInput) (*domain.Payment, error) {
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}

	createdAt := input.Timestamp
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	payment := &domain.Payment{
		ID:          uuid.NewString(),
		PayerID:     input.PayerID,
		Amount:      input.Amount,
		Type:        domain.PaymentIncoming,
		Status:      domain.PaymentPaid,
		ExternalRef: input.EventID,
		CreatedAt:   createdAt,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, err
	}

	metrics.PaymentsRecordedTotal.WithLabelValues(string(domain.PaymentIncoming)).Inc()
	s.log.Info().
		Str("payment_id", payment.ID).
		Str("external_ref", input.EventID).
		Float64("amount", input.Amount).
		Msg("incoming payment recorded")
	return payment, nil
}

// Totals aggregates all Paid entries fresh on every call. Admin only.
func (s *PaymentService) Totals(ctx context.Context, principal domain.Principal) (*domain.LedgerTotals, error) {
	if principal.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	incoming, outgoing, err := s.repo.SumPaidByType(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.LedgerTotals{
		TotalIncoming: incoming,
		TotalOutgoing: outgoing,
		NetProfit:     incoming - outgoing,
	}, nil
}

// List returns ledger entries: admins see all, everyone else only entries
// where they are payer or payee.
func (s *PaymentService) List(ctx context.Context, principal domain.Principal) ([]*domain.Payment, error) {
	filter := ports.PaymentFilter{}
	if principal.Role != domain.RoleAdmin {
		filter.ParticipantID = principal.ID
	}
	return s.repo.List(ctx, filter)
}
