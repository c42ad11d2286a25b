package ports

import (
	"context"
	"time"

	"github.com/devlance/marketplace-api/internal/core/domain"
)

// RecordPayoutInput carries an admin-recorded developer payout.
type RecordPayoutInput struct {
	PayeeID string
	Amount  float64
	// TaskID is optional context linking the payout to the completed task.
	TaskID string
}

// IncomingPaymentInput is the billing webhook payload after transport-level
// validation. EventID is the billing provider's unique event reference used
// for deduplication.
type IncomingPaymentInput struct {
	EventID   string
	PayerID   string
	Amount    float64
	Timestamp time.Time
}

// PaymentService is the internal bookkeeping ledger.
type PaymentService interface {
	// RecordPayout writes a Payout entry with status Paid. Payouts are
	// recorded as already executed; there is no pending payout state.
	RecordPayout(ctx context.Context, principal domain.Principal, input RecordPayoutInput) (*domain.Payment, error)
	// RecordIncoming is system-triggered when a client payment is confirmed by
	// the external billing collaborator. Replayed events are dropped silently.
	RecordIncoming(ctx context.Context, input IncomingPaymentInput) (*domain.Payment, error)
	// Totals aggregates all Paid entries fresh on every call.
	Totals(ctx context.Context, principal domain.Principal) (*domain.LedgerTotals, error)
	List(ctx context.Context, principal domain.Principal) ([]*domain.Payment, error)
}

// PaymentFilter scopes ledger queries to a participant.
type PaymentFilter struct {
	ParticipantID string // non-empty: payer or payee equals this id
}

// PaymentRepository defines persistence operations for ledger entries.
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	List(ctx context.Context, filter PaymentFilter) ([]*domain.Payment, error)
	// SumPaidByType aggregates Paid entries grouped by payment type.
	SumPaidByType(ctx context.Context) (incoming, outgoing float64, err error)
}
