package domain

import "time"

// PaymentType distinguishes money coming in from clients and payouts going
// out to developers.
type PaymentType string

const (
	PaymentIncoming PaymentType = "Incoming"
	PaymentPayout   PaymentType = "Payout"
)

// PaymentStatus is the settlement state of a ledger entry. The only legal
// mutation of a payment is Pending → Paid or Pending → Failed.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
	PaymentFailed  PaymentStatus = "Failed"
)

// Payment is an immutable bookkeeping ledger entry. Entries are never deleted
// and outlive the principals they reference; it is a financial record, not a
// live payment transaction.
type Payment struct {
	ID        string        `json:"id" bson:"_id"`
	PayerID   string        `json:"payer_id,omitempty" bson:"payer_id,omitempty"`
	PayeeID   string        `json:"payee_id,omitempty" bson:"payee_id,omitempty"`
	Amount    float64       `json:"amount" bson:"amount"`
	Type      PaymentType   `json:"payment_type" bson:"payment_type"`
	Status    PaymentStatus `json:"status" bson:"status"`
	// ExternalRef carries the billing provider's event id for incoming
	// payments; used for webhook deduplication.
	ExternalRef string    `json:"external_ref,omitempty" bson:"external_ref,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// LedgerTotals is the fresh aggregation over all Paid entries. It is computed
// on every call rather than kept as a running balance.
type LedgerTotals struct {
	TotalIncoming float64 `json:"total_incoming"`
	TotalOutgoing float64 `json:"total_outgoing"`
	NetProfit     float64 `json:"net_profit"`
}
