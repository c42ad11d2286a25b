package service

import (
	"context"
	"errors"
	"testing"

	"github.com/devlance/marketplace-api/internal/core/domain"
	"github.com/devlance/marketplace-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// RecordPayout
// ---------------------------------------------------------------------------

func TestPaymentService_RecordPayout_Success(t *testing.T) {
	repo := newStubPaymentRepo()
	notifier := &stubNotifier{}
	svc := NewPaymentService(repo, notifier, discardLogger)

	payment, err := svc.RecordPayout(context.Background(), adminPrincipal(), ports.RecordPayoutInput{
		PayeeID: "dev_1",
		Amount:  200,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payment.Type != domain.PaymentPayout {
		t.Errorf("expected Payout, got %q", payment.Type)
	}
	if payment.Status != domain.PaymentPaid {
		t.Errorf("payouts are recorded as already executed, got %q", payment.Status)
	}
	if payment.PayerID != "admin_1" {
		t.Errorf("payer must be the recording admin, got %q", payment.PayerID)
	}
	if len(notifier.sent) != 1 || notifier.sent[0].RecipientID != "dev_1" {
		t.Errorf("payee must be notified, got %+v", notifier.sent)
	}
}

func TestPaymentService_RecordPayout_NonAdminForbidden(t *testing.T) {
	svc := NewPaymentService(newStubPaymentRepo(), &stubNotifier{}, discardLogger)

	_, err := svc.RecordPayout(context.Background(), clientPrincipal("client_1"), ports.RecordPayoutInput{PayeeID: "dev_1", Amount: 100})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestPaymentService_RecordPayout_Validation(t *testing.T) {
	svc := NewPaymentService(newStubPaymentRepo(), &stubNotifier{}, discardLogger)

	for _, input := range []ports.RecordPayoutInput{
		{PayeeID: "", Amount: 100},
		{PayeeID: "dev_1", Amount: 0},
		{PayeeID: "dev_1", Amount: -5},
	} {
		if _, err := svc.RecordPayout(context.Background(), adminPrincipal(), input); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("input %+v: expected ErrValidation, got %v", input, err)
		}
	}
}

// ---------------------------------------------------------------------------
// RecordIncoming
// ---------------------------------------------------------------------------

func TestPaymentService_RecordIncoming_Success(t *testing.T) {
	repo := newStubPaymentRepo()
	svc := NewPaymentService(repo, &stubNotifier{}, discardLogger)

	payment, err := svc.RecordIncoming(context.Background(), ports.IncomingPaymentInput{
		EventID: "evt_123",
		PayerID: "client_1",
		Amount:  500,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payment.Type != domain.PaymentIncoming || payment.Status != domain.PaymentPaid {
		t.Errorf("incoming must be Paid Incoming, got %s/%s", payment.Type, payment.Status)
	}
	if payment.ExternalRef != "evt_123" {
		t.Errorf("event id must be kept as external_ref, got %q", payment.ExternalRef)
	}
}

// ---------------------------------------------------------------------------
// Totals
// ---------------------------------------------------------------------------

func TestPaymentService_Totals_NetProfit(t *testing.T) {
	repo := newStubPaymentRepo()
	svc := NewPaymentService(repo, &stubNotifier{}, discardLogger)
	ctx := context.Background()

	_, _ = svc.RecordIncoming(ctx, ports.IncomingPaymentInput{EventID: "e1", PayerID: "client_1", Amount: 500})
	_, _ = svc.RecordPayout(ctx, adminPrincipal(), ports.RecordPayoutInput{PayeeID: "dev_1", Amount: 200})

	totals, err := svc.Totals(ctx, adminPrincipal())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if totals.TotalIncoming != 500 {
		t.Errorf("total incoming: got %v, want 500", totals.TotalIncoming)
	}
	if totals.TotalOutgoing != 200 {
		t.Errorf("total outgoing: got %v, want 200", totals.TotalOutgoing)
	}
	if totals.NetProfit != 300 {
		t.Errorf("net profit must equal incoming minus outgoing: got %v, want 300", totals.NetProfit)
	}
}

func TestPaymentService_Totals_IgnoresUnpaid(t *testing.T) {
	repo := newStubPaymentRepo()
	repo.entries = append(repo.entries, &domain.Payment{
		ID: "x1", Amount: 999, Type: domain.PaymentIncoming, Status: domain.PaymentPending,
	})
	svc := NewPaymentService(repo, &stubNotifier{}, discardLogger)

	totals, err := svc.Totals(context.Background(), adminPrincipal())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if totals.TotalIncoming != 0 {
		t.Errorf("pending entries must not count, got %v", totals.TotalIncoming)
	}
}

func TestPaymentService_Totals_AdminOnly(t *testing.T) {
	svc := NewPaymentService(newStubPaymentRepo(), &stubNotifier{}, discardLogger)

	_, err := svc.Totals(context.Background(), clientPrincipal("client_1"))
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestPaymentService_List_ScopedToParticipant(t *testing.T) {
	repo := newStubPaymentRepo()
	svc := NewPaymentService(repo, &stubNotifier{}, discardLogger)
	ctx := context.Background()

	_, _ = svc.RecordIncoming(ctx, ports.IncomingPaymentInput{EventID: "e1", PayerID: "client_1", Amount: 500})
	_, _ = svc.RecordPayout(ctx, adminPrincipal(), ports.RecordPayoutInput{PayeeID: "dev_1", Amount: 200})

	all, err := svc.List(ctx, adminPrincipal())
	if err != nil || len(all) != 2 {
		t.Errorf("admin must see all entries: err=%v n=%d", err, len(all))
	}

	dev, err := svc.List(ctx, developerPrincipal("dev_1", true))
	if err != nil || len(dev) != 1 || dev[0].PayeeID != "dev_1" {
		t.Errorf("developer must only see own entries: err=%v got=%+v", err, dev)
	}
}
