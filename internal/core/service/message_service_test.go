package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/devlance/marketplace-api/internal/core/domain"
)

func newMessageFixture() (*MessageService, *stubMessageRepo, *stubProfileRepo) {
	msgs := newStubMessageRepo()
	profiles := newStubProfileRepo()
	svc := NewMessageService(msgs, profiles, discardLogger)
	return svc, msgs, profiles
}

func TestMessageService_Send_Success(t *testing.T) {
	svc, msgs, profiles := newMessageFixture()
	seedProfile(profiles, "admin_1", domain.RoleAdmin, true)

	msg, err := svc.Send(context.Background(), developerPrincipal("dev_1", true), "admin_1", "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.SenderID != "dev_1" || msg.ReceiverID != "admin_1" {
		t.Errorf("participants wrong: %+v", msg)
	}
	if len(msgs.msgs) != 1 {
		t.Errorf("expected 1 stored message, got %d", len(msgs.msgs))
	}
}

func TestMessageService_Send_Validation(t *testing.T) {
	svc, _, profiles := newMessageFixture()
	seedProfile(profiles, "admin_1", domain.RoleAdmin, true)
	dev := developerPrincipal("dev_1", true)

	if _, err := svc.Send(context.Background(), dev, "admin_1", ""); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("empty content: expected ErrValidation, got %v", err)
	}
	if _, err := svc.Send(context.Background(), dev, "dev_1", "hi me"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("self message: expected ErrValidation, got %v", err)
	}
	if _, err := svc.Send(context.Background(), dev, "ghost", "hi"); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Errorf("unknown receiver: expected ErrProfileNotFound, got %v", err)
	}
}

func TestMessageService_Conversation_SinceFilter(t *testing.T) {
	svc, msgs, profiles := newMessageFixture()
	seedProfile(profiles, "admin_1", domain.RoleAdmin, true)

	base := time.Now().UTC()
	msgs.msgs = append(msgs.msgs,
		&domain.Message{ID: "m1", SenderID: "dev_1", ReceiverID: "admin_1", Content: "old", CreatedAt: base.Add(-time.Hour)},
		&domain.Message{ID: "m2", SenderID: "admin_1", ReceiverID: "dev_1", Content: "new", CreatedAt: base},
		&domain.Message{ID: "m3", SenderID: "admin_1", ReceiverID: "other", Content: "unrelated", CreatedAt: base},
	)

	all, err := svc.Conversation(context.Background(), developerPrincipal("dev_1", true), "admin_1", time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected both directions of the pair, got %d", len(all))
	}

	newer, err := svc.Conversation(context.Background(), developerPrincipal("dev_1", true), "admin_1", base.Add(-time.Minute))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(newer) != 1 || newer[0].ID != "m2" {
		t.Errorf("since filter wrong: %+v", newer)
	}
}

func TestMessageService_Conversation_RequiresPartner(t *testing.T) {
	svc, _, _ := newMessageFixture()

	_, err := svc.Conversation(context.Background(), developerPrincipal("dev_1", true), "", time.Time{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
