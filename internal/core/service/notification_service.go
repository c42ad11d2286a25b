package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/devlance/marketplace-api/internal/core/domain"
	"github.com/devlance/marketplace-api/internal/core/ports"
)

// NotificationService persists lifecycle notifications and serves the
// per-recipient inbox. The async dispatcher calls Record; failures there are
// logged and dropped, never propagated to the operation that emitted them.
type NotificationService struct {
	repo ports.NotificationRepository
	log  zerolog.Logger
}

func NewNotificationService(repo ports.NotificationRepository, log zerolog.Logger) *NotificationService {
	return &NotificationService{repo: repo, log: log}
}

// Record persists a single notification, filling in id and timestamp.
func (s *NotificationService) Record(ctx context.Context, n domain.Notification) error {
	if n.RecipientID == "" {
		return nil // nothing to deliver
	}
	n.ID = uuid.NewString()
	n.CreatedAt = time.Now().UTC()
	return s.repo.Create(ctx, &n)
}

// ListForRecipient returns the principal's notifications, newest first.
func (s *NotificationService) ListForRecipient(ctx context.Context, principal domain.Principal) ([]*domain.Notification, error) {
	return s.repo.ListByRecipient(ctx, principal.ID)
}

// MarkRead flips the read flag on one of the principal's notifications.
func (s *NotificationService) MarkRead(ctx context.Context, principal domain.Principal, id string) error {
	return s.repo.MarkRead(ctx, id, principal.ID)
}
