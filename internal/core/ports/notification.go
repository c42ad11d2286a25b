package ports

import (
	"context"

	"github.com/devlance/marketplace-api/internal/core/domain"
)

// Notifier is the side-effect sink the lifecycle engines emit into. Emission
// must never fail the primary operation; implementations log and drop on
// error.
type Notifier interface {
	Notify(n domain.Notification)
}

// NotificationService persists and serves per-recipient notifications.
type NotificationService interface {
	Record(ctx context.Context, n domain.Notification) error
	ListForRecipient(ctx context.Context, principal domain.Principal) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, principal domain.Principal, id string) error
}

// NotificationRepository defines persistence operations for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByRecipient(ctx context.Context, recipientID string) ([]*domain.Notification, error)
	// MarkRead flips the read flag for a notification owned by recipientID.
	MarkRead(ctx context.Context, id, recipientID string) error
}
