package ports

import (
	"context"
	"time"

	"github.com/devlance/marketplace-api/internal/core/domain"
)

// MessageService is the append-only direct-message log the core integrates
// with for admin and user communication. Clients poll Conversation periodically;
// stale reads within the polling interval are tolerated by design.
type MessageService interface {
	Send(ctx context.Context, principal domain.Principal, receiverID, content string) (*domain.Message, error)
	// Conversation returns messages between the principal and otherID in
	// ascending creation order. A non-zero since returns only newer messages,
	// supporting incremental polling.
	Conversation(ctx context.Context, principal domain.Principal, otherID string, since time.Time) ([]*domain.Message, error)
}

// MessageRepository defines persistence operations for messages.
type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) error
	ListConversation(ctx context.Context, userA, userB string, since time.Time) ([]*domain.Message, error)
}
