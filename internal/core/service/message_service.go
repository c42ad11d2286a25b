package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/devlance/marketplace-api/internal/core/domain"
	"github.com/devlance/marketplace-api/internal/core/ports"
)

// MessageService is the append-only direct-message log. No edits, no deletes.
type MessageService struct {
	repo     ports.MessageRepository
	profiles ports.ProfileRepository
	log      zerolog.Logger
}

func NewMessageService(repo ports.MessageRepository, profiles ports.ProfileRepository, log zerolog.Logger) *MessageService {
	return &MessageService{repo: repo, profiles: profiles, log: log}
}

// Send appends a message from the principal to the receiver.
func (s *MessageService) Send(ctx context.Context, principal domain.Principal, receiverID, content string) (*domain.Message, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: message content must not be empty", domain.ErrValidation)
	}
	if receiverID == "" || receiverID == principal.ID {
		return nil, fmt.Errorf("%w: receiver must be another user", domain.ErrValidation)
	}
	if _, err := s.profiles.FindByID(ctx, receiverID); err != nil {
		return nil, err
	}

	message := &domain.Message{
		ID:         uuid.NewString(),
		SenderID:   principal.ID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// Conversation returns the messages exchanged between the principal and
// otherID, oldest first. Callers poll this with their last-seen timestamp;
// reads that trail a concurrent send by one interval are acceptable.
func (s *MessageService) Conversation(ctx context.Context, principal domain.Principal, otherID string, since time.Time) ([]*domain.Message, error) {
	if otherID == "" {
		return nil, fmt.Errorf("%w: conversation partner is required", domain.ErrValidation)
	}
	return s.repo.ListConversation(ctx, principal.ID, otherID, since)
}
