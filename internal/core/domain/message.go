package domain

import "time"

// Message is a single entry in the append-only direct-message log between two
// users. No edit, no delete, no status.
type Message struct {
	ID         string    `json:"id" bson:"_id"`
	SenderID   string    `json:"sender_id" bson:"sender_id"`
	ReceiverID string    `json:"receiver_id" bson:"receiver_id"`
	Content    string    `json:"content" bson:"content"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}
