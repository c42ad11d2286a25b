package domain

import "time"

// NotificationKind labels the lifecycle event a notification reports.
type NotificationKind string

const (
	NotifyProjectStatus       NotificationKind = "project_status"
	NotifyApplicationDecision NotificationKind = "application_decision"
	NotifyTaskAssigned        NotificationKind = "task_assigned"
	NotifyTaskSubmitted       NotificationKind = "task_submitted"
	NotifyTaskReviewed        NotificationKind = "task_reviewed"
	NotifyPayoutRecorded      NotificationKind = "payout_recorded"
)

// Notification is a persisted, per-recipient record of a lifecycle side
// effect. Emission is best-effort: a failed notification never fails the
// operation that produced it.
type Notification struct {
	ID          string           `json:"id" bson:"_id"`
	RecipientID string           `json:"recipient_id" bson:"recipient_id"`
	Kind        NotificationKind `json:"kind" bson:"kind"`
	Subject     string           `json:"subject" bson:"subject"`
	Body        string           `json:"body,omitempty" bson:"body,omitempty"`
	// EntityID points at the project, task, application, or payment the
	// notification is about.
	EntityID  string    `json:"entity_id,omitempty" bson:"entity_id,omitempty"`
	Read      bool      `json:"read" bson:"read"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
