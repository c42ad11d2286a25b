package domain

import "time"

// ApplicationStatus represents the lifecycle state of a project application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "Pending"
	ApplicationApproved ApplicationStatus = "Approved"
	ApplicationRejected ApplicationStatus = "Rejected"
)

// Decided reports whether the application has reached a final outcome.
// Approved and Rejected applications are immutable.
func (s ApplicationStatus) Decided() bool {
	return s == ApplicationApproved || s == ApplicationRejected
}

// Application is a developer's request to work on an Open project. At most one
// application per (project, developer) pair may exist regardless of outcome: a
// rejected developer may not reapply to the same project.
type Application struct {
	ID          string            `json:"id" bson:"_id"`
	ProjectID   string            `json:"project_id" bson:"project_id"`
	DeveloperID string            `json:"developer_id" bson:"developer_id"`
	CoverLetter string            `json:"cover_letter,omitempty" bson:"cover_letter,omitempty"`
	Status      ApplicationStatus `json:"status" bson:"status"`
	CreatedAt   time.Time         `json:"created_at" bson:"created_at"`
}
