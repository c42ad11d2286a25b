package domain

import "time"

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectPending    ProjectStatus = "Pending"
	ProjectOpen       ProjectStatus = "Open"
	ProjectInProgress ProjectStatus = "In Progress"
	ProjectReview     ProjectStatus = "Review"
	ProjectCompleted  ProjectStatus = "Completed"
	ProjectRejected   ProjectStatus = "Rejected"
)

// projectTransitions defines the allowed state machine edges. Rejection is
// additionally reachable from any non-terminal state (see CanTransitionTo);
// Completed and Rejected are terminal; there is no un-reject path.
var projectTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectPending:    {ProjectOpen, ProjectRejected},
	ProjectOpen:       {ProjectInProgress, ProjectRejected},
	ProjectInProgress: {ProjectReview},
	ProjectReview:     {ProjectCompleted},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s ProjectStatus) CanTransitionTo(next ProjectStatus) bool {
	if next == ProjectRejected {
		return !s.Terminal()
	}
	for _, allowed := range projectTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are permitted from s.
func (s ProjectStatus) Terminal() bool {
	return s == ProjectCompleted || s == ProjectRejected
}

// Valid reports whether s is a known project status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPending, ProjectOpen, ProjectInProgress, ProjectReview, ProjectCompleted, ProjectRejected:
		return true
	}
	return false
}

// Project is a unit of client-requested work tracked through the status
// lifecycle. Exactly one client owns a project; projects are never deleted,
// only terminated via status.
type Project struct {
	ID          string        `json:"id" bson:"_id"`
	Title       string        `json:"title" bson:"title"`
	Description string        `json:"description" bson:"description"`
	ServiceType string        `json:"service_type" bson:"service_type"`
	Budget      float64       `json:"budget,omitempty" bson:"budget,omitempty"`
	Deadline    *time.Time    `json:"deadline,omitempty" bson:"deadline,omitempty"`
	Status      ProjectStatus `json:"status" bson:"status"`
	ClientID    string        `json:"client_id" bson:"client_id"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
}
