package domain

import "time"

// TaskStatus represents the lifecycle state of an assigned task.
type TaskStatus string

const (
	TaskAssigned         TaskStatus = "Assigned"
	TaskInProgress       TaskStatus = "In Progress"
	TaskReadyForReview   TaskStatus = "Ready For Review"
	TaskCompleted        TaskStatus = "Completed"
	TaskChangesRequested TaskStatus = "Changes Requested"
)

// taskTransitions defines the allowed state machine edges. The loop
// ChangesRequested → In Progress / Ready For Review is the rework cycle;
// Completed is terminal.
var taskTransitions = map[TaskStatus][]TaskStatus{
	TaskAssigned:         {TaskInProgress, TaskReadyForReview},
	TaskInProgress:       {TaskReadyForReview},
	TaskReadyForReview:   {TaskCompleted, TaskChangesRequested},
	TaskChangesRequested: {TaskInProgress, TaskReadyForReview},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	for _, allowed := range taskTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Submittable reports whether a developer may submit work from status s.
func (s TaskStatus) Submittable() bool {
	switch s {
	case TaskAssigned, TaskInProgress, TaskChangesRequested:
		return true
	}
	return false
}

// Task is a unit of assigned developer work scoped to one project. The
// assigned developer must hold an approved application on the parent project.
type Task struct {
	ID              string     `json:"id" bson:"_id"`
	ProjectID       string     `json:"project_id" bson:"project_id"`
	Title           string     `json:"title" bson:"title"`
	Description     string     `json:"description" bson:"description"`
	AssignedTo      string     `json:"assigned_to" bson:"assigned_to"`
	Budget          float64    `json:"budget" bson:"budget"`
	Deadline        *time.Time `json:"deadline,omitempty" bson:"deadline,omitempty"`
	Status          TaskStatus `json:"status" bson:"status"`
	SubmissionLink  string     `json:"submission_git_link,omitempty" bson:"submission_git_link,omitempty"`
	SubmissionNotes string     `json:"submission_notes,omitempty" bson:"submission_notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at" bson:"created_at"`
}
