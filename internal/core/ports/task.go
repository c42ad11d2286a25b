package ports

import (
	"context"
	"time"

	"github.com/devlance/marketplace-api/internal/core/domain"
)

// CreateTaskInput carries the admin's task definition. The application it
// references must be Approved and belong to the same project.
type CreateTaskInput struct {
	ProjectID     string
	ApplicationID string
	Title         string
	Description   string
	Budget        float64
	Deadline      *time.Time
}

// SubmitTaskInput carries a developer's work submission.
type SubmitTaskInput struct {
	TaskID  string
	GitLink string
	Notes   string
}

// TaskService owns the task status state machine, coupled to the project
// engine through the parent project's ownership checks.
type TaskService interface {
	Create(ctx context.Context, principal domain.Principal, input CreateTaskInput) (*domain.Task, error)
	Get(ctx context.Context, principal domain.Principal, id string) (*domain.Task, error)
	// Start moves an Assigned task to In Progress; assigned developer only.
	Start(ctx context.Context, principal domain.Principal, taskID string) (*domain.Task, error)
	// Submit records the work reference and moves the task to Ready For
	// Review. An empty link fails with domain.ErrEmptySubmission and leaves
	// the task untouched.
	Submit(ctx context.Context, principal domain.Principal, input SubmitTaskInput) (*domain.Task, error)
	// Review resolves a Ready For Review task: Completed is terminal and makes
	// the task payout-eligible, Changes Requested loops back for rework.
	Review(ctx context.Context, principal domain.Principal, taskID string, decision domain.TaskStatus) (*domain.Task, error)
	Delete(ctx context.Context, principal domain.Principal, taskID string) error
	ListForPrincipal(ctx context.Context, principal domain.Principal, projectID string) ([]*domain.Task, error)
}

// TaskFilter scopes repository queries.
type TaskFilter struct {
	ProjectID  string
	ProjectIDs []string
	AssignedTo string
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)
	// UpdateStatus applies the transition only when the stored status still
	// equals expected; submission fields are written atomically with the
	// status. Returns domain.ErrConflict on a lost race.
	UpdateStatus(ctx context.Context, id string, expected, target domain.TaskStatus, submission *SubmitTaskInput) error
	Delete(ctx context.Context, id string) error
}
