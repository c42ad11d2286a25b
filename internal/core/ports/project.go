package ports

import (
	"context"
	"time"

	"github.com/devlance/marketplace-api/internal/core/domain"
)

// CreateProjectInput carries all data needed to create a new project.
type CreateProjectInput struct {
	Title       string
	Description string
	ServiceType string
	Budget      float64
	Deadline    *time.Time
}

// ListProjectsInput carries the parameters for the role-filtered listing.
type ListProjectsInput struct {
	Status string // optional: filter by project status
	Page   int    // 1-based
	Limit  int    // capped at 100 by the service
}

// ListProjectsResult is a page of projects plus pagination metadata.
type ListProjectsResult struct {
	Items      []*domain.Project
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ProjectService owns the project status state machine.
type ProjectService interface {
	Create(ctx context.Context, principal domain.Principal, input CreateProjectInput) (*domain.Project, error)
	Get(ctx context.Context, principal domain.Principal, id string) (*domain.Project, error)
	// SetStatus validates the transition against the status graph and applies
	// it with an optimistic precondition on the observed status.
	SetStatus(ctx context.Context, principal domain.Principal, id string, target domain.ProjectStatus) (*domain.Project, error)
	// ListForRole applies the read-side visibility rule: clients see their own
	// projects, developers see the Open marketplace plus projects they hold a
	// task on, admins see everything.
	ListForRole(ctx context.Context, principal domain.Principal, input ListProjectsInput) (*ListProjectsResult, error)
}

// ProjectFilter scopes repository queries. When both StatusIn and IDs are
// set, a project matches if either condition holds; this backs the developer
// marketplace view (Open projects plus projects the developer holds a task
// on).
type ProjectFilter struct {
	ClientID string   // non-empty: owned by this client
	Status   string   // non-empty: exact status match
	StatusIn []string // non-empty: status in set
	IDs      []string // non-empty: id in set
	Page     int
	Limit    int
}

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]*domain.Project, int64, error)
	// UpdateStatus applies the transition only when the stored status still
	// equals expected. It returns domain.ErrConflict when the precondition no
	// longer holds at write time.
	UpdateStatus(ctx context.Context, id string, expected, target domain.ProjectStatus) error
}
