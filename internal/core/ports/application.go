package ports

import (
	"context"

	"github.com/devlance/marketplace-api/internal/core/domain"
)

// ApplyInput carries a developer's application to an open project.
type ApplyInput struct {
	ProjectID   string
	CoverLetter string
}

// ApplicationService manages developer applications and admin decisions.
type ApplicationService interface {
	// Apply requires an approved developer and an Open project; at most one
	// application per (project, developer) pair may ever exist.
	Apply(ctx context.Context, principal domain.Principal, input ApplyInput) (*domain.Application, error)
	// Decide resolves a Pending application. Approval does not auto-reject
	// sibling applications: multiple developers may be approved for the same
	// project.
	Decide(ctx context.Context, principal domain.Principal, applicationID string, outcome domain.ApplicationStatus) (*domain.Application, error)
	ListForProject(ctx context.Context, principal domain.Principal, projectID string) ([]*domain.Application, error)
	ListMine(ctx context.Context, principal domain.Principal) ([]*domain.Application, error)
}

// ApplicationRepository defines persistence operations for applications.
type ApplicationRepository interface {
	Create(ctx context.Context, a *domain.Application) error
	FindByID(ctx context.Context, id string) (*domain.Application, error)
	// FindByProjectAndDeveloper returns the application for the pair, or
	// domain.ErrApplicationNotFound when none exists.
	FindByProjectAndDeveloper(ctx context.Context, projectID, developerID string) (*domain.Application, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Application, error)
	ListByDeveloper(ctx context.Context, developerID string) ([]*domain.Application, error)
	// UpdateStatus resolves the application only when the stored status still
	// equals expected, returning domain.ErrConflict otherwise.
	UpdateStatus(ctx context.Context, id string, expected, target domain.ApplicationStatus) error
}
