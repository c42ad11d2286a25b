package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/devlance/marketplace-api/internal/api/metrics"
	"github.com/devlance/marketplace-api/internal/core/domain"
	"github.com/devlance/marketplace-api/internal/core/ports"
)

// ApplicationService manages developer applications to open projects and the
// admin decisions that resolve them.
type ApplicationService struct {
	repo     ports.ApplicationRepository
	projects ports.ProjectRepository
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewApplicationService(
	repo ports.ApplicationRepository,
	projects ports.ProjectRepository,
	notifier ports.Notifier,
	log zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{repo: repo, projects: projects, notifier: notifier, log: log}
}

// Apply files a new application. Requires an admin-approved developer and an
// Open project. A developer gets exactly one shot per project: an existing
// application in any state, Rejected included, blocks a new one.
func (s *ApplicationService) Apply(ctx context.Context, principal domain.Principal, input ports.ApplyInput) (*domain.Application, error) {
	if principal.Role != domain.RoleDeveloper {
		return nil, domain.ErrForbidden
	}
	if !principal.Approved {
		return nil, fmt.Errorf("%w: developer is not approved", domain.ErrForbidden)
	}

	project, err := s.projects.FindByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.Status != domain.ProjectOpen {
		return nil, fmt.Errorf("%w: project is not open for applications", domain.ErrInvalidTransition)
	}

	existing, err := s.repo.FindByProjectAndDeveloper(ctx, input.ProjectID, principal.ID)
	if err != nil && !errors.Is(err, domain.ErrApplicationNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateApplication
	}

	application := &domain.Application{
		ID:          uuid.NewString(),
		ProjectID:   input.ProjectID,
		DeveloperID: principal.ID,
		CoverLetter: input.CoverLetter,
		Status:      domain.ApplicationPending,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, application); err != nil {
		return nil, err
	}

	metrics.ApplicationsTotal.WithLabelValues("submitted").Inc()
	s.log.Info().
		Str("application_id", application.ID).
		Str("project_id", input.ProjectID).
		Str("developer_id", principal.ID).
		Msg("application submitted")
	return application, nil
}

// Decide resolves a Pending application. Admin only. The conditional write
// keeps two concurrent decisions from both succeeding: the loser observes a
// non-Pending row or gets domain.ErrConflict. Approval deliberately leaves
// sibling applications untouched; multi-developer projects are supported.
func (s *ApplicationService) Decide(ctx context.Context, principal domain.Principal, applicationID string, outcome domain.ApplicationStatus) (*domain.Application, error) {
	if principal.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if outcome != domain.ApplicationApproved && outcome != domain.ApplicationRejected {
		return nil, fmt.Errorf("%w: outcome must be Approved or Rejected", domain.ErrValidation)
	}

	application, err := s.repo.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if application.Status.Decided() {
		return nil, fmt.Errorf("%w: application already %s", domain.ErrInvalidTransition, application.Status)
	}

	if err := s.repo.UpdateStatus(ctx, applicationID, domain.ApplicationPending, outcome); err != nil {
		return nil, err
	}

	metrics.ApplicationsTotal.WithLabelValues(string(outcome)).Inc()
	s.log.Info().
		Str("application_id", applicationID).
		Str("outcome", string(outcome)).
		Msg("application decided")

	s.notifier.Notify(domain.Notification{
		RecipientID: application.DeveloperID,
		Kind:        domain.NotifyApplicationDecision,
		Subject:     fmt.Sprintf("Your application was %s", outcome),
		EntityID:    application.ID,
	})

	application.Status = outcome
	return application, nil
}

// ListForProject returns all applications on a project, visible to the admin
// and the owning client.
func (s *ApplicationService) ListForProject(ctx context.Context, principal domain.Principal, projectID string) ([]*domain.Application, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	switch principal.Role {
	case domain.RoleAdmin:
	case domain.RoleClient:
		if project.ClientID != principal.ID {
			return nil, domain.ErrForbidden
		}
	default:
		return nil, domain.ErrForbidden
	}
	return s.repo.ListByProject(ctx, projectID)
}

// ListMine returns the calling developer's own applications.
func (s *ApplicationService) ListMine(ctx context.Context, principal domain.Principal) ([]*domain.Application, error) {
	if principal.Role != domain.RoleDeveloper {
		return nil, domain.ErrForbidden
	}
	return s.repo.ListByDeveloper(ctx, principal.ID)
}
