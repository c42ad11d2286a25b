package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/devlance/marketplace-api/internal/api/metrics"
	"github.com/devlance/marketplace-api/internal/core/domain"
	"github.com/devlance/marketplace-api/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ProjectService owns the project lifecycle state machine.
type ProjectService struct {
	repo     ports.ProjectRepository
	tasks    ports.TaskRepository
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewProjectService(repo ports.ProjectRepository, tasks ports.TaskRepository, notifier ports.Notifier, log zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, tasks: tasks, notifier: notifier, log: log}
}

// Create registers a new project owned by the calling client. Projects always
// start in Pending and wait for admin approval.
func (s *ProjectService) Create(ctx context.Context, principal domain.Principal, input ports.CreateProjectInput) (*domain.Project, error) {
	if principal.Role != domain.RoleClient {
		return nil, domain.ErrForbidden
	}
	if input.Title == "" || input.Description == "" {
		return nil, fmt.Errorf("%w: title and description are required", domain.ErrValidation)
	}

	project := &domain.Project{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		ServiceType: input.ServiceType,
		Budget:      input.Budget,
		Deadline:    input.Deadline,
		Status:      domain.ProjectPending,
		ClientID:    principal.ID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, project); err != nil {
		s.log.Error().Err(err).Msg("failed to create project")
		return nil, err
	}

	metrics.ProjectsCreatedTotal.WithLabelValues(project.ServiceType).Inc()
	s.log.Info().Str("project_id", project.ID).Str("client_id", principal.ID).Msg("project created")
	return project, nil
}

// Get returns a single project, applying the same visibility rule as the
// listing: clients see their own, developers see Open projects or projects
// they hold a task on, admins see all.
func (s *ProjectService) Get(ctx context.Context, principal domain.Principal, id string) (*domain.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch principal.Role {
	case domain.RoleAdmin:
		return project, nil
	case domain.RoleClient:
		if project.ClientID != principal.ID {
			return nil, domain.ErrForbidden
		}
		return project, nil
	case domain.RoleDeveloper:
		if project.Status == domain.ProjectOpen {
			return project, nil
		}
		held, err := s.developerProjectIDs(ctx, principal.ID)
		if err != nil {
			return nil, err
		}
		for _, pid := range held {
			if pid == id {
				return project, nil
			}
		}
		return nil, domain.ErrForbidden
	}
	return nil, domain.ErrForbidden
}

// SetStatus moves a project along the lifecycle graph. Admin only. The write
// carries the observed status as a precondition; a concurrent transition
// surfaces as domain.ErrConflict rather than silently winning.
func (s *ProjectService) SetStatus(ctx context.Context, principal domain.Principal, id string, target domain.ProjectStatus) (*domain.Project, error) {
	if principal.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if !target.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, target)
	}

	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !project.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, project.Status, target)
	}

	if err := s.repo.UpdateStatus(ctx, id, project.Status, target); err != nil {
		return nil, err
	}

	metrics.ProjectTransitionsTotal.WithLabelValues(string(project.Status), string(target)).Inc()
	s.log.Info().
		Str("project_id", id).
		Str("from", string(project.Status)).
		Str("to", string(target)).
		Msg("project status updated")

	s.notifier.Notify(domain.Notification{
		RecipientID: project.ClientID,
		Kind:        domain.NotifyProjectStatus,
		Subject:     fmt.Sprintf("Project %q is now %s", project.Title, target),
		EntityID:    project.ID,
	})

	project.Status = target
	return project, nil
}

// ListForRole returns the role-filtered project listing. This is a read-side
// filter, not a stored relation.
func (s *ProjectService) ListForRole(ctx context.Context, principal domain.Principal, input ports.ListProjectsInput) (*ports.ListProjectsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	filter := ports.ProjectFilter{Status: input.Status, Page: page, Limit: limit}
	switch principal.Role {
	case domain.RoleAdmin:
		// no scoping
	case domain.RoleClient:
		filter.ClientID = principal.ID
	case domain.RoleDeveloper:
		held, err := s.developerProjectIDs(ctx, principal.ID)
		if err != nil {
			return nil, err
		}
		filter.IDs = held
		filter.StatusIn = []string{string(domain.ProjectOpen)}
	default:
		return nil, domain.ErrForbidden
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListProjectsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// developerProjectIDs returns the ids of projects the developer holds a task
// on.
func (s *ProjectService) developerProjectIDs(ctx context.Context, developerID string) ([]string, error) {
	held, err := s.tasks.List(ctx, ports.TaskFilter{AssignedTo: developerID})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(held))
	seen := make(map[string]struct{}, len(held))
	for _, t := range held {
		if _, ok := seen[t.ProjectID]; ok {
			continue
		}
		seen[t.ProjectID] = struct{}{}
		ids = append(ids, t.ProjectID)
	}
	return ids, nil
}
