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

// TaskService owns the task lifecycle state machine: assignment, submission,
// review, and the rework loop.
type TaskService struct {
	repo         ports.TaskRepository
	projects     ports.ProjectRepository
	applications ports.ApplicationRepository
	notifier     ports.Notifier
	log          zerolog.Logger
}

func NewTaskService(
	repo ports.TaskRepository,
	projects ports.ProjectRepository,
	applications ports.ApplicationRepository,
	notifier ports.Notifier,
	log zerolog.Logger,
) *TaskService {
	return &TaskService{
		repo:         repo,
		projects:     projects,
		applications: applications,
		notifier:     notifier,
		log:          log,
	}
}

// Create turns an approved application into an assigned task. Admin only. The
// application must be Approved and must belong to the given project; the task
// is assigned to the application's developer.
func (s *TaskService) Create(ctx context.Context, principal domain.Principal, input ports.CreateTaskInput) (*domain.Task, error) {
	if principal.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}

	if _, err := s.projects.FindByID(ctx, input.ProjectID); err != nil {
		return nil, err
	}

	application, err := s.applications.FindByID(ctx, input.ApplicationID)
	if err != nil {
		return nil, err
	}
	if application.ProjectID != input.ProjectID {
		return nil, fmt.Errorf("%w: application does not belong to this project", domain.ErrValidation)
	}
	if application.Status != domain.ApplicationApproved {
		return nil, fmt.Errorf("%w: application is not approved", domain.ErrValidation)
	}

	task := &domain.Task{
		ID:          uuid.NewString(),
		ProjectID:   input.ProjectID,
		Title:       input.Title,
		Description: input.Description,
		AssignedTo:  application.DeveloperID,
		Budget:      input.Budget,
		Deadline:    input.Deadline,
		Status:      domain.TaskAssigned,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	metrics.TasksCreatedTotal.Inc()
	s.log.Info().
		Str("task_id", task.ID).
		Str("project_id", task.ProjectID).
		Str("assigned_to", task.AssignedTo).
		Msg("task created")

	s.notifier.Notify(domain.Notification{
		RecipientID: task.AssignedTo,
		Kind:        domain.NotifyTaskAssigned,
		Subject:     fmt.Sprintf("You were assigned task %q", task.Title),
		EntityID:    task.ID,
	})
	return task, nil
}

// Get returns a single task, visible to the admin, the assigned developer,
// and the owning client of the parent project.
func (s *TaskService) Get(ctx context.Context, principal domain.Principal, id string) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeView(ctx, principal, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Start moves an Assigned task to In Progress. Assigned developer only.
func (s *TaskService) Start(ctx context.Context, principal domain.Principal, taskID string) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if principal.Role != domain.RoleDeveloper || task.AssignedTo != principal.ID {
		return nil, domain.ErrForbidden
	}
	if !task.Status.CanTransitionTo(domain.TaskInProgress) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, task.Status, domain.TaskInProgress)
	}

	if err := s.repo.UpdateStatus(ctx, taskID, task.Status, domain.TaskInProgress, nil); err != nil {
		return nil, err
	}

	metrics.TaskTransitionsTotal.WithLabelValues(string(task.Status), string(domain.TaskInProgress)).Inc()
	task.Status = domain.TaskInProgress
	return task, nil
}

// Submit records the developer's work reference and moves the task to Ready
// For Review. Allowed from Assigned, In Progress, and Changes Requested. An
// empty link fails with ErrEmptySubmission before any state is touched.
func (s *TaskService) Submit(ctx context.Context, principal domain.Principal, input ports.SubmitTaskInput) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}
	if principal.Role != domain.RoleDeveloper || task.AssignedTo != principal.ID {
		return nil, domain.ErrForbidden
	}
	if input.GitLink == "" {
		return nil, domain.ErrEmptySubmission
	}
	if !task.Status.Submittable() {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, task.Status, domain.TaskReadyForReview)
	}

	if err := s.repo.UpdateStatus(ctx, input.TaskID, task.Status, domain.TaskReadyForReview, &input); err != nil {
		return nil, err
	}

	metrics.TaskTransitionsTotal.WithLabelValues(string(task.Status), string(domain.TaskReadyForReview)).Inc()
	s.log.Info().
		Str("task_id", task.ID).
		Str("developer_id", principal.ID).
		Msg("task submitted for review")

	project, err := s.projects.FindByID(ctx, task.ProjectID)
	if err == nil {
		s.notifier.Notify(domain.Notification{
			RecipientID: project.ClientID,
			Kind:        domain.NotifyTaskSubmitted,
			Subject:     fmt.Sprintf("Task %q is ready for review", task.Title),
			EntityID:    task.ID,
		})
	}

	task.Status = domain.TaskReadyForReview
	task.SubmissionLink = input.GitLink
	task.SubmissionNotes = input.Notes
	return task, nil
}

// Review resolves a Ready For Review task. The reviewer must be the owning
// client of the parent project or an admin. Completed is terminal and makes
// the task eligible for a payout record; Changes Requested loops back so the
// developer can resubmit. No payment is created automatically.
func (s *TaskService) Review(ctx context.Context, principal domain.Principal, taskID string, decision domain.TaskStatus) (*domain.Task, error) {
	if decision != domain.TaskCompleted && decision != domain.TaskChangesRequested {
		return nil, fmt.Errorf("%w: decision must be Completed or Changes Requested", domain.ErrValidation)
	}

	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	project, err := s.projects.FindByID(ctx, task.ProjectID)
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

	if task.Status != domain.TaskReadyForReview {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, task.Status, decision)
	}

	if err := s.repo.UpdateStatus(ctx, taskID, domain.TaskReadyForReview, decision, nil); err != nil {
		return nil, err
	}

	metrics.TaskTransitionsTotal.WithLabelValues(string(domain.TaskReadyForReview), string(decision)).Inc()
	s.log.Info().
		Str("task_id", taskID).
		Str("decision", string(decision)).
		Msg("task reviewed")

	s.notifier.Notify(domain.Notification{
		RecipientID: task.AssignedTo,
		Kind:        domain.NotifyTaskReviewed,
		Subject:     fmt.Sprintf("Task %q review: %s", task.Title, decision),
		EntityID:    task.ID,
	})

	task.Status = decision
	return task, nil
}

// Delete removes a task. Admin only; irreversible and does not alter the
// parent project's status.
func (s *TaskService) Delete(ctx context.Context, principal domain.Principal, taskID string) error {
	if principal.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if _, err := s.repo.FindByID(ctx, taskID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, taskID); err != nil {
		return err
	}
	s.log.Info().Str("task_id", taskID).Msg("task deleted")
	return nil
}

// ListForPrincipal returns tasks by role: developers their own, clients the
// tasks under their projects, admins everything (optionally by project).
func (s *TaskService) ListForPrincipal(ctx context.Context, principal domain.Principal, projectID string) ([]*domain.Task, error) {
	switch principal.Role {
	case domain.RoleAdmin:
		return s.repo.List(ctx, ports.TaskFilter{ProjectID: projectID})
	case domain.RoleDeveloper:
		return s.repo.List(ctx, ports.TaskFilter{AssignedTo: principal.ID, ProjectID: projectID})
	case domain.RoleClient:
		owned, _, err := s.projects.List(ctx, ports.ProjectFilter{ClientID: principal.ID})
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(owned))
		for _, p := range owned {
			if projectID != "" && p.ID != projectID {
				continue
			}
			ids = append(ids, p.ID)
		}
		if len(ids) == 0 {
			return []*domain.Task{}, nil
		}
		return s.repo.List(ctx, ports.TaskFilter{ProjectIDs: ids})
	}
	return nil, domain.ErrForbidden
}

func (s *TaskService) authorizeView(ctx context.Context, principal domain.Principal, task *domain.Task) error {
	switch principal.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleDeveloper:
		if task.AssignedTo == principal.ID {
			return nil
		}
	case domain.RoleClient:
		project, err := s.projects.FindByID(ctx, task.ProjectID)
		if err != nil {
			return err
		}
		if project.ClientID == principal.ID {
			return nil
		}
	}
	return domain.ErrForbidden
}
