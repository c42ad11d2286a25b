package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/devlance/marketplace-api/internal/core/domain"
	"github.com/devlance/marketplace-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Notifier stub
// ---------------------------------------------------------------------------

type stubNotifier struct {
	sent []domain.Notification
}

func (n *stubNotifier) Notify(notification domain.Notification) {
	n.sent = append(n.sent, notification)
}

// ---------------------------------------------------------------------------
// Project repository stub
// ---------------------------------------------------------------------------

type stubProjectRepo struct {
	byID      map[string]*domain.Project
	createErr error
	// updateHook runs just before UpdateStatus checks its precondition,
	// simulating a concurrent writer.
	updateHook func()
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{byID: make(map[string]*domain.Project)}
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	clone := *p
	return &clone, nil
}

// List applies the same filter semantics the real Mongo repo would use: when
// both StatusIn and IDs are set a project matches if either condition holds.
func (r *stubProjectRepo) List(_ context.Context, f ports.ProjectFilter) ([]*domain.Project, int64, error) {
	var matched []*domain.Project
	for _, p := range r.byID {
		if f.ClientID != "" && p.ClientID != f.ClientID {
			continue
		}
		if f.Status != "" && string(p.Status) != f.Status {
			continue
		}
		if len(f.StatusIn) > 0 || len(f.IDs) > 0 {
			inStatus := false
			for _, s := range f.StatusIn {
				if string(p.Status) == s {
					inStatus = true
				}
			}
			inIDs := false
			for _, id := range f.IDs {
				if p.ID == id {
					inIDs = true
				}
			}
			if !inStatus && !inIDs {
				continue
			}
		}
		clone := *p
		matched = append(matched, &clone)
	}
	total := int64(len(matched))

	limit := f.Limit
	if limit <= 0 {
		limit = len(matched)
	}
	skip := (f.Page - 1) * limit
	if skip < 0 {
		skip = 0
	}
	if skip > len(matched) {
		return []*domain.Project{}, total, nil
	}
	end := skip + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *stubProjectRepo) UpdateStatus(_ context.Context, id string, expected, target domain.ProjectStatus) error {
	if r.updateHook != nil {
		r.updateHook()
	}
	p, ok := r.byID[id]
	if !ok {
		return domain.ErrProjectNotFound
	}
	if p.Status != expected {
		return domain.ErrConflict
	}
	p.Status = target
	return nil
}

// ---------------------------------------------------------------------------
// Application repository stub
// ---------------------------------------------------------------------------

type stubApplicationRepo struct {
	byID       map[string]*domain.Application
	updateHook func()
}

func newStubApplicationRepo() *stubApplicationRepo {
	return &stubApplicationRepo{byID: make(map[string]*domain.Application)}
}

func (r *stubApplicationRepo) Create(_ context.Context, a *domain.Application) error {
	// Mirrors the unique (project_id, developer_id) index.
	for _, existing := range r.byID {
		if existing.ProjectID == a.ProjectID && existing.DeveloperID == a.DeveloperID {
			return domain.ErrDuplicateApplication
		}
	}
	clone := *a
	r.byID[a.ID] = &clone
	return nil
}

func (r *stubApplicationRepo) FindByID(_ context.Context, id string) (*domain.Application, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubApplicationRepo) FindByProjectAndDeveloper(_ context.Context, projectID, developerID string) (*domain.Application, error) {
	for _, a := range r.byID {
		if a.ProjectID == projectID && a.DeveloperID == developerID {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrApplicationNotFound
}

func (r *stubApplicationRepo) ListByProject(_ context.Context, projectID string) ([]*domain.Application, error) {
	var out []*domain.Application
	for _, a := range r.byID {
		if a.ProjectID == projectID {
			clone := *a
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubApplicationRepo) ListByDeveloper(_ context.Context, developerID string) ([]*domain.Application, error) {
	var out []*domain.Application
	for _, a := range r.byID {
		if a.DeveloperID == developerID {
			clone := *a
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubApplicationRepo) UpdateStatus(_ context.Context, id string, expected, target domain.ApplicationStatus) error {
	if r.updateHook != nil {
		r.updateHook()
	}
	a, ok := r.byID[id]
	if !ok {
		return domain.ErrApplicationNotFound
	}
	if a.Status != expected {
		return domain.ErrConflict
	}
	a.Status = target
	return nil
}

// ---------------------------------------------------------------------------
// Task repository stub
// ---------------------------------------------------------------------------

type stubTaskRepo struct {
	byID       map[string]*domain.Task
	updateHook func()
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{byID: make(map[string]*domain.Task)}
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) error {
	clone := *t
	r.byID[t.ID] = &clone
	return nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) List(_ context.Context, f ports.TaskFilter) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.byID {
		if f.ProjectID != "" && t.ProjectID != f.ProjectID {
			continue
		}
		if f.AssignedTo != "" && t.AssignedTo != f.AssignedTo {
			continue
		}
		if len(f.ProjectIDs) > 0 {
			found := false
			for _, id := range f.ProjectIDs {
				if t.ProjectID == id {
					found = true
				}
			}
			if !found {
				continue
			}
		}
		clone := *t
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubTaskRepo) UpdateStatus(_ context.Context, id string, expected, target domain.TaskStatus, submission *ports.SubmitTaskInput) error {
	if r.updateHook != nil {
		r.updateHook()
	}
	t, ok := r.byID[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	if t.Status != expected {
		return domain.ErrConflict
	}
	t.Status = target
	if submission != nil {
		t.SubmissionLink = submission.GitLink
		t.SubmissionNotes = submission.Notes
	}
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Payment repository stub
// ---------------------------------------------------------------------------

type stubPaymentRepo struct {
	entries   []*domain.Payment
	createErr error
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{}
}

func (r *stubPaymentRepo) Create(_ context.Context, p *domain.Payment) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *p
	r.entries = append(r.entries, &clone)
	return nil
}

func (r *stubPaymentRepo) List(_ context.Context, f ports.PaymentFilter) ([]*domain.Payment, error) {
	var out []*domain.Payment
	for _, p := range r.entries {
		if f.ParticipantID != "" && p.PayerID != f.ParticipantID && p.PayeeID != f.ParticipantID {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubPaymentRepo) SumPaidByType(_ context.Context) (incoming, outgoing float64, err error) {
	for _, p := range r.entries {
		if p.Status != domain.PaymentPaid {
			continue
		}
		switch p.Type {
		case domain.PaymentIncoming:
			incoming += p.Amount
		case domain.PaymentPayout:
			outgoing += p.Amount
		}
	}
	return incoming, outgoing, nil
}

// ---------------------------------------------------------------------------
// Account and profile repository stubs
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	byEmail map[string]*domain.Account
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{byEmail: make(map[string]*domain.Account)}
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	if _, ok := r.byEmail[a.Email]; ok {
		return nil, domain.ErrDuplicateEmail
	}
	clone := *a
	r.byEmail[a.Email] = &clone
	return &clone, nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	a, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	clone := *a
	return &clone, nil
}

type stubProfileRepo struct {
	byID      map[string]*domain.Profile
	createErr error
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{byID: make(map[string]*domain.Profile)}
}

func (r *stubProfileRepo) Create(_ context.Context, p *domain.Profile) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubProfileRepo) FindByID(_ context.Context, id string) (*domain.Profile, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProfileRepo) List(_ context.Context, role domain.Role, approvedOnly bool) ([]*domain.Profile, error) {
	var out []*domain.Profile
	for _, p := range r.byID {
		if p.Removed {
			continue
		}
		if role != "" && p.Role != role {
			continue
		}
		if approvedOnly && !p.IsApproved {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubProfileRepo) UpdateFields(_ context.Context, id string, fields map[string]any) error {
	p, ok := r.byID[id]
	if !ok {
		return domain.ErrProfileNotFound
	}
	for key, v := range fields {
		s, _ := v.(string)
		switch key {
		case "first_name":
			p.FirstName = s
		case "last_name":
			p.LastName = s
		case "skills":
			p.Skills = s
		case "experience":
			p.Experience = s
		case "portfolio":
			p.Portfolio = s
		case "github_link":
			p.GithubLink = s
		case "phone":
			p.Phone = s
		}
	}
	return nil
}

func (r *stubProfileRepo) SetApproval(_ context.Context, id string, approved bool) error {
	p, ok := r.byID[id]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.IsApproved = approved
	return nil
}

func (r *stubProfileRepo) SoftRemove(_ context.Context, id string) error {
	p, ok := r.byID[id]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.Removed = true
	return nil
}

// ---------------------------------------------------------------------------
// Message and notification repository stubs
// ---------------------------------------------------------------------------

type stubMessageRepo struct {
	msgs []*domain.Message
}

func newStubMessageRepo() *stubMessageRepo {
	return &stubMessageRepo{}
}

func (r *stubMessageRepo) Create(_ context.Context, m *domain.Message) error {
	clone := *m
	r.msgs = append(r.msgs, &clone)
	return nil
}

func (r *stubMessageRepo) ListConversation(_ context.Context, userA, userB string, since time.Time) ([]*domain.Message, error) {
	var out []*domain.Message
	for _, m := range r.msgs {
		pair := (m.SenderID == userA && m.ReceiverID == userB) ||
			(m.SenderID == userB && m.ReceiverID == userA)
		if !pair {
			continue
		}
		if !since.IsZero() && !m.CreatedAt.After(since) {
			continue
		}
		clone := *m
		out = append(out, &clone)
	}
	return out, nil
}

type stubNotificationRepo struct {
	byID map[string]*domain.Notification
}

func newStubNotificationRepo() *stubNotificationRepo {
	return &stubNotificationRepo{byID: make(map[string]*domain.Notification)}
}

func (r *stubNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	clone := *n
	r.byID[n.ID] = &clone
	return nil
}

func (r *stubNotificationRepo) ListByRecipient(_ context.Context, recipientID string) ([]*domain.Notification, error) {
	var out []*domain.Notification
	for _, n := range r.byID {
		if n.RecipientID == recipientID {
			clone := *n
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubNotificationRepo) MarkRead(_ context.Context, id, recipientID string) error {
	n, ok := r.byID[id]
	if !ok || n.RecipientID != recipientID {
		return domain.ErrNotificationNotFound
	}
	n.Read = true
	return nil
}
