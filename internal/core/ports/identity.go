package ports

import (
	"context"

	"github.com/devlance/marketplace-api/internal/core/domain"
)

// SignUpInput carries everything needed to open an account and its profile.
type SignUpInput struct {
	Email     string
	Password  string
	Username  string
	FirstName string
	LastName  string
	Role      domain.Role
	// Developer-only enrichment fields.
	Skills     string
	Experience string
	Portfolio  string
	GithubLink string
	Phone      string
}

// SignUpResult reports the created principal. ProfileWarning is non-empty
// when the account was created but profile enrichment failed; partial
// success is a valid terminal outcome and must be surfaced, not swallowed.
type SignUpResult struct {
	PrincipalID    string
	ProfileWarning string
}

// Session is an authenticated session issued by the identity provider.
type Session struct {
	Token     string
	Principal domain.Principal
	Profile   *domain.Profile
}

// IdentityService is the identity-provider contract consumed by the core.
type IdentityService interface {
	SignUp(ctx context.Context, input SignUpInput) (*SignUpResult, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
}

// AccountRepository persists credential records for the identity provider.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
}

// ProfileRepository persists user profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
	List(ctx context.Context, role domain.Role, approvedOnly bool) ([]*domain.Profile, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	// SetApproval flips is_approved; Admin only, enforced by the service.
	SetApproval(ctx context.Context, id string, approved bool) error
	// SoftRemove marks the profile removed without deleting the row.
	SoftRemove(ctx context.Context, id string) error
}

// UserService exposes profile reads and the Admin user-management surface.
type UserService interface {
	GetProfile(ctx context.Context, principal domain.Principal) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, principal domain.Principal, fields ProfileUpdateInput) (*domain.Profile, error)
	ListUsers(ctx context.Context, principal domain.Principal, role domain.Role) ([]*domain.Profile, error)
	SetDeveloperApproval(ctx context.Context, principal domain.Principal, userID string, approved bool) error
	RemoveUser(ctx context.Context, principal domain.Principal, userID string) error
}

// ProfileUpdateInput holds the self-editable profile fields. Nil pointers
// leave the stored value untouched; role and approval are never settable here.
type ProfileUpdateInput struct {
	FirstName  *string
	LastName   *string
	Skills     *string
	Experience *string
	Portfolio  *string
	GithubLink *string
	Phone      *string
}
