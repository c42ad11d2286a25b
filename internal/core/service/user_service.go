package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/devlance/marketplace-api/internal/core/domain"
	"github.com/devlance/marketplace-api/internal/core/ports"
)

// UserService serves profile reads/updates and the admin user-management
// surface (developer approval, soft removal).
type UserService struct {
	profiles ports.ProfileRepository
	log      zerolog.Logger
}

func NewUserService(profiles ports.ProfileRepository, log zerolog.Logger) *UserService {
	return &UserService{profiles: profiles, log: log}
}

func (s *UserService) GetProfile(ctx context.Context, principal domain.Principal) (*domain.Profile, error) {
	return s.profiles.FindByID(ctx, principal.ID)
}

// UpdateProfile applies the self-editable descriptive fields. Role and
// approval are never settable through this path.
func (s *UserService) UpdateProfile(ctx context.Context, principal domain.Principal, input ports.ProfileUpdateInput) (*domain.Profile, error) {
	fields := map[string]any{}
	set := func(key string, v *string) {
		if v != nil {
			fields[key] = *v
		}
	}
	set("first_name", input.FirstName)
	set("last_name", input.LastName)
	set("skills", input.Skills)
	set("experience", input.Experience)
	set("portfolio", input.Portfolio)
	set("github_link", input.GithubLink)
	set("phone", input.Phone)

	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", domain.ErrValidation)
	}
	if err := s.profiles.UpdateFields(ctx, principal.ID, fields); err != nil {
		return nil, err
	}
	return s.profiles.FindByID(ctx, principal.ID)
}

// ListUsers returns profiles, optionally filtered by role. Admin only.
func (s *UserService) ListUsers(ctx context.Context, principal domain.Principal, role domain.Role) ([]*domain.Profile, error) {
	if principal.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if role != "" && !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}
	return s.profiles.List(ctx, role, false)
}

// SetDeveloperApproval flips is_approved on a developer profile. Admin only;
// the flag is meaningless for other roles and may not be changed for them.
func (s *UserService) SetDeveloperApproval(ctx context.Context, principal domain.Principal, userID string, approved bool) error {
	if principal.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if profile.Role != domain.RoleDeveloper {
		return fmt.Errorf("%w: approval applies to developers only", domain.ErrValidation)
	}
	if err := s.profiles.SetApproval(ctx, userID, approved); err != nil {
		return err
	}
	s.log.Info().Str("user_id", userID).Bool("approved", approved).Msg("developer approval updated")
	return nil
}

// RemoveUser soft-removes a profile. Admin only. The row stays behind any
// projects, tasks, or ledger entries that reference it.
func (s *UserService) RemoveUser(ctx context.Context, principal domain.Principal, userID string) error {
	if principal.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if userID == principal.ID {
		return fmt.Errorf("%w: admins cannot remove themselves", domain.ErrValidation)
	}
	if err := s.profiles.SoftRemove(ctx, userID); err != nil {
		return err
	}
	s.log.Info().Str("user_id", userID).Msg("user soft-removed")
	return nil
}
