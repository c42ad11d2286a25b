package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/devlance/marketplace-api/internal/core/domain"
	"github.com/devlance/marketplace-api/internal/core/ports"
)

// AuthService implements the identity-provider contract: sign-up, sign-in and
// session token issuance.
type AuthService struct {
	accounts  ports.AccountRepository
	profiles  ports.ProfileRepository
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	accounts ports.AccountRepository,
	profiles ports.ProfileRepository,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		accounts:  accounts,
		profiles:  profiles,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// SignUp opens an account and its profile. Admin accounts cannot be
// self-registered. When the account is created but the profile write fails,
// the result carries a warning instead of rolling back: partial success is a
// valid terminal outcome and must be reported to the caller.
func (s *AuthService) SignUp(ctx context.Context, input ports.SignUpInput) (*ports.SignUpResult, error) {
	if input.Email == "" || input.Password == "" || input.Username == "" {
		return nil, fmt.Errorf("%w: email, password and username are required", domain.ErrValidation)
	}
	if input.Role != domain.RoleClient && input.Role != domain.RoleDeveloper {
		return nil, fmt.Errorf("%w: role must be Client or Developer", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:           uuid.NewString(),
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         input.Role,
		CreatedAt:    now,
	}

	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	result := &ports.SignUpResult{PrincipalID: created.ID}

	profile := &domain.Profile{
		ID:        created.ID,
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      input.Role,
		// Developers start unapproved and must be vetted by an admin before
		// they can apply to projects.
		IsApproved: input.Role != domain.RoleDeveloper,
		Skills:     input.Skills,
		Experience: input.Experience,
		Portfolio:  input.Portfolio,
		GithubLink: input.GithubLink,
		Phone:      input.Phone,
		CreatedAt:  now,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		s.log.Warn().Err(err).Str("principal_id", created.ID).Msg("account created but profile enrichment failed")
		result.ProfileWarning = "account created, but the profile could not be saved; contact support"
	}

	s.log.Info().Str("principal_id", created.ID).Str("role", string(input.Role)).Msg("user registered")
	return result, nil
}

// SignIn authenticates the credentials and issues a signed session token.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*ports.Session, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	profile, err := s.profiles.FindByID(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	if profile.Removed {
		return nil, domain.ErrForbidden
	}

	principal := domain.Principal{
		ID:       profile.ID,
		Role:     profile.Role,
		Approved: profile.IsApproved,
	}
	token, err := s.issueToken(principal)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("principal_id", principal.ID).Str("role", string(principal.Role)).Msg("user signed in")
	return &ports.Session{Token: token, Principal: principal, Profile: profile}, nil
}

func (s *AuthService) issueToken(p domain.Principal) (string, error) {
	claims := jwt.MapClaims{
		"sub":      p.ID,
		"role":     string(p.Role),
		"approved": p.Approved,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
