package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devlance/marketplace-api/internal/core/domain"
	"github.com/devlance/marketplace-api/internal/core/ports"
)

// AuthHandler exposes the identity-provider endpoints.
type AuthHandler struct {
	identity ports.IdentityService
}

func NewAuthHandler(identity ports.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

type registerRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Username  string `json:"username" validate:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role" validate:"required,oneof=Client Developer"`

	Skills     string `json:"skills,omitempty"`
	Experience string `json:"experience,omitempty"`
	Portfolio  string `json:"portfolio,omitempty"`
	GithubLink string `json:"github_link,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

type registerResponse struct {
	PrincipalID string `json:"principal_id"`
	// Warning surfaces a partial success: the account exists but a follow-up
	// write (profile enrichment) failed.
	Warning string `json:"warning,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token   string          `json:"token"`
	Profile *domain.Profile `json:"profile"`
}

// Register creates a new account and profile.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.identity.SignUp(c.Request().Context(), ports.SignUpInput{
		Email:      req.Email,
		Password:   req.Password,
		Username:   req.Username,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Role:       domain.Role(req.Role),
		Skills:     req.Skills,
		Experience: req.Experience,
		Portfolio:  req.Portfolio,
		GithubLink: req.GithubLink,
		Phone:      req.Phone,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, registerResponse{
		PrincipalID: result.PrincipalID,
		Warning:     result.ProfileWarning,
	})
}

// Login authenticates credentials and returns a session token.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.identity.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{Token: session.Token, Profile: session.Profile})
}
