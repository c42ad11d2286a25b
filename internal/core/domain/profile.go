package domain

import "time"

// Role is the closed set of marketplace roles. Authorization gates switch on
// it exhaustively so an unknown role can never slip past a check.
type Role string

const (
	RoleClient    Role = "Client"
	RoleDeveloper Role = "Developer"
	RoleAdmin     Role = "Admin"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleDeveloper, RoleAdmin:
		return true
	}
	return false
}

// Principal is the resolved identity threaded explicitly into every engine
// call. It is a value, never ambient state, so engines stay testable without
// a simulated session.
type Principal struct {
	ID       string
	Role     Role
	Approved bool // meaningful only for RoleDeveloper
}

// Profile is the user-facing record kept alongside the auth account.
// Role is immutable after creation; only an Admin may flip IsApproved.
type Profile struct {
	ID         string    `json:"id" bson:"_id"`
	Username   string    `json:"username" bson:"username"`
	Email      string    `json:"email" bson:"email"`
	FirstName  string    `json:"first_name" bson:"first_name"`
	LastName   string    `json:"last_name" bson:"last_name"`
	Role       Role      `json:"role" bson:"role"`
	IsApproved bool      `json:"is_approved" bson:"is_approved"`
	Skills     string    `json:"skills,omitempty" bson:"skills,omitempty"`
	Experience string    `json:"experience,omitempty" bson:"experience,omitempty"`
	Portfolio  string    `json:"portfolio,omitempty" bson:"portfolio,omitempty"`
	GithubLink string    `json:"github_link,omitempty" bson:"github_link,omitempty"`
	Phone      string    `json:"phone,omitempty" bson:"phone,omitempty"`
	// Removed marks a soft-deleted profile. Profiles referenced by projects or
	// tasks are never hard-deleted.
	Removed   bool      `json:"-" bson:"removed"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Account is the credential record owned by the identity provider.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
