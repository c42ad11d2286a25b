package domain

import "errors"

// Shared error taxonomy. Every engine operation returns one of these (possibly
// wrapped); the HTTP layer maps them to status codes in a single place.
var (
	ErrUnauthenticated      = errors.New("unauthenticated")
	ErrForbidden            = errors.New("access forbidden")
	ErrValidation           = errors.New("validation failed")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrDuplicateApplication = errors.New("application already exists for this project")
	ErrEmptySubmission      = errors.New("submission link must not be empty")
	ErrConflict             = errors.New("concurrent modification conflict")
	ErrTransient            = errors.New("store temporarily unavailable")

	ErrProfileNotFound      = errors.New("profile not found")
	ErrProjectNotFound      = errors.New("project not found")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrNotificationNotFound = errors.New("notification not found")

	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
