package admin

import "errors"

// Repository-level errors
var (
	ErrAdminNotFound      = errors.New("admin not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Service-level errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInvite      = errors.New("invalid or expired invite token")
)
