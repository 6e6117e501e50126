package admin

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the data access contract for admin accounts.
type Repository interface {
	// Create inserts a new account.
	// Returns ErrEmailAlreadyExists on a duplicate email.
	Create(ctx context.Context, a *Admin) (uuid.UUID, error)

	// FindByID returns ErrAdminNotFound when no account exists.
	FindByID(ctx context.Context, id uuid.UUID) (*Admin, error)

	// FindByEmail is the login lookup.
	// Returns ErrAdminNotFound when no account exists.
	FindByEmail(ctx context.Context, email string) (*Admin, error)

	// ExistsByEmail checks for a duplicate before sending an invite.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// UpdateLastLogin stamps last_login_at.
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}
