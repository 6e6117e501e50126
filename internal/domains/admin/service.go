package admin

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service defines the auth gateway contract: sign-in, sign-out, invite
// and the one-shot "get current session" lookup.
type Service interface {
	// SignIn verifies credentials and issues a session token. A failed
	// attempt mutates nothing.
	SignIn(ctx context.Context, req LoginRequest) (*LoginResponse, error)

	// SignOut revokes the presented token until its natural expiry.
	SignOut(ctx context.Context, tokenID string, expiresAt time.Time) error

	// InviteUser emails a password-setup link to a new administrator.
	// No relational record of the pending invite is kept.
	InviteUser(ctx context.Context, req InviteRequest) error

	// AcceptInvite consumes the invite token and creates the account.
	AcceptInvite(ctx context.Context, req AcceptInviteRequest) (*AdminDTO, error)

	// Me resolves the current session identity.
	Me(ctx context.Context, adminID uuid.UUID) (*AdminDTO, error)
}
