package admin

import (
	"time"

	"github.com/google/uuid"
)

// Admin is a back-office administrator account.
type Admin struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never expose in JSON

	LastLoginAt *time.Time `json:"last_login_at" db:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// AdminDTO is the session identity exposed to clients.
type AdminDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *Admin) ToDTO() AdminDTO {
	return AdminDTO{
		ID:        a.ID,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
	}
}

// Redis key builders. The denylist holds revoked token ids until they
// would have expired anyway; invites hold the invited email until the
// token is consumed or its TTL lapses.
func DenylistKey(tokenID string) string {
	return "session:denylist:" + tokenID
}

func InviteKey(token string) string {
	return "invite:" + token
}
