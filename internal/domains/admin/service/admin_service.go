package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"kennel-backend/internal/domains/admin"
	"kennel-backend/internal/infrastructure/email"
	"kennel-backend/pkg/cache"
	"kennel-backend/pkg/jwt"
	"kennel-backend/pkg/logger"
)

const (
	// bcryptCost follows OWASP guidance for interactive logins.
	bcryptCost = 12

	// inviteTTL is how long a password-setup link stays valid.
	inviteTTL = 72 * time.Hour
)

type adminService struct {
	repo      admin.Repository
	sessions  cache.Cache
	jwtMgr    *jwt.Manager
	mailer    email.EmailService
	publicURL string
}

func NewAdminService(
	repo admin.Repository,
	sessions cache.Cache,
	jwtMgr *jwt.Manager,
	mailer email.EmailService,
	publicURL string,
) admin.Service {
	return &adminService{
		repo:      repo,
		sessions:  sessions,
		jwtMgr:    jwtMgr,
		mailer:    mailer,
		publicURL: publicURL,
	}
}

// ========== SESSION ==========

func (s *adminService) SignIn(ctx context.Context, req admin.LoginRequest) (*admin.LoginResponse, error) {
	// STEP 1: Validate input
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// STEP 2: Look up the account. Unknown email and wrong password
	// collapse into the same error so callers cannot probe for accounts.
	acct, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, admin.ErrAdminNotFound) {
			return nil, admin.ErrInvalidCredentials
		}
		return nil, err
	}

	// STEP 3: Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(req.Password)); err != nil {
		return nil, admin.ErrInvalidCredentials
	}

	// STEP 4: Issue session token
	token, err := s.jwtMgr.GenerateAccessToken(acct.ID.String(), acct.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	// STEP 5: Record last login (best-effort, off the request path)
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.UpdateLastLogin(bgCtx, acct.ID); err != nil {
			logger.Warn("Failed to record last login", map[string]interface{}{
				"admin_id": acct.ID.String(),
				"error":    err.Error(),
			})
		}
	}()

	return &admin.LoginResponse{
		AccessToken: token,
		ExpiresAt:   time.Now().Add(s.jwtMgr.Expiry()),
		Admin:       acct.ToDTO(),
	}, nil
}

func (s *adminService) SignOut(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Token already expired, nothing to revoke.
		return nil
	}

	if err := s.sessions.Set(ctx, admin.DenylistKey(tokenID), "revoked", ttl); err != nil {
		return fmt.Errorf("denylist token: %w", err)
	}
	return nil
}

func (s *adminService) Me(ctx context.Context, adminID uuid.UUID) (*admin.AdminDTO, error) {
	acct, err := s.repo.FindByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	dto := acct.ToDTO()
	return &dto, nil
}

// ========== INVITES ==========

func (s *adminService) InviteUser(ctx context.Context, req admin.InviteRequest) error {
	// STEP 1: Validate input
	if err := req.Validate(); err != nil {
		return err
	}

	// STEP 2: Refuse duplicate accounts up front
	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("check existing admin: %w", err)
	}
	if exists {
		return admin.ErrEmailAlreadyExists
	}

	// STEP 3: Mint a single-use token and park the invited email in
	// Redis until the token is consumed or the TTL lapses.
	token, err := generateSecureToken(32)
	if err != nil {
		return fmt.Errorf("generate invite token: %w", err)
	}
	if err := s.sessions.Set(ctx, admin.InviteKey(token), req.Email, inviteTTL); err != nil {
		return fmt.Errorf("store invite: %w", err)
	}

	// STEP 4: Send the password-setup link
	data := email.InviteEmailData{
		Email:      req.Email,
		InviteLink: fmt.Sprintf("%s/aceitar-convite?token=%s", s.publicURL, token),
		ExpiresIn:  "72 horas",
	}
	if err := s.mailer.SendInviteEmail(ctx, data); err != nil {
		// Drop the orphaned token so a re-invite mints a fresh one.
		if delErr := s.sessions.Delete(ctx, admin.InviteKey(token)); delErr != nil {
			logger.Warn("Failed to clean up invite token", map[string]interface{}{
				"error": delErr.Error(),
			})
		}
		return fmt.Errorf("send invite email: %w", err)
	}

	logger.Info("Admin invite sent", map[string]interface{}{
		"email": req.Email,
	})
	return nil
}

func (s *adminService) AcceptInvite(ctx context.Context, req admin.AcceptInviteRequest) (*admin.AdminDTO, error) {
	// STEP 1: Validate input
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// STEP 2: Resolve the invite
	var invitedEmail string
	found, err := s.sessions.Get(ctx, admin.InviteKey(req.Token), &invitedEmail)
	if err != nil {
		return nil, fmt.Errorf("look up invite: %w", err)
	}
	if !found {
		return nil, admin.ErrInvalidInvite
	}

	// STEP 3: Hash the chosen password and create the account
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	acct := &admin.Admin{
		Email:        invitedEmail,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	id, err := s.repo.Create(ctx, acct)
	if err != nil {
		return nil, err
	}
	acct.ID = id

	// STEP 4: Consume the token. The account already exists, so a
	// failure here only means the link dies at its TTL instead of now.
	if err := s.sessions.Delete(ctx, admin.InviteKey(req.Token)); err != nil {
		logger.Warn("Failed to consume invite token", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Admin account created from invite", map[string]interface{}{
		"admin_id": id.String(),
		"email":    invitedEmail,
	})

	dto := acct.ToDTO()
	return &dto, nil
}

// generateSecureToken returns n random bytes hex-encoded.
func generateSecureToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
