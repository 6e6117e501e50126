package jwt_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kennel-backend/pkg/jwt"
)

func TestGenerateAndValidate(t *testing.T) {
	mgr := jwt.NewManager("test-secret", time.Hour)
	adminID := uuid.New().String()

	token, err := mgr.GenerateAccessToken(adminID, "ana@benitesbulls.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := mgr.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, adminID, claims.AdminID)
	assert.Equal(t, "ana@benitesbulls.com", claims.Email)
	assert.NotEmpty(t, claims.ID, "jti is required for sign-out revocation")
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenIDsAreUnique(t *testing.T) {
	mgr := jwt.NewManager("test-secret", time.Hour)
	adminID := uuid.New().String()

	t1, err := mgr.GenerateAccessToken(adminID, "ana@benitesbulls.com")
	require.NoError(t, err)
	t2, err := mgr.GenerateAccessToken(adminID, "ana@benitesbulls.com")
	require.NoError(t, err)

	c1, err := mgr.ValidateToken(t1)
	require.NoError(t, err)
	c2, err := mgr.ValidateToken(t2)
	require.NoError(t, err)

	assert.NotEqual(t, c1.ID, c2.ID)
}

func TestValidateRejects(t *testing.T) {
	mgr := jwt.NewManager("test-secret", time.Hour)

	t.Run("wrong secret", func(t *testing.T) {
		other := jwt.NewManager("other-secret", time.Hour)
		token, err := other.GenerateAccessToken(uuid.New().String(), "x@y.com")
		require.NoError(t, err)

		_, err = mgr.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		expired := jwt.NewManager("test-secret", -time.Minute)
		token, err := expired.GenerateAccessToken(uuid.New().String(), "x@y.com")
		require.NoError(t, err)

		_, err = mgr.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := mgr.ValidateToken("not.a.jwt")
		assert.Error(t, err)
	})
}

func TestExpiry(t *testing.T) {
	mgr := jwt.NewManager("test-secret", 24*time.Hour)
	assert.Equal(t, 24*time.Hour, mgr.Expiry())
}
