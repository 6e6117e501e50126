package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kennel-backend/internal/domains/admin"
	"kennel-backend/internal/shared/response"
	"kennel-backend/pkg/cache"
	"kennel-backend/pkg/jwt"
	"kennel-backend/pkg/logger"
)

// AuthMiddleware is the route guard for the admin surface. Requests
// without a valid, non-revoked session token are rejected with 401 and
// never reach the protected handler.
func AuthMiddleware(jwtManager *jwt.Manager, sessions cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Read the Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Sessão inválida")
			c.Abort()
			return
		}

		// 2. Extract the token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "Sessão inválida")
			c.Abort()
			return
		}
		token := parts[1]

		// 3. Verify and parse the JWT
		claims, err := jwtManager.ValidateToken(token)
		if err != nil {
			response.Unauthorized(c, "Sessão inválida")
			c.Abort()
			return
		}

		// 4. Reject tokens revoked by sign-out.
		// A cache failure does not lock admins out; the token itself
		// still expires on its own.
		if sessions != nil {
			revoked, err := sessions.Exists(c.Request.Context(), admin.DenylistKey(claims.ID))
			if err != nil {
				logger.Warn("denylist check failed", map[string]interface{}{
					"error": err.Error(),
				})
			} else if revoked {
				response.Unauthorized(c, "Sessão expirada")
				c.Abort()
				return
			}
		}

		// 5. Convert the subject to uuid.UUID
		adminID, err := uuid.Parse(claims.AdminID)
		if err != nil {
			response.Unauthorized(c, "Sessão inválida")
			c.Abort()
			return
		}

		// 6. Publish the session to downstream handlers
		c.Set("adminID", adminID)
		c.Set("adminEmail", claims.Email)
		c.Set("tokenID", claims.ID)
		c.Set("tokenExpiresAt", claims.ExpiresAt.Time)

		c.Next()
	}
}
