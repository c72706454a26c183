package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tourship/pkg/utils"
)

// Context keys set by JWTAuthMiddleware for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// JWTAuthMiddleware validates the bearer token and stashes the caller's
// id and role on the gin context. The token may also arrive in the
// "token" cookie for browser clients.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""

		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else if cookie, err := c.Cookie("token"); err == nil {
			tokenString = cookie
		}

		if tokenString == "" {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// RequireRole gates a route group to the given roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxRole)

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		utils.RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
		c.Abort()
	}
}

// VerificationChecker reports whether the account behind id currently has
// an approved verification. Implemented by the account service.
type VerificationChecker interface {
	IsVerified(userID string) bool
}

// RequireVerified gates guide/organiser feature routes to accounts whose
// verification has been approved.
func RequireVerified(checker VerificationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(CtxUserID)
		if userID == "" || !checker.IsVerified(userID) {
			utils.RespondError(c, http.StatusForbidden, "Forbidden: account is not verified")
			c.Abort()
			return
		}
		c.Next()
	}
}
