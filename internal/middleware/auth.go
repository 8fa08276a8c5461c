package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ItsBakerX/trinkprotokolle-backend/internal/service"
)

// AccessTokenCookie is the session cookie carrying the JWT.
const AccessTokenCookie = "access_token"

// Context keys under which the authenticated caller is stored.
const (
	ctxPflegerID = "pfleger_id"
	ctxRole      = "role"
)

// RequireAuth is the strict token policy: requests without a valid session
// token are rejected with 401 before any handler runs.
func RequireAuth(authService *service.AuthService) gin.HandlerFunc {
	if authService == nil {
		panic("AuthService cannot be nil for RequireAuth middleware")
	}
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(AccessTokenCookie)
		if err != nil || tokenStr == "" {
			logrus.Debug("RequireAuth: Missing session cookie")
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			c.Abort()
			return
		}

		login, err := authService.VerifyToken(tokenStr)
		if err != nil {
			logrus.WithError(err).Warn("RequireAuth: Invalid token")
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(ctxPflegerID, login.ID)
		c.Set(ctxRole, login.Role)
		c.Next()
	}
}

// OptionalAuth is the lenient token policy: requests without a token pass
// through as guests, but a present-and-invalid token is still rejected.
func OptionalAuth(authService *service.AuthService) gin.HandlerFunc {
	if authService == nil {
		panic("AuthService cannot be nil for OptionalAuth middleware")
	}
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(AccessTokenCookie)
		if err != nil || tokenStr == "" {
			c.Next()
			return
		}

		login, err := authService.VerifyToken(tokenStr)
		if err != nil {
			logrus.WithError(err).Warn("OptionalAuth: Invalid token")
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(ctxPflegerID, login.ID)
		c.Set(ctxRole, login.Role)
		c.Next()
	}
}

// CallerFromContext extracts the authenticated caller from the gin context.
// Returns a guest caller when no identity was attached.
func CallerFromContext(c *gin.Context) service.Caller {
	caller := service.Caller{}
	if id, ok := c.Get(ctxPflegerID); ok {
		caller.ID, _ = id.(string)
	}
	if role, ok := c.Get(ctxRole); ok {
		caller.Role, _ = role.(string)
	}
	return caller
}
