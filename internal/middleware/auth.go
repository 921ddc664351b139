package middleware

import (
	"errors"
	"net/http"
	"strings"

	"creative-evaluator-backend/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	EmailKey     = "email"
	SessionIDKey = "session_id"
	sessionKey   = "session"
)

// AuthMiddleware requires a Bearer session token issued by OTP
// verification and attaches the session to the gin and request contexts.
func AuthMiddleware(sessions *auth.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "empty token"})
			c.Abort()
			return
		}

		session, err := sessions.Parse(tokenString)
		if err != nil {
			message := "session is invalid, sign in again"
			if errors.Is(err, jwt.ErrTokenExpired) {
				message = "session has expired, sign in again"
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token", "message": message})
			c.Abort()
			return
		}

		c.Set(EmailKey, session.Email)
		c.Set(SessionIDKey, session.ID)
		c.Set(sessionKey, session)
		c.Request = c.Request.WithContext(auth.WithSession(c.Request.Context(), session))
		c.Next()
	}
}

// GetSession returns the session set by AuthMiddleware.
func GetSession(c *gin.Context) (*auth.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*auth.Session)
	return s, ok
}
