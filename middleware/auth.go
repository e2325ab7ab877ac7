package middleware

import (
	"errors"
	"net/http"

	"github.com/abotl/abotl-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const principalIDKey = "principal_id"

// RequireStudent authenticates the session cookie and requires a student claim.
func RequireStudent(tokens *service.TokenService) gin.HandlerFunc {
	return requirePrincipal(tokens, service.KindStudent)
}

// RequireTeacher authenticates the session cookie and requires a teacher claim.
func RequireTeacher(tokens *service.TokenService) gin.HandlerFunc {
	return requirePrincipal(tokens, service.KindTeacher)
}

// requirePrincipal resolves the token cookie into a principal id of the wanted
// kind. Missing cookie, broken token and wrong-kind claim are distinct
// outcomes behind the same 401 status.
func requirePrincipal(tokens *service.TokenService, kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("token")
		if err != nil || token == "" {
			unauthorized(c, "Unauthorized: No token provided")
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			if errors.Is(err, service.ErrTokenExpired) {
				unauthorized(c, "Unauthorized: Invalid or expired token")
				return
			}
			unauthorized(c, "Unauthorized: Invalid token")
			return
		}

		if claims.Kind != kind {
			unauthorized(c, "Unauthorized: Invalid token")
			return
		}
		id, err := claims.PrincipalID()
		if err != nil {
			unauthorized(c, "Unauthorized: Invalid token")
			return
		}

		c.Set(principalIDKey, id)
		c.Next()
	}
}

// PrincipalID returns the authenticated principal's id set by the middleware.
func PrincipalID(c *gin.Context) uuid.UUID {
	v, ok := c.Get(principalIDKey)
	if !ok {
		return uuid.Nil
	}
	id, _ := v.(uuid.UUID)
	return id
}

func unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
	c.Abort()
}
