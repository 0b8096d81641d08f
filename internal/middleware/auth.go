package middleware

import (
	"net/http"

	"risk-assessor/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	SessionUserID = "user_id"
	SessionRole   = "role"
)

// wantsJSON reports whether the client asked for JSON over HTML.
func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

func unauthorized(c *gin.Context) {
	// drop a session whose user no longer exists
	sess := sessions.Default(c)
	if sess.Get(SessionUserID) != nil {
		sess.Clear()
		_ = sess.Save()
	}

	if wantsJSON(c) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}

// RequireAuth lets the request through only when InjectUser loaded an
// existing user. Browsers are sent to /login, JSON clients get a 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			unauthorized(c)
			return
		}
		c.Next()
	}
}

// RequireRole checks the role stored on the user record, not the session copy.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := map[models.UserRole]struct{}{}
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			unauthorized(c)
			return
		}

		if _, ok := roleSet[user.Role]; !ok {
			if wantsJSON(c) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
				return
			}
			c.String(http.StatusForbidden, "access denied")
			c.Abort()
			return
		}
		c.Next()
	}
}
