package handlers

import (
	"log/slog"
	"net/http"

	"risk-assessor/internal/logging"
	"risk-assessor/internal/middleware"

	"github.com/gin-gonic/gin"
)

// render wraps c.HTML and passes the current user to every template.
func render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if u, ok := middleware.CurrentUser(c); ok {
		data["CurrentUser"] = u
		data["CurrentUsername"] = u.Username
		data["CurrentUserRole"] = string(u.Role)
	}

	c.HTML(status, tmpl, data)
}

// serverError logs err and answers with a plain 500.
func serverError(c *gin.Context, msg string, err error) {
	slog.ErrorContext(c.Request.Context(), msg, logging.ErrAttrs(err)...)
	c.String(http.StatusInternalServerError, "internal server error")
}

// currentUserID returns 0 for anonymous requests.
func currentUserID(c *gin.Context) uint {
	if u, ok := middleware.CurrentUser(c); ok {
		return u.ID
	}
	return 0
}
