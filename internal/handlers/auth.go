package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"risk-assessor/internal/database"
	"risk-assessor/internal/middleware"
	"risk-assessor/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func ShowRegister(c *gin.Context) {
	render(c, http.StatusOK, "register.html", gin.H{"error": "", "roles": models.SelfServiceRoles()})
}

type registerForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
	Role     string `form:"role"`
}

func Register(c *gin.Context) {
	fail := func(status int, msg string) {
		render(c, status, "register.html", gin.H{"error": msg, "roles": models.SelfServiceRoles()})
	}

	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		fail(http.StatusBadRequest, "Invalid form data")
		return
	}

	form.Username = strings.TrimSpace(form.Username)
	if len(form.Username) < 3 || len(form.Password) < 6 {
		fail(http.StatusBadRequest, "Username or password too short")
		return
	}

	// only analyst and viewer accounts can be self-registered
	role := models.UserRole(form.Role)
	switch role {
	case models.RoleAnalyst, models.RoleViewer:
	default:
		fail(http.StatusBadRequest, "Invalid role")
		return
	}

	var count int64
	if err := database.DB.Model(&models.User{}).Where("username = ?", form.Username).Count(&count).Error; err != nil {
		serverError(c, "failed to look up user", err)
		return
	}
	if count > 0 {
		fail(http.StatusBadRequest, "User already exists")
		return
	}

	user, err := database.CreateUser(form.Username, form.Password, role)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to register user", "username", form.Username, "error", err)
		fail(http.StatusInternalServerError, "Could not save user")
		return
	}
	slog.InfoContext(c.Request.Context(), "registered user", "username", user.Username, "role", user.Role)

	c.Redirect(http.StatusFound, "/login")
}

func ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{"error": ""})
}

type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "login.html", gin.H{"error": "Invalid form data"})
		return
	}

	user, ok := database.Authenticate(strings.TrimSpace(form.Username), form.Password)
	if !ok {
		slog.InfoContext(c.Request.Context(), "failed login", "username", form.Username)
		render(c, http.StatusBadRequest, "login.html", gin.H{"error": "Invalid username or password"})
		return
	}

	sess := sessions.Default(c)
	sess.Set(middleware.SessionUserID, user.ID)
	sess.Set(middleware.SessionRole, string(user.Role))
	if err := sess.Save(); err != nil {
		serverError(c, "failed to save session", err)
		return
	}

	c.Redirect(http.StatusFound, "/risks")
}

func Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	c.Redirect(http.StatusFound, "/login")
}
