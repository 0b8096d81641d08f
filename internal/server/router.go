package server

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"risk-assessor/internal/config"
	"risk-assessor/internal/handlers"
	"risk-assessor/internal/middleware"
	"risk-assessor/internal/models"
	"risk-assessor/internal/telemetry"
	"risk-assessor/web"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const (
	sessionName   = "risk_session"
	sessionMaxAge = 8 * 60 * 60
)

func maskEmail(email string) string {
	runes := []rune(email)
	atIdx := -1
	for i, r := range runes {
		if r == '@' {
			atIdx = i
			break
		}
	}
	if atIdx <= 0 {
		return "***"
	}
	prefix := string(runes[:atIdx])
	domain := string(runes[atIdx:])
	if len(prefix) <= 2 {
		return prefix + "***" + domain
	}
	return string(runes[0:2]) + "***" + domain
}

func formatScore(score float64) string {
	return fmt.Sprintf("%.2f", score)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04 UTC")
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"eq":          func(a, b interface{}) bool { return a == b },
		"maskEmail":   maskEmail,
		"formatScore": formatScore,
		"formatTime":  formatTime,
	}
}

func loadTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs()).ParseFS(web.Templates, "templates/*.html")
}

func NewRouter(cfg *config.Config) (*gin.Engine, error) {
	r := gin.Default()
	r.Use(otelgin.Middleware(telemetry.ServiceName))

	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		return nil, err
	}
	r.StaticFS("/static", http.FS(static))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	r.Use(middleware.InjectUser())

	// assessment form is open to everyone
	r.GET("/", handlers.ShowAssessmentForm)
	r.POST("/", handlers.SubmitAssessment(handlers.IntakeOptions{
		UploadDir:      cfg.UploadDir,
		MaxUploadBytes: cfg.MaxUploadBytes(),
	}))

	r.GET("/register", handlers.ShowRegister)
	r.POST("/register", handlers.Register)
	r.GET("/login", handlers.ShowLogin)
	r.POST("/login", handlers.Login)
	r.GET("/logout", handlers.Logout)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth())

	auth.GET("/risks", handlers.ListRisks)
	auth.GET("/risks/:id", handlers.ShowRiskDetail)

	auth.GET("/charts", handlers.ShowCharts)
	auth.GET("/charts/data", handlers.ChartData)
	auth.GET("/export/csv", handlers.ExportCSV)
	auth.GET("/report/pdf", handlers.ExportPDF)

	auth.GET("/uploads/:name", handlers.DownloadAttachment(cfg.UploadDir))

	auth.GET("/audit",
		middleware.RequireRole(models.RoleAdmin),
		handlers.ListAuditLogs,
	)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r, nil
}
