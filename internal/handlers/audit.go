package handlers

import (
	"net/http"

	"risk-assessor/internal/database"

	"github.com/gin-gonic/gin"
)

const auditPageSize = 200

// ListAuditLogs shows the latest audit entries. The route is admin-only.
func ListAuditLogs(c *gin.Context) {
	logs, err := database.RecentAuditLogs(auditPageSize)
	if err != nil {
		serverError(c, "failed to load audit log", err)
		return
	}

	render(c, http.StatusOK, "audit_list.html", gin.H{
		"title": "Audit log",
		"logs":  logs,
	})
}
