package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"risk-assessor/internal/database"
	"risk-assessor/internal/metrics"
	"risk-assessor/internal/models"
	"risk-assessor/internal/report"

	"github.com/gin-gonic/gin"
)

func ExportCSV(c *gin.Context) {
	now := time.Now().UTC()
	f, err := parseRiskFilter(c, now)
	if err != nil {
		badFilter(c)
		return
	}

	risks, err := database.FindRisks(c.Request.Context(), f)
	if err != nil {
		serverError(c, "failed to load risks for csv export", err)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, risks); err != nil {
		serverError(c, "failed to write csv export", err)
		return
	}

	recordExport(c, "csv", len(risks))
	attachment(c, fmt.Sprintf("risks-%s.csv", now.Format("20060102-150405")))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func ExportPDF(c *gin.Context) {
	now := time.Now().UTC()
	f, err := parseRiskFilter(c, now)
	if err != nil {
		badFilter(c)
		return
	}

	risks, err := database.FindRisks(c.Request.Context(), f)
	if err != nil {
		serverError(c, "failed to load risks for pdf report", err)
		return
	}

	var buf bytes.Buffer
	if err := report.WritePDF(&buf, risks, now); err != nil {
		serverError(c, "failed to render pdf report", err)
		return
	}

	recordExport(c, "pdf", len(risks))
	attachment(c, fmt.Sprintf("risk-report-%s.pdf", now.Format("20060102-150405")))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func attachment(c *gin.Context, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}

func recordExport(c *gin.Context, format string, rows int) {
	metrics.Default.Exports.WithLabelValues(format).Inc()
	slog.InfoContext(c.Request.Context(), "exported risks", "format", format, "rows", rows)
	if uid := currentUserID(c); uid != 0 {
		database.CreateAuditLog(uid, models.AuditEntityExport, 0, format, fmt.Sprintf("%d rows", rows))
	}
}
