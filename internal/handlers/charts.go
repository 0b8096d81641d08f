package handlers

import (
	"net/http"
	"time"

	"risk-assessor/internal/database"
	"risk-assessor/internal/metrics"
	"risk-assessor/internal/report"

	"github.com/gin-gonic/gin"
)

func ShowCharts(c *gin.Context) {
	if _, err := parseRiskFilter(c, time.Now().UTC()); err != nil {
		badFilter(c)
		return
	}
	render(c, http.StatusOK, "charts.html", gin.H{"title": "Charts"})
}

// ChartData returns per-band counts as chart series JSON.
func ChartData(c *gin.Context) {
	f, err := parseRiskFilter(c, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter"})
		return
	}

	counts, err := database.CountByBand(c.Request.Context(), f)
	if err != nil {
		serverError(c, "failed to count risks", err)
		return
	}

	metrics.Default.Exports.WithLabelValues("chart").Inc()
	c.JSON(http.StatusOK, report.NewSummary(counts).Series())
}
