package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"risk-assessor/internal/database"
	"risk-assessor/internal/report"
	"risk-assessor/internal/risk"

	"github.com/gin-gonic/gin"
	"github.com/m-mizutani/goerr/v2"
)

const (
	maxFilterDays = 3650
	listPageSize  = 500
)

var errInvalidFilter = errors.New("invalid filter")

// parseRiskFilter reads the optional "band" and "days" query parameters.
func parseRiskFilter(c *gin.Context, now time.Time) (database.RiskFilter, error) {
	var f database.RiskFilter

	if raw := strings.TrimSpace(c.Query("band")); raw != "" {
		b, err := risk.ParseBand(raw)
		if err != nil {
			return f, goerr.Wrap(errInvalidFilter, "bad band", goerr.V("band", raw))
		}
		f.Band = b
	}

	if raw := strings.TrimSpace(c.Query("days")); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 1 || days > maxFilterDays {
			return f, goerr.Wrap(errInvalidFilter, "bad days", goerr.V("days", raw))
		}
		f.Since = now.Add(-time.Duration(days) * 24 * time.Hour)
	}

	return f, nil
}

func badFilter(c *gin.Context) {
	c.String(http.StatusBadRequest, "invalid filter: band must be Low, Medium or High; days must be between 1 and %d", maxFilterDays)
}

func ListRisks(c *gin.Context) {
	ctx := c.Request.Context()

	f, err := parseRiskFilter(c, time.Now().UTC())
	if err != nil {
		badFilter(c)
		return
	}

	counts, err := database.CountByBand(ctx, f)
	if err != nil {
		serverError(c, "failed to count risks", err)
		return
	}

	f.Limit = listPageSize
	risks, err := database.FindRisks(ctx, f)
	if err != nil {
		serverError(c, "failed to list risks", err)
		return
	}

	render(c, http.StatusOK, "risks_list.html", gin.H{
		"title":      "Assessments",
		"risks":      risks,
		"summary":    report.NewSummary(counts),
		"bands":      risk.Bands(),
		"filterBand": string(f.Band),
		"filterDays": c.Query("days"),
	})
}

func ShowRiskDetail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.String(http.StatusBadRequest, "invalid id")
		return
	}

	r, err := database.GetRisk(c.Request.Context(), uint(id))
	if errors.Is(err, database.ErrRiskNotFound) {
		c.String(http.StatusNotFound, "risk not found")
		return
	}
	if err != nil {
		serverError(c, "failed to load risk", err)
		return
	}

	render(c, http.StatusOK, "risk_detail.html", gin.H{
		"title": "Assessment",
		"risk":  r,
	})
}
