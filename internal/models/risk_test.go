package models

import (
	"testing"
	"time"

	"risk-assessor/internal/risk"

	"github.com/stretchr/testify/assert"
)

func TestNewRisk(t *testing.T) {
	a := risk.Evaluate(risk.Ratings{Likelihood: 5, Impact: 1, Severity: 1, Frequency: 1})
	at := time.Date(2025, 3, 1, 15, 27, 0, 0, time.UTC)

	r := NewRisk(a, "server room door left open", nil, at)

	assert.Equal(t, 5, r.Likelihood)
	assert.Equal(t, 2.6, r.Score)
	assert.Equal(t, risk.BandMedium, r.Level)
	assert.Equal(t, "yellow", r.Color)
	assert.Equal(t, a.Description, r.LevelDescription)
	assert.Equal(t, a.Mitigation, r.Mitigation)
	assert.Equal(t, at, r.SubmittedAt)
	assert.Equal(t, "", r.Attachment())

	name := "a.pdf"
	r.FilePath = &name
	assert.Equal(t, "a.pdf", r.Attachment())
	assert.Equal(t, "risk", r.TableName())
}
