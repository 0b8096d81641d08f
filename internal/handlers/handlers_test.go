package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"risk-assessor/internal/risk"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(target string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c
}

func TestParseRiskFilter(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		query   string
		band    risk.Band
		since   time.Time
		wantErr bool
	}{
		{name: "no filter", query: ""},
		{name: "band", query: "?band=medium", band: risk.BandMedium},
		{name: "days", query: "?days=7", since: now.Add(-7 * 24 * time.Hour)},
		{name: "both", query: "?band=High&days=1", band: risk.BandHigh, since: now.Add(-24 * time.Hour)},
		{name: "blank values", query: "?band=&days="},
		{name: "unknown band", query: "?band=Critical", wantErr: true},
		{name: "zero days", query: "?days=0", wantErr: true},
		{name: "too many days", query: "?days=3651", wantErr: true},
		{name: "non-numeric days", query: "?days=week", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := parseRiskFilter(testContext("/risks"+tt.query), now)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errInvalidFilter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.band, f.Band)
			assert.Equal(t, tt.since, f.Since)
			assert.Zero(t, f.Limit)
		})
	}
}

func TestValidationMessage(t *testing.T) {
	tests := []struct {
		form risk.Values
		want string
	}{
		{form: risk.Values{"likelihood": "a", "impact": "1", "severity": "1", "frequency": "1"}, want: msgNonInteger},
		{form: risk.Values{"likelihood": "1", "impact": "8", "severity": "1", "frequency": "1"}, want: msgOutOfRange},
		{form: risk.Values{"likelihood": "1", "impact": "1", "severity": "99999999999999999999", "frequency": "1"}, want: msgOutOfRange},
		{form: risk.Values{"likelihood": "1", "impact": "1", "severity": "1"}, want: msgMissing},
	}

	for _, tt := range tests {
		_, err := risk.Validate(tt.form)
		require.Error(t, err)
		assert.Equal(t, tt.want, validationMessage(err))
	}
}

func TestAttachmentName(t *testing.T) {
	assert.True(t, attachmentName.MatchString("0f8fad5b-d9cb-469f-a165-70867728950e.pdf"))
	assert.True(t, attachmentName.MatchString("0f8fad5b-d9cb-469f-a165-70867728950e.xlsx"))

	for _, name := range []string{"", "../etc/passwd", "report.pdf", "0f8fad5b-d9cb-469f-a165-70867728950e", "0F8FAD5B-D9CB-469F-A165-70867728950E.pdf"} {
		assert.False(t, attachmentName.MatchString(name), name)
	}
}
