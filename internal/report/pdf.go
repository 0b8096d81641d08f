package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"risk-assessor/internal/models"
	"risk-assessor/internal/risk"

	"github.com/go-pdf/fpdf"
	"github.com/m-mizutani/goerr/v2"
)

const reportTitle = "Risk Assessment Report"

type rgb struct{ r, g, b int }

var bandRGB = map[risk.Band]rgb{
	risk.BandLow:    {46, 125, 50},
	risk.BandMedium: {249, 168, 37},
	risk.BandHigh:   {198, 40, 40},
}

// WritePDF renders a narrative report: totals per band followed by one
// section per assessment.
func WritePDF(w io.Writer, risks []models.Risk, generatedAt time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(reportTitle, true)
	pdf.SetCreator("risk-assessor", true)
	pdf.SetCreationDate(generatedAt)
	pdf.SetMargins(15, 15, 15)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, reportTitle, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 6, "Generated "+generatedAt.UTC().Format("2006-01-02 15:04 MST"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	summary := Summarize(risks)
	writeSummary(pdf, summary)

	if len(risks) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 8, "No assessments match the selected filters.", "", 1, "L", false, 0, "")
	}

	for _, r := range risks {
		writeRisk(pdf, tr, r)
	}

	if err := pdf.Output(w); err != nil {
		return goerr.Wrap(err, "failed to render pdf report", goerr.V("risks", len(risks)))
	}
	return nil
}

func writeSummary(pdf *fpdf.Fpdf, s Summary) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, bc := range s.Bands {
		c := bandRGB[bc.Band]
		pdf.SetFillColor(c.r, c.g, c.b)
		pdf.CellFormat(4, 6, "", "", 0, "L", true, 0, "")
		pdf.CellFormat(40, 6, " "+string(bc.Band), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, fmt.Sprintf("%d", bc.Count), "", 1, "L", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(44, 6, "Total", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("%d", s.Total), "", 1, "L", false, 0, "")
	pdf.Ln(6)
}

func writeRisk(pdf *fpdf.Fpdf, tr func(string) string, r models.Risk) {
	c := bandRGB[r.Level]

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(c.r, c.g, c.b)
	header := fmt.Sprintf("#%d  %s risk  (score %.2f)", r.ID, r.Level, r.Score)
	pdf.CellFormat(0, 7, header, "B", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Submitted %s   Likelihood %d   Impact %d   Severity %d   Frequency %d",
		r.SubmittedAt.UTC().Format("2006-01-02 15:04"), r.Likelihood, r.Impact, r.Severity, r.Frequency),
		"", 1, "L", false, 0, "")

	pdf.MultiCell(0, 5, tr(r.LevelDescription), "", "L", false)
	if r.Mitigation != "" {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, "Mitigation", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(r.Mitigation), "", "L", false)
	}
	if notes := strings.TrimSpace(r.Notes); notes != "" {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, "Notes", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(notes), "", "L", false)
	}
	if name := r.Attachment(); name != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 5, "Attachment: "+tr(name), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}
