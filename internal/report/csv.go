package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"risk-assessor/internal/models"

	"github.com/m-mizutani/goerr/v2"
)

var csvHeader = []string{
	"id", "submitted_at",
	"likelihood", "impact", "severity", "frequency",
	"score", "level", "color", "level_description", "mitigation",
	"notes", "file_path",
}

// WriteCSV writes a header row and one row per risk.
func WriteCSV(w io.Writer, risks []models.Risk) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return goerr.Wrap(err, "failed to write csv header")
	}

	for _, r := range risks {
		row := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.SubmittedAt.UTC().Format(time.RFC3339),
			strconv.Itoa(r.Likelihood),
			strconv.Itoa(r.Impact),
			strconv.Itoa(r.Severity),
			strconv.Itoa(r.Frequency),
			strconv.FormatFloat(r.Score, 'f', 2, 64),
			string(r.Level),
			r.Color,
			r.LevelDescription,
			r.Mitigation,
			r.Notes,
			r.Attachment(),
		}
		if err := cw.Write(row); err != nil {
			return goerr.Wrap(err, "failed to write csv row", goerr.V("id", r.ID))
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return goerr.Wrap(err, "failed to flush csv")
	}
	return nil
}
