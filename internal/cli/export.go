package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"risk-assessor/internal/database"
	"risk-assessor/internal/report"
	"risk-assessor/internal/risk"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/cobra"
)

const (
	formatCSV = "csv"
	formatPDF = "pdf"
)

func newExportCommand() *cobra.Command {
	var (
		format string
		out    string
		band   string
		days   int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored assessments as CSV or a PDF report",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatCSV && format != formatPDF {
				return goerr.New("format must be csv or pdf", goerr.V("format", format))
			}

			now := time.Now().UTC()
			f, err := exportFilter(band, days, now)
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.DBDriver, cfg.DBDSN)
			if err != nil {
				return err
			}
			if _, err := database.Migrate(db); err != nil {
				return err
			}
			database.DB = db

			if out == "" || out == "-" {
				_, err := writeExport(cmd.Context(), cmd.OutOrStdout(), format, f, now)
				return err
			}

			n, err := exportToFile(cmd.Context(), out, format, f, now)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d assessments to %s\n", n, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formatCSV, "Output format (csv|pdf)")
	cmd.Flags().StringVar(&out, "out", "", "Output file (stdout when empty)")
	cmd.Flags().StringVar(&band, "band", "", "Only this band (Low|Medium|High)")
	cmd.Flags().IntVar(&days, "days", 0, "Only assessments from the last N days")
	return cmd
}

func exportFilter(band string, days int, now time.Time) (database.RiskFilter, error) {
	var f database.RiskFilter
	if band != "" {
		b, err := risk.ParseBand(band)
		if err != nil {
			return f, err
		}
		f.Band = b
	}
	if days < 0 {
		return f, goerr.New("days must not be negative", goerr.V("days", days))
	}
	if days > 0 {
		f.Since = now.Add(-time.Duration(days) * 24 * time.Hour)
	}
	return f, nil
}

// exportToFile writes the export to path; a failed close is an error.
func exportToFile(ctx context.Context, path, format string, f database.RiskFilter, now time.Time) (int, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to create output file", goerr.V("path", path))
	}

	n, err := writeExport(ctx, file, format, f, now)
	if err != nil {
		_ = file.Close()
		return 0, err
	}
	if err := file.Close(); err != nil {
		return 0, goerr.Wrap(err, "failed to close output file", goerr.V("path", path))
	}
	return n, nil
}

func writeExport(ctx context.Context, w io.Writer, format string, f database.RiskFilter, now time.Time) (int, error) {
	risks, err := database.FindRisks(ctx, f)
	if err != nil {
		return 0, err
	}

	switch format {
	case formatPDF:
		err = report.WritePDF(w, risks, now)
	default:
		err = report.WriteCSV(w, risks)
	}
	if err != nil {
		return 0, err
	}
	return len(risks), nil
}
