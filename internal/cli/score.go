package cli

import (
	"fmt"
	"io"

	"risk-assessor/internal/risk"

	"github.com/spf13/cobra"
)

func newScoreCommand() *cobra.Command {
	raw := make(map[string]*string, len(risk.Fields()))

	cmd := &cobra.Command{
		Use:     "score",
		Short:   "Score a single assessment without storing it",
		Example: "  risk-assessor score --likelihood 5 --impact 5 --severity 4 --frequency 4",
		RunE: func(cmd *cobra.Command, args []string) error {
			// unset flags count as missing ratings
			values := risk.Values{}
			for _, name := range risk.Fields() {
				if cmd.Flags().Changed(name) {
					values[name] = *raw[name]
				}
			}

			ratings, err := risk.Validate(values)
			if err != nil {
				return err
			}
			printAssessment(cmd.OutOrStdout(), risk.Evaluate(ratings))
			return nil
		},
	}

	for _, name := range risk.Fields() {
		raw[name] = cmd.Flags().String(name, "", fmt.Sprintf("%s rating (%d-%d)", name, risk.MinRating, risk.MaxRating))
	}
	return cmd
}

func printAssessment(w io.Writer, a risk.Assessment) {
	fmt.Fprintf(w, "Score:       %.2f\n", a.Score)
	fmt.Fprintf(w, "Level:       %s (%s)\n", a.Band, a.Color)
	fmt.Fprintf(w, "Description: %s\n", a.Description)
	fmt.Fprintf(w, "Mitigation:  %s\n", a.Mitigation)
}
