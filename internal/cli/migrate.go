package cli

import (
	"fmt"

	"risk-assessor/internal/database"

	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.DBDriver, cfg.DBDSN)
			if err != nil {
				return err
			}

			ran, err := database.Migrate(db)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(ran) == 0 {
				fmt.Fprintf(out, "Schema is up to date (version %d)\n", database.LatestVersion())
				return nil
			}
			for _, v := range ran {
				fmt.Fprintf(out, "Applied migration %d\n", v)
			}
			return nil
		},
	}
}
