package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/billbook/internal/database"
	"github.com/MrJamesThe3rd/billbook/internal/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := logger.WithComponent("migrate")

		db, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		applied, err := database.Migrate(cmd.Context(), db)
		if err != nil {
			return err
		}

		log.Info().Strs("applied", applied).Msg("migrations complete")

		if len(applied) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "database is up to date")
			return nil
		}

		for _, v := range applied {
			fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", v)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
