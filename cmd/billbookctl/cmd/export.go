package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/billbook/internal/app"
	"github.com/MrJamesThe3rd/billbook/internal/document"
	"github.com/MrJamesThe3rd/billbook/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Write documents and line items as CSV files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ownerID, err := ownerFlag(cmd)
		if err != nil {
			return err
		}

		var filter document.ListFilter

		if filter.StartDate, err = dateFlag(cmd, "start-date"); err != nil {
			return err
		}

		if filter.EndDate, err = dateFlag(cmd, "end-date"); err != nil {
			return err
		}

		db, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		svc, err := app.New(cfg, db)
		if err != nil {
			return err
		}

		items, err := svc.Export.Export(cmd.Context(), ownerID, filter, args[0])
		if err != nil {
			return err
		}

		summary := svc.Export.GenerateSummary(items)
		if err := os.WriteFile(filepath.Join(args[0], export.SummaryFile), []byte(summary), 0o644); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}

		fmt.Fprint(cmd.OutOrStdout(), summary)
		fmt.Fprintf(cmd.OutOrStdout(), "exported %d document(s) to %s\n", len(items), args[0])

		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("owner", "", "Owner ID")
	exportCmd.Flags().String("start-date", "", "First day to include (YYYY-MM-DD)")
	exportCmd.Flags().String("end-date", "", "Last day to include (YYYY-MM-DD)")
}
