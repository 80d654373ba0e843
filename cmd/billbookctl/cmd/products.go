package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/billbook/internal/app"
	"github.com/MrJamesThe3rd/billbook/internal/importer"
	"github.com/MrJamesThe3rd/billbook/internal/logger"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import products from a CSV export",
	Long: `Import products from a CSV file. The layout is detected from the header row
unless --format names one. Every row is imported or none is.

Known formats: ` + strings.Join(importer.ProfileNames(), ", "),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.WithComponent("import")

		ownerID, err := ownerFlag(cmd)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		db, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		svc, err := app.New(cfg, db)
		if err != nil {
			return err
		}

		params, err := svc.Importer.Import(format, f)
		if err != nil {
			return err
		}

		products, err := svc.Catalog.Import(cmd.Context(), ownerID, params)
		if err != nil {
			return err
		}

		log.Info().Int("count", len(products)).Str("file", args[0]).Msg("products imported")
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d product(s)\n", len(products))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().String("owner", "", "Owner ID")
	importCmd.Flags().String("format", "", "Force a CSV layout instead of detecting it")
}
