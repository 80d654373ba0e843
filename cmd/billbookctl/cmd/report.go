package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/billbook/internal/analytics"
	"github.com/MrJamesThe3rd/billbook/internal/app"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the analytics report for an owner as JSON",
	Example: `  billbookctl report --owner 7f7c3c8e-7e1f-4a51-9a3c-0d9b1a6f0a01 --bucket month --start-date 2026-01-01`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ownerID, err := ownerFlag(cmd)
		if err != nil {
			return err
		}

		bucket, _ := cmd.Flags().GetString("bucket")
		top, _ := cmd.Flags().GetInt("top")

		req := analytics.Request{Bucket: analytics.Bucketing(bucket), Top: top}
		if !req.Bucket.Valid() {
			return fmt.Errorf("bucket must be day, week or month")
		}

		if req.StartDate, err = dateFlag(cmd, "start-date"); err != nil {
			return err
		}

		if req.EndDate, err = dateFlag(cmd, "end-date"); err != nil {
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

		report, err := svc.Analytics.Report(cmd.Context(), ownerID, req)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")

		return enc.Encode(report)
	},
}

func dateFlag(cmd *cobra.Command, name string) (*time.Time, error) {
	s, _ := cmd.Flags().GetString(name)
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s, use YYYY-MM-DD: %w", name, err)
	}

	return &t, nil
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String("owner", "", "Owner ID")
	reportCmd.Flags().String("bucket", string(analytics.Daily), "Period bucketing: day, week or month")
	reportCmd.Flags().Int("top", analytics.DefaultTop, "Length of the rankings")
	reportCmd.Flags().String("start-date", "", "First day to include (YYYY-MM-DD)")
	reportCmd.Flags().String("end-date", "", "Last day to include (YYYY-MM-DD)")
}
