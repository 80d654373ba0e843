package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/billbook/internal/config"
	"github.com/MrJamesThe3rd/billbook/internal/database"
	"github.com/MrJamesThe3rd/billbook/internal/logger"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "billbookctl",
	Short: "Administrative commands for a Billbook installation",
	Long: `billbookctl runs maintenance tasks against the Billbook database:
schema migrations, API tokens, reports, product imports and exports.

Configuration is read from the environment (and a .env file when present),
the same way the API server reads it.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error

		cfg, err = config.Load()
		if err != nil {
			return err
		}

		lc := cfg.Logging()
		lc.Output = "stderr"

		return logger.Setup(lc)
	},
}

var cfg *config.Config

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log := logger.WithComponent("cmd")
		log.Error().Err(err).Msg("command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openDB(ctx context.Context) (*sql.DB, error) {
	db, err := database.New(ctx, cfg.ConnectionString(), cfg.Pool())
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return db, nil
}

func ownerFlag(cmd *cobra.Command) (uuid.UUID, error) {
	s, _ := cmd.Flags().GetString("owner")
	if s == "" {
		return uuid.Nil, fmt.Errorf("--owner is required")
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid owner id: %w", err)
	}

	return id, nil
}
