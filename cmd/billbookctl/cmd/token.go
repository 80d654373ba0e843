package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/billbook/internal/auth"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an API token for a business owner",
	Example: `  billbookctl token --owner 7f7c3c8e-7e1f-4a51-9a3c-0d9b1a6f0a01
  billbookctl token --owner 7f7c3c8e-7e1f-4a51-9a3c-0d9b1a6f0a01 --ttl 0`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ownerID, err := ownerFlag(cmd)
		if err != nil {
			return err
		}

		ttl := cfg.Auth.TokenTTL
		if cmd.Flags().Changed("ttl") {
			ttl, _ = cmd.Flags().GetDuration("ttl")
		}

		issuer, err := auth.NewIssuer(cfg.Auth.Secret, cfg.Auth.Issuer, ttl)
		if err != nil {
			return err
		}

		token, err := issuer.Issue(ownerID)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().String("owner", "", "Owner ID the token authenticates")
	tokenCmd.Flags().Duration("ttl", 0, "Token lifetime (default from AUTH_TOKEN_TTL, 0 never expires)")
}
