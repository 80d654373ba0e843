package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/billbook/internal/auth"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("AUTH_SECRET", "cli-secret")
	t.Setenv("AUTH_ISSUER", "billbook")
	t.Setenv("LOG_LEVEL", "error")

	ownerID := uuid.New()

	out, err := execute(t, "token", "--owner", ownerID.String(), "--ttl", "1h")
	require.NoError(t, err)

	issuer, err := auth.NewIssuer("cli-secret", "billbook", time.Hour)
	require.NoError(t, err)

	got, err := issuer.Verify(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, ownerID, got)
}

func TestTokenCommand_Errors(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	t.Run("Missing Owner", func(t *testing.T) {
		t.Setenv("AUTH_SECRET", "cli-secret")

		_, err := execute(t, "token")
		assert.ErrorContains(t, err, "--owner is required")
	})

	t.Run("Invalid Owner", func(t *testing.T) {
		t.Setenv("AUTH_SECRET", "cli-secret")

		_, err := execute(t, "token", "--owner", "shop-1")
		assert.ErrorContains(t, err, "invalid owner id")
	})

	t.Run("No Secret", func(t *testing.T) {
		t.Setenv("AUTH_SECRET", "")

		_, err := execute(t, "token", "--owner", uuid.NewString())
		assert.ErrorIs(t, err, auth.ErrNoSecret)
	})
}

func TestReportCommand_RejectsInputBeforeConnecting(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	_, err := execute(t, "report", "--owner", uuid.NewString(), "--bucket", "year")
	assert.ErrorContains(t, err, "bucket must be")

	_, err = execute(t, "report", "--owner", uuid.NewString(), "--start-date", "01/03/2026")
	assert.ErrorContains(t, err, "invalid --start-date")
}
