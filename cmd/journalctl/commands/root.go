package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/AnshRaj112/jurnal-backend/internal/app"
	"github.com/AnshRaj112/jurnal-backend/internal/config"
	"github.com/AnshRaj112/jurnal-backend/internal/i18n"
	"github.com/AnshRaj112/jurnal-backend/internal/observability"
)

// openApp is replaced in tests.
var openApp = func(ctx context.Context) (*app.App, error) {
	_ = godotenv.Load()
	cfg := config.Load()
	observability.Configure(cfg.LogLevel)
	return app.Open(ctx, cfg)
}

var localeFlag string

// NewRootCmd builds the journalctl command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journalctl",
		Short: "Administer the jurnal backend",
		Long: `journalctl runs maintenance tasks against the configured storage backend.

Configuration is read from the environment (and .env), exactly as the server does.

Examples:
  journalctl migrate
  journalctl recap --user 6f1c...
  journalctl delete-account --user 6f1c... --yes`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&localeFlag, "locale", "id", "Locale for prompts and messages (id, en)")

	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewRecapCmd())
	cmd.AddCommand(NewDeleteAccountCmd())
	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func locale() i18n.Locale {
	return i18n.Parse(localeFlag)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}

func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := openApp(ctx)
	if err != nil {
		return fmt.Errorf("initializing: %w", err)
	}
	defer a.Close()
	return fn(ctx, a)
}
