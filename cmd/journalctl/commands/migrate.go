package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AnshRaj112/jurnal-backend/internal/app"
)

// NewMigrateCmd creates the migrate command.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create tables or indexes for the storage backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Migrate(ctx); err != nil {
					return fmt.Errorf("migrating %s: %w", a.Config.StorageBackend, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ %s storage is ready\n", a.Config.StorageBackend)
				return nil
			})
		},
	}
}
