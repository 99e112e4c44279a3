package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/AnshRaj112/jurnal-backend/internal/app"
)

var (
	deleteUser    string
	deleteConfirm bool
)

// NewDeleteAccountCmd creates the delete-account command.
func NewDeleteAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete-account",
		Short: "Delete a user and everything they own",
		Args:  cobra.NoArgs,
		RunE:  runDeleteAccount,
	}
	cmd.Flags().StringVar(&deleteUser, "user", "", "User id (required)")
	cmd.Flags().BoolVar(&deleteConfirm, "yes", false, "Confirm the deletion")
	return cmd
}

func runDeleteAccount(cmd *cobra.Command, args []string) error {
	if deleteUser == "" {
		return errors.New("--user is required")
	}
	if !deleteConfirm {
		return errors.New("refusing to delete without --yes")
	}
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		report, err := a.Accounts.Delete(ctx, deleteUser, locale())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), report)
	})
}
