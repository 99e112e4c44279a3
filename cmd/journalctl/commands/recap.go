package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/AnshRaj112/jurnal-backend/internal/app"
)

var (
	recapUser string
	recapList bool
)

// NewRecapCmd creates the recap command.
func NewRecapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recap",
		Short: "Generate (or show) a user's weekly recap",
		Long: `Generate this week's recap for a user, exactly as POST /api/weekly/generate does.
An existing recap for the week is printed instead of generating a new one.

Examples:
  journalctl recap --user <id>
  journalctl recap --user <id> --list`,
		Args: cobra.NoArgs,
		RunE: runRecap,
	}
	cmd.Flags().StringVar(&recapUser, "user", "", "User id (required)")
	cmd.Flags().BoolVar(&recapList, "list", false, "List stored recaps instead of generating")
	return cmd
}

func runRecap(cmd *cobra.Command, args []string) error {
	if recapUser == "" {
		return errors.New("--user is required")
	}
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		if recapList {
			recaps, err := a.Weekly.List(ctx, recapUser, 0, locale())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), recaps)
		}
		result, err := a.Weekly.Generate(ctx, recapUser, locale())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), result)
	})
}
