package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/AndrejKiraly/RoutineGamification/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive checklist for today",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunBoard(ctx, a.user, a.manager, a.achievements, a.store, cmd.OutOrStdout())
		},
	}

	return cmd
}
