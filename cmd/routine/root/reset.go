package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AndrejKiraly/RoutineGamification/internal/ui"
)

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset <routine_id>",
		Short: "Reset today's session for a routine",
		Long: `Reset today's session back to not started, clearing all checked items
and the session's XP ledger. Skill XP and stats already granted are kept.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("routine_id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			sess, err := a.manager.ResetSession(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Warn.Render(ui.IconReset+" Reset"), args[0], ui.Muted.Render("("+sess.Date+")"))
			return nil
		},
	}

	return cmd
}
