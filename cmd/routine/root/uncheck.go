package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AndrejKiraly/RoutineGamification/internal/ui"
)

func newUncheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uncheck <routine_id> <item_id>",
		Short: "Uncheck a checklist item",
		Long: `Uncheck an item in today's session.

This only corrects the checklist and the session's XP ledger. Skill XP,
levels, lifetime stats and the streak that the completion already granted
are kept.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("routine_id and item_id are required")
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

			res, err := a.manager.UncompleteItem(ctx, args[0], args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !res.Changed {
				fmt.Fprintf(out, "%s %s\n", ui.Muted.Render("Not checked:"), res.Item.Description)
				return nil
			}
			fmt.Fprintf(out, "%s %s\n", ui.Warn.Render(ui.IconUndo+" Unchecked"), res.Item.Description)
			if !res.SaveConfirmed {
				fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" Save not confirmed; progress is kept in memory for this run"))
			}
			return nil
		},
	}

	return cmd
}
