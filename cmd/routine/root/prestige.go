package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AndrejKiraly/RoutineGamification/internal/engine"
	"github.com/AndrejKiraly/RoutineGamification/internal/ui"
)

func newPrestigeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prestige <category>",
		Short: "Prestige a maxed-out skill",
		Long: `Reset a level-100 skill back to level 1 in exchange for a permanent
+5% XP multiplier per prestige. Lifetime XP is kept.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("category is required")
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

			category := engine.Category(args[0])
			skill, ok := a.user.Skills[category]
			if !ok {
				return engine.NotFoundError{Kind: "category", ID: args[0]}
			}

			res, err := skill.PrestigeReset()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s %s\n",
				ui.Gold.Render(ui.IconPrestige+" Prestige"),
				skill.Name,
				ui.Muted.Render(fmt.Sprintf("(#%d)", res.Prestige)))
			fmt.Fprintln(out, ui.LabelValue("Multiplier", fmt.Sprintf("x%.2f", res.Multiplier)))

			for _, ach := range a.achievements.Check(a.user) {
				fmt.Fprintf(out, "%s %s — %s\n", ach.Icon, ui.Gold.Render(ach.Name), ui.Muted.Render(ach.Description))
			}
			if !a.saveUser(ctx) {
				fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" Save not confirmed"))
			}
			return nil
		},
	}

	return cmd
}
