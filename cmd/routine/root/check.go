package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AndrejKiraly/RoutineGamification/internal/ui"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <routine_id> <item_id>",
		Short: "Complete a checklist item",
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

			res, err := a.manager.CompleteItem(ctx, args[0], args[1], a.user)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			// Results can be empty for an item without rewards, so the
			// already-checked case is decided by Changed.
			if !res.Changed {
				fmt.Fprintf(out, "%s %s\n", ui.Muted.Render("Already checked:"), res.Item.Description)
				return nil
			}

			fmt.Fprintf(out, "%s %s\n", ui.Good.Render(ui.IconDone+" Checked"), res.Item.Description)
			for _, xp := range res.Results {
				line := fmt.Sprintf("  %s +%d XP", ui.Key.Render(string(xp.Category)+":"), xp.XPGained)
				if xp.StreakBonus > 0 {
					line += ui.Muted.Render(fmt.Sprintf(" (streak +%d%%)", int(xp.StreakBonus*100)))
				}
				if xp.LeveledUp {
					line += " " + ui.BadgeLevelUp + fmt.Sprintf(" → %d (%s)", xp.NewLevel, xp.Skill.Tier())
				}
				fmt.Fprintln(out, line)
			}

			if res.RoutineCompleted {
				fmt.Fprintf(out, "%s Routine complete! %s\n",
					ui.Gold.Render(ui.IconTrophy),
					ui.LabelValue("Streak", fmt.Sprintf("%s %d", ui.IconStreak, a.user.Streak.Current)))
			}

			for _, ach := range a.achievements.Check(a.user) {
				fmt.Fprintf(out, "%s %s — %s\n", ach.Icon, ui.Gold.Render(ach.Name), ui.Muted.Render(ach.Description))
			}

			if !a.saveUser(ctx) || !res.SaveConfirmed {
				fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" Save not confirmed; progress is kept in memory for this run"))
			}
			return nil
		},
	}

	return cmd
}
