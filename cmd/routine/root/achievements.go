package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AndrejKiraly/RoutineGamification/internal/ui"
)

func newAchievementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "List achievements and unlock status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy,
				fmt.Sprintf("Achievements (%d/%d)", a.achievements.CountUnlocked(), a.achievements.CountTotal())))
			for _, ach := range a.achievements.All() {
				if ach.Unlocked() {
					fmt.Fprintf(out, "%s %s — %s %s\n",
						ach.Icon, ui.Gold.Render(ach.Name), ach.Description,
						ui.Muted.Render("("+ach.UnlockedAt.Format("2006-01-02")+")"))
				} else {
					fmt.Fprintf(out, "%s %s — %s\n",
						ui.IconLock, ui.Muted.Render(ach.Name), ui.Muted.Render(ach.Description))
				}
			}
			return nil
		},
	}

	return cmd
}
