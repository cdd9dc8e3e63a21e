package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AndrejKiraly/RoutineGamification/internal/engine"
	"github.com/AndrejKiraly/RoutineGamification/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show skills, streak and lifetime stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			u := a.user

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, u.Username))
			fmt.Fprintln(out, ui.LabelValue("Total level", fmt.Sprintf("%d (avg %d)", u.TotalLevel(), u.AverageLevel())))
			streak := fmt.Sprintf("%s %d (longest %d)", ui.IconStreak, u.Streak.Current, u.Streak.Longest)
			if bonus := u.StreakBonus(); bonus > 0 {
				streak += ui.Muted.Render(fmt.Sprintf(" · +%d%% XP", int(bonus*100)))
			}
			fmt.Fprintln(out, ui.LabelValue("Streak", streak))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📊 Skills"))
			for _, c := range engine.Categories {
				s := u.Skills[c]
				req := engine.XPRequiredForNextLevel(s.Level)
				progress := ""
				if req > 0 {
					progress = fmt.Sprintf("%d/%d XP", s.CurrentXP, req)
				} else {
					progress = "max level"
				}
				line := fmt.Sprintf("- %s %s: lvl %d (%s, %s)", s.Icon, ui.Key.Render(s.Name), s.Level, s.Tier(), progress)
				if s.Prestige > 0 {
					line += " " + ui.Gold.Render(fmt.Sprintf("%s%d", ui.IconPrestige, s.Prestige))
				}
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📈 Lifetime"))
			fmt.Fprintln(out, "- "+ui.LabelValue("Routines", u.Stats.TotalRoutinesCompleted))
			fmt.Fprintln(out, "- "+ui.LabelValue("Tasks", u.Stats.TotalTasksCompleted))
			fmt.Fprintln(out, "- "+ui.LabelValue("XP earned", u.Stats.TotalXPEarned))
			fmt.Fprintln(out, "- "+ui.LabelValue("Achievements",
				fmt.Sprintf("%d/%d", a.achievements.CountUnlocked(), a.achievements.CountTotal())))
			return nil
		},
	}

	return cmd
}
