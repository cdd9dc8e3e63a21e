package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AndrejKiraly/RoutineGamification/internal/ui"
)

func newTodayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's progress across all routines",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			progress, err := a.manager.Today(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconRoutine, "Today"))
			if len(progress) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No routines found. Add YAML files to "+a.cfg.Routines.Dir))
				return nil
			}
			for _, rp := range progress {
				fmt.Fprintf(out, "%s %s  %s  %s %s\n",
					rp.Routine.Icon,
					ui.Key.Render(rp.Routine.Name),
					ui.ProgressBar(rp.Progress.Completed, rp.Progress.Total, 12),
					ui.Muted.Render(fmt.Sprintf("%d/%d", rp.Progress.Completed, rp.Progress.Total)),
					ui.SessionStatusText(string(rp.Session.Status)))
			}
			return nil
		},
	}

	return cmd
}
