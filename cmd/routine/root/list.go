package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AndrejKiraly/RoutineGamification/internal/ui"
)

func newListCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List loaded routine definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			routines := a.library.Routines()
			if len(routines) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No routines found in "+a.cfg.Routines.Dir))
				return nil
			}
			for _, r := range routines {
				fmt.Fprintf(out, "%s %s %s %s\n",
					r.Icon, ui.Key.Render(r.Name),
					ui.Muted.Render("("+r.ID+")"),
					ui.Muted.Render(fmt.Sprintf("%d items", r.TotalItemCount())))
				if !verbose {
					continue
				}
				for _, sec := range r.Sections {
					fmt.Fprintf(out, "  %s %s\n", ui.H2.Render(sec.Name), ui.Muted.Render(sec.TimeRange))
					for _, item := range sec.Items {
						fmt.Fprintf(out, "    - %s %s\n", item.Description, ui.Muted.Render("("+item.ID+")"))
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show sections and items")
	return cmd
}
