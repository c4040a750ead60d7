package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/repaso/internal/stats"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <module>",
		Short: "Show the last session and recent answers for a module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer d.Close()

			desc, err := d.bank.Module(args[0])
			if err != nil {
				return err
			}

			r := stats.ModuleReport(d.ctx, d.ledger, desc.Key)
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%s (%s)\n\n", desc.Title, desc.Key)
			if r.HasSession {
				fmt.Fprintf(out, "Last session, finished %s\n", r.Session.FinishedAt.Local().Format("2006-01-02 15:04"))
			} else {
				fmt.Fprintln(out, "Last session")
			}
			printView(out, r.LastSession)

			fmt.Fprintf(out, "\nLast %d answers\n", r.Recent.Overall.Total)
			printView(out, r.Recent)
			return nil
		},
	}
}

func printView(out io.Writer, v stats.View) {
	if !v.HasEntries {
		fmt.Fprintln(out, "  No answers yet.")
		return
	}
	for _, s := range v.Subtopics {
		fmt.Fprintf(out, "  %-40s %3d/%-3d %3d%%\n", s.Subtopic, s.Correct, s.Total, s.Percent)
	}
	o := v.Overall
	fmt.Fprintf(out, "  %-40s %3d/%-3d %3d%%  %s\n", "Overall", o.Correct, o.Total, o.Percent, v.Tier.Message())
}
