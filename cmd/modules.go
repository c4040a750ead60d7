package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newModulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modules",
		Short: "List the loaded modules and their question counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer d.Close()

			out := cmd.OutOrStdout()
			for _, m := range d.bank.Modules() {
				fmt.Fprintf(out, "%-16s %-32s %4d questions\n", m.Key, m.Title, m.Count)

				subs := make([]string, 0, len(m.SubtopicCounts))
				for sub := range m.SubtopicCounts {
					subs = append(subs, sub)
				}
				sort.Strings(subs)
				for _, sub := range subs {
					fmt.Fprintf(out, "    %-44s %4d\n", sub, m.SubtopicCounts[sub])
				}
			}
			return nil
		},
	}
}
