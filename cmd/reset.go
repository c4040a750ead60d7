package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset [module]",
		Short: "Clear answer history for a module, or all modules with --all",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			seenOnly, _ := cmd.Flags().GetBool("seen-only")
			if all == (len(args) == 1) {
				return errors.New("name one module or pass --all")
			}

			d, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer d.Close()

			var keys []string
			if all {
				for _, m := range d.bank.Modules() {
					keys = append(keys, m.Key)
				}
			} else {
				desc, err := d.bank.Module(args[0])
				if err != nil {
					return err
				}
				keys = []string{desc.Key}
			}

			out := cmd.OutOrStdout()
			var errs []error
			for _, key := range keys {
				if seenOnly {
					d.ledger.ResetSeen(d.ctx, key)
					fmt.Fprintf(out, "%s: seen questions cleared\n", key)
					continue
				}
				if err := d.ledger.Reset(d.ctx, key); err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", key, err))
					continue
				}
				fmt.Fprintf(out, "%s: history cleared\n", key)
			}
			return errors.Join(errs...)
		},
	}
	cmd.Flags().Bool("all", false, "Reset every module")
	cmd.Flags().Bool("seen-only", false, "Only forget which questions were asked; keep answer history")
	return cmd
}
