package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckoutCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout <branch> | -- <file> | <commit> -- <file>",
		Short: "Switch branches or restore a file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dash := cmd.ArgsLenAtDash()
			s, err := openRepo(cmd, g)
			if err != nil {
				return err
			}
			defer s.Close()

			switch {
			case dash == 0 && len(args) == 1:
				return s.CheckoutFile(args[0])
			case dash == 1 && len(args) == 2:
				return s.CheckoutFileAt(args[0], args[1])
			case dash < 0 && len(args) == 1:
				if err := s.CheckoutBranch(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Switched to branch '%s'\n", args[0])
				return nil
			default:
				return fmt.Errorf("incorrect operands")
			}
		},
	}
}
