package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <commit>",
		Short: "Move the current branch to a commit and restore its files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openRepo(cmd, g)
			if err != nil {
				return err
			}
			defer s.Close()
			h, err := s.Reset(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "HEAD is now at %s\n", h.Short(7))
			return nil
		},
	}
}
