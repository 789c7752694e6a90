package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBranchCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "branch [name]",
		Short: "Create a branch at HEAD, or list branches",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openRepo(cmd, g)
			if err != nil {
				return err
			}
			defer s.Close()

			if len(args) == 1 {
				return s.CreateBranch(args[0])
			}
			names, current, err := s.ListBranches()
			if err != nil {
				return err
			}
			for _, name := range names {
				marker := " "
				if name == current {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
			}
			return nil
		},
	}
}

func newRmBranchCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "rm-branch <name>",
		Short: "Delete a branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openRepo(cmd, g)
			if err != nil {
				return err
			}
			defer s.Close()
			return s.DeleteBranch(args[0])
		},
	}
}
