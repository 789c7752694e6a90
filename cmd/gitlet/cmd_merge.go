package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/gitlet/pkg/repo"
)

func newMergeCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "merge <branch>",
		Short: "Merge a branch into the current branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openRepo(cmd, g)
			if err != nil {
				return err
			}
			defer s.Close()

			rep, err := s.Merge(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch rep.Outcome {
			case repo.MergeFastForward:
				fmt.Fprintln(out, "Current branch fast-forwarded.")
			case repo.MergeAncestor:
				fmt.Fprintln(out, "Given branch is an ancestor of the current branch.")
			default:
				for _, f := range rep.Files {
					fmt.Fprintf(out, "%s: %s\n", f.Rule, f.Path)
				}
				if rep.HasConflicts {
					fmt.Fprintln(out, "Encountered a merge conflict.")
				}
			}
			return nil
		},
	}
}
