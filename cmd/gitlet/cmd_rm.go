package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/gitlet/pkg/repo"
)

func newRmCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <file>...",
		Short: "Unstage a file or stage its removal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openRepo(cmd, g)
			if err != nil {
				return err
			}
			defer s.Close()
			for _, p := range args {
				err := s.Remove(p)
				if errors.Is(err, repo.ErrNothingToRemove) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: No reason to remove the file.\n", p)
					continue
				}
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
}
