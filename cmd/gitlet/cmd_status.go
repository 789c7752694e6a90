package main

import (
	"github.com/spf13/cobra"

	"github.com/odvcencio/gitlet/pkg/repo"
)

func newStatusCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show branches, staged files and working-tree changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openRepo(cmd, g)
			if err != nil {
				return err
			}
			defer s.Close()
			rep, err := s.Status()
			if err != nil {
				return err
			}
			return repo.WriteStatus(cmd.OutOrStdout(), rep)
		},
	}
}
