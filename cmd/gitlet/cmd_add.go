package main

import (
	"github.com/spf13/cobra"
)

func newAddCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "add <file>...",
		Short: "Stage files for the next commit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openRepo(cmd, g)
			if err != nil {
				return err
			}
			defer s.Close()
			for _, p := range args {
				if err := s.Add(p); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
