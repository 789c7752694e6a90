package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newReflogCmd(g *globalOpts) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "reflog [branch]",
		Short: "Show where a branch tip has been",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			branch := ""
			if len(args) == 1 {
				branch = args[0]
			}
			s, err := openRepo(cmd, g)
			if err != nil {
				return err
			}
			defer s.Close()

			entries, err := s.Reflog(branch, limit)
			if err != nil {
				return err
			}
			for _, e := range entries {
				when := time.Unix(e.Timestamp, 0).UTC().Format(time.RFC3339)
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", e.NewHash.Short(7), when, e.Reason)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "number", "n", 0, "limit the number of entries")
	return cmd
}
