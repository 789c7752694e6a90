package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/gitlet/pkg/catalog"
	"github.com/odvcencio/gitlet/pkg/repo"
)

func newInitCmd(g *globalOpts) *cobra.Command {
	var branch, catalogType, compression string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := repo.DefaultConfig()
			if branch != "" {
				cfg.DefaultBranch = branch
			}
			if catalogType != "" {
				cfg.Catalog = catalog.Config{Type: catalogType}
			}
			if compression != "" {
				cfg.Objects.Compression = compression
			}
			r, err := repo.Init(g.dir, cfg)
			if err != nil {
				return err
			}
			defer r.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized empty gitlet repository in %s\n", r.GitletDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&branch, "branch", "", "name of the initial branch (default master)")
	cmd.Flags().StringVar(&catalogType, "catalog", "", "commit catalog backend: file or sqlite")
	cmd.Flags().StringVar(&compression, "compression", "", "object compression: zstd or none")
	return cmd
}
