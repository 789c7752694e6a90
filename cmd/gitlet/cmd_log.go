package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/gitlet/pkg/repo"
)

func newLogCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "Show the current branch's history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openRepo(cmd, g)
			if err != nil {
				return err
			}
			defer s.Close()
			entries, err := s.Log()
			if err != nil {
				return err
			}
			return repo.WriteLog(cmd.OutOrStdout(), entries)
		},
	}
}

func newGlobalLogCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "global-log",
		Short: "Show every commit ever made",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openRepo(cmd, g)
			if err != nil {
				return err
			}
			defer s.Close()
			entries, err := s.GlobalLog()
			if err != nil {
				return err
			}
			return repo.WriteLog(cmd.OutOrStdout(), entries)
		},
	}
}

func newFindCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "find <message>",
		Short: "Print the ids of commits with the given message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openRepo(cmd, g)
			if err != nil {
				return err
			}
			defer s.Close()
			found, err := s.Find(args[0])
			if err != nil {
				return err
			}
			for _, h := range found {
				fmt.Fprintln(cmd.OutOrStdout(), h)
			}
			return nil
		},
	}
}
