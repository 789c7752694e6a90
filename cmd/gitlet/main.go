package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/odvcencio/gitlet/pkg/repo"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// globalOpts holds flags shared by every subcommand.
type globalOpts struct {
	dir     string
	verbose bool
}

func newRootCmd() *cobra.Command {
	g := &globalOpts{}
	root := &cobra.Command{
		Use:           "gitlet",
		Short:         "A small local version-control system",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&g.dir, "dir", "C", ".", "run as if started in this directory")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "mirror log lines to stderr")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(g))
	root.AddCommand(newAddCmd(g))
	root.AddCommand(newCommitCmd(g))
	root.AddCommand(newRmCmd(g))
	root.AddCommand(newLogCmd(g))
	root.AddCommand(newGlobalLogCmd(g))
	root.AddCommand(newFindCmd(g))
	root.AddCommand(newStatusCmd(g))
	root.AddCommand(newCheckoutCmd(g))
	root.AddCommand(newBranchCmd(g))
	root.AddCommand(newRmBranchCmd(g))
	root.AddCommand(newResetCmd(g))
	root.AddCommand(newMergeCmd(g))
	root.AddCommand(newReflogCmd(g))
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "gitlet 0.1.0-dev")
		},
	}
}

// session is an opened repository plus the log file it writes to.
type session struct {
	*repo.Repo
	logFile io.Closer
}

func (s *session) Close() {
	s.Repo.Close()
	if s.logFile != nil {
		s.logFile.Close()
	}
}

// openRepo opens the repository containing g.dir and attaches a file
// logger. With --verbose every line is mirrored to stderr; when stderr is
// a terminal, warnings are mirrored regardless.
func openRepo(cmd *cobra.Command, g *globalOpts) (*session, error) {
	r, err := repo.Open(g.dir)
	if err != nil {
		return nil, err
	}
	level, err := r.Config.LogLevel()
	if err != nil {
		r.Close()
		return nil, err
	}
	opts := repo.LogOptions{Level: level, OpID: uuid.NewString()[:8]}
	switch {
	case g.verbose:
		opts.Mirror, opts.MirrorLevel = cmd.ErrOrStderr(), slog.LevelDebug
	case term.IsTerminal(int(os.Stderr.Fd())):
		opts.Mirror, opts.MirrorLevel = cmd.ErrOrStderr(), slog.LevelWarn
	}
	logger, closer, err := repo.NewFileLogger(r.GitletDir, opts)
	if err != nil {
		r.Close()
		return nil, err
	}
	r.Logger = logger
	return &session{Repo: r, logFile: closer}, nil
}
