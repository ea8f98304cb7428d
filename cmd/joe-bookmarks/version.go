package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/joestump/joe-bookmarks/internal/build"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "joe-bookmarks %s (commit %s, branch %s, %s)\n",
				build.Version, build.Commit, build.Branch, runtime.Version())
		},
	}
}
