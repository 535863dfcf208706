package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/databacker/devdb/pkg/core"
	"github.com/databacker/devdb/pkg/docker"
	"github.com/databacker/devdb/pkg/run"
)

func rmCmd() (*cobra.Command, error) {
	var cmd = &cobra.Command{
		Use:     "rm name",
		Aliases: []string{"remove"},
		Short:   "remove a devdb container",
		Long: `Remove a container previously started by devdb, e.g. devdb_mysql.
Removing a name that does not exist is not an error.`,
		RunE: func(c *cobra.Command, args []string) error {
			if len(args) != 1 {
				_ = c.Help()
				os.Exit(1)
			}
			cli := docker.New(run.New())
			return core.Remove(c.Context(), cli, args[0])
		},
	}
	return cmd, nil
}
