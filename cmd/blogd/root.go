package main

import (
	"github.com/spf13/cobra"

	"blogd/internal"
	"blogd/internal/di"
	"blogd/internal/structures"
)

var flags = &structures.CliFlags{}

var rootCMD = &cobra.Command{
	Use:           "blogd",
	Short:         "blogd",
	Long:          `document storage and backup engine for a single-author blog`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// withConsole runs fn against the stores without starting the server.
func withConsole(fn func(c *internal.Console) error) error {
	console, err := di.InitConsole(flags)
	if err != nil {
		return err
	}
	defer console.Close()
	return fn(console)
}

func init() {
	rootCMD.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "config.yaml", "path to the YAML config file")
	rootCMD.PersistentFlags().BoolVar(&flags.DebugMode, "debug", false, "log to the console as well")
}
