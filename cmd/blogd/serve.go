package main

import (
	"github.com/spf13/cobra"

	"blogd/internal/di"
)

var serveCMD = &cobra.Command{
	Use:   "serve",
	Short: "run the HTTP API and the nightly backup schedule",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := di.InitApp(flags)
		if err != nil {
			return err
		}
		return app.Run()
	},
}

func init() {
	rootCMD.AddCommand(serveCMD)
}
