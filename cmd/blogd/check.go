package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"blogd/internal"
	"blogd/internal/models"
)

var errIssuesFound = errors.New("integrity issues found")

var checkCMD = &cobra.Command{
	Use:   "check",
	Short: "report file health and record-level integrity issues",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConsole(func(c *internal.Console) error {
			out := cmd.OutOrStdout()
			health := c.Service.Health()
			fmt.Fprintf(out, "health: %s (posts=%t comments=%t settings=%t analytics=%t)\n",
				health.Status, health.Files.Posts, health.Files.Comments, health.Files.Settings, health.Files.Analytics)

			report := c.Service.IntegrityCheck()
			fmt.Fprintf(out, "integrity: %s\n", report.Status)
			for _, issue := range report.Issues {
				fmt.Fprintf(out, "  - %s\n", issue)
			}
			if report.Status != models.HealthHealthy {
				return errIssuesFound
			}
			return nil
		})
	},
}

var cleanupCMD = &cobra.Command{
	Use:   "cleanup-orphans",
	Short: "delete comments whose post no longer exists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConsole(func(c *internal.Console) error {
			res, err := c.Service.CleanupOrphanedComments()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d orphaned comments, %d remaining\n", res.Removed, res.Remaining)
			return nil
		})
	},
}

func init() {
	rootCMD.AddCommand(checkCMD, cleanupCMD)
}
