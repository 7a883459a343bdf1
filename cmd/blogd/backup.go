package main

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"blogd/internal"
)

var backupCMD = &cobra.Command{
	Use:   "backup",
	Short: "manage rotating backups",
	Args:  cobra.NoArgs,
}

var backupCreateCMD = &cobra.Command{
	Use:   "create",
	Short: "write a backup of all collections now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConsole(func(c *internal.Console) error {
			path, err := c.Service.CreateBackup(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), filepath.Base(path))
			return nil
		})
	},
}

var backupListCMD = &cobra.Command{
	Use:   "list",
	Short: "list backups, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConsole(func(c *internal.Console) error {
			backups, err := c.Service.ListBackups()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSIZE\tCREATED")
			for _, b := range backups {
				fmt.Fprintf(tw, "%s\t%d\t%s\n", b.Name, b.Size, b.CreatedAt.Format("2006-01-02 15:04:05.000"))
			}
			return tw.Flush()
		})
	},
}

var backupDeleteCMD = &cobra.Command{
	Use:   "delete <name>",
	Short: "delete one backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConsole(func(c *internal.Console) error {
			return c.Service.DeleteBackup(args[0])
		})
	},
}

var backupRestoreCMD = &cobra.Command{
	Use:   "restore <name>",
	Short: "replace live data with a backup, keeping a safety backup first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConsole(func(c *internal.Console) error {
			if err := c.Service.RestoreFromBackup(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "restored %s\n", args[0])
			return nil
		})
	},
}

var exportCMD = &cobra.Command{
	Use:   "export",
	Short: "write a standalone export next to the data files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConsole(func(c *internal.Console) error {
			path, err := c.Service.ExportData(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		})
	},
}

func init() {
	backupCMD.AddCommand(backupCreateCMD, backupListCMD, backupDeleteCMD, backupRestoreCMD)
	rootCMD.AddCommand(backupCMD, exportCMD)
}
